package model

// Tier is a discrete letter grade derived from a trust score.
type Tier string

// Tier values from best to worst.
const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierS, TierA, TierB, TierC, TierD}

func (t Tier) String() string { return string(t) }

// EligibilityResult records the outcome of the eligibility gate for one wallet.
type EligibilityResult struct {
	IsEligible      bool     `json:"isEligible" yaml:"isEligible" msgpack:"isEligible"`
	Reasons         []string `json:"reasons" yaml:"reasons" msgpack:"reasons"`
	TradingDays     int      `json:"tradingDays" yaml:"tradingDays" msgpack:"tradingDays"`
	TotalTrades     int      `json:"totalTrades" yaml:"totalTrades" msgpack:"totalTrades"`
	MaxSingleDayROI float64  `json:"maxSingleDayROI" yaml:"maxSingleDayROI" msgpack:"maxSingleDayROI"`
	HasRiskySpikes  bool     `json:"hasRiskySpikes" yaml:"hasRiskySpikes" msgpack:"hasRiskySpikes"`
}

// NormalizationBounds holds the per-run min/max of each raw metric across the
// eligible wallets. It is computed once and shared read-only for the run.
type NormalizationBounds struct {
	MinROI      float64 `json:"minROI" yaml:"minROI" msgpack:"minROI"`
	MaxROI      float64 `json:"maxROI" yaml:"maxROI" msgpack:"maxROI"`
	MinSharpe   float64 `json:"minSharpe" yaml:"minSharpe" msgpack:"minSharpe"`
	MaxSharpe   float64 `json:"maxSharpe" yaml:"maxSharpe" msgpack:"maxSharpe"`
	MinDrawdown float64 `json:"minDrawdown" yaml:"minDrawdown" msgpack:"minDrawdown"`
	MaxDrawdown float64 `json:"maxDrawdown" yaml:"maxDrawdown" msgpack:"maxDrawdown"`
}

// NormalizedMetrics are a wallet's raw metrics rescaled to [0,1].
// NormalizedMaxDrawdown grows with raw drawdown; it is a penalty input.
type NormalizedMetrics struct {
	NormalizedROI         float64 `json:"normalizedRoi" yaml:"normalizedRoi" msgpack:"normalizedRoi"`
	NormalizedSharpe      float64 `json:"normalizedSharpe" yaml:"normalizedSharpe" msgpack:"normalizedSharpe"`
	NormalizedMaxDrawdown float64 `json:"normalizedMaxDrawdown" yaml:"normalizedMaxDrawdown" msgpack:"normalizedMaxDrawdown"`
}

// TrustScore is the engine's output record for one wallet.
// Rank and Tier stay nil until the cohort has been ranked.
type TrustScore struct {
	WalletAddress     string            `json:"walletAddress" yaml:"walletAddress" msgpack:"walletAddress"`
	TrustScore        float64           `json:"trustScore" yaml:"trustScore" msgpack:"trustScore"`
	Eligibility       EligibilityResult `json:"eligibility" yaml:"eligibility" msgpack:"eligibility"`
	NormalizedMetrics NormalizedMetrics `json:"normalizedMetrics" yaml:"normalizedMetrics" msgpack:"normalizedMetrics"`
	PerformanceScore  float64           `json:"performanceScore" yaml:"performanceScore" msgpack:"performanceScore"`
	RiskPenalty       float64           `json:"riskPenalty" yaml:"riskPenalty" msgpack:"riskPenalty"`
	Rank              *int              `json:"rank" yaml:"rank" msgpack:"rank"`
	Tier              *Tier             `json:"tier" yaml:"tier" msgpack:"tier"`

	// CohortIndex is the wallet's position in the scored input. It is not
	// serialised.
	CohortIndex int `json:"-" yaml:"-" msgpack:"-"`
}

// Ranked reports whether rank and tier have been assigned.
func (s TrustScore) Ranked() bool { return s.Rank != nil && s.Tier != nil }

// CohortStats summarises one scoring run.
type CohortStats struct {
	TotalWallets        int     `json:"totalWallets" yaml:"totalWallets" msgpack:"totalWallets"`
	EligibleWallets     int     `json:"eligibleWallets" yaml:"eligibleWallets" msgpack:"eligibleWallets"`
	DisqualifiedWallets int     `json:"disqualifiedWallets" yaml:"disqualifiedWallets" msgpack:"disqualifiedWallets"`
	AvgTrustScore       float64 `json:"avgTrustScore" yaml:"avgTrustScore" msgpack:"avgTrustScore"`
	TopScore            float64 `json:"topScore" yaml:"topScore" msgpack:"topScore"`
	MinROI              float64 `json:"minROI" yaml:"minROI" msgpack:"minROI"`
	MaxROI              float64 `json:"maxROI" yaml:"maxROI" msgpack:"maxROI"`
	MinSharpe           float64 `json:"minSharpe" yaml:"minSharpe" msgpack:"minSharpe"`
	MaxSharpe           float64 `json:"maxSharpe" yaml:"maxSharpe" msgpack:"maxSharpe"`
	MinDrawdown         float64 `json:"minDrawdown" yaml:"minDrawdown" msgpack:"minDrawdown"`
	MaxDrawdown         float64 `json:"maxDrawdown" yaml:"maxDrawdown" msgpack:"maxDrawdown"`
}

// Result is the output contract of one scoring run.
type Result struct {
	Scores      []TrustScore `json:"scores" yaml:"scores" msgpack:"scores"`
	CohortStats CohortStats  `json:"cohortStats" yaml:"cohortStats" msgpack:"cohortStats"`
}
