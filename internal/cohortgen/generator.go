// Package cohortgen produces synthetic wallet cohorts for demos, load tests
// and fixtures. With a fixed seed and end date the output is reproducible.
package cohortgen

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/internal/domain/scoring"
	"github.com/okian/trustscore/pkg/logger"
)

const (
	defaultWallets = 100

	minTradesPerWallet = 3
	maxTradesPerWallet = 8
	maxCalmDayROI      = 0.5 // |pnl/entry| per trade for non-spiky profiles
	minSpikeMultiple   = 6.0 // pnl/entry on the spike day: 600% and up
	spikeMultipleRange = 4.0
	minEntryUSD        = 100.0
	entryRangeUSD      = 9_900.0
)

// Profile is a performer archetype.
type Profile string

// Profiles. new, thin and spiky wallets each fail one eligibility rule.
const (
	ProfileElite    Profile = "elite"
	ProfileSteady   Profile = "steady"
	ProfileVolatile Profile = "volatile"
	ProfileNew      Profile = "new"
	ProfileThin     Profile = "thin"
	ProfileSpiky    Profile = "spiky"
)

type span struct{ lo, hi float64 }

type profileSpec struct {
	profile  Profile
	weight   int
	roi      span
	sharpe   span
	drawdown span
	trades   span
	days     span
	spike    bool
}

// specs are sampled in proportion to weight.
var specs = []profileSpec{
	{ProfileElite, 1, span{80, 200}, span{2, 3.5}, span{2, 10}, span{150, 400}, span{180, 365}, false},
	{ProfileSteady, 3, span{10, 60}, span{1, 2}, span{5, 15}, span{60, 200}, span{100, 300}, false},
	{ProfileVolatile, 2, span{-40, 120}, span{-0.5, 1.5}, span{20, 60}, span{50, 300}, span{90, 250}, false},
	{ProfileNew, 1, span{20, 150}, span{1, 3}, span{3, 20}, span{50, 150}, span{10, 80}, false},
	{ProfileThin, 1, span{5, 80}, span{0.5, 2.5}, span{3, 25}, span{5, 45}, span{90, 300}, false},
	{ProfileSpiky, 1, span{150, 600}, span{1.5, 4}, span{10, 40}, span{60, 250}, span{90, 300}, true},
}

func totalWeight() int {
	n := 0
	for _, s := range specs {
		n += s.weight
	}
	return n
}

// Generate builds a cohort according to cfg.
func Generate(ctx context.Context, cfg Config) ([]model.WalletMetrics, Stats, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63() //nolint:gosec // not security sensitive
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible fixtures

	logger.Get().Info(ctx, "generating cohort", logger.Int("wallets", cfg.Wallets), logger.Any("seed", seed))

	stats := Stats{Seed: seed, ByProfile: make(map[Profile]int, len(specs))}
	cohort := make([]model.WalletMetrics, 0, cfg.Wallets)
	weights := totalWeight()

	for i := 0; i < cfg.Wallets; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, fmt.Errorf("generate cohort: %w", err)
			}
		}
		spec := pick(rng, weights)
		w, err := generateWallet(rng, spec, cfg.Now)
		if err != nil {
			return nil, stats, fmt.Errorf("generate wallet %d: %w", i, err)
		}
		cohort = append(cohort, w)
		stats.ByProfile[spec.profile]++
	}

	stats.Generated = len(cohort)
	logger.Get().Info(ctx, "generated cohort", logger.Int("count", stats.Generated))
	return cohort, stats, nil
}

func pick(rng *rand.Rand, total int) profileSpec {
	n := rng.Intn(total)
	for _, s := range specs {
		if n < s.weight {
			return s
		}
		n -= s.weight
	}
	return specs[0]
}

func (s span) sample(rng *rand.Rand) float64 {
	return s.lo + rng.Float64()*(s.hi-s.lo)
}

func generateWallet(rng *rand.Rand, spec profileSpec, end int64) (model.WalletMetrics, error) {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return model.WalletMetrics{}, err
	}

	days := int64(spec.days.sample(rng))
	startDate := end - days*model.SecondsPerDay

	w := model.WalletMetrics{
		WalletAddress:     "0x" + strings.ReplaceAll(id.String(), "-", ""),
		NetROI:            scoring.Round2(spec.roi.sample(rng)),
		SharpeRatio:       scoring.Round2(spec.sharpe.sample(rng)),
		MaxDrawdown:       scoring.Round2(spec.drawdown.sample(rng)),
		TotalTrades:       int(spec.trades.sample(rng)),
		AnalysisStartDate: startDate,
		AnalysisEndDate:   end,
	}
	w.CompletedTrades = trades(rng, spec.spike, startDate, days)
	return w, nil
}

// trades samples a few closed trades, each on its own day. A spiky wallet gets
// one trade whose P&L is several times its entry value.
func trades(rng *rand.Rand, spike bool, start, days int64) []model.CompletedTrade {
	n := minTradesPerWallet + rng.Intn(maxTradesPerWallet-minTradesPerWallet+1)
	if int64(n) > days {
		n = int(max(days, 1))
	}

	out := make([]model.CompletedTrade, n)
	for i := range out {
		entry := scoring.Round2(minEntryUSD + rng.Float64()*entryRangeUSD)
		roi := (rng.Float64()*2 - 1) * maxCalmDayROI
		out[i] = model.CompletedTrade{
			// one trade per day, at midday
			ExitTimestamp:  start + int64(i)*model.SecondsPerDay + model.SecondsPerDay/2,
			RealizedPnlUSD: scoring.Round2(entry * roi),
			EntryValueUSD:  entry,
		}
	}
	if spike {
		k := rng.Intn(n)
		out[k].RealizedPnlUSD = scoring.Round2(out[k].EntryValueUSD * (minSpikeMultiple + rng.Float64()*spikeMultipleRange))
	}
	return out
}
