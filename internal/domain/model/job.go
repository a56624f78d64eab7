package model

// Job is one cohort submitted for asynchronous scoring.
type Job struct {
	ID     string          // run id, also used in logs and output names
	Source string          // where the cohort came from, e.g. a file path
	Cohort []WalletMetrics // wallets to score together
}
