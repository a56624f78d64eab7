package service

import (
	"time"

	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/internal/domain/scoring"
)

// Report wraps one engine result with run metadata. The engine result itself
// carries no ids or timestamps and is reproducible from the cohort alone.
type Report struct {
	RunID       string              `json:"runId" yaml:"runId" msgpack:"runId"`
	Source      string              `json:"source,omitempty" yaml:"source,omitempty" msgpack:"source,omitempty"`
	GeneratedAt time.Time           `json:"generatedAt" yaml:"generatedAt" msgpack:"generatedAt"`
	Algorithm   scoring.Algorithm   `json:"algorithm" yaml:"algorithm" msgpack:"algorithm"`
	Scores      []model.TrustScore  `json:"scores" yaml:"scores" msgpack:"scores"`
	CohortStats model.CohortStats   `json:"cohortStats" yaml:"cohortStats" msgpack:"cohortStats"`
	Audit       *scoring.Validation `json:"audit,omitempty" yaml:"audit,omitempty" msgpack:"audit,omitempty"`
}

// Result returns the engine output carried by the report.
func (r Report) Result() model.Result {
	return model.Result{Scores: r.Scores, CohortStats: r.CohortStats}
}
