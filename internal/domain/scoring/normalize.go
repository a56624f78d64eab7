package scoring

import (
	"math"

	"github.com/okian/trustscore/internal/domain/model"
)

// Normalize rescales w's raw metrics to [0,1] against the run's bounds.
// Every metric maps "larger raw value" to "larger normalized value";
// drawdown is turned into a penalty only by the formula.
func Normalize(w model.WalletMetrics, b Bounds) model.NormalizedMetrics {
	return model.NormalizedMetrics{
		NormalizedROI:         rescale(w.NetROI, b.MinROI, b.MaxROI),
		NormalizedSharpe:      rescale(w.SharpeRatio, b.MinSharpe, b.MaxSharpe),
		NormalizedMaxDrawdown: rescale(w.MaxDrawdown, b.MinDrawdown, b.MaxDrawdown),
	}
}

func rescale(x, lo, hi float64) float64 {
	if hi <= lo {
		return degenerateNormalized
	}
	if span := hi - lo; !math.IsInf(span, 0) {
		return clamp01((x - lo) / span)
	}
	// The span of two finite values can exceed MaxFloat64; halves cannot.
	return clamp01((x/2 - lo/2) / (hi/2 - lo/2))
}

func clamp01(x float64) float64 {
	switch {
	case x < 0, math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
