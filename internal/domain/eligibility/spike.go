package eligibility

import (
	"math"

	"github.com/okian/trustscore/internal/domain/model"
)

type dayTotals struct {
	pnl   float64
	entry float64
}

// dayKey returns the UTC calendar day of an epoch-second timestamp as a day
// number since the epoch. Floor division keeps pre-epoch values on the right day.
func dayKey(ts int64) int64 {
	d := ts / model.SecondsPerDay
	if ts%model.SecondsPerDay < 0 {
		d--
	}
	return d
}

// MaxSingleDayROI returns the largest absolute single-day ROI, in percent,
// across the UTC days the trades closed on. Days whose aggregate entry value is
// not positive are skipped. It returns 0 when there is nothing to measure.
func MaxSingleDayROI(trades []model.CompletedTrade) float64 {
	if len(trades) == 0 {
		return 0
	}

	days := make(map[int64]*dayTotals)
	for _, t := range trades {
		k := dayKey(t.ExitTimestamp)
		d, ok := days[k]
		if !ok {
			d = &dayTotals{}
			days[k] = d
		}
		d.pnl += t.RealizedPnlUSD
		d.entry += t.EntryValueUSD
	}

	maxROI := 0.0
	for _, d := range days {
		if d.entry <= 0 {
			continue
		}
		roi := math.Abs(d.pnl/d.entry) * 100
		if roi > maxROI {
			maxROI = roi
		}
	}
	return maxROI
}
