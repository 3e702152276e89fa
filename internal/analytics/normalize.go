package analytics

import (
	"math"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// Normalize returns a copy of trades in the canonical shape the rest of
// the pipeline can trust: the direction defaults to long when absent and
// non-finite numeric fields are scrubbed to absent, so downstream code
// can tell "zero profit" from "unknown". No record is dropped here;
// filtering happens per metric because different metrics have different
// minimum-field requirements.
func Normalize(trades []models.TradeRecord) []models.TradeRecord {
	out := make([]models.TradeRecord, len(trades))
	copy(out, trades)

	for i := range out {
		t := &out[i]

		if t.Direction != models.DirectionShort {
			t.Direction = models.DirectionLong
		}
		if !isFinite(t.EntryPrice) {
			t.EntryPrice = 0
		}
		t.ExitPrice = finiteOrNil(t.ExitPrice)
		t.Quantity = finiteOrNil(t.Quantity)
		t.StopLoss = finiteOrNil(t.StopLoss)
		t.PlannedTarget = finiteOrNil(t.PlannedTarget)
		t.VIX = finiteOrNil(t.VIX)
		t.SatisfactionScore = finiteOrNil(t.SatisfactionScore)
	}

	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrNil(v *float64) *float64 {
	if v == nil || !isFinite(*v) {
		return nil
	}
	return v
}
