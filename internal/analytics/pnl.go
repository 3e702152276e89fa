package analytics

import (
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// PnL computes the signed profit or loss of a single trade. It is the
// single source of truth for direction handling: every consumer (daily
// aggregation, categorical buckets, summary statistics) must route
// through it so no two metrics disagree on short-trade signs.
//
// The second return is false when the trade is not computable, i.e. when
// exit price or quantity is missing (an open or partially journaled
// position). Callers decide whether that means "contributes 0" or
// "excluded" for their metric; it never means NaN.
func PnL(t *models.TradeRecord) (float64, bool) {
	if t.ExitPrice == nil || t.Quantity == nil {
		return 0, false
	}

	pnl := (*t.ExitPrice - t.EntryPrice) * *t.Quantity
	if t.IsShort() {
		pnl = -pnl
	}
	return pnl, true
}

// PnLOrZero is PnL with absent treated as 0, for aggregation paths.
func PnLOrZero(t *models.TradeRecord) float64 {
	pnl, _ := PnL(t)
	return pnl
}
