package analytics

import (
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// Unspecified is the neutral group key for trades missing a categorical
// field. Missing data never raises; it aggregates under this key.
const Unspecified = "Unspecified"

// KeyFunc extracts the group key for a trade. Returning false excludes
// the trade from that breakdown only (used by clock-sensitive extractors
// when the entry time is unparseable).
type KeyFunc func(t *models.TradeRecord) (string, bool)

// AggregateBy is the single generic reducer behind every categorical
// breakdown. Wins and losses count only trades with a computable P&L;
// trades without one still count toward the group's total count. Group
// keys keep first-seen order.
func AggregateBy(trades []models.TradeRecord, key KeyFunc) *models.BucketMap {
	buckets := models.NewBucketMap()

	for i := range trades {
		k, ok := key(&trades[i])
		if !ok {
			continue
		}
		b := buckets.Get(k)
		b.Count++
		pnl, computable := PnL(&trades[i])
		if !computable {
			continue
		}
		b.TotalPnL += pnl
		if pnl >= 0 {
			b.Wins++
		} else {
			b.Losses++
		}
	}

	for _, k := range buckets.Keys() {
		b, _ := buckets.Lookup(k)
		if b.Count > 0 {
			b.AvgPnL = b.TotalPnL / float64(b.Count)
			b.WinRate = float64(b.Wins) / float64(b.Count) * 100
		}
	}
	return buckets
}

func orKey(v string) (string, bool) {
	if v == "" {
		return Unspecified, true
	}
	return v, true
}

// ByStrategy groups trades by strategy name.
func ByStrategy(trades []models.TradeRecord) *models.BucketMap {
	return AggregateBy(trades, func(t *models.TradeRecord) (string, bool) {
		return orKey(t.Strategy)
	})
}

// ByMarketCondition groups trades by the journaled market condition.
func ByMarketCondition(trades []models.TradeRecord) *models.BucketMap {
	return AggregateBy(trades, func(t *models.TradeRecord) (string, bool) {
		return orKey(t.MarketCondition)
	})
}

// ByEntryEmotion groups trades by the emotion recorded at entry.
func ByEntryEmotion(trades []models.TradeRecord) *models.BucketMap {
	return AggregateBy(trades, func(t *models.TradeRecord) (string, bool) {
		return orKey(t.EntryEmotion)
	})
}

// ByExitEmotion groups trades by the emotion recorded at exit.
func ByExitEmotion(trades []models.TradeRecord) *models.BucketMap {
	return AggregateBy(trades, func(t *models.TradeRecord) (string, bool) {
		return orKey(t.ExitEmotion)
	})
}

// ByExitReason groups trades by exit reason.
func ByExitReason(trades []models.TradeRecord) *models.BucketMap {
	return AggregateBy(trades, func(t *models.TradeRecord) (string, bool) {
		return orKey(t.ExitReason)
	})
}

// ByHour groups trades by entry hour of day. Trades with no parseable
// entry clock are excluded from this breakdown, not from others.
func ByHour(trades []models.TradeRecord) *models.BucketMap {
	return AggregateBy(trades, func(t *models.TradeRecord) (string, bool) {
		return HourKey(t)
	})
}

// ByPositionSize groups trades into small/medium/large quantity buckets
// using the configured thresholds. Trades without a quantity group under
// Unspecified.
func ByPositionSize(trades []models.TradeRecord, cfg Config) *models.BucketMap {
	return AggregateBy(trades, func(t *models.TradeRecord) (string, bool) {
		if t.Quantity == nil {
			return Unspecified, true
		}
		switch q := *t.Quantity; {
		case q <= cfg.SmallPositionMax:
			return "Small", true
		case q <= cfg.MediumPositionMax:
			return "Medium", true
		default:
			return "Large", true
		}
	})
}
