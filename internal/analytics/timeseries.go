package analytics

import (
	"time"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// BuildDailyAggregates reduces day groups into per-day summaries in
// chronological order. Absent P&L contributes 0 to the day's net; the
// per-day win rate counts only computable trades.
func BuildDailyAggregates(groups *DayGroups) []models.DailyAggregate {
	keys := groups.SortedKeys()
	daily := make([]models.DailyAggregate, 0, len(keys))

	for _, key := range keys {
		trades := groups.Trades(key)
		agg := models.DailyAggregate{Date: key, TradeCount: len(trades)}

		var completed, wins int
		for i := range trades {
			pnl, ok := PnL(&trades[i])
			if !ok {
				continue
			}
			agg.NetPnL += pnl
			completed++
			if pnl >= 0 {
				wins++
			}
		}
		if completed > 0 {
			agg.WinRate = float64(wins) / float64(completed) * 100
		}
		agg.Drawdown = intradayDrawdown(trades)

		daily = append(daily, agg)
	}
	return daily
}

// BuildEquityCurve walks the daily aggregates chronologically with a
// running balance. It is recomputed in full on every call; there is no
// persisted state to restart from.
func BuildEquityCurve(daily []models.DailyAggregate) []models.EquityPoint {
	curve := make([]models.EquityPoint, 0, len(daily))
	balance := 0.0
	for _, day := range daily {
		balance += day.NetPnL
		curve = append(curve, models.EquityPoint{
			Date:     day.Date,
			Balance:  balance,
			DailyPnL: day.NetPnL,
		})
	}
	return curve
}

// BuildDrawdownCurve derives the peak-relative drawdown series from the
// equity curve. The running peak is non-decreasing and every point is
// >= 0; days before the balance first turns positive report 0.
func BuildDrawdownCurve(curve []models.EquityPoint) ([]models.DrawdownPoint, float64) {
	series := make([]models.DrawdownPoint, 0, len(curve))
	peak := 0.0
	maxDrawdown := 0.0

	for _, point := range curve {
		if point.Balance > peak {
			peak = point.Balance
		}
		dd := 0.0
		if peak > 0 {
			dd = (peak - point.Balance) / peak * 100
		}
		if dd > maxDrawdown {
			maxDrawdown = dd
		}
		series = append(series, models.DrawdownPoint{Date: point.Date, Drawdown: dd})
	}
	return series, maxDrawdown
}

// intradayDrawdown is the largest peak-to-trough decline of the running
// realized P&L within one day, ordered by exit time.
func intradayDrawdown(trades []models.TradeRecord) float64 {
	ordered := sortByExit(trades)

	running := 0.0
	peak := 0.0
	worst := 0.0
	for i := range ordered {
		pnl, ok := PnL(&ordered[i])
		if !ok {
			continue
		}
		running += pnl
		if running > peak {
			peak = running
		}
		if dd := peak - running; dd > worst {
			worst = dd
		}
	}
	return worst
}

// HoldDuration returns the entry-to-exit duration of a trade. Trades
// missing either timestamp are excluded from duration metrics.
func HoldDuration(t *models.TradeRecord) (time.Duration, bool) {
	entry, parsedEntry := EntryMoment(t)
	exit, parsedExit := ExitMoment(t)
	if !parsedEntry || !parsedExit || exit.Before(entry) {
		return 0, false
	}
	return exit.Sub(entry), true
}

// averageHoldMinutes is the mean holding time across trades with both
// timestamps, in minutes.
func averageHoldMinutes(trades []models.TradeRecord) float64 {
	var total time.Duration
	var count int
	for i := range trades {
		if d, ok := HoldDuration(&trades[i]); ok {
			total += d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total.Minutes() / float64(count)
}
