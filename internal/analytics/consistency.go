package analytics

import (
	"math"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// ConsistencyScore is a 0-100 heuristic of trading discipline. A
// non-empty collection starts at 100 and is penalized for trades entered
// without a stop-loss, for days with more than the configured trade
// count, and for entries outside the market-hours window. An empty
// collection scores 0. The result is clamped to [0, 100] and rounded to
// one decimal.
func ConsistencyScore(trades []models.TradeRecord, groups *DayGroups, cfg Config) float64 {
	if len(trades) == 0 {
		return 0
	}

	score := 100.0
	score -= stopLossPenalty(trades, cfg)
	score -= overtradingPenalty(groups, cfg)
	score -= offHoursPenalty(groups, cfg)

	score = math.Max(0, math.Min(100, score))
	return math.Round(score*10) / 10
}

func stopLossPenalty(trades []models.TradeRecord, cfg Config) float64 {
	var withoutStop int
	for i := range trades {
		if trades[i].StopLoss == nil {
			withoutStop++
		}
	}
	return float64(withoutStop) / float64(len(trades)) * cfg.StopLossPenaltyWeight
}

func overtradingPenalty(groups *DayGroups, cfg Config) float64 {
	if groups.Len() == 0 {
		return 0
	}
	var overDays int
	for _, key := range groups.Keys() {
		if len(groups.Trades(key)) > cfg.OvertradingThreshold {
			overDays++
		}
	}
	return float64(overDays) / float64(groups.Len()) * cfg.OvertradingPenaltyWeight
}

// offHoursPenalty averages, across trading days, each day's share of
// entries outside the session window, scaled by the configured weight.
// Trades with no parseable entry clock do not count against the window.
func offHoursPenalty(groups *DayGroups, cfg Config) float64 {
	if groups.Len() == 0 {
		return 0
	}
	sessionOpen, okOpen := parseClock(cfg.MarketOpen)
	sessionClose, okClose := parseClock(cfg.MarketClose)
	if !okOpen || !okClose {
		return 0
	}

	var total float64
	for _, key := range groups.Keys() {
		trades := groups.Trades(key)
		var off int
		for i := range trades {
			clock, ok := EntryClock(&trades[i])
			if !ok {
				continue
			}
			if clock < sessionOpen || clock > sessionClose {
				off++
			}
		}
		total += float64(off) / float64(len(trades))
	}
	return total / float64(groups.Len()) * cfg.OffHoursPenaltyWeight
}
