package analytics

import (
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// segmentStreaks folds a sequence of outcomes into maximal runs. Each
// time the outcome changes the current segment closes and a new one of
// length 1 opens; the final in-progress segment is included. The sum of
// segment lengths always equals len(outcomes).
func segmentStreaks(outcomes []models.Outcome) []models.StreakSegment {
	if len(outcomes) == 0 {
		return nil
	}

	segments := make([]models.StreakSegment, 0, 4)
	current := models.StreakSegment{Outcome: outcomes[0], Length: 1}
	for _, o := range outcomes[1:] {
		if o == current.Outcome {
			current.Length++
			continue
		}
		segments = append(segments, current)
		current = models.StreakSegment{Outcome: o, Length: 1}
	}
	return append(segments, current)
}

// DailyPnLStreaks segments chronological days by the sign of their net
// P&L: a day is "profit" when its net is >= 0. This is the
// day-granularity streak view; keep it distinct from the trade-outcome
// view below.
func DailyPnLStreaks(daily []models.DailyAggregate) []models.StreakSegment {
	outcomes := make([]models.Outcome, 0, len(daily))
	for _, day := range daily {
		if day.NetPnL >= 0 {
			outcomes = append(outcomes, models.OutcomeProfit)
		} else {
			outcomes = append(outcomes, models.OutcomeLoss)
		}
	}
	return segmentStreaks(outcomes)
}

// TradeOutcomeStreaks segments chronologically ordered trades by the
// author-supplied outcome label. Trades without a label are skipped from
// this view only; the segment lengths sum to the number of labeled
// trades.
func TradeOutcomeStreaks(trades []models.TradeRecord) []models.StreakSegment {
	ordered := SortChronological(trades)
	outcomes := make([]models.Outcome, 0, len(ordered))
	for i := range ordered {
		if ordered[i].Outcome == "" {
			continue
		}
		outcomes = append(outcomes, ordered[i].Outcome)
	}
	return segmentStreaks(outcomes)
}
