// Package analytics derives performance and behavioral metrics from a
// collection of journaled trades. The engine is pure: it performs no
// I/O, keeps no state between calls, and allocates fresh derived
// entities on every invocation, so independent calls are safe to run
// concurrently. Callers hand it an already-fetched trade collection;
// it never reaches into storage itself.
package analytics

import (
	"github.com/rs/zerolog"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// Engine runs the analytics pipeline with a fixed heuristic Config. The
// logger only reports malformed timestamps; the computation itself is
// side-effect-free.
type Engine struct {
	cfg Config
	log zerolog.Logger
}

// New returns an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, log: zerolog.Nop()}
}

// WithLogger returns a copy of the engine that logs malformed
// date/time strings through l.
func (e *Engine) WithLogger(l zerolog.Logger) *Engine {
	return &Engine{cfg: e.cfg, log: l}
}

// Config returns the engine's heuristic configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze runs the full pipeline over the given trades. The input may
// arrive in any order; the engine sorts internally wherever chronology
// matters. An empty collection yields zeroed summary metrics, empty
// bucket maps and empty series, never an error.
func (e *Engine) Analyze(trades []models.TradeRecord) *models.AnalysisResult {
	normalized := Normalize(trades)
	e.logMalformedTimes(normalized)

	groups := GroupByDay(normalized)
	daily := BuildDailyAggregates(groups)
	equity := BuildEquityCurve(daily)
	drawdown, maxDrawdown := BuildDrawdownCurve(equity)

	summary := buildSummary(normalized, daily, e.cfg)
	summary.MaxDrawdown = maxDrawdown
	summary.ConsistencyScore = ConsistencyScore(normalized, groups, e.cfg)

	return &models.AnalysisResult{
		Summary:             summary,
		Daily:               daily,
		EquityCurve:         equity,
		DrawdownCurve:       drawdown,
		DailyPnLStreaks:     DailyPnLStreaks(daily),
		TradeOutcomeStreaks: TradeOutcomeStreaks(normalized),
		ByStrategy:          ByStrategy(normalized),
		ByMarketCondition:   ByMarketCondition(normalized),
		ByEntryEmotion:      ByEntryEmotion(normalized),
		ByExitEmotion:       ByExitEmotion(normalized),
		ByExitReason:        ByExitReason(normalized),
		ByPositionSize:      ByPositionSize(normalized, e.cfg),
		ByHour:              ByHour(normalized),
	}
}

// logMalformedTimes reports entry/exit strings that are present but
// unparseable. The offending trade still participates in every metric
// that does not need the bad field.
func (e *Engine) logMalformedTimes(trades []models.TradeRecord) {
	for i := range trades {
		t := &trades[i]
		if t.EntryTime != "" {
			if _, parsed := EntryMoment(t); !parsed {
				e.log.Warn().
					Str("trade_id", t.ID).
					Str("entry_time", t.EntryTime).
					Msg("Unparseable entry time, falling back to record timestamp")
			}
		}
		if t.ExitTime != "" {
			if _, ok := ExitMoment(t); !ok {
				e.log.Warn().
					Str("trade_id", t.ID).
					Str("exit_time", t.ExitTime).
					Msg("Unparseable exit time, trade excluded from duration metrics")
			}
		}
	}
}
