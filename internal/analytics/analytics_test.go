package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

func closedTrade(id string, entry, exit, qty float64, opts ...func(*models.TradeRecord)) models.TradeRecord {
	t := models.TradeRecord{
		ID:         id,
		EntryPrice: entry,
		ExitPrice:  models.Float(exit),
		Quantity:   models.Float(qty),
		Direction:  models.DirectionLong,
		Timestamp:  time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withEntryTime(s string) func(*models.TradeRecord) {
	return func(t *models.TradeRecord) { t.EntryTime = s }
}

func withExitTime(s string) func(*models.TradeRecord) {
	return func(t *models.TradeRecord) { t.ExitTime = s }
}

func withOutcome(o models.Outcome) func(*models.TradeRecord) {
	return func(t *models.TradeRecord) { t.Outcome = o }
}

func withStrategy(s string) func(*models.TradeRecord) {
	return func(t *models.TradeRecord) { t.Strategy = s }
}

func TestAnalyzeTwoWinningLongTrades(t *testing.T) {
	engine := New(DefaultConfig())
	trades := []models.TradeRecord{
		closedTrade("t1", 100, 110, 10, withEntryTime("2026-01-05 09:30")),
		closedTrade("t2", 100, 110, 10, withEntryTime("2026-01-05 11:00")),
	}

	res := engine.Analyze(trades)
	s := res.Summary

	if s.TotalTrades != 2 || s.CompletedTrades != 2 {
		t.Fatalf("trade counts = %d/%d, want 2/2", s.TotalTrades, s.CompletedTrades)
	}
	if s.TotalPnL != 200 {
		t.Errorf("TotalPnL = %v, want 200", s.TotalPnL)
	}
	if s.WinRate != 100 {
		t.Errorf("WinRate = %v, want 100", s.WinRate)
	}
	if !math.IsInf(s.ProfitFactor, 1) {
		t.Errorf("ProfitFactor = %v, want +Inf with no losing trades", s.ProfitFactor)
	}

	if len(res.Daily) != 1 {
		t.Fatalf("daily rows = %d, want 1", len(res.Daily))
	}
	day := res.Daily[0]
	if day.Date != "2026-01-05" {
		t.Errorf("daily date = %q, want 2026-01-05", day.Date)
	}
	if day.TradeCount != 2 || day.NetPnL != 200 {
		t.Errorf("daily = %d trades net %v, want 2 trades net 200", day.TradeCount, day.NetPnL)
	}
}

func TestAnalyzeShortTradeSign(t *testing.T) {
	engine := New(DefaultConfig())
	short := closedTrade("s1", 100, 90, 5)
	short.Direction = models.DirectionShort

	res := engine.Analyze([]models.TradeRecord{short})
	if res.Summary.TotalPnL != 50 {
		t.Errorf("short 100->90 qty 5: TotalPnL = %v, want +50", res.Summary.TotalPnL)
	}

	long := closedTrade("l1", 100, 90, 5)
	res = engine.Analyze([]models.TradeRecord{long})
	if res.Summary.TotalPnL != -50 {
		t.Errorf("long 100->90 qty 5: TotalPnL = %v, want -50", res.Summary.TotalPnL)
	}
}

func TestAnalyzeOutcomeStreaks(t *testing.T) {
	engine := New(DefaultConfig())
	trades := []models.TradeRecord{
		closedTrade("t1", 100, 110, 1, withEntryTime("2026-01-05 09:30"), withOutcome(models.OutcomeProfit)),
		closedTrade("t2", 100, 105, 1, withEntryTime("2026-01-05 10:30"), withOutcome(models.OutcomeProfit)),
		closedTrade("t3", 100, 95, 1, withEntryTime("2026-01-05 11:30"), withOutcome(models.OutcomeLoss)),
	}

	res := engine.Analyze(trades)
	streaks := res.TradeOutcomeStreaks
	if len(streaks) != 2 {
		t.Fatalf("streak segments = %d, want 2", len(streaks))
	}
	if streaks[0].Outcome != models.OutcomeProfit || streaks[0].Length != 2 {
		t.Errorf("first segment = %+v, want profit x2", streaks[0])
	}
	if streaks[1].Outcome != models.OutcomeLoss || streaks[1].Length != 1 {
		t.Errorf("second segment = %+v, want loss x1", streaks[1])
	}
}

func TestAnalyzeOpenPositionExcludedFromWinRate(t *testing.T) {
	engine := New(DefaultConfig())
	open := models.TradeRecord{
		ID:         "open1",
		EntryPrice: 100,
		Quantity:   models.Float(10),
		Direction:  models.DirectionLong,
		Timestamp:  time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	trades := []models.TradeRecord{
		closedTrade("t1", 100, 110, 10),
		open,
	}

	res := engine.Analyze(trades)
	s := res.Summary
	if s.TotalTrades != 2 {
		t.Errorf("TotalTrades = %d, want 2", s.TotalTrades)
	}
	if s.CompletedTrades != 1 {
		t.Errorf("CompletedTrades = %d, want 1", s.CompletedTrades)
	}
	if s.WinRate != 100 {
		t.Errorf("WinRate = %v, want 100 over the single completed trade", s.WinRate)
	}
	if s.TotalPnL != 100 {
		t.Errorf("TotalPnL = %v, want 100, open trade contributes 0", s.TotalPnL)
	}
}

func TestAnalyzeEmptyCollection(t *testing.T) {
	engine := New(DefaultConfig())
	res := engine.Analyze(nil)

	s := res.Summary
	if s.TotalTrades != 0 || s.TotalPnL != 0 || s.WinRate != 0 {
		t.Errorf("summary not zeroed: %+v", s)
	}
	if s.ProfitFactor != 0 {
		t.Errorf("ProfitFactor = %v, want 0 with no profits", s.ProfitFactor)
	}
	if s.ConsistencyScore != 0 {
		t.Errorf("ConsistencyScore = %v, want 0 for empty collection", s.ConsistencyScore)
	}
	if len(res.Daily) != 0 || len(res.EquityCurve) != 0 {
		t.Errorf("series not empty: %d daily, %d equity", len(res.Daily), len(res.EquityCurve))
	}
	if res.ByStrategy.Len() != 0 {
		t.Errorf("ByStrategy has %d groups, want 0", res.ByStrategy.Len())
	}
}

func TestAnalyzeInputOrderIrrelevant(t *testing.T) {
	engine := New(DefaultConfig())
	trades := []models.TradeRecord{
		closedTrade("t1", 100, 110, 1, withEntryTime("2026-01-07 10:00")),
		closedTrade("t2", 100, 90, 1, withEntryTime("2026-01-05 10:00")),
		closedTrade("t3", 100, 105, 1, withEntryTime("2026-01-06 10:00")),
	}
	reversed := []models.TradeRecord{trades[2], trades[0], trades[1]}

	a := engine.Analyze(trades)
	b := engine.Analyze(reversed)

	if len(a.Daily) != 3 || len(b.Daily) != 3 {
		t.Fatalf("daily rows = %d vs %d, want 3", len(a.Daily), len(b.Daily))
	}
	for i := range a.Daily {
		if a.Daily[i] != b.Daily[i] {
			t.Errorf("daily[%d] differs by input order: %+v vs %+v", i, a.Daily[i], b.Daily[i])
		}
	}
	if a.Summary.TotalPnL != b.Summary.TotalPnL {
		t.Errorf("TotalPnL differs by input order: %v vs %v", a.Summary.TotalPnL, b.Summary.TotalPnL)
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	engine := New(DefaultConfig())
	trades := []models.TradeRecord{
		{ID: "t1", EntryPrice: 100, Timestamp: time.Now()},
	}
	engine.Analyze(trades)
	if trades[0].Direction != "" {
		t.Errorf("input mutated: direction set to %q", trades[0].Direction)
	}
}

func TestAnalyzeNonFiniteFieldsScrubbed(t *testing.T) {
	engine := New(DefaultConfig())
	trade := closedTrade("t1", 100, math.NaN(), 10)

	res := engine.Analyze([]models.TradeRecord{trade})
	s := res.Summary
	if s.CompletedTrades != 0 {
		t.Errorf("NaN exit price still counted as completed: %d", s.CompletedTrades)
	}
	if s.TotalPnL != 0 {
		t.Errorf("TotalPnL = %v, want 0 after scrubbing NaN exit", s.TotalPnL)
	}
}

func TestBucketsByStrategy(t *testing.T) {
	engine := New(DefaultConfig())
	trades := []models.TradeRecord{
		closedTrade("t1", 100, 110, 1, withStrategy("breakout")),
		closedTrade("t2", 100, 95, 1, withStrategy("breakout")),
		closedTrade("t3", 100, 102, 1),
	}

	res := engine.Analyze(trades)
	buckets := res.ByStrategy

	b, ok := buckets.Lookup("breakout")
	if !ok {
		t.Fatal("breakout bucket missing")
	}
	if b.Count != 2 || b.Wins != 1 || b.Losses != 1 {
		t.Errorf("breakout bucket = %+v, want 2 trades, 1W/1L", b)
	}
	if b.TotalPnL != 5 {
		t.Errorf("breakout TotalPnL = %v, want 5", b.TotalPnL)
	}

	if _, ok := buckets.Lookup(Unspecified); !ok {
		t.Error("trade without strategy should land in the Unspecified bucket")
	}
}

func TestBucketsByPositionSize(t *testing.T) {
	cfg := DefaultConfig()
	trades := []models.TradeRecord{
		closedTrade("s", 100, 101, 5),
		closedTrade("m", 100, 101, 25),
		closedTrade("l", 100, 101, 100),
	}

	buckets := ByPositionSize(Normalize(trades), cfg)
	for _, key := range []string{"Small", "Medium", "Large"} {
		b, ok := buckets.Lookup(key)
		if !ok || b.Count != 1 {
			t.Errorf("bucket %s: got %+v, want exactly 1 trade", key, b)
		}
	}
}

func TestConsistencyScorePenalties(t *testing.T) {
	cfg := DefaultConfig()

	disciplined := closedTrade("d", 100, 110, 1, withEntryTime("2026-01-05 10:00"))
	disciplined.StopLoss = models.Float(98)
	groups := GroupByDay([]models.TradeRecord{disciplined})
	if got := ConsistencyScore([]models.TradeRecord{disciplined}, groups, cfg); got != 100 {
		t.Errorf("disciplined trade score = %v, want 100", got)
	}

	// No stop-loss on the only trade costs the full stop-loss weight.
	sloppy := closedTrade("s", 100, 110, 1, withEntryTime("2026-01-05 10:00"))
	groups = GroupByDay([]models.TradeRecord{sloppy})
	if got := ConsistencyScore([]models.TradeRecord{sloppy}, groups, cfg); got != 100-cfg.StopLossPenaltyWeight {
		t.Errorf("no-stop-loss score = %v, want %v", got, 100-cfg.StopLossPenaltyWeight)
	}

	// Pre-market entry on the only trade costs the full off-hours weight.
	early := closedTrade("e", 100, 110, 1, withEntryTime("2026-01-05 08:00"))
	early.StopLoss = models.Float(98)
	groups = GroupByDay([]models.TradeRecord{early})
	if got := ConsistencyScore([]models.TradeRecord{early}, groups, cfg); got != 100-cfg.OffHoursPenaltyWeight {
		t.Errorf("off-hours score = %v, want %v", got, 100-cfg.OffHoursPenaltyWeight)
	}
}

func TestHoldDuration(t *testing.T) {
	trade := closedTrade("t1", 100, 110, 1,
		withEntryTime("2026-01-05 09:30"), withExitTime("2026-01-05 11:00"))

	d, ok := HoldDuration(&trade)
	if !ok {
		t.Fatal("expected a computable hold duration")
	}
	if d != 90*time.Minute {
		t.Errorf("HoldDuration = %v, want 90m", d)
	}

	noExit := closedTrade("t2", 100, 110, 1, withEntryTime("2026-01-05 09:30"))
	if _, ok := HoldDuration(&noExit); ok {
		t.Error("trade without exit time should be excluded from durations")
	}
}

func TestIntradayDrawdownOrdersByExitTime(t *testing.T) {
	engine := New(DefaultConfig())

	// Journaled out of exit order: the two losses exit back to back
	// (10:00, 11:00) before the win (12:00). Walked in exit order the
	// running realized P&L bottoms at -100; walked in input order the
	// win separates the losses and the worst decline is only 50.
	trades := []models.TradeRecord{
		closedTrade("loss1", 100, 50, 1,
			withEntryTime("2026-01-05 09:20"), withExitTime("2026-01-05 10:00")),
		closedTrade("win", 100, 200, 1,
			withEntryTime("2026-01-05 09:30"), withExitTime("2026-01-05 12:00")),
		closedTrade("loss2", 100, 50, 1,
			withEntryTime("2026-01-05 09:40"), withExitTime("2026-01-05 11:00")),
	}

	res := engine.Analyze(trades)
	if len(res.Daily) != 1 {
		t.Fatalf("daily rows = %d, want 1", len(res.Daily))
	}
	if got := res.Daily[0].Drawdown; got != 100 {
		t.Errorf("intraday drawdown = %v, want 100 from the exit-time sequence", got)
	}
}

func TestDrawdownCurve(t *testing.T) {
	daily := []models.DailyAggregate{
		{Date: "2026-01-05", NetPnL: 100},
		{Date: "2026-01-06", NetPnL: -50},
		{Date: "2026-01-07", NetPnL: 75},
	}
	curve := BuildEquityCurve(daily)
	series, maxDD := BuildDrawdownCurve(curve)

	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}
	if series[0].Drawdown != 0 {
		t.Errorf("day 1 drawdown = %v, want 0 at the peak", series[0].Drawdown)
	}
	if series[1].Drawdown != 50 {
		t.Errorf("day 2 drawdown = %v, want 50%% off the 100 peak", series[1].Drawdown)
	}
	if maxDD != 50 {
		t.Errorf("max drawdown = %v, want 50", maxDD)
	}
}

func TestSharpeRatioFlatSeries(t *testing.T) {
	if got := sharpeRatio([]float64{100, 100, 100}, 252); got != 0 {
		t.Errorf("flat return series Sharpe = %v, want 0", got)
	}
	if got := sharpeRatio([]float64{100}, 252); got != 0 {
		t.Errorf("single-day Sharpe = %v, want 0", got)
	}
}

func TestProfitFactorEdges(t *testing.T) {
	if got := profitFactor(0, 0); got != 0 {
		t.Errorf("profitFactor(0,0) = %v, want 0", got)
	}
	if got := profitFactor(100, 0); !math.IsInf(got, 1) {
		t.Errorf("profitFactor(100,0) = %v, want +Inf", got)
	}
	if got := profitFactor(100, 50); got != 2 {
		t.Errorf("profitFactor(100,50) = %v, want 2", got)
	}
}
