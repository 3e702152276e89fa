package models

import "encoding/json"

// Derived analytics entities. All of these are rebuilt from the current
// TradeRecord collection on every invocation and never persisted.

// DailyAggregate summarizes one calendar day of trading.
type DailyAggregate struct {
	Date       string  `json:"date"`
	TradeCount int     `json:"trade_count"`
	NetPnL     float64 `json:"net_pnl"`
	WinRate    float64 `json:"win_rate"`
	Drawdown   float64 `json:"drawdown"`
}

// EquityPoint is one day on the cumulative equity curve.
type EquityPoint struct {
	Date     string  `json:"date"`
	Balance  float64 `json:"balance"`
	DailyPnL float64 `json:"daily_pnl"`
}

// DrawdownPoint is one day on the drawdown series, as a percent of the
// running peak balance.
type DrawdownPoint struct {
	Date     string  `json:"date"`
	Drawdown float64 `json:"drawdown"`
}

// StreakSegment is a maximal run of consecutive same-outcome items.
type StreakSegment struct {
	Outcome Outcome `json:"outcome"`
	Length  int     `json:"length"`
}

// CategoricalBucket holds aggregate stats for one group key.
type CategoricalBucket struct {
	Count    int     `json:"count"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	TotalPnL float64 `json:"total_pnl"`
	AvgPnL   float64 `json:"avg_pnl"`
	WinRate  float64 `json:"win_rate"`
}

// BucketMap is an ordered map of group key to bucket. Keys keep the order
// in which they were first seen in the input so that rendered breakdowns
// are deterministic.
type BucketMap struct {
	keys    []string
	buckets map[string]*CategoricalBucket
}

// NewBucketMap returns an empty BucketMap.
func NewBucketMap() *BucketMap {
	return &BucketMap{buckets: make(map[string]*CategoricalBucket)}
}

// Get returns the bucket for key, creating it on first use.
func (m *BucketMap) Get(key string) *CategoricalBucket {
	if b, ok := m.buckets[key]; ok {
		return b
	}
	b := &CategoricalBucket{}
	m.buckets[key] = b
	m.keys = append(m.keys, key)
	return b
}

// Lookup returns the bucket for key without creating it.
func (m *BucketMap) Lookup(key string) (*CategoricalBucket, bool) {
	b, ok := m.buckets[key]
	return b, ok
}

// Keys returns the group keys in first-seen order.
func (m *BucketMap) Keys() []string {
	return m.keys
}

// Len returns the number of groups.
func (m *BucketMap) Len() int {
	return len(m.keys)
}

// MarshalJSON renders the buckets as a plain JSON object.
func (m *BucketMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.buckets)
}

// SummaryMetrics is the flat scalar output of the engine.
type SummaryMetrics struct {
	TotalTrades      int     `json:"total_trades"`
	CompletedTrades  int     `json:"completed_trades"`
	WinningTrades    int     `json:"winning_trades"`
	LosingTrades     int     `json:"losing_trades"`
	WinRate          float64 `json:"win_rate"`
	TotalPnL         float64 `json:"total_pnl"`
	AvgTradePnL      float64 `json:"avg_trade_pnl"`
	AvgWin           float64 `json:"avg_win"`
	AvgLoss          float64 `json:"avg_loss"`
	LargestWin       float64 `json:"largest_win"`
	LargestLoss      float64 `json:"largest_loss"`
	ProfitFactor     float64 `json:"profit_factor"`
	Expectancy       float64 `json:"expectancy"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	ConsistencyScore float64 `json:"consistency_score"`
	AvgHoldMinutes   float64 `json:"avg_hold_minutes"`
}

// AnalysisResult is the full output of one engine invocation.
type AnalysisResult struct {
	Summary SummaryMetrics `json:"summary"`

	Daily         []DailyAggregate `json:"daily"`
	EquityCurve   []EquityPoint    `json:"equity_curve"`
	DrawdownCurve []DrawdownPoint  `json:"drawdown_curve"`

	// Two distinct streak views: day-granularity by net P&L sign and
	// trade-granularity by the author-supplied outcome label.
	DailyPnLStreaks     []StreakSegment `json:"daily_pnl_streaks"`
	TradeOutcomeStreaks []StreakSegment `json:"trade_outcome_streaks"`

	ByStrategy        *BucketMap `json:"by_strategy"`
	ByMarketCondition *BucketMap `json:"by_market_condition"`
	ByEntryEmotion    *BucketMap `json:"by_entry_emotion"`
	ByExitEmotion     *BucketMap `json:"by_exit_emotion"`
	ByExitReason      *BucketMap `json:"by_exit_reason"`
	ByPositionSize    *BucketMap `json:"by_position_size"`
	ByHour            *BucketMap `json:"by_hour"`
}
