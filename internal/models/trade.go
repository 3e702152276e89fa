// Package models defines the trade journal data model.
package models

import "time"

// Direction is the side of a trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Outcome is the trader's own label for how a trade went. It is recorded
// at journaling time and is not derived from prices; it may disagree with
// the sign of the computed P&L and that is not an error.
type Outcome string

const (
	OutcomeProfit    Outcome = "profit"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakeven Outcome = "breakeven"
)

// TradeRecord is a single journaled trade as persisted by the CRUD layer.
// Optional numeric fields are pointers so that "unknown" stays distinct
// from zero. The analytics engine treats records as read-only.
type TradeRecord struct {
	ID string `csv:"id" json:"id"`

	// Pricing and sizing. ExitPrice absent means the position is open.
	EntryPrice float64  `csv:"entry_price" json:"entry_price"`
	ExitPrice  *float64 `csv:"exit_price" json:"exit_price,omitempty"`
	Quantity   *float64 `csv:"quantity" json:"quantity,omitempty"`

	Direction Direction `csv:"trade_direction" json:"trade_direction"`

	// Classification, all optional free-form.
	Strategy        string `csv:"strategy" json:"strategy,omitempty"`
	MarketCondition string `csv:"market_condition" json:"market_condition,omitempty"`
	Timeframe       string `csv:"timeframe" json:"timeframe,omitempty"`
	ExitReason      string `csv:"exit_reason" json:"exit_reason,omitempty"`
	OptionType      string `csv:"option_type" json:"option_type,omitempty"`

	// Psychology.
	EntryEmotion      string   `csv:"entry_emotion" json:"entry_emotion,omitempty"`
	ExitEmotion       string   `csv:"exit_emotion" json:"exit_emotion,omitempty"`
	ConfidenceLevel   *int     `csv:"confidence_level" json:"confidence_level,omitempty"`
	IsImpulsive       *bool    `csv:"is_impulsive" json:"is_impulsive,omitempty"`
	PlanDeviation     *bool    `csv:"plan_deviation" json:"plan_deviation,omitempty"`
	SatisfactionScore *float64 `csv:"satisfaction_score" json:"satisfaction_score,omitempty"`

	// Timing. The string fields come from the entry form and may be empty
	// or unparseable; Timestamp is the record creation time and is always
	// set, serving as the fallback for date grouping.
	EntryTime string    `csv:"entry_time" json:"entry_time,omitempty"`
	EntryDate string    `csv:"entry_date" json:"entry_date,omitempty"`
	ExitTime  string    `csv:"exit_time" json:"exit_time,omitempty"`
	ExitDate  string    `csv:"exit_date" json:"exit_date,omitempty"`
	Timestamp time.Time `csv:"-" json:"timestamp"`

	// Risk.
	StopLoss      *float64 `csv:"stop_loss" json:"stop_loss,omitempty"`
	PlannedTarget *float64 `csv:"planned_target" json:"planned_target,omitempty"`
	VIX           *float64 `csv:"vix" json:"vix,omitempty"`

	Outcome Outcome `csv:"outcome" json:"outcome,omitempty"`
	Notes   string  `csv:"notes" json:"notes,omitempty"`
}

// HasExit reports whether the trade has a recorded exit price.
func (t *TradeRecord) HasExit() bool {
	return t.ExitPrice != nil
}

// IsShort reports whether the trade is a short position.
func (t *TradeRecord) IsShort() bool {
	return t.Direction == DirectionShort
}

// Float returns a pointer to v. Convenience for building records.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
