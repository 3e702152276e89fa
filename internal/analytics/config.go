package analytics

// Config collects every tunable heuristic constant used by the engine.
// The dashboard widgets historically disagreed on some of these (stop-loss
// penalty weight 30 vs 15, overtrading threshold 2 vs 3 trades per day);
// the defaults below are the canonical values and every call site reads
// them from here.
type Config struct {
	// StopLossPenaltyWeight scales the consistency penalty for the share
	// of trades entered without a stop-loss. Canonical value 30, the
	// global (whole-collection) variant.
	StopLossPenaltyWeight float64

	// OvertradingThreshold is the number of trades per calendar day above
	// which the day counts as overtraded. Canonical value 3.
	OvertradingThreshold int

	// OvertradingPenaltyWeight scales the consistency penalty for the
	// share of overtraded days.
	OvertradingPenaltyWeight float64

	// OffHoursPenaltyWeight scales the consistency penalty for entries
	// outside the market-hours window.
	OffHoursPenaltyWeight float64

	// MarketOpen and MarketClose bound the regular session, "15:04" form.
	MarketOpen  string
	MarketClose string

	// TradingPeriodsPerYear is the Sharpe annualization assumption. It is
	// a fixed convention (~252 trading days), not derived from the data.
	TradingPeriodsPerYear float64

	// Position-size bucket limits, in units of quantity.
	SmallPositionMax  float64
	MediumPositionMax float64

	// ReportMaxEntries caps how many bucket lines the report formatter
	// emits per section before truncating.
	ReportMaxEntries int
}

// DefaultConfig returns the canonical heuristic constants.
func DefaultConfig() Config {
	return Config{
		StopLossPenaltyWeight:    30,
		OvertradingThreshold:     3,
		OvertradingPenaltyWeight: 25,
		OffHoursPenaltyWeight:    20,
		MarketOpen:               "09:15",
		MarketClose:              "15:30",
		TradingPeriodsPerYear:    252,
		SmallPositionMax:         10,
		MediumPositionMax:        50,
		ReportMaxEntries:         8,
	}
}
