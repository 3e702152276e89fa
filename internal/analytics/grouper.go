package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// DayKeyLayout is the canonical calendar-date key shared by every
// component that groups by day. Deriving the key in exactly one place
// keeps two metrics from silently filing the same trade under different
// days.
const DayKeyLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
}

// EntryMoment resolves the canonical moment of a trade: the parsed entry
// time, else the entry date (optionally combined with a bare clock entry
// time), else the record creation timestamp. The second return is false
// when it fell back to the timestamp.
func EntryMoment(t *models.TradeRecord) (time.Time, bool) {
	if t.EntryTime != "" {
		for _, layout := range dateTimeLayouts {
			if tm, err := time.Parse(layout, t.EntryTime); err == nil {
				return tm, true
			}
		}
		// A bare clock plus a separate entry date.
		if t.EntryDate != "" {
			if clock, ok := parseClock(t.EntryTime); ok {
				for _, layout := range dateLayouts {
					if d, err := time.Parse(layout, t.EntryDate); err == nil {
						return d.Add(clock), true
					}
				}
			}
		}
	}
	if t.EntryDate != "" {
		for _, layout := range dateLayouts {
			if tm, err := time.Parse(layout, t.EntryDate); err == nil {
				return tm, true
			}
		}
	}
	return t.Timestamp, false
}

// ExitMoment resolves the exit moment of a trade from its exit time/date
// strings. The second return is false when no exit moment is parseable.
func ExitMoment(t *models.TradeRecord) (time.Time, bool) {
	if t.ExitTime != "" {
		for _, layout := range dateTimeLayouts {
			if tm, err := time.Parse(layout, t.ExitTime); err == nil {
				return tm, true
			}
		}
		if t.ExitDate != "" {
			if clock, ok := parseClock(t.ExitTime); ok {
				for _, layout := range dateLayouts {
					if d, err := time.Parse(layout, t.ExitDate); err == nil {
						return d.Add(clock), true
					}
				}
			}
		}
	}
	if t.ExitDate != "" {
		for _, layout := range dateLayouts {
			if tm, err := time.Parse(layout, t.ExitDate); err == nil {
				return tm, true
			}
		}
	}
	return time.Time{}, false
}

// parseClock parses a bare time-of-day string into an offset from
// midnight.
func parseClock(s string) (time.Duration, bool) {
	for _, layout := range clockLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return time.Duration(tm.Hour())*time.Hour +
				time.Duration(tm.Minute())*time.Minute +
				time.Duration(tm.Second())*time.Second, true
		}
	}
	return 0, false
}

// EntryClock returns the entry time of day as an offset from midnight.
// Trades with no parseable entry clock report false and are excluded
// from clock-sensitive breakdowns only.
func EntryClock(t *models.TradeRecord) (time.Duration, bool) {
	if t.EntryTime != "" {
		if clock, ok := parseClock(t.EntryTime); ok {
			return clock, true
		}
	}
	if tm, parsed := EntryMoment(t); parsed {
		return time.Duration(tm.Hour())*time.Hour +
			time.Duration(tm.Minute())*time.Minute, tm.Hour() != 0 || tm.Minute() != 0
	}
	return 0, false
}

// DayKey returns the canonical calendar-date key for a trade.
func DayKey(t *models.TradeRecord) string {
	tm, _ := EntryMoment(t)
	return tm.Format(DayKeyLayout)
}

// HourKey returns the hour-of-day bucket for a trade, "09:00" form. The
// second return is false when the entry clock is unparseable.
func HourKey(t *models.TradeRecord) (string, bool) {
	clock, ok := EntryClock(t)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:00", int(clock.Hours())), true
}

// DayGroups maps canonical date keys to the trades on that date. Key
// iteration order is the first-seen order of dates in the input; time
// series must consume SortedKeys instead.
type DayGroups struct {
	keys   []string
	trades map[string][]models.TradeRecord
}

// GroupByDay groups trades by their canonical calendar date.
func GroupByDay(trades []models.TradeRecord) *DayGroups {
	g := &DayGroups{trades: make(map[string][]models.TradeRecord)}
	for i := range trades {
		key := DayKey(&trades[i])
		if _, ok := g.trades[key]; !ok {
			g.keys = append(g.keys, key)
		}
		g.trades[key] = append(g.trades[key], trades[i])
	}
	return g
}

// Keys returns the date keys in first-seen order.
func (g *DayGroups) Keys() []string {
	return g.keys
}

// SortedKeys returns the date keys in chronological order. The canonical
// key layout sorts lexicographically, so a string sort is a date sort.
func (g *DayGroups) SortedKeys() []string {
	sorted := make([]string, len(g.keys))
	copy(sorted, g.keys)
	sort.Strings(sorted)
	return sorted
}

// Trades returns the trades recorded on the given date key.
func (g *DayGroups) Trades(key string) []models.TradeRecord {
	return g.trades[key]
}

// Len returns the number of distinct trading days.
func (g *DayGroups) Len() int {
	return len(g.keys)
}

// SortChronological returns the trades ordered by their canonical entry
// moment. The input is not mutated; the engine imposes no pre-sorting on
// callers and sorts internally wherever order matters.
func SortChronological(trades []models.TradeRecord) []models.TradeRecord {
	sorted := make([]models.TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := EntryMoment(&sorted[i])
		tj, _ := EntryMoment(&sorted[j])
		return ti.Before(tj)
	})
	return sorted
}

// sortByExit orders a single day's trades by exit moment, because the
// intraday drawdown is defined over the realized-P&L sequence. Trades
// without a parseable exit fall back to their entry moment.
func sortByExit(trades []models.TradeRecord) []models.TradeRecord {
	sorted := make([]models.TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, ok := ExitMoment(&sorted[i])
		if !ok {
			ti, _ = EntryMoment(&sorted[i])
		}
		tj, ok := ExitMoment(&sorted[j])
		if !ok {
			tj, _ = EntryMoment(&sorted[j])
		}
		return ti.Before(tj)
	})
	return sorted
}
