package report

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/analytics"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

func TestRenderSubstitutesValues(t *testing.T) {
	out, unresolved := Render("win rate {{winRate}}, pnl {{pnl}}", map[string]string{
		"winRate": "60.0%",
		"pnl":     "1250.00",
	})
	if out != "win rate 60.0%, pnl 1250.00" {
		t.Errorf("rendered = %q", out)
	}
	if len(unresolved) != 0 {
		t.Errorf("unresolved = %v, want none", unresolved)
	}
}

func TestRenderUnresolvedPlaceholders(t *testing.T) {
	out, unresolved := Render("a {{known}} b {{missing}} c {{empty}}", map[string]string{
		"known": "yes",
		"empty": "",
	})
	if strings.Contains(out, "{{") {
		t.Errorf("placeholder leaked into output: %q", out)
	}
	if !strings.Contains(out, NoData) {
		t.Errorf("missing NoData marker in %q", out)
	}
	if len(unresolved) != 2 || unresolved[0] != "missing" || unresolved[1] != "empty" {
		t.Errorf("unresolved = %v, want [missing empty]", unresolved)
	}
}

func TestFormatBucketSectionTruncation(t *testing.T) {
	buckets := models.NewBucketMap()
	for i := 0; i < 5; i++ {
		b := buckets.Get(fmt.Sprintf("key%d", i))
		b.Count = i + 1
	}

	section := FormatBucketSection(buckets, 3)
	lines := strings.Split(section, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 3 entries plus the ellipsis", len(lines))
	}
	if lines[3] != "- … 2 more" {
		t.Errorf("ellipsis line = %q", lines[3])
	}

	// Truncation is deterministic: same input, same text.
	if again := FormatBucketSection(buckets, 3); again != section {
		t.Error("truncated section not deterministic")
	}
}

func TestFormatBucketSectionEmpty(t *testing.T) {
	if got := FormatBucketSection(models.NewBucketMap(), 5); got != NoData {
		t.Errorf("empty buckets = %q, want NoData", got)
	}
	if got := FormatBucketSection(nil, 5); got != NoData {
		t.Errorf("nil buckets = %q, want NoData", got)
	}
}

func TestFormatStreaks(t *testing.T) {
	segments := []models.StreakSegment{
		{Outcome: models.OutcomeProfit, Length: 3},
		{Outcome: models.OutcomeLoss, Length: 1},
	}
	if got := FormatStreaks(segments); got != "profit x3, loss x1" {
		t.Errorf("FormatStreaks = %q", got)
	}
	if got := FormatStreaks(nil); got != NoData {
		t.Errorf("empty streaks = %q, want NoData", got)
	}
}

func TestFormatProfitFactor(t *testing.T) {
	if got := FormatProfitFactor(math.Inf(1)); got != "Infinite (no losing trades)" {
		t.Errorf("infinite profit factor = %q", got)
	}
	if got := FormatProfitFactor(1.5); got != "1.50" {
		t.Errorf("finite profit factor = %q", got)
	}
}

func TestBuildEmptyResultLeaksNothing(t *testing.T) {
	res := analytics.New(analytics.DefaultConfig()).Analyze(nil)

	text, _ := Build(res, 8)
	if strings.Contains(text, "{{") || strings.Contains(text, "}}") {
		t.Errorf("placeholders leaked into report:\n%s", text)
	}
	// Empty sections render the marker, not blank lines.
	if !strings.Contains(text, NoData) {
		t.Error("empty analysis should surface the No data marker")
	}
}

func TestBuildPopulatedResult(t *testing.T) {
	trades := []models.TradeRecord{
		{
			ID: "t1", EntryPrice: 100, ExitPrice: models.Float(110),
			Quantity: models.Float(10), Direction: models.DirectionLong,
			Strategy: "breakout", EntryTime: "2026-01-05 09:30",
		},
	}
	res := analytics.New(analytics.DefaultConfig()).Analyze(trades)

	text, _ := Build(res, 8)
	if !strings.Contains(text, "Total trades: 1") {
		t.Errorf("summary line missing:\n%s", text)
	}
	if !strings.Contains(text, "breakout") {
		t.Errorf("strategy section missing breakout:\n%s", text)
	}
	if !strings.Contains(text, "Infinite (no losing trades)") {
		t.Errorf("profit factor not formatted:\n%s", text)
	}
}
