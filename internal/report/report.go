// Package report renders analytics output into the named text sections
// consumed by the narrative-generation call. It is a pure string
// transform: given the same analysis result it always produces the same
// text.
package report

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// NoData is rendered in place of any placeholder with no supplied value.
// Placeholders must never leak literally into the final text.
const NoData = "No data"

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render substitutes {{name}} tokens in the template from values. Tokens
// with no value render as NoData and are returned by name so the caller
// can detect them.
func Render(template string, values map[string]string) (string, []string) {
	var unresolved []string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if v, ok := values[name]; ok && v != "" {
			return v
		}
		unresolved = append(unresolved, name)
		return NoData
	})
	return out, unresolved
}

// FormatBucketSection emits one line per group key in first-seen order,
// truncated deterministically after maxEntries with an ellipsis line.
// An empty bucket map renders the NoData marker.
func FormatBucketSection(buckets *models.BucketMap, maxEntries int) string {
	if buckets == nil || buckets.Len() == 0 {
		return NoData
	}

	var b strings.Builder
	for i, key := range buckets.Keys() {
		if maxEntries > 0 && i >= maxEntries {
			fmt.Fprintf(&b, "- … %d more\n", buckets.Len()-maxEntries)
			break
		}
		bucket, _ := buckets.Lookup(key)
		fmt.Fprintf(&b, "- %s: %d trades, %d wins / %d losses, net P&L %.2f, win rate %.1f%%\n",
			key, bucket.Count, bucket.Wins, bucket.Losses, bucket.TotalPnL, bucket.WinRate)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatStreaks renders a streak list as "profit x3, loss x1".
func FormatStreaks(segments []models.StreakSegment) string {
	if len(segments) == 0 {
		return NoData
	}
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, fmt.Sprintf("%s x%d", s.Outcome, s.Length))
	}
	return strings.Join(parts, ", ")
}

// FormatProfitFactor keeps the by-design infinite value readable instead
// of surfacing "+Inf" to the text layer.
func FormatProfitFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "Infinite (no losing trades)"
	}
	return fmt.Sprintf("%.2f", pf)
}
