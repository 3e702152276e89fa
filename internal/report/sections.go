package report

import (
	"fmt"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// analysisTemplate is the master narrative template. Every token is a
// named placeholder resolved from the analysis result; the set of tokens
// is fixed so that "unknown placeholder" is a detectable condition
// rather than an ad hoc concatenation bug.
const analysisTemplate = `TRADING PERFORMANCE SUMMARY

Total trades: {{totalTrades}} ({{completedTrades}} completed)
Win rate: {{winRate}}
Total P&L: {{totalPnL}}
Average trade P&L: {{avgTradePnL}}
Profit factor: {{profitFactor}}
Expectancy: {{expectancy}}
Sharpe ratio: {{sharpeRatio}}
Max drawdown: {{maxDrawdown}}
Consistency score: {{consistencyScore}} / 100
Average holding time: {{avgHoldMinutes}} minutes

STRATEGY PERFORMANCE
{{strategySection}}

MARKET CONDITIONS
{{marketConditionSection}}

EMOTIONAL ANALYSIS
Entry emotions:
{{entryEmotionSection}}
Exit emotions:
{{exitEmotionSection}}

EXIT REASONS
{{exitReasonSection}}

POSITION SIZING
{{positionSizeSection}}

TIME OF DAY
{{hourSection}}

STREAKS
Daily P&L streaks: {{dailyStreaks}}
Trade outcome streaks: {{tradeStreaks}}`

// Values flattens an analysis result into the placeholder map for the
// master template.
func Values(res *models.AnalysisResult, maxEntries int) map[string]string {
	s := res.Summary
	return map[string]string{
		"totalTrades":            fmt.Sprintf("%d", s.TotalTrades),
		"completedTrades":        fmt.Sprintf("%d", s.CompletedTrades),
		"winRate":                fmt.Sprintf("%.1f%%", s.WinRate),
		"totalPnL":               fmt.Sprintf("%.2f", s.TotalPnL),
		"avgTradePnL":            fmt.Sprintf("%.2f", s.AvgTradePnL),
		"profitFactor":           FormatProfitFactor(s.ProfitFactor),
		"expectancy":             fmt.Sprintf("%.2f", s.Expectancy),
		"sharpeRatio":            fmt.Sprintf("%.2f", s.SharpeRatio),
		"maxDrawdown":            fmt.Sprintf("%.2f%%", s.MaxDrawdown),
		"consistencyScore":       fmt.Sprintf("%.1f", s.ConsistencyScore),
		"avgHoldMinutes":         fmt.Sprintf("%.0f", s.AvgHoldMinutes),
		"strategySection":        FormatBucketSection(res.ByStrategy, maxEntries),
		"marketConditionSection": FormatBucketSection(res.ByMarketCondition, maxEntries),
		"entryEmotionSection":    FormatBucketSection(res.ByEntryEmotion, maxEntries),
		"exitEmotionSection":     FormatBucketSection(res.ByExitEmotion, maxEntries),
		"exitReasonSection":      FormatBucketSection(res.ByExitReason, maxEntries),
		"positionSizeSection":    FormatBucketSection(res.ByPositionSize, maxEntries),
		"hourSection":            FormatBucketSection(res.ByHour, maxEntries),
		"dailyStreaks":           FormatStreaks(res.DailyPnLStreaks),
		"tradeStreaks":           FormatStreaks(res.TradeOutcomeStreaks),
	}
}

// Build renders the full narrative report for an analysis result. Any
// placeholder that could not be resolved comes back by name; the text
// itself carries the NoData marker in its place.
func Build(res *models.AnalysisResult, maxEntries int) (string, []string) {
	return Render(analysisTemplate, Values(res, maxEntries))
}
