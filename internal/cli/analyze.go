package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/logging"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/report"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/store"
)

func addAnalyzeCommand(rootCmd *cobra.Command, app *App) {
	var (
		strategyFilter string
		fromStr        string
		toStr          string
		showDaily      bool
		showBuckets    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute performance metrics over the journal",
		Long: `Compute the full performance analysis over recorded trades:
summary statistics, equity curve, drawdown, streaks and categorical
breakdowns. Open positions count toward trade totals but not toward
win rate or P&L.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			filter, err := buildFilter(strategyFilter, fromStr, toStr)
			if err != nil {
				return err
			}
			trades, err := app.Store.GetTrades(cmd.Context(), filter)
			if err != nil {
				return err
			}

			result := app.Engine.Analyze(trades)
			logging.LogAnalysis(app.Logger, result.Summary.TotalTrades,
				result.Summary.TotalPnL, result.Summary.ConsistencyScore)

			if output.IsJSON() {
				return output.JSON(result)
			}

			printSummary(output, result)
			if showDaily {
				printDaily(output, result)
			}
			if showBuckets {
				printBuckets(output, "By strategy", result.ByStrategy)
				printBuckets(output, "By market condition", result.ByMarketCondition)
				printBuckets(output, "By entry emotion", result.ByEntryEmotion)
				printBuckets(output, "By exit reason", result.ByExitReason)
				printBuckets(output, "By position size", result.ByPositionSize)
				printBuckets(output, "By hour", result.ByHour)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyFilter, "strategy", "", "restrict to one strategy")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&showDaily, "daily", false, "include the per-day table")
	cmd.Flags().BoolVar(&showBuckets, "breakdown", false, "include categorical breakdowns")

	rootCmd.AddCommand(cmd)
}

func buildFilter(strategy, fromStr, toStr string) (store.TradeFilter, error) {
	filter := store.TradeFilter{Strategy: strategy}
	if fromStr != "" {
		t, err := parseDateArg(fromStr)
		if err != nil {
			return filter, apperrors.NewValidationError("from", fromStr, "expected YYYY-MM-DD")
		}
		filter.StartDate = t
	}
	if toStr != "" {
		t, err := parseDateArg(toStr)
		if err != nil {
			return filter, apperrors.NewValidationError("to", toStr, "expected YYYY-MM-DD")
		}
		filter.EndDate = t
	}
	return filter, nil
}

func parseDateArg(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func printSummary(output *Output, result *models.AnalysisResult) {
	s := result.Summary

	output.Bold("TRADING PERFORMANCE")
	output.Println()
	output.Printf("  Trades:            %d (%d closed)\n", s.TotalTrades, s.CompletedTrades)
	output.Printf("  Win rate:          %.1f%% (%dW / %dL)\n", s.WinRate, s.WinningTrades, s.LosingTrades)
	output.Printf("  Net P&L:           %s\n", output.FormatPnL(s.TotalPnL))
	output.Printf("  Avg trade:         %s\n", output.FormatPnL(s.AvgTradePnL))
	output.Printf("  Avg win / loss:    %s / %s\n",
		FormatIndianCurrency(s.AvgWin), FormatIndianCurrency(s.AvgLoss))
	output.Printf("  Largest win/loss:  %s / %s\n",
		output.FormatPnL(s.LargestWin), output.FormatPnL(s.LargestLoss))
	output.Printf("  Profit factor:     %s\n", FormatRatio(s.ProfitFactor))
	output.Printf("  Expectancy:        %s\n", FormatIndianCurrency(s.Expectancy))
	output.Printf("  Sharpe (ann.):     %.2f\n", s.SharpeRatio)
	output.Printf("  Max drawdown:      %.2f%%\n", s.MaxDrawdown)
	output.Printf("  Consistency:       %.1f / 100\n", s.ConsistencyScore)
	if s.AvgHoldMinutes > 0 {
		output.Printf("  Avg hold:          %.0f min\n", s.AvgHoldMinutes)
	}
	output.Println()
	output.Printf("  Daily streaks: %s\n", report.FormatStreaks(result.DailyPnLStreaks))
	output.Printf("  Trade streaks: %s\n", report.FormatStreaks(result.TradeOutcomeStreaks))
	output.Println()
}

func printDaily(output *Output, result *models.AnalysisResult) {
	if len(result.Daily) == 0 {
		return
	}
	output.Bold("DAILY")
	table := NewTable(output, "DATE", "TRADES", "NET P&L", "WIN RATE", "DRAWDOWN")
	for _, day := range result.Daily {
		table.AddRow(
			day.Date,
			fmt.Sprintf("%d", day.TradeCount),
			output.FormatPnL(day.NetPnL),
			fmt.Sprintf("%.1f%%", day.WinRate),
			FormatIndianCurrency(day.Drawdown),
		)
	}
	table.Render()
	output.Println()
}

func printBuckets(output *Output, title string, buckets *models.BucketMap) {
	if buckets == nil || buckets.Len() == 0 {
		return
	}
	output.Bold(title)
	table := NewTable(output, "KEY", "TRADES", "W/L", "NET P&L", "AVG", "WIN RATE")
	for _, key := range buckets.Keys() {
		b, _ := buckets.Lookup(key)
		table.AddRow(
			TruncateString(key, 22),
			fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("%d/%d", b.Wins, b.Losses),
			output.FormatPnL(b.TotalPnL),
			FormatIndianCurrency(b.AvgPnL),
			fmt.Sprintf("%.1f%%", b.WinRate),
		)
	}
	table.Render()
	output.Println()
}
