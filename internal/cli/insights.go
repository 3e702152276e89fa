package cli

import (
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/logging"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/narrative"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/report"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/store"
)

const defaultUserID = "default"

func addInsightsCommands(rootCmd *cobra.Command, app *App) {
	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "AI-written performance reviews",
	}
	insightsCmd.AddCommand(newInsightsGenerateCmd(app))
	insightsCmd.AddCommand(newInsightsReportCmd(app))
	rootCmd.AddCommand(insightsCmd)

	creditsCmd := &cobra.Command{
		Use:   "credits",
		Short: "Manage analysis credits",
	}
	creditsCmd.AddCommand(newCreditsShowCmd(app))
	creditsCmd.AddCommand(newCreditsGrantCmd(app))
	rootCmd.AddCommand(creditsCmd)
}

func newInsightsGenerateCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a narrative performance review",
		Long: `Generate a narrative review of the full journal.

Each generation costs one analysis credit. The credit is debited before
the request and refunded if generation fails, so a failed call never
consumes quota.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}
			if app.LLMClient == nil {
				return apperrors.ErrNoLLMClient
			}

			trades, err := app.Store.GetTrades(cmd.Context(), store.TradeFilter{})
			if err != nil {
				return err
			}
			result := app.Engine.Analyze(trades)

			generator := narrative.NewGenerator(app.LLMClient, app.Gate(),
				app.Config.Analytics.ReportMaxEntries)

			start := time.Now()
			text, err := generator.Generate(cmd.Context(), userID, result)
			logging.LogNarrative(app.Logger, userID, time.Since(start), err)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrInsufficientCredits) {
					output.Warning("No analysis credits left. Use 'journal credits grant' to add more.")
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"narrative": text})
			}
			output.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", defaultUserID, "credit ledger account")
	return cmd
}

// newInsightsReportCmd prints the structured report text that generate
// sends to the language model, without spending a credit.
func newInsightsReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the structured report without calling the LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			trades, err := app.Store.GetTrades(cmd.Context(), store.TradeFilter{})
			if err != nil {
				return err
			}
			result := app.Engine.Analyze(trades)

			text, unresolved := report.Build(result, app.Config.Analytics.ReportMaxEntries)
			if len(unresolved) > 0 {
				app.Logger.Debug().Strs("placeholders", unresolved).Msg("Report sections without data")
			}
			output.Println(text)
			return nil
		},
	}
}

func newCreditsShowCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show remaining analysis credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			balance, err := app.Gate().Remaining(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"user": userID, "credits": balance})
			}
			output.Printf("%d analysis credits remaining\n", balance)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", defaultUserID, "credit ledger account")
	return cmd
}

func newCreditsGrantCmd(app *App) *cobra.Command {
	var (
		userID string
		amount int
	)

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Add analysis credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}
			if !cmd.Flags().Changed("amount") {
				amount = app.Config.Insights.DefaultCredits
			}
			if amount <= 0 {
				return apperrors.NewValidationError("amount", amount, "must be positive")
			}

			if err := app.Store.GrantCredits(cmd.Context(), userID, amount); err != nil {
				return err
			}
			balance, err := app.Store.GetCredits(cmd.Context(), userID)
			if err != nil {
				return err
			}
			logging.LogCredit(app.Logger, userID, "grant", balance)
			output.Success("Granted %d credits, balance is now %d", amount, balance)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", defaultUserID, "credit ledger account")
	cmd.Flags().IntVar(&amount, "amount", 0, "credits to add (default: insights.default_credits)")
	return cmd
}
