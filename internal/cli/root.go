package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/analytics"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/config"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/logging"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/narrative"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/quota"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Store     store.DataStore
	Engine    *analytics.Engine
	LLMClient narrative.LLMClient
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Engine: analytics.New(cfg.EngineConfig()).WithLogger(logger),
	}

	dataStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Store.Path).Msg("SQLite store initialized")
	}

	if cfg.Credentials.OpenAI.APIKey != "" {
		app.LLMClient = narrative.NewOpenAIClient(cfg.Credentials.OpenAI.APIKey, cfg.Insights.Model)
		logger.Debug().Str("model", cfg.Insights.Model).Msg("OpenAI LLM client initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Trade Journey Insights - personal trading journal analytics",
		Long: `Trade Journey Insights is a personal trading journal with a
performance analytics engine.

Record trades, compute performance and behavioral metrics (equity curve,
drawdown, streaks, expectancy, consistency score, categorical breakdowns),
and generate AI-written performance reviews.

Use 'journal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trade-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.Store != nil {
			if err := app.Store.Close(); err != nil {
				app.Logger.Warn().Err(err).Msg("Failed to close store")
			}
		}
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	addTradeCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addAnalyzeCommand(rootCmd, app)
	addInsightsCommands(rootCmd, app)

	return rootCmd
}

// Gate returns the usage-quota gate over the store's credit ledger.
func (app *App) Gate() *quota.Gate {
	return quota.NewGate(app.Store, app.Logger)
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			cfg := app.Config
			if output.IsJSON() {
				// Credentials never leave the process.
				redacted := *cfg
				redacted.Credentials = config.Credentials{}
				output.JSON(redacted)
				return
			}

			output.Bold("ANALYTICS")
			output.Printf("  stop_loss_penalty_weight:   %.0f\n", cfg.Analytics.StopLossPenaltyWeight)
			output.Printf("  overtrading_threshold:      %d\n", cfg.Analytics.OvertradingThreshold)
			output.Printf("  overtrading_penalty_weight: %.0f\n", cfg.Analytics.OvertradingPenaltyWeight)
			output.Printf("  off_hours_penalty_weight:   %.0f\n", cfg.Analytics.OffHoursPenaltyWeight)
			output.Printf("  market_hours:               %s - %s\n", cfg.Analytics.MarketOpen, cfg.Analytics.MarketClose)
			output.Printf("  position_buckets:           small <= %.0f, medium <= %.0f\n",
				cfg.Analytics.SmallPositionMax, cfg.Analytics.MediumPositionMax)
			output.Bold("STORE")
			output.Printf("  path: %s\n", cfg.Store.Path)
			output.Bold("INSIGHTS")
			output.Printf("  model:           %s\n", cfg.Insights.Model)
			output.Printf("  default_credits: %d\n", cfg.Insights.DefaultCredits)
			if cfg.Credentials.OpenAI.APIKey != "" {
				output.Printf("  openai_api_key:  configured\n")
			} else {
				output.Printf("  openai_api_key:  not set\n")
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Trade Journey Insights v%s\n", Version)
			}
		},
	}
}
