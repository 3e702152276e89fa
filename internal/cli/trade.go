package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/logging"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/store"
)

func addTradeCommands(rootCmd *cobra.Command, app *App) {
	tradeCmd := &cobra.Command{
		Use:   "trade",
		Short: "Record and manage journal entries",
	}

	tradeCmd.AddCommand(newTradeAddCmd(app))
	tradeCmd.AddCommand(newTradeListCmd(app))
	tradeCmd.AddCommand(newTradeShowCmd(app))
	tradeCmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(tradeCmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	var (
		entryPrice float64
		exitPrice  float64
		quantity   float64
		direction  string
		strategy   string
		condition  string
		emotion    string
		exitReason string
		stopLoss   float64
		entryTime  string
		entryDate  string
		exitTime   string
		outcome    string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new trade",
		Long: `Record a new trade in the journal.

Only the entry price is required. Leave --exit-price unset for an open
position; analytics will count it but exclude it from win-rate and P&L.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			if entryPrice <= 0 {
				return apperrors.NewValidationError("entry_price", entryPrice, "must be positive")
			}
			if direction != string(models.DirectionLong) && direction != string(models.DirectionShort) {
				return apperrors.NewValidationError("direction", direction, "must be long or short")
			}

			trade := &models.TradeRecord{
				ID:              fmt.Sprintf("trade-%d", time.Now().UnixNano()),
				EntryPrice:      entryPrice,
				Direction:       models.Direction(direction),
				Strategy:        strategy,
				MarketCondition: condition,
				EntryEmotion:    emotion,
				ExitReason:      exitReason,
				EntryTime:       entryTime,
				EntryDate:       entryDate,
				ExitTime:        exitTime,
				Outcome:         models.Outcome(outcome),
				Notes:           notes,
				Timestamp:       time.Now(),
			}
			if cmd.Flags().Changed("exit-price") {
				trade.ExitPrice = models.Float(exitPrice)
			}
			if cmd.Flags().Changed("quantity") {
				trade.Quantity = models.Float(quantity)
			}
			if cmd.Flags().Changed("stop-loss") {
				trade.StopLoss = models.Float(stopLoss)
			}

			log := logging.WithTradeID(app.Logger, trade.ID)
			if err := app.Store.SaveTrade(cmd.Context(), trade); err != nil {
				log.Error().Err(err).Msg("Failed to save trade")
				return err
			}
			log.Info().Str("strategy", trade.Strategy).Msg("Trade recorded")

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Trade recorded: %s", trade.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&entryPrice, "entry-price", 0, "entry price (required)")
	cmd.Flags().Float64Var(&exitPrice, "exit-price", 0, "exit price (omit for open position)")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "position size")
	cmd.Flags().StringVar(&direction, "direction", "long", "trade direction (long|short)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "strategy label")
	cmd.Flags().StringVar(&condition, "market-condition", "", "market condition label")
	cmd.Flags().StringVar(&emotion, "entry-emotion", "", "emotion at entry")
	cmd.Flags().StringVar(&exitReason, "exit-reason", "", "reason for exiting")
	cmd.Flags().Float64Var(&stopLoss, "stop-loss", 0, "stop-loss price")
	cmd.Flags().StringVar(&entryTime, "entry-time", "", "entry time (e.g. 2026-01-05 09:30)")
	cmd.Flags().StringVar(&entryDate, "entry-date", "", "entry date (e.g. 2026-01-05)")
	cmd.Flags().StringVar(&exitTime, "exit-time", "", "exit time")
	cmd.Flags().StringVar(&outcome, "outcome", "", "your own outcome label (profit|loss|breakeven)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("entry-price")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	var (
		strategyFilter string
		outcomeFilter  string
		fromStr        string
		toStr          string
		limit          int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			filter := store.TradeFilter{
				Strategy: strategyFilter,
				Outcome:  models.Outcome(outcomeFilter),
				Limit:    limit,
			}
			if fromStr != "" {
				t, err := time.Parse("2006-01-02", fromStr)
				if err != nil {
					return apperrors.NewValidationError("from", fromStr, "expected YYYY-MM-DD")
				}
				filter.StartDate = t
			}
			if toStr != "" {
				t, err := time.Parse("2006-01-02", toStr)
				if err != nil {
					return apperrors.NewValidationError("to", toStr, "expected YYYY-MM-DD")
				}
				filter.EndDate = t
			}

			trades, err := app.Store.GetTrades(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades recorded")
				return nil
			}

			table := NewTable(output, "ID", "DATE", "DIR", "ENTRY", "EXIT", "QTY", "STRATEGY", "OUTCOME")
			for i := range trades {
				t := &trades[i]
				exit := "-"
				if t.ExitPrice != nil {
					exit = fmt.Sprintf("%.2f", *t.ExitPrice)
				}
				qty := "-"
				if t.Quantity != nil {
					qty = strconv.FormatFloat(*t.Quantity, 'f', -1, 64)
				}
				table.AddRow(
					TruncateString(t.ID, 24),
					FormatDate(t.Timestamp),
					string(t.Direction),
					fmt.Sprintf("%.2f", t.EntryPrice),
					exit,
					qty,
					TruncateString(t.Strategy, 18),
					string(t.Outcome),
				)
			}
			table.Render()
			output.Dim("%d trades", len(trades))
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyFilter, "strategy", "", "filter by strategy")
	cmd.Flags().StringVar(&outcomeFilter, "outcome", "", "filter by outcome label")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of trades")

	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a single trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			trade, err := app.Store.GetTradeByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output.JSON(trade)
		},
	}
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			if err := app.Store.DeleteTrade(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.Logger.Info().Str("trade_id", args[0]).Msg("Trade deleted")
			output.Success("Deleted trade %s", args[0])
			return nil
		},
	}
}
