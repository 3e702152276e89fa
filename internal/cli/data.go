package cli

import (
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/store"
)

func addDataCommands(rootCmd *cobra.Command, app *App) {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Import and export journal data",
	}
	dataCmd.AddCommand(newDataImportCmd(app))
	dataCmd.AddCommand(newDataExportCmd(app))
	rootCmd.AddCommand(dataCmd)
}

func newDataImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV file",
		Long: `Import trades from a CSV file into the journal.

Rows without an id get one assigned. The whole file is written in a
single transaction, so a malformed file imports nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			f, err := os.Open(args[0])
			if err != nil {
				return apperrors.Wrap(err, "opening CSV file")
			}
			defer f.Close()

			trades, err := store.ImportCSV(f)
			if err != nil {
				return err
			}
			if err := app.Store.SaveTrades(cmd.Context(), trades); err != nil {
				return err
			}

			app.Logger.Info().Int("count", len(trades)).Str("file", args[0]).Msg("Trades imported")
			if output.IsJSON() {
				return output.JSON(map[string]int{"imported": len(trades)})
			}
			output.Success("Imported %d trades from %s", len(trades), args[0])
			return nil
		},
	}
}

func newDataExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export all trades to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.ErrDatabaseError
			}

			trades, err := app.Store.GetTrades(cmd.Context(), store.TradeFilter{})
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return apperrors.Wrap(err, "creating CSV file")
			}
			defer f.Close()

			if err := store.ExportCSV(f, trades); err != nil {
				return err
			}

			app.Logger.Info().Int("count", len(trades)).Str("file", args[0]).Msg("Trades exported")
			if output.IsJSON() {
				return output.JSON(map[string]int{"exported": len(trades)})
			}
			output.Success("Exported %d trades to %s", len(trades), args[0])
			return nil
		},
	}
}
