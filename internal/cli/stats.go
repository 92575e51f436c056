package cli

import (
	"github.com/spf13/cobra"

	"ict-journal/internal/calc"
	"ict-journal/internal/store"
)

// addStatsCommands adds the statistics report command.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Trade statistics",
		Long:  "Aggregate statistics over the whole journal or a filtered slice of it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)

			var filter store.TradeFilter
			filter.Pair, _ = cmd.Flags().GetString("pair")
			filter.StartDate, _ = cmd.Flags().GetString("from")
			filter.EndDate, _ = cmd.Flags().GetString("to")

			trades, err := app.Store.GetTrades(cmd.Context(), filter)
			if err != nil {
				return err
			}

			stats := calc.Stats(trades)
			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Trade Statistics")
			output.Printf("  Total trades: %d\n", stats.Total)
			output.Printf("  Wins:         %d\n", stats.Wins)
			output.Printf("  Losses:       %d\n", stats.Losses)
			output.Printf("  Pending:      %d\n", stats.Pending)
			output.Printf("  Win rate:     %.1f%%\n", stats.WinRate)
			output.Println()
			output.Printf("  Total P&L:    %s\n", output.FormatPnL(stats.TotalPnL))
			output.Printf("  Average P&L:  %s\n", output.FormatPnL(stats.AvgPnL))
			output.Printf("  Best trade:   %s\n", output.FormatPnL(stats.BestTrade))
			output.Printf("  Worst trade:  %s\n", output.FormatPnL(stats.WorstTrade))
			return nil
		},
	}
	cmd.Flags().String("pair", "", "restrict to one instrument")
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")

	rootCmd.AddCommand(cmd)
}
