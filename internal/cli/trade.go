package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"ict-journal/internal/models"
	"ict-journal/internal/store"
)

// addTradeCommands adds the trade journal commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade journal",
		Long:  "Record and review discretionary trades. P&L is always derived, never entered.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeUpdateCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func tradeFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD, default today)")
	cmd.Flags().String("pair", "", "instrument, e.g. NAS100")
	cmd.Flags().String("timeframe", "", "entry timeframe, e.g. 5m")
	cmd.Flags().String("direction", "", "long or short")
	cmd.Flags().String("entry", "", "entry price")
	cmd.Flags().String("stop", "", "stop loss price")
	cmd.Flags().String("target", "", "take profit price")
	cmd.Flags().String("exit", "", "exit price")
	cmd.Flags().String("qty", "", "quantity")
	cmd.Flags().String("outcome", "", "pending, win, loss or break_even")
	cmd.Flags().String("setup", "", "setup type, e.g. Silver Bullet")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().String("screenshot", "", "screenshot path")
	cmd.Flags().String("concepts", "", "comma-separated concepts used")
}

// priceFlag reads a numeric flag; a malformed number is reported and
// treated as unset rather than aborting the whole save.
func priceFlag(cmd *cobra.Command, output *Output, name string) *float64 {
	raw, _ := cmd.Flags().GetString(name)
	v, ok := ParseFloat(raw)
	if !ok {
		output.Warning("Ignoring %s: %q is not a number (%s)", name, raw, NoValue)
		return nil
	}
	return v
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)

			trade := &models.Trade{}
			trade.Date, _ = cmd.Flags().GetString("date")
			if trade.Date == "" {
				trade.Date = todayString()
			}
			trade.Pair, _ = cmd.Flags().GetString("pair")
			trade.Timeframe, _ = cmd.Flags().GetString("timeframe")

			direction, _ := cmd.Flags().GetString("direction")
			trade.Direction = models.Direction(direction)
			outcome, _ := cmd.Flags().GetString("outcome")
			trade.Outcome = models.Outcome(outcome)

			trade.EntryPrice = priceFlag(cmd, output, "entry")
			trade.StopLoss = priceFlag(cmd, output, "stop")
			trade.TakeProfit = priceFlag(cmd, output, "target")
			trade.ExitPrice = priceFlag(cmd, output, "exit")
			trade.Quantity = priceFlag(cmd, output, "qty")

			trade.SetupType, _ = cmd.Flags().GetString("setup")
			trade.Notes, _ = cmd.Flags().GetString("notes")
			trade.Screenshot, _ = cmd.Flags().GetString("screenshot")
			concepts, _ := cmd.Flags().GetString("concepts")
			trade.ConceptsUsed = SplitList(concepts)

			id, err := app.Store.AddTrade(cmd.Context(), trade)
			if err != nil {
				return err
			}

			app.Logger.Info().Int64("id", id).Str("pair", trade.Pair).
				Str("direction", string(trade.Direction)).Msg("trade recorded")
			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Recorded trade %d: %s %s", id, trade.Direction, trade.Pair)
			if trade.PnL != nil {
				output.Printf("  P&L: %s (%s)\n", output.FormatPnL(*trade.PnL), output.FormatPercent(*trade.PnLPercent))
			}
			return nil
		},
	}
	tradeFlags(cmd)
	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)

			var filter store.TradeFilter
			filter.Pair, _ = cmd.Flags().GetString("pair")
			outcome, _ := cmd.Flags().GetString("outcome")
			filter.Outcome = models.Outcome(outcome)
			filter.SetupType, _ = cmd.Flags().GetString("setup")
			filter.StartDate, _ = cmd.Flags().GetString("from")
			filter.EndDate, _ = cmd.Flags().GetString("to")
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			trades, err := app.Store.GetTrades(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Dim("No trades recorded.")
				return nil
			}

			table := NewTable(output, "ID", "DATE", "PAIR", "TF", "DIR", "ENTRY", "EXIT", "P&L", "P&L%", "OUTCOME", "SETUP")
			for _, t := range trades {
				pnl := NoValue
				pct := NoValue
				if t.PnL != nil {
					pnl = output.FormatPnL(*t.PnL)
				}
				if t.PnLPercent != nil {
					pct = output.FormatPercent(*t.PnLPercent)
				}
				table.AddRow(
					strconv.FormatInt(t.ID, 10),
					t.Date,
					t.Pair,
					t.Timeframe,
					string(t.Direction),
					FormatPricePtr(t.EntryPrice),
					FormatPricePtr(t.ExitPrice),
					pnl,
					pct,
					string(t.Outcome),
					TruncateString(t.SetupType, 20),
				)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().String("pair", "", "filter by instrument")
	cmd.Flags().String("outcome", "", "filter by outcome")
	cmd.Flags().String("setup", "", "filter by setup type")
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 0, "maximum rows")
	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			trade, err := app.Store.GetTrade(cmd.Context(), id)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Bold("Trade %d: %s %s (%s)", trade.ID, trade.Direction, trade.Pair, trade.Timeframe)
			output.Dim("Opened %s", trade.Date)
			output.Println()

			output.Printf("  Entry:       %s\n", FormatPricePtr(trade.EntryPrice))
			output.Printf("  Stop loss:   %s\n", FormatPricePtr(trade.StopLoss))
			output.Printf("  Take profit: %s\n", FormatPricePtr(trade.TakeProfit))
			output.Printf("  Exit:        %s\n", FormatPricePtr(trade.ExitPrice))
			output.Printf("  Quantity:    %s\n", FormatPricePtr(trade.Quantity))
			if trade.PnL != nil {
				output.Printf("  P&L:         %s (%s)\n", output.FormatPnL(*trade.PnL), output.FormatPercent(*trade.PnLPercent))
			} else {
				output.Printf("  P&L:         %s\n", NoValue)
			}
			output.Printf("  Outcome:     %s\n", trade.Outcome)
			output.Printf("  Closed:      %s\n", FormatDate(trade.DateClosed))
			if trade.SetupType != "" {
				output.Printf("  Setup:       %s\n", trade.SetupType)
			}
			if len(trade.ConceptsUsed) > 0 {
				output.Printf("  Concepts:    %v\n", trade.ConceptsUsed)
			}
			if trade.Screenshot != "" {
				output.Printf("  Screenshot:  %s\n", trade.Screenshot)
			}
			if trade.Notes != "" {
				output.Println()
				output.Info("Notes")
				output.Println(trade.Notes)
			}
			return nil
		},
	}
}

func newTradeUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a trade",
		Long:  "Update a trade. Only the supplied flags change; P&L is recomputed automatically.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			trade, err := app.Store.GetTrade(cmd.Context(), id)
			if err != nil {
				return err
			}
			output := NewOutput(cmd)

			setIfChanged := func(flag string, dst *string) {
				if cmd.Flags().Changed(flag) {
					*dst, _ = cmd.Flags().GetString(flag)
				}
			}
			setIfChanged("date", &trade.Date)
			setIfChanged("pair", &trade.Pair)
			setIfChanged("timeframe", &trade.Timeframe)
			setIfChanged("setup", &trade.SetupType)
			setIfChanged("notes", &trade.Notes)
			setIfChanged("screenshot", &trade.Screenshot)

			if cmd.Flags().Changed("direction") {
				v, _ := cmd.Flags().GetString("direction")
				trade.Direction = models.Direction(v)
			}
			if cmd.Flags().Changed("outcome") {
				v, _ := cmd.Flags().GetString("outcome")
				trade.Outcome = models.Outcome(v)
			}
			for _, pf := range []struct {
				flag string
				dst  **float64
			}{
				{"entry", &trade.EntryPrice},
				{"stop", &trade.StopLoss},
				{"target", &trade.TakeProfit},
				{"exit", &trade.ExitPrice},
				{"qty", &trade.Quantity},
			} {
				if cmd.Flags().Changed(pf.flag) {
					*pf.dst = priceFlag(cmd, output, pf.flag)
				}
			}
			if cmd.Flags().Changed("concepts") {
				v, _ := cmd.Flags().GetString("concepts")
				trade.ConceptsUsed = SplitList(v)
			}

			if err := app.Store.UpdateTrade(cmd.Context(), trade); err != nil {
				return err
			}

			app.Logger.Info().Int64("id", id).Msg("trade updated")
			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Updated trade %d", id)
			if trade.PnL != nil {
				output.Printf("  P&L: %s (%s)\n", output.FormatPnL(*trade.PnL), output.FormatPercent(*trade.PnLPercent))
			}
			return nil
		},
	}
	tradeFlags(cmd)
	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trade and its concept links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteTrade(cmd.Context(), id); err != nil {
				return err
			}
			NewOutput(cmd).Success("Deleted trade %d", id)
			return nil
		},
	}
}
