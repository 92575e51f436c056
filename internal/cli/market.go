package cli

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"ict-journal/internal/calc"
	"ict-journal/internal/models"
)

// cmePriceLimitsURL is the official CME equity-index price-limits page.
const cmePriceLimitsURL = "https://www.cmegroup.com/trading/price-limits.html#equityIndex"

// addMarketCommands adds snapshot storage and the band/projection calculators.
func addMarketCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Market snapshots and price projections",
		Long: `Store manually observed daily highs/lows and run the circuit-band and
next-day projection calculators.`,
	}

	cmd.AddCommand(newMarketSaveCmd(app))
	cmd.AddCommand(newMarketShowCmd(app))
	cmd.AddCommand(newMarketRangeCmd(app))
	cmd.AddCommand(newMarketBandsCmd(app))
	cmd.AddCommand(newMarketProjectCmd(app))
	cmd.AddCommand(newMarketCMECmd(app))
	cmd.AddCommand(newMarketCMESiteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newMarketSaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a daily high/low snapshot",
		Long:  "Save the observed daily high/low for a symbol. Saving the same date and symbol again overwrites.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)

			snap := &models.MarketSnapshot{}
			snap.Date, _ = cmd.Flags().GetString("date")
			if snap.Date == "" {
				snap.Date = todayString()
			}
			snap.Symbol, _ = cmd.Flags().GetString("symbol")
			snap.DailyHigh = priceFlag(cmd, output, "high")
			snap.DailyLow = priceFlag(cmd, output, "low")

			if err := app.Store.SaveSnapshot(cmd.Context(), snap); err != nil {
				return err
			}

			app.Logger.Info().Str("symbol", snap.Symbol).Str("date", snap.Date).Msg("snapshot saved")
			if output.IsJSON() {
				return output.JSON(snap)
			}
			output.Success("Saved %s %s: high %s / low %s",
				snap.Symbol, snap.Date, FormatPricePtr(snap.DailyHigh), FormatPricePtr(snap.DailyLow))
			return nil
		},
	}
	cmd.Flags().String("date", "", "snapshot date (default today)")
	cmd.Flags().String("symbol", "", "symbol, e.g. NAS100")
	cmd.Flags().String("high", "", "daily high")
	cmd.Flags().String("low", "", "daily low")
	cmd.MarkFlagRequired("symbol")
	return cmd
}

func newMarketShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one saved snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = todayString()
			}
			symbol, _ := cmd.Flags().GetString("symbol")

			snap, err := app.Store.GetSnapshot(cmd.Context(), date, symbol)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(snap)
			}
			output.Bold("%s %s", snap.Symbol, snap.Date)
			output.Printf("  High: %s\n", FormatPricePtr(snap.DailyHigh))
			output.Printf("  Low:  %s\n", FormatPricePtr(snap.DailyLow))
			return nil
		},
	}
	cmd.Flags().String("date", "", "snapshot date (default today)")
	cmd.Flags().String("symbol", "", "symbol")
	cmd.MarkFlagRequired("symbol")
	return cmd
}

func newMarketRangeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show snapshots over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			symbol, _ := cmd.Flags().GetString("symbol")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			if to == "" {
				to = todayString()
			}

			snaps, err := app.Store.GetSnapshotRange(cmd.Context(), symbol, from, to)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(snaps)
			}
			if len(snaps) == 0 {
				output.Dim("No snapshots for %s between %s and %s.", symbol, from, to)
				return nil
			}

			table := NewTable(output, "DATE", "SYMBOL", "HIGH", "LOW", "RANGE")
			for _, s := range snaps {
				rng := NoValue
				if s.DailyHigh != nil && s.DailyLow != nil {
					rng = FormatPrice(*s.DailyHigh - *s.DailyLow)
				}
				table.AddRow(s.Date, s.Symbol,
					FormatPricePtr(s.DailyHigh), FormatPricePtr(s.DailyLow), rng)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().String("symbol", "", "symbol")
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (default today)")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("from")
	return cmd
}

func newMarketBandsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Circuit bands and next-day projection from a close",
		Long: `Compute the 7/13/20% circuit bands around a closing price. With --high
and --low the next-day projection is included: settlement plus/minus the
range when --settlement is given, otherwise the range extended by 61.8%
beyond each extreme.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			closeRaw, _ := cmd.Flags().GetString("close")
			closePrice, ok := ParseFloat(closeRaw)
			if !ok || closePrice == nil {
				output.Error("A numeric --close is required (got %q)", closeRaw)
				return fmt.Errorf("invalid close price")
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			bands := calc.CircuitBands(*closePrice)

			high := priceFlag(cmd, output, "high")
			low := priceFlag(cmd, output, "low")
			settlement := priceFlag(cmd, output, "settlement")

			var projection *calc.Projection
			if high != nil && low != nil {
				p := calc.NextDayProjection(*high, *low, settlement)
				projection = &p
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol":     symbol,
					"close":      *closePrice,
					"bands":      bands,
					"projection": projection,
				})
			}

			title := "Circuit Bands"
			if symbol != "" {
				title = symbol + " " + title
			}
			output.Bold("%s (close %s)", title, FormatPrice(*closePrice))
			renderBands(output, bands)

			if projection != nil {
				output.Println()
				if settlement != nil {
					output.Info("Next-day projection (settlement %s)", FormatPrice(*settlement))
				} else {
					output.Info("Next-day projection (0.618 extension)")
				}
				output.Printf("  High: %s\n", output.Green(FormatPrice(projection.High)))
				output.Printf("  Low:  %s\n", output.Red(FormatPrice(projection.Low)))
			}
			return nil
		},
	}
	cmd.Flags().String("symbol", "", "label for the output")
	cmd.Flags().String("close", "", "closing price")
	cmd.Flags().String("high", "", "daily high for the projection")
	cmd.Flags().String("low", "", "daily low for the projection")
	cmd.Flags().String("settlement", "", "settlement price for the projection")
	return cmd
}

func renderBands(output *Output, bands calc.Bands) {
	table := NewTable(output, "TIER", "UP", "DOWN")
	table.AddRow("7%", output.Green(FormatPrice(bands.Up7)), output.Red(FormatPrice(bands.Down7)))
	table.AddRow("13%", output.Green(FormatPrice(bands.Up13)), output.Red(FormatPrice(bands.Down13)))
	table.AddRow("20%", output.Green(FormatPrice(bands.Up20)), output.Red(FormatPrice(bands.Down20)))
	table.Render()
}

func newMarketProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "General next-day estimate from a high/low range",
		Long: `Project tomorrow's extremes as half the range beyond today's high and
low. This is the general-purpose calculator; 'market bands' uses the
settlement/0.618 method instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			high := priceFlag(cmd, output, "high")
			low := priceFlag(cmd, output, "low")
			if high == nil || low == nil {
				output.Error("Numeric --high and --low are required")
				return fmt.Errorf("missing range inputs")
			}

			p := calc.RangeProjection(*high, *low)
			if output.IsJSON() {
				return output.JSON(p)
			}

			output.Bold("Range projection (high %s / low %s)", FormatPrice(*high), FormatPrice(*low))
			output.Printf("  Projected high: %s\n", output.Green(FormatPrice(p.High)))
			output.Printf("  Projected low:  %s\n", output.Red(FormatPrice(p.Low)))
			return nil
		},
	}
	cmd.Flags().String("high", "", "daily high")
	cmd.Flags().String("low", "", "daily low")
	return cmd
}

func newMarketCMECmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cme",
		Short: "CME limit bands from a settlement price",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			raw, _ := cmd.Flags().GetString("settlement")
			settlement, ok := ParseFloat(raw)
			if !ok || settlement == nil {
				output.Error("A numeric --settlement is required (got %q)", raw)
				return fmt.Errorf("invalid settlement price")
			}
			symbol, _ := cmd.Flags().GetString("symbol")

			bands := calc.CMELimits(*settlement)
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol":     symbol,
					"settlement": *settlement,
					"bands":      bands,
				})
			}

			title := "CME Price Limits"
			if symbol != "" {
				title = symbol + " " + title
			}
			output.Bold("%s (settlement %s)", title, FormatPrice(*settlement))
			renderBands(output, bands)
			return nil
		},
	}
	cmd.Flags().String("symbol", "", "label for the output")
	cmd.Flags().String("settlement", "", "CME settlement price")
	return cmd
}

func newMarketCMESiteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cme-site",
		Short: "Open the CME price-limits page in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := openURL(cmePriceLimitsURL); err != nil {
				output.Warning("Could not open a browser: %v", err)
				output.Println(cmePriceLimitsURL)
				return nil
			}
			output.Success("Opened %s", cmePriceLimitsURL)
			return nil
		},
	}
}

func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform")
	}
	return cmd.Start()
}
