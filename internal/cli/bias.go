package cli

import (
	"github.com/spf13/cobra"

	"ict-journal/internal/bias"
)

// addBiasCommands adds the daily-bias checklist commands.
func addBiasCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "bias",
		Short: "Daily bias checklist",
		Long:  "Score the daily-bias checklist from a set of checked flags.",
	}

	cmd.AddCommand(newBiasCalcCmd(app))
	cmd.AddCommand(newBiasFlagsCmd(app))

	rootCmd.AddCommand(cmd)
}

func newBiasCalcCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Score the checklist",
		Long: `Score the checklist from the flags passed via --set. Use 'bias flags'
to list every flag key.

Example:
  ictjournal bias calc --set htf_weekly_trend,htf_daily_aligned,pd_in_discount`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			set, _ := cmd.Flags().GetString("set")
			checked := make(map[string]bool)
			for _, key := range SplitList(set) {
				checked[key] = true
			}

			if err := bias.Validate(checked); err != nil {
				return err
			}

			result := bias.Score(checked)
			app.Logger.Debug().Int("bullish", result.Bullish).Int("bearish", result.Bearish).
				Str("bias", result.Bias).Msg("bias scored")

			if output.IsJSON() {
				return output.JSON(result)
			}

			if result.Incomplete {
				output.Warning("Please complete the checklist (no scoring flags set)")
				return nil
			}

			output.Bold("Daily Bias: %s (%s)",
				output.ColoredString(output.BiasColor(result.Bias), result.Bias), result.Confidence)
			output.Println()
			output.Printf("  Bullish score: %d (%.1f%%)\n", result.Bullish, result.BullishPct)
			output.Printf("  Bearish score: %d (%.1f%%)\n", result.Bearish, result.BearishPct)
			if result.Neutral > 0 {
				output.Printf("  Neutral score: %d\n", result.Neutral)
			}

			if len(result.KeyFactors) > 0 {
				output.Println()
				output.Info("Key factors")
				for _, factor := range result.KeyFactors {
					output.Printf("  - %s\n", factor)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("set", "", "comma-separated checklist flags to mark checked")
	return cmd
}

func newBiasFlagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "flags",
		Short: "List every checklist flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			flags := bias.Flags()
			if output.IsJSON() {
				return output.JSON(flags)
			}

			category := ""
			for _, f := range flags {
				if f.Category != category {
					if category != "" {
						output.Println()
					}
					category = f.Category
					output.Bold("%s", category)
				}
				output.Printf("  %-28s %s\n", f.Key, output.DimText(f.Description))
			}
			return nil
		},
	}
}
