package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ict-journal/internal/macro"
)

// addMacroCommands adds the macro-time countdown commands.
func addMacroCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "macro",
		Short: "Algorithmic macro times",
		Long: `Track the hourly :50 macros and the named session events, with
countdowns in the configured reference timezone.`,
	}

	cmd.AddCommand(newMacroNextCmd(app))
	cmd.AddCommand(newMacroWatchCmd(app))
	cmd.AddCommand(newMacroGuideCmd(app))

	rootCmd.AddCommand(cmd)
}

func renderMacroTable(output *Output, now time.Time, occurrences []macro.Occurrence) {
	table := NewTable(output, "MACRO", "KIND", "AT", "IN")
	for _, o := range occurrences {
		countdown := macro.FormatCountdown(o.Until(now))
		at := o.At.Format("15:04")
		if o.At.Day() != now.Day() {
			at += " +1d"
		}
		table.AddRow(o.Name, o.Kind, at, countdown)
	}
	table.Render()
}

func newMacroNextCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next macro times",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			n, _ := cmd.Flags().GetInt("count")
			if n <= 0 {
				n = app.Config.Macro.Upcoming
			}

			now := time.Now().In(app.Config.Location())
			occurrences := macro.Next(now, n)

			if output.IsJSON() {
				return output.JSON(occurrences)
			}

			output.Bold("Next macros (%s, %s)", now.Format("15:04:05"), app.Config.Macro.Timezone)
			renderMacroTable(output, now, occurrences)
			return nil
		},
	}
	cmd.Flags().IntP("count", "n", 0, "how many upcoming macros to show")
	return cmd
}

func newMacroWatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live macro countdown",
		Long:  "Refresh the countdown every second until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return fmt.Errorf("watch does not support --json, use 'macro next --json'")
			}

			n, _ := cmd.Flags().GetInt("count")
			if n <= 0 {
				n = app.Config.Macro.Upcoming
			}
			loc := app.Config.Location()

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			for {
				now := time.Now().In(loc)
				// clear screen and move cursor home
				output.Printf("\033[2J\033[H")
				output.Bold("Macro countdown (%s, %s)", now.Format("15:04:05"), app.Config.Macro.Timezone)
				renderMacroTable(output, now, macro.Next(now, n))
				output.Dim("Ctrl+C to exit")

				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	cmd.Flags().IntP("count", "n", 0, "how many upcoming macros to show")
	return cmd
}

func newMacroGuideCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Session and macro reference table",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			rows := macro.Guide()
			if output.IsJSON() {
				return output.JSON(rows)
			}

			table := NewTable(output, "TIME", "TYPE", "NAME", "EXPECTED", "VOL", "NOTES")
			for _, r := range rows {
				table.AddRow(r.Window, r.Kind, r.Name, r.Expected, r.Volatility, r.Notes)
			}
			table.Render()
			return nil
		},
	}
}
