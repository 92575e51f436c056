package cli

import (
	"github.com/spf13/cobra"
)

// addNotesCommands adds the concept-note commands.
func addNotesCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Personal concept notes",
		Long:  "Free-form notes keyed by a concept identifier, one note per concept.",
	}

	cmd.AddCommand(newNotesSetCmd(app))
	cmd.AddCommand(newNotesShowCmd(app))

	rootCmd.AddCommand(cmd)
}

func newNotesSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <concept-id>",
		Short: "Write the note for a concept",
		Long:  "Write the note for a concept identifier, replacing any previous note.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			text, _ := cmd.Flags().GetString("text")

			if err := app.Store.SaveConceptNote(cmd.Context(), args[0], text); err != nil {
				return err
			}

			app.Logger.Debug().Str("concept", args[0]).Msg("concept note saved")
			NewOutput(cmd).Success("Saved note for %s", args[0])
			return nil
		},
	}
	cmd.Flags().String("text", "", "note body")
	return cmd
}

func newNotesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <concept-id>",
		Short: "Show the note for a concept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			note, err := app.Store.GetConceptNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(note)
			}
			output.Bold("%s", note.ConceptID)
			output.Dim("Last updated %s", note.LastUpdated)
			output.Println()
			output.Println(note.Notes)
			return nil
		},
	}
}
