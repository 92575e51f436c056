package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ict-journal/internal/knowledge"
	"ict-journal/internal/models"
)

// addKnowledgeCommands adds the concept knowledge-base commands.
func addKnowledgeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "knowledge",
		Aliases: []string{"kb"},
		Short:   "Concept knowledge base",
		Long:    "Store, browse and search trading concepts with key points and resources.",
	}

	cmd.AddCommand(newKnowledgeListCmd(app))
	cmd.AddCommand(newKnowledgeShowCmd(app))
	cmd.AddCommand(newKnowledgeAddCmd(app))
	cmd.AddCommand(newKnowledgeUpdateCmd(app))
	cmd.AddCommand(newKnowledgeDeleteCmd(app))
	cmd.AddCommand(newKnowledgeSearchCmd(app))
	cmd.AddCommand(newKnowledgeCategoriesCmd(app))
	cmd.AddCommand(newKnowledgeSeedCmd(app))

	rootCmd.AddCommand(cmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newKnowledgeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all concepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)

			category, _ := cmd.Flags().GetString("category")
			var concepts []models.Concept
			var err error
			if category != "" {
				concepts, err = app.Store.GetConceptsByCategory(cmd.Context(), category)
			} else {
				concepts, err = app.Store.GetConcepts(cmd.Context())
			}
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(concepts)
			}

			if len(concepts) == 0 {
				output.Dim("No concepts yet. Try 'ictjournal knowledge seed'.")
				return nil
			}

			table := NewTable(output, "ID", "TITLE", "CATEGORY", "ADDED", "SUMMARY")
			for _, c := range concepts {
				table.AddRow(
					strconv.FormatInt(c.ID, 10),
					c.Title,
					c.Category,
					c.DateAdded,
					TruncateString(c.Summary, 60),
				)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().String("category", "", "only show concepts in this category")
	return cmd
}

func newKnowledgeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one concept in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			concept, err := app.Store.GetConcept(cmd.Context(), id)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(concept)
			}

			output.Bold("%s", concept.Title)
			output.Dim("%s | added %s | id %d", concept.Category, concept.DateAdded, concept.ID)
			output.Println()

			if concept.Summary != "" {
				output.Println(concept.Summary)
				output.Println()
			}
			printSection(output, "Definition", concept.Definition)
			printSection(output, "How to identify", concept.HowToIdentify)
			printSection(output, "Trading rules", concept.TradingRules)
			printSection(output, "Examples", concept.Examples)
			printSection(output, "Personal notes", concept.PersonalNotes)

			if len(concept.KeyPoints) > 0 {
				output.Info("Key points")
				for _, p := range concept.KeyPoints {
					output.Printf("  - %s\n", p)
				}
				output.Println()
			}
			if len(concept.RelatedConcepts) > 0 {
				output.Info("Related")
				for _, r := range concept.RelatedConcepts {
					output.Printf("  - %s\n", r)
				}
				output.Println()
			}
			if len(concept.Resources) > 0 {
				output.Info("Resources")
				for _, r := range concept.Resources {
					output.Printf("  - %s\n", r)
				}
			}
			return nil
		},
	}
}

func printSection(output *Output, title, body string) {
	if body == "" {
		return
	}
	output.Info("%s", title)
	output.Println(body)
	output.Println()
}

func conceptFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "concept title")
	cmd.Flags().String("category", "", "concept category")
	cmd.Flags().String("summary", "", "one-paragraph summary")
	cmd.Flags().String("definition", "", "long-form definition")
	cmd.Flags().String("identify", "", "how to identify")
	cmd.Flags().String("rules", "", "trading rules")
	cmd.Flags().String("examples", "", "examples")
	cmd.Flags().String("notes", "", "personal notes")
	cmd.Flags().String("key-points", "", "comma-separated key points")
	cmd.Flags().String("related", "", "comma-separated related concepts")
	cmd.Flags().String("resources", "", "comma-separated resources")
}

func newKnowledgeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new concept",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			output := NewOutput(cmd)

			concept := &models.Concept{}
			concept.Title, _ = cmd.Flags().GetString("title")
			concept.Category, _ = cmd.Flags().GetString("category")
			concept.Summary, _ = cmd.Flags().GetString("summary")
			concept.Definition, _ = cmd.Flags().GetString("definition")
			concept.HowToIdentify, _ = cmd.Flags().GetString("identify")
			concept.TradingRules, _ = cmd.Flags().GetString("rules")
			concept.Examples, _ = cmd.Flags().GetString("examples")
			concept.PersonalNotes, _ = cmd.Flags().GetString("notes")

			keyPoints, _ := cmd.Flags().GetString("key-points")
			related, _ := cmd.Flags().GetString("related")
			resources, _ := cmd.Flags().GetString("resources")
			concept.KeyPoints = SplitList(keyPoints)
			concept.RelatedConcepts = SplitList(related)
			concept.Resources = SplitList(resources)

			id, err := app.Store.AddConcept(cmd.Context(), concept)
			if err != nil {
				return err
			}

			app.Logger.Info().Int64("id", id).Str("title", concept.Title).Msg("concept added")
			if output.IsJSON() {
				return output.JSON(concept)
			}
			output.Success("Added concept %d: %s", id, concept.Title)
			return nil
		},
	}
	conceptFlags(cmd)
	return cmd
}

func newKnowledgeUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a concept",
		Long:  "Update a concept. Only the supplied flags change; list flags replace the whole list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			concept, err := app.Store.GetConcept(cmd.Context(), id)
			if err != nil {
				return err
			}

			setIfChanged := func(flag string, dst *string) {
				if cmd.Flags().Changed(flag) {
					*dst, _ = cmd.Flags().GetString(flag)
				}
			}
			setIfChanged("title", &concept.Title)
			setIfChanged("category", &concept.Category)
			setIfChanged("summary", &concept.Summary)
			setIfChanged("definition", &concept.Definition)
			setIfChanged("identify", &concept.HowToIdentify)
			setIfChanged("rules", &concept.TradingRules)
			setIfChanged("examples", &concept.Examples)
			setIfChanged("notes", &concept.PersonalNotes)

			if cmd.Flags().Changed("key-points") {
				v, _ := cmd.Flags().GetString("key-points")
				concept.KeyPoints = SplitList(v)
			}
			if cmd.Flags().Changed("related") {
				v, _ := cmd.Flags().GetString("related")
				concept.RelatedConcepts = SplitList(v)
			}
			if cmd.Flags().Changed("resources") {
				v, _ := cmd.Flags().GetString("resources")
				concept.Resources = SplitList(v)
			}

			if err := app.Store.UpdateConcept(cmd.Context(), concept); err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(concept)
			}
			output.Success("Updated concept %d: %s", id, concept.Title)
			return nil
		},
	}
	conceptFlags(cmd)
	return cmd
}

func newKnowledgeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a concept and its key points, links and resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteConcept(cmd.Context(), id); err != nil {
				return err
			}
			NewOutput(cmd).Success("Deleted concept %d", id)
			return nil
		},
	}
}

func newKnowledgeSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search concepts by title, category or summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			concepts, err := app.Store.SearchConcepts(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(concepts)
			}
			if len(concepts) == 0 {
				output.Dim("No concepts match %q.", args[0])
				return nil
			}
			table := NewTable(output, "ID", "TITLE", "CATEGORY", "SUMMARY")
			for _, c := range concepts {
				table.AddRow(
					strconv.FormatInt(c.ID, 10),
					c.Title,
					c.Category,
					TruncateString(c.Summary, 70),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newKnowledgeCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List all concept categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			categories, err := app.Store.GetCategories(cmd.Context())
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(categories)
			}
			for _, c := range categories {
				output.Println(c)
			}
			return nil
		},
	}
}

func newKnowledgeSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in concept library",
		Long:  "Insert the bundled study concepts. Concepts whose titles already exist are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireStore(); err != nil {
				return err
			}
			added, err := knowledge.Seed(cmd.Context(), app.Store)
			if err != nil {
				return err
			}

			app.Logger.Info().Int("added", added).Msg("knowledge library seeded")
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]int{"added": added})
			}
			if added == 0 {
				output.Dim("Library already loaded, nothing to add.")
			} else {
				output.Success("Added %d concepts from the built-in library", added)
			}
			return nil
		},
	}
}
