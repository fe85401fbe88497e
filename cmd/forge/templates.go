// ABOUTME: CLI commands for saved workout templates.
// ABOUTME: list, show and delete by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mfulp2020/forgefitness/internal/models"
)

var templatesLimit int

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"tpl", "t"},
	Short:   "Manage saved workout templates",
	Long: `Manage templates saved with 'forge generate --save'.

The ID column shows an 8-character prefix you can pass to show and delete.`,
}

var templatesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List saved templates, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDB()
		if err != nil {
			return err
		}
		saved, err := store.ListTemplates(templatesLimit)
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(saved) == 0 {
			fmt.Fprintln(out, "No templates found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, st := range saved {
			fmt.Fprintf(out, "%s %s %s %d exercises\n",
				faint.Sprint(st.ID.String()[:8]),
				faint.Sprint(st.SavedAt.Local().Format("2006-01-02 15:04")),
				padRight(st.Name, 20),
				len(st.Exercises))
		}
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved template with its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDB()
		if err != nil {
			return err
		}
		st, err := store.GetTemplate(args[0])
		if err != nil {
			return fmt.Errorf("template not found: %w", err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		color.New(color.Bold).Fprintf(out, "%s", st.Name)
		faint.Fprintf(out, "  %s  saved %s\n", st.ID, st.SavedAt.Local().Format("2006-01-02 15:04"))
		for _, e := range st.Exercises {
			printExercise(out, e, cfg.GetUnits(), color.New(color.FgCyan), faint)
		}
		return nil
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a saved template",
	Long: `Delete a saved template by its ID or ID prefix.

This permanently deletes the template and its exercises. If the prefix
matches more than one template, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDB()
		if err != nil {
			return err
		}
		st, err := store.GetTemplate(args[0])
		if err != nil {
			return fmt.Errorf("template not found: %w", err)
		}
		if err := store.DeleteTemplate(st.ID.String()); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgYellow).Fprintf(out, "✗ Deleted %s\n", st.Name)
		fmt.Fprintf(out, "  %s %s\n", color.New(color.Faint).Sprint(st.ID.String()[:8]), exerciseCount(st.Exercises))
		return nil
	},
}

func exerciseCount(exs []models.TemplateExercise) string {
	if len(exs) == 1 {
		return "1 exercise"
	}
	return fmt.Sprintf("%d exercises", len(exs))
}

func init() {
	templatesListCmd.Flags().IntVarP(&templatesLimit, "limit", "n", 20, "max number of results")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
	rootCmd.AddCommand(templatesCmd)
}
