// ABOUTME: CLI command for generating a weekly program.
// ABOUTME: Prints a colored preview or JSON; --save stores the templates.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mfulp2020/forgefitness/internal/models"
)

var (
	genLevel    string
	genSplit    string
	genDays     int
	genFocus    string
	genFinisher string
	genUnits    string
	genJSON     bool
	genSave     bool
)

type programJSON struct {
	Request   models.GenerationRequest `json:"request"`
	Templates []models.Template        `json:"templates"`
	Warnings  []string                 `json:"warnings,omitempty"`
}

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate a weekly training program",
	Long: `Generate one workout template per training day.

Omitted flags fall back to the defaults in config.json, then to
intermediate / full_body / 3 days / general / no finisher.

LEVELS:    beginner, intermediate, advanced
FOCUS:     general, hypertrophy, strength, fat_loss, athletic
FINISHERS: none, core, cardio, core_cardio

Run 'forge splits' for split ids.

EXAMPLES:

  forge generate
  forge generate --level beginner --split upper_lower --days 4
  forge generate --focus fat_loss --finisher core_cardio
  forge generate --days 5 --json > program.json
  forge generate --split push_pull_legs --days 6 --save`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults := cfg.DefaultRequest()
		days := defaults.DaysPerWeek
		if cmd.Flags().Changed("days") {
			days = genDays
		}
		req, err := gen.PrepareRequest(models.GenerationRequest{
			Level:       models.Level(genLevel),
			SplitID:     genSplit,
			DaysPerWeek: days,
			Focus:       models.Focus(genFocus),
			Finisher:    models.FinisherOption(genFinisher),
			Units:       models.Units(genUnits),
		}, defaults)
		if err != nil {
			return err
		}

		templates := gen.Generate(req)
		warnings := gen.RequestWarnings(req)
		out := cmd.OutOrStdout()

		if genSave {
			store, err := openDB()
			if err != nil {
				return err
			}
			if err := store.SaveTemplates(templates); err != nil {
				return fmt.Errorf("failed to save program: %w", err)
			}
		}

		if genJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(programJSON{Request: req, Templates: templates, Warnings: warnings})
		}

		for _, w := range warnings {
			color.New(color.FgYellow).Fprintf(out, "! %s\n", w)
		}
		printProgram(out, req, templates)
		if genSave {
			color.New(color.FgGreen).Fprintf(out, "✓ Saved %d templates\n", len(templates))
		}
		return nil
	},
}

func printProgram(w io.Writer, req models.GenerationRequest, templates []models.Template) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	cyan := color.New(color.FgCyan)

	faint.Fprintf(w, "%s · %s · %d days · %s · finisher %s\n\n",
		req.Level, req.SplitID, len(templates), req.Focus, req.Finisher)

	for i, t := range templates {
		bold.Fprintf(w, "Day %d: %s", i+1, t.Name)
		faint.Fprintf(w, "  %s\n", t.ID.String()[:8])
		for _, e := range t.Exercises {
			printExercise(w, e, req.Units, cyan, faint)
		}
		fmt.Fprintln(w)
	}
}

func printExercise(w io.Writer, e models.TemplateExercise, units models.Units, tag, faint *color.Color) {
	group := "   "
	if e.SupersetTag != "" {
		group = tag.Sprintf("%-3s", e.SupersetTag)
	}

	var extras []string
	if e.RestSec > 0 {
		extras = append(extras, fmt.Sprintf("rest %ds", e.RestSec))
	}
	if e.WeightStep > 0 {
		extras = append(extras, fmt.Sprintf("+%g %s", e.WeightStep, units))
	}
	if e.Notes != "" {
		extras = append(extras, truncate(e.Notes, 40))
	}

	fmt.Fprintf(w, "  %s %s %d x %s", group, padRight(e.Name, 30), e.DefaultSets, e.RepsLabel())
	if len(extras) > 0 {
		faint.Fprintf(w, "  %s", strings.Join(extras, " · "))
	}
	fmt.Fprintln(w)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	generateCmd.Flags().StringVarP(&genLevel, "level", "l", "", "experience level")
	generateCmd.Flags().StringVarP(&genSplit, "split", "s", "", "split id")
	generateCmd.Flags().IntVarP(&genDays, "days", "d", 0, "training days per week, 1-7; others are clamped (default from config)")
	generateCmd.Flags().StringVarP(&genFocus, "focus", "f", "", "training focus")
	generateCmd.Flags().StringVar(&genFinisher, "finisher", "", "finisher option")
	generateCmd.Flags().StringVar(&genUnits, "units", "", "load units (lb, kg)")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "print JSON instead of a preview")
	generateCmd.Flags().BoolVar(&genSave, "save", false, "save the generated templates")
	rootCmd.AddCommand(generateCmd)
}
