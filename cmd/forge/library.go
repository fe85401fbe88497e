// ABOUTME: CLI commands for inspecting the knowledge base.
// ABOUTME: splits, verify, parse, normalize and library.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mfulp2020/forgefitness/internal/catalog"
	"github.com/mfulp2020/forgefitness/internal/knowledge"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/prescription"
)

var (
	libraryLevel string
	libraryFocus string
)

var splitsCmd = &cobra.Command{
	Use:   "splits",
	Short: "List weekly splits",
	Long: `List every split with who it suits and the workouts it schedules
for each weekly day count from 1 to 7.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		for _, s := range gen.Library().Splits() {
			bold.Fprintf(out, "%s", s.ID)
			fmt.Fprintf(out, "  %s\n", s.Name)
			if s.BestFor != "" {
				faint.Fprintf(out, "  %s\n", s.BestFor)
			}
			for d := knowledge.MinDays; d <= knowledge.MaxDays; d++ {
				names := s.DayNames(d)
				if names == nil {
					continue
				}
				fmt.Fprintf(out, "  %d: %s\n", d, strings.Join(names, ", "))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the knowledge base for problems",
	Long: `Check every split mapping and every prescription token.

Exits non-zero when any problem is found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		diags := gen.VerifyLibrary()
		if len(diags) == 0 {
			color.New(color.FgGreen).Fprintln(out, "✓ Library OK")
			return nil
		}
		yellow := color.New(color.FgYellow)
		for _, d := range diags {
			yellow.Fprintf(out, "✗ %s\n", d)
		}
		return fmt.Errorf("library has %d problems", len(diags))
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <token>...",
	Short: "Parse prescription tokens",
	Long: `Show how sets/reps tokens are understood.

EXAMPLES:

  forge parse 4x6-8
  forge parse "3 rounds of 10" "8x20s/10s" "3x30s"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		yellow := color.New(color.FgYellow)

		for _, token := range args {
			p := prescription.Parse(token)
			fmt.Fprintf(out, "%s → %s", padRight(token, 18), p.String())
			faint.Fprintf(out, "  (%s)", p.Kind)
			if p.Kind == prescription.KindFallback {
				yellow.Fprint(out, "  not recognized")
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <name>...",
	Short: "Map exercise names onto the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		yellow := color.New(color.FgYellow)
		n := gen.Normalizer()

		for _, raw := range args {
			r := n.Lookup(raw)
			fmt.Fprintf(out, "%s → %s", padRight(raw, 24), r.Name)
			if r.Match == catalog.MatchNone {
				yellow.Fprint(out, "  (no catalog match)")
			} else {
				faint.Fprintf(out, "  (%s)", r.Match)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var libraryCmd = &cobra.Command{
	Use:   "library [workout]",
	Short: "Show a workout from the knowledge base",
	Long: `Show a workout as the exercises the generator would build, capped at
six for a quick pick list. Without an argument, list all workout names.

EXAMPLES:

  forge library
  forge library "Upper A" --level advanced
  forge library "Leg Day" --focus strength`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		lib := gen.Library()

		if len(args) == 0 {
			for _, name := range lib.WorkoutNames() {
				fmt.Fprintln(out, name)
			}
			return nil
		}

		name := args[0]
		if !lib.HasWorkout(name) {
			return fmt.Errorf("unknown workout: %s", name)
		}

		defaults := cfg.DefaultRequest()
		level, focus := defaults.Level, defaults.Focus
		var err error
		if libraryLevel != "" {
			if level, err = models.ParseLevel(libraryLevel); err != nil {
				return err
			}
		}
		if libraryFocus != "" {
			if focus, err = models.ParseFocus(libraryFocus); err != nil {
				return err
			}
		}

		faint := color.New(color.Faint)
		color.New(color.Bold).Fprintf(out, "%s", name)
		faint.Fprintf(out, "  %s · %s\n", level, focus)
		for i, e := range gen.LibraryExercises(name, level, focus) {
			fmt.Fprintf(out, "%d. %s %d x %s\n", i+1, padRight(e.Name, 30), e.DefaultSets, e.RepsLabel())
		}
		return nil
	},
}

func init() {
	libraryCmd.Flags().StringVarP(&libraryLevel, "level", "l", "", "experience level")
	libraryCmd.Flags().StringVarP(&libraryFocus, "focus", "f", "", "training focus")

	rootCmd.AddCommand(splitsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(libraryCmd)
}
