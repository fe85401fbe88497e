// ABOUTME: Resolves a split and day count to workout names, and audits the library.
// ABOUTME: VerifyLibrary reports problems as data; it never fails.
package generator

import (
	"fmt"
	"strconv"

	"github.com/mfulp2020/forgefitness/internal/knowledge"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/prescription"
)

// FallbackWorkout is used when a split cannot be resolved.
const FallbackWorkout = "Full Body A"

// ClampDays bounds days to the supported weekly range.
func ClampDays(days int) int {
	return min(max(days, knowledge.MinDays), knowledge.MaxDays)
}

// ResolveDayNames returns the ordered workouts for splitID at days per week.
// Out-of-range counts are clamped. An unknown split, or one without a
// mapping for the count, resolves to the single FallbackWorkout.
func (g *Generator) ResolveDayNames(splitID string, days int) []string {
	days = ClampDays(days)
	s, ok := g.lib.Split(splitID)
	if !ok {
		g.logger.Debug("unknown split, using fallback", "split", splitID)
		return []string{FallbackWorkout}
	}
	names := s.DayNames(days)
	if names == nil {
		g.logger.Warn("split has no mapping for day count", "split", splitID, "days", days)
		return []string{FallbackWorkout}
	}
	return names
}

// VerifyLibrary walks every split and day count plus every workout
// prescription and returns one line per problem, in library order.
func (g *Generator) VerifyLibrary() []string {
	diags := []string{}
	for _, s := range g.lib.Splits() {
		for d := knowledge.MinDays; d <= knowledge.MaxDays; d++ {
			names, ok := s.Days[strconv.Itoa(d)]
			if !ok {
				diags = append(diags, fmt.Sprintf("split %s: no workouts for %d days", s.ID, d))
				continue
			}
			if len(names) != d {
				diags = append(diags, fmt.Sprintf("split %s: %d-day mapping lists %d workouts", s.ID, d, len(names)))
			}
			for _, name := range names {
				if !g.lib.HasWorkout(name) {
					diags = append(diags, fmt.Sprintf("split %s: %d-day mapping references unknown workout %q", s.ID, d, name))
				}
			}
		}
	}

	for _, name := range g.lib.WorkoutNames() {
		w, _ := g.lib.Workout(name)
		for _, e := range w.Exercises {
			diags = append(diags, g.verifyExercise(name, e)...)
		}
	}

	for _, d := range diags {
		g.logger.Warn("library diagnostic", "detail", d)
	}
	g.recorder.SetLibraryDiagnostics(len(diags))
	return diags
}

func (g *Generator) verifyExercise(workout string, e knowledge.ExerciseSpec) []string {
	var diags []string
	if !g.normalizer.Known(e.Name) {
		diags = append(diags, fmt.Sprintf("workout %q: exercise %q is not in the catalog", workout, e.Name))
	}
	if _, ok := e.Prescription(models.LevelIntermediate); !ok {
		return append(diags, fmt.Sprintf("workout %q: exercise %q has no prescription", workout, e.Name))
	}
	for _, level := range models.AllLevels {
		token, ok := e.SetsReps[level]
		if ok && prescription.IsFallback(token) {
			diags = append(diags, fmt.Sprintf("workout %q: exercise %q %s prescription %q is not understood", workout, e.Name, level, token))
		}
	}
	return diags
}
