// ABOUTME: Builds one Template from a named workout definition.
// ABOUTME: Expand, drop filler, build, adjust, then group supersets.
package generator

import (
	"regexp"

	"github.com/mfulp2020/forgefitness/internal/heuristics"
	"github.com/mfulp2020/forgefitness/internal/models"
)

// MaxLibraryExercises caps the flattened pick-list view of a workout.
const MaxLibraryExercises = 6

const pullUpProgression = "Pull-Up (progression)"

var latPulldownRe = regexp.MustCompile(`(?i)\blat\s*pull[- ]?down`)

// expandAdvancedPulldown gives advanced trainees a pull-up progression ahead
// of any lat pulldown, both on the pulldown's prescription.
// TODO: replace with per-level substitutions declared in workouts.yaml.
func expandAdvancedPulldown(name string, level models.Level) []string {
	if level == models.LevelAdvanced && latPulldownRe.MatchString(name) {
		return []string{pullUpProgression, name}
	}
	return []string{name}
}

// BuildTemplate returns the template for the named workout, or nil when the
// library does not define it.
func (g *Generator) BuildTemplate(name string, level models.Level, focus models.Focus) *models.Template {
	exs, ok := g.buildExercises(name, level, focus)
	if !ok {
		return nil
	}
	return models.NewTemplate(name, exs)
}

// LibraryExercises is the flattened pick-list view of a workout: the same
// exercises BuildTemplate produces, capped at MaxLibraryExercises.
func (g *Generator) LibraryExercises(name string, level models.Level, focus models.Focus) []models.TemplateExercise {
	exs, ok := g.buildExercises(name, level, focus)
	if !ok {
		return nil
	}
	if len(exs) > MaxLibraryExercises {
		exs = exs[:MaxLibraryExercises]
	}
	return exs
}

func (g *Generator) buildExercises(name string, level models.Level, focus models.Focus) ([]models.TemplateExercise, bool) {
	w, ok := g.lib.Workout(name)
	if !ok {
		g.logger.Warn("unknown workout", "workout", name)
		return nil, false
	}

	exs := make([]models.TemplateExercise, 0, len(w.Exercises))
	for _, es := range w.Exercises {
		// An exercise with no token at any level parses to the default.
		token, _ := es.Prescription(level)
		for _, raw := range expandAdvancedPulldown(es.Name, level) {
			if heuristics.IsFiller(raw) || heuristics.IsFiller(g.normalizer.Normalize(raw)) {
				continue
			}
			ex, class := g.buildExercise(raw, token, focus)
			ex.Notes = es.Notes
			exs = append(exs, Adjust(ex, focus, class.Accessory()))
		}
	}
	return GroupSupersets(exs, focus), true
}
