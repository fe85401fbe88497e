// ABOUTME: Builds one TemplateExercise from a raw name and prescription token.
// ABOUTME: Also holds the accessory set-count adjuster applied per focus.
package generator

import (
	"math"

	"github.com/mfulp2020/forgefitness/internal/heuristics"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/prescription"
)

// BuildExercise normalizes rawName, parses token and derives rest, load step
// and progression. The caller picks the token for the trainee's level.
func (g *Generator) BuildExercise(rawName, token string, focus models.Focus) models.TemplateExercise {
	ex, _ := g.buildExercise(rawName, token, focus)
	return ex
}

func (g *Generator) buildExercise(rawName, token string, focus models.Focus) (models.TemplateExercise, heuristics.Class) {
	name := g.normalizer.Normalize(rawName)
	p := prescription.Parse(token)
	class := heuristics.Classify(name)

	ex := models.NewTemplateExercise(name, p.Sets, p.Reps).
		WithRest(heuristics.RestSeconds(focus, class, p.RestSec)).
		WithTimeUnit(p.TimeUnit)
	ex.WeightStep = heuristics.WeightStep(name, p.TimeUnit)
	ex.AutoProgress = !class.Conditioning
	ex.AMRAP = p.AMRAP
	return *ex, class
}

// Adjust tunes the set count of accessory work for focus. Compound and
// conditioning exercises pass through. The result always has at least one set.
func Adjust(ex models.TemplateExercise, focus models.Focus, isAccessory bool) models.TemplateExercise {
	if !isAccessory {
		return ex
	}
	sets := ex.DefaultSets
	switch focus {
	case models.FocusStrength:
		sets = int(math.Round(float64(sets) * 0.8))
	case models.FocusHypertrophy:
		sets++
	case models.FocusGeneral:
		sets--
	}
	ex.DefaultSets = max(1, sets)
	return ex
}
