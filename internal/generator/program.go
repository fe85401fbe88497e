// ABOUTME: Program assembly and finisher composition.
// ABOUTME: Generate is the single entry point used by the CLI, HTTP and MCP surfaces.
package generator

import (
	"time"

	"github.com/mfulp2020/forgefitness/internal/models"
)

// FinisherKind selects core or cardio finisher bands.
type FinisherKind string

const (
	FinisherKindCore   FinisherKind = "core"
	FinisherKindCardio FinisherKind = "cardio"
)

// Finisher exercise names.
const (
	CoreFinisherName   = "Core Finisher"
	CardioFinisherName = "Cardio Finisher"
)

// finisherMinutes holds the duration band per kind and level.
var finisherMinutes = map[FinisherKind]map[models.Level]models.RepRange{
	FinisherKindCore: {
		models.LevelBeginner:     {Min: 6, Max: 8},
		models.LevelIntermediate: {Min: 8, Max: 10},
		models.LevelAdvanced:     {Min: 10, Max: 12},
	},
	FinisherKindCardio: {
		models.LevelBeginner:     {Min: 8, Max: 10},
		models.LevelIntermediate: {Min: 10, Max: 12},
		models.LevelAdvanced:     {Min: 12, Max: 15},
	},
}

// MakeFinisher builds a single timed, unloaded, non-progressing exercise.
// Unknown levels use the intermediate band.
func MakeFinisher(name string, level models.Level, kind FinisherKind) models.TemplateExercise {
	bands := finisherMinutes[kind]
	if bands == nil {
		bands = finisherMinutes[FinisherKindCore]
	}
	r, ok := bands[level]
	if !ok {
		r = bands[models.LevelIntermediate]
	}
	ex := models.NewTemplateExercise(name, 1, r).
		WithRest(0).
		WithTimeUnit(models.TimeUnitMinutes)
	return *ex
}

// Finishers returns the finisher exercises for opt, core before cardio.
func Finishers(level models.Level, opt models.FinisherOption) []models.TemplateExercise {
	var out []models.TemplateExercise
	if opt.IncludesCore() {
		out = append(out, MakeFinisher(CoreFinisherName, level, FinisherKindCore))
	}
	if opt.IncludesCardio() {
		out = append(out, MakeFinisher(CardioFinisherName, level, FinisherKindCardio))
	}
	return out
}

// Generate resolves the split, builds one template per day and appends
// finishers to each. Identical requests give identical structure with new IDs.
func (g *Generator) Generate(req models.GenerationRequest) []models.Template {
	start := time.Now()

	names := g.ResolveDayNames(req.SplitID, req.DaysPerWeek)
	out := make([]models.Template, 0, len(names))
	for _, name := range names {
		t := g.BuildTemplate(name, req.Level, req.Focus)
		if t == nil {
			continue
		}
		t.Exercises = append(t.Exercises, Finishers(req.Level, req.Finisher)...)
		out = append(out, *t)
	}

	elapsed := time.Since(start)
	g.recorder.ObserveProgram(req.SplitID, req.Focus, len(out), elapsed)
	g.logger.Debug("generated program",
		"split", req.SplitID,
		"days", len(names),
		"templates", len(out),
		"level", req.Level,
		"focus", req.Focus,
		"finisher", req.Finisher,
		"elapsed", elapsed,
	)
	return out
}
