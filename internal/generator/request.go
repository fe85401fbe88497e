// ABOUTME: Prepares a caller's generation request from defaults and parses its enums.
// ABOUTME: Split and day count are never rejected; RequestWarnings explains any substitution.
package generator

import (
	"fmt"

	"github.com/mfulp2020/forgefitness/internal/knowledge"
	"github.com/mfulp2020/forgefitness/internal/models"
)

// PrepareRequest fills empty enum fields and the split of req from defaults,
// then parses every enum. DaysPerWeek is taken as given, so callers seed it
// from defaults when the user did not choose one. An unknown split or an
// out-of-range day count is left for Generate to absorb.
func (g *Generator) PrepareRequest(req, defaults models.GenerationRequest) (models.GenerationRequest, error) {
	var err error
	if req.Level == "" {
		req.Level = defaults.Level
	} else if req.Level, err = models.ParseLevel(string(req.Level)); err != nil {
		return req, err
	}
	if req.Focus == "" {
		req.Focus = defaults.Focus
	} else if req.Focus, err = models.ParseFocus(string(req.Focus)); err != nil {
		return req, err
	}
	if req.Finisher == "" {
		req.Finisher = defaults.Finisher
	} else if req.Finisher, err = models.ParseFinisherOption(string(req.Finisher)); err != nil {
		return req, err
	}
	if req.Units == "" {
		req.Units = defaults.Units
	} else if req.Units, err = models.ParseUnits(string(req.Units)); err != nil {
		return req, err
	}
	if req.SplitID == "" {
		req.SplitID = defaults.SplitID
	}
	return req, nil
}

// RequestWarnings describes how Generate will reinterpret req: a clamped day
// count, or a split replaced by FallbackWorkout. Nil when req is used as is.
func (g *Generator) RequestWarnings(req models.GenerationRequest) []string {
	var warnings []string
	days := ClampDays(req.DaysPerWeek)
	if days != req.DaysPerWeek {
		warnings = append(warnings, fmt.Sprintf("days_per_week %d is outside %d-%d, using %d",
			req.DaysPerWeek, knowledge.MinDays, knowledge.MaxDays, days))
	}

	s, ok := g.lib.Split(req.SplitID)
	switch {
	case !ok:
		warnings = append(warnings, fmt.Sprintf("unknown split %q, using %s", req.SplitID, FallbackWorkout))
	case s.DayNames(days) == nil:
		warnings = append(warnings, fmt.Sprintf("split %s has no %d-day mapping, using %s", req.SplitID, days, FallbackWorkout))
	}
	return warnings
}
