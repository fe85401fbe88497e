// ABOUTME: Template and TemplateExercise models for generated training days.
// ABOUTME: Every generation mints fresh UUIDs; structure is compared without them.
package models

import (
	"fmt"

	"github.com/google/uuid"
)

// RepRange is an inclusive range of reps, seconds or minutes.
type RepRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// String renders the range as "8-12", or "8" when both ends match.
func (r RepRange) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// TemplateExercise is one prescribed exercise within a Template.
type TemplateExercise struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	DefaultSets  int       `json:"default_sets" yaml:"default_sets"`
	RepRange     RepRange  `json:"rep_range" yaml:"rep_range"`
	RestSec      int       `json:"rest_sec" yaml:"rest_sec"`
	WeightStep   float64   `json:"weight_step" yaml:"weight_step"`
	AutoProgress bool      `json:"auto_progress" yaml:"auto_progress"`
	TimeUnit     TimeUnit  `json:"time_unit,omitempty" yaml:"time_unit,omitempty"`
	SetType      SetType   `json:"set_type,omitempty" yaml:"set_type,omitempty"`
	SupersetTag  string    `json:"superset_tag,omitempty" yaml:"superset_tag,omitempty"`
	AMRAP        bool      `json:"amrap,omitempty" yaml:"amrap,omitempty"`
	Notes        string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewTemplateExercise creates a TemplateExercise with a generated UUID.
func NewTemplateExercise(name string, sets int, reps RepRange) *TemplateExercise {
	return &TemplateExercise{
		ID:          uuid.New(),
		Name:        name,
		DefaultSets: sets,
		RepRange:    reps,
	}
}

// RepsLabel renders the prescribed reps with their unit: "8-12", "30-45s",
// "10-12 min", or "AMRAP".
func (e TemplateExercise) RepsLabel() string {
	if e.AMRAP {
		return "AMRAP"
	}
	switch e.TimeUnit {
	case TimeUnitSeconds:
		return e.RepRange.String() + "s"
	case TimeUnitMinutes:
		return e.RepRange.String() + " min"
	}
	return e.RepRange.String()
}

// WithRest sets the rest period in seconds.
func (e *TemplateExercise) WithRest(sec int) *TemplateExercise {
	e.RestSec = sec
	return e
}

// WithTimeUnit marks the rep range as a duration.
func (e *TemplateExercise) WithTimeUnit(u TimeUnit) *TemplateExercise {
	e.TimeUnit = u
	return e
}

// WithNotes sets coaching notes on the exercise.
func (e *TemplateExercise) WithNotes(notes string) *TemplateExercise {
	e.Notes = notes
	return e
}

// Template is a named training day.
type Template struct {
	ID        uuid.UUID          `json:"id" yaml:"id"`
	Name      string             `json:"name" yaml:"name"`
	Exercises []TemplateExercise `json:"exercises" yaml:"exercises"`
}

// NewTemplate creates a Template with a generated UUID.
func NewTemplate(name string, exercises []TemplateExercise) *Template {
	return &Template{
		ID:        uuid.New(),
		Name:      name,
		Exercises: exercises,
	}
}

// GenerationRequest carries the user's program choices.
type GenerationRequest struct {
	Level       Level          `json:"level"`
	SplitID     string         `json:"split_id"`
	DaysPerWeek int            `json:"days_per_week"`
	Focus       Focus          `json:"focus"`
	Finisher    FinisherOption `json:"finisher"`
	Units       Units          `json:"units,omitempty"`
}
