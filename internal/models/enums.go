// ABOUTME: Enumerations for program generation inputs and prescription shapes.
// ABOUTME: Level, Focus, FinisherOption, SetType, TimeUnit and Units with parse helpers.
package models

import (
	"fmt"
	"strings"
)

// Level is the trainee's experience level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// AllLevels returns all valid levels in ascending order.
var AllLevels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Focus is the training goal that drives rest, volume and grouping rules.
type Focus string

const (
	FocusGeneral     Focus = "general"
	FocusHypertrophy Focus = "hypertrophy"
	FocusStrength    Focus = "strength"
	FocusFatLoss     Focus = "fat_loss"
	FocusAthletic    Focus = "athletic"
)

// AllFocuses returns all valid focuses.
var AllFocuses = []Focus{FocusGeneral, FocusHypertrophy, FocusStrength, FocusFatLoss, FocusAthletic}

// FinisherOption selects which finisher templates are appended to a program.
type FinisherOption string

const (
	FinisherNone       FinisherOption = "none"
	FinisherCore       FinisherOption = "core"
	FinisherCardio     FinisherOption = "cardio"
	FinisherCoreCardio FinisherOption = "core_cardio"
)

// AllFinisherOptions returns all valid finisher options.
var AllFinisherOptions = []FinisherOption{FinisherNone, FinisherCore, FinisherCardio, FinisherCoreCardio}

// IncludesCore reports whether the option appends a core finisher.
func (f FinisherOption) IncludesCore() bool {
	return f == FinisherCore || f == FinisherCoreCardio
}

// IncludesCardio reports whether the option appends a cardio finisher.
func (f FinisherOption) IncludesCardio() bool {
	return f == FinisherCardio || f == FinisherCoreCardio
}

// SetType describes how an exercise's sets are grouped with neighbours.
type SetType string

const (
	SetTypeNone     SetType = ""
	SetTypeNormal   SetType = "normal"
	SetTypeSuperset SetType = "superset"
	SetTypeTriset   SetType = "triset"
	SetTypeCircuit  SetType = "circuit"
)

// TimeUnit marks a rep range as a duration instead of a count.
type TimeUnit string

const (
	TimeUnitNone    TimeUnit = ""
	TimeUnitSeconds TimeUnit = "seconds"
	TimeUnitMinutes TimeUnit = "minutes"
)

// IsTimed reports whether the unit is a duration.
func (u TimeUnit) IsTimed() bool {
	return u != TimeUnitNone
}

// Units is the display unit for loads. Generation never depends on it.
type Units string

const (
	UnitsPounds    Units = "lb"
	UnitsKilograms Units = "kg"
)

// ParseLevel validates a level string.
func ParseLevel(s string) (Level, error) {
	for _, l := range AllLevels {
		if string(l) == strings.ToLower(s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid level %q (valid: beginner, intermediate, advanced)", s)
}

// ParseFocus validates a focus string. "fat-loss" is accepted as an alias.
func ParseFocus(s string) (Focus, error) {
	norm := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	for _, f := range AllFocuses {
		if string(f) == norm {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid focus %q (valid: general, hypertrophy, strength, fat_loss, athletic)", s)
}

// ParseFinisherOption validates a finisher option string.
func ParseFinisherOption(s string) (FinisherOption, error) {
	norm := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	if norm == "" {
		return FinisherNone, nil
	}
	for _, f := range AllFinisherOptions {
		if string(f) == norm {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid finisher %q (valid: none, core, cardio, core_cardio)", s)
}

// ParseUnits validates a unit string.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(s) {
	case "lb", "lbs":
		return UnitsPounds, nil
	case "kg", "kgs":
		return UnitsKilograms, nil
	}
	return "", fmt.Errorf("invalid units %q (valid: lb, kg)", s)
}
