// ABOUTME: Name-pattern classification plus rest and load-increment rules.
// ABOUTME: Decides compound, conditioning and filler exercises for the generator.
package heuristics

import (
	"regexp"
	"strings"

	"github.com/mfulp2020/forgefitness/internal/models"
)

// Load increments, in the user's display unit.
const (
	StandardWeightStep  = 5.0
	IsolationWeightStep = 2.5
)

// Class is the movement classification of an exercise name.
type Class struct {
	Compound     bool `json:"compound"`
	Conditioning bool `json:"conditioning"`
}

// Accessory reports whether the exercise is neither compound nor conditioning.
func (c Class) Accessory() bool {
	return !c.Compound && !c.Conditioning
}

var (
	compoundRe = regexp.MustCompile(`\b(squat|deadlift|bench|row|pull[- ]?up|chin[- ]?up|push[- ]?up|press|lunge|dip|clean|snatch|jerk|thruster|hip thrust|good morning|step[- ]?up|pulldown|pull[- ]?down)s?\b`)

	isolationRe = regexp.MustCompile(`\b(curls?|raises?|fly|flye|flyes|flies|extensions?|kickbacks?|pushdowns?|push[- ]?downs?|face pulls?|pullovers?|lateral|rear delt|crossovers?|pec deck|skull ?crushers?|calf|calves|wrist|shrugs?)\b`)

	conditioningRe = regexp.MustCompile(`\b(zone ?2|intervals?|mobility|carry|carries|sled|bike|rower|rowing|erg|jumps?|sprints?|burpees?|battle ropes?|stretch(es|ing)?|foam roll(ing)?|hiit|liss|conditioning|circuit|yoga|incline walk|shuttles?|med(icine)? ball|slams?|prowler|swim(ming)?|jump rope|skipping)\b`)

	coreFillerRe = regexp.MustCompile(`\b(planks?|crunch(es)?|sit[- ]?ups?|ab wheel|rollouts?|dead ?bugs?|bird ?dogs?|hollow (body|hold)|leg raises?|knee raises?|russian twists?|pallof|v[- ]?ups?|flutter kicks?|mountain climbers?|toe touch(es)?|core|abs?)\b`)

	cardioFillerRe = regexp.MustCompile(`\b(cardio|treadmill|elliptical|stair ?(master|climber)|stepmill|jog(ging)?|warm[- ]?up|cool[- ]?down)\b`)
)

// Classify derives the movement class by name pattern. Isolation patterns
// veto compound, and conditioning wins over both.
func Classify(name string) Class {
	s := strings.ToLower(name)
	c := Class{
		Conditioning: conditioningRe.MatchString(s),
	}
	if !c.Conditioning {
		c.Compound = compoundRe.MatchString(s) && !isolationRe.MatchString(s)
	}
	return c
}

// IsFiller reports pure core or pure cardio filler, which generated
// templates leave to the finisher.
func IsFiller(name string) bool {
	s := strings.ToLower(name)
	return coreFillerRe.MatchString(s) || cardioFillerRe.MatchString(s)
}

// IsIsolation reports single-joint movements loaded in small increments.
func IsIsolation(name string) bool {
	return isolationRe.MatchString(strings.ToLower(name))
}

type restPair struct {
	compound  int
	accessory int
}

var restByFocus = map[models.Focus]restPair{
	models.FocusStrength:    {compound: 180, accessory: 120},
	models.FocusHypertrophy: {compound: 150, accessory: 90},
	models.FocusFatLoss:     {compound: 90, accessory: 60},
	models.FocusAthletic:    {compound: 180, accessory: 120},
	models.FocusGeneral:     {compound: 120, accessory: 90},
}

var defaultRest = restByFocus[models.FocusGeneral]

// RestSeconds picks the rest period. An explicit override from the
// prescription always wins and conditioning work gets none.
func RestSeconds(focus models.Focus, class Class, override *int) int {
	if override != nil {
		return max(*override, 0)
	}
	if class.Conditioning {
		return 0
	}
	pair, ok := restByFocus[focus]
	if !ok {
		pair = defaultRest
	}
	if class.Compound {
		return pair.compound
	}
	return pair.accessory
}

// WeightStep is the load increment for progression: none for timed work,
// small for isolation lifts.
func WeightStep(name string, unit models.TimeUnit) float64 {
	if unit.IsTimed() {
		return 0
	}
	if IsIsolation(name) {
		return IsolationWeightStep
	}
	return StandardWeightStep
}
