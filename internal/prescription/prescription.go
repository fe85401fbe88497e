// ABOUTME: Free-text prescription grammar ("3x8-10", "10x:30/:90", "1 set AMRAP").
// ABOUTME: Ordered first-match rules produce a tagged Prescription and never fail.
package prescription

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mfulp2020/forgefitness/internal/models"
)

// Kind identifies which grammar rule produced a Prescription.
type Kind int

const (
	KindFallback Kind = iota
	KindInterval
	KindRounds
	KindAMRAP
	KindSets
	KindMinutes
	KindRepSeconds
	KindSeconds
	KindReps
)

var kindNames = map[Kind]string{
	KindFallback:   "fallback",
	KindInterval:   "interval",
	KindRounds:     "rounds",
	KindAMRAP:      "amrap",
	KindSets:       "sets",
	KindMinutes:    "minutes",
	KindRepSeconds: "rep_seconds",
	KindSeconds:    "seconds",
	KindReps:       "reps",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown prescription kind %q", b)
}

// Prescription is the structured form of one token.
type Prescription struct {
	Kind     Kind            `json:"kind"`
	Sets     int             `json:"sets"`
	Reps     models.RepRange `json:"reps"`
	TimeUnit models.TimeUnit `json:"time_unit,omitempty"`
	RestSec  *int            `json:"rest_sec,omitempty"`
	AMRAP    bool            `json:"amrap,omitempty"`
}

// Default is returned for tokens no rule recognizes.
var Default = Prescription{
	Kind: KindFallback,
	Sets: 1,
	Reps: models.RepRange{Min: 8, Max: 12},
}

// AMRAPRange is the rep window assumed for as-many-reps-as-possible sets.
var AMRAPRange = models.RepRange{Min: 8, Max: 20}

// Grammar rules, tried in declaration order. A range is "<N>" or "<N>-<M>".
var (
	intervalRe   = regexp.MustCompile(`^(\d+)\s*x\s*:?(\d+)\s*[s:]?\s*/\s*:?(\d+)\s*s?$`)
	roundsRe     = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*rounds?(?:\s+(?:of\s+)?(\d+)(?:\s*-\s*(\d+))?)?(?:\s*reps?)?$`)
	amrapRe      = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*(?:sets?\s*)?(?:x\s*)?amrap$`)
	setsRe       = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*sets?$`)
	minutesRe    = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*min(?:ute)?s?$`)
	repSecondsRe = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*x\s*(\d+)(?:\s*-\s*(\d+))?\s*s(?:ec(?:ond)?s?)?(?:\s.*)?$`)
	secondsRe    = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*s(?:ec(?:ond)?s?)?$`)
	repsRe       = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*x\s*(\d+)(?:\s*-\s*(\d+))?([\s/+].*)?$`)
)

// timeUnitWords may not start the free annotation after "<N>x<P>"; a token
// like "3x10 min" is not a rep prescription.
var timeUnitWords = map[string]bool{
	"s": true, "sec": true, "secs": true, "second": true, "seconds": true,
	"min": true, "mins": true, "minute": true, "minutes": true,
}

type rule struct {
	re    *regexp.Regexp
	build func(m []string) (Prescription, bool)
}

var rules = []rule{
	{intervalRe, buildInterval},
	{roundsRe, buildRounds},
	{amrapRe, buildAMRAP},
	{setsRe, buildSets},
	{minutesRe, buildMinutes},
	{repSecondsRe, buildRepSeconds},
	{secondsRe, buildSeconds},
	{repsRe, buildReps},
}

var tokenReplacer = strings.NewReplacer(
	"×", "x",
	"х", "x", // cyrillic ha
	"–", "-",
	"—", "-",
)

// Normalize lowercases the token, unifies multiplication signs and dashes
// and collapses whitespace.
func Normalize(token string) string {
	s := tokenReplacer.Replace(strings.ToLower(token))
	return strings.Join(strings.Fields(s), " ")
}

// Parse converts a token into a Prescription. Tokens that match no rule get Default.
func Parse(token string) Prescription {
	s := Normalize(token)
	if s == "" {
		return Default
	}
	for _, r := range rules {
		m := r.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if p, ok := r.build(m); ok {
			return p.clamped()
		}
	}
	return Default
}

// IsFallback reports whether token would only be understood as the default.
func IsFallback(token string) bool {
	return Parse(token).Kind == KindFallback
}

func buildInterval(m []string) (Prescription, bool) {
	// Work and rest must be marked as seconds by a colon or an "s" somewhere.
	if !strings.ContainsAny(m[0], ":s") {
		return Prescription{}, false
	}
	sets, work, rest, ok := atoi3(m[1], m[2], m[3])
	if !ok {
		return Prescription{}, false
	}
	return Prescription{
		Kind:     KindInterval,
		Sets:     sets,
		Reps:     models.RepRange{Min: work, Max: work},
		TimeUnit: models.TimeUnitSeconds,
		RestSec:  &rest,
	}, true
}

func buildRounds(m []string) (Prescription, bool) {
	sets, ok := maxOf(m[1], m[2])
	if !ok {
		return Prescription{}, false
	}
	reps := models.RepRange{Min: 1, Max: 1}
	if m[3] != "" {
		if reps, ok = rangeOf(m[3], m[4]); !ok {
			return Prescription{}, false
		}
	}
	return Prescription{Kind: KindRounds, Sets: sets, Reps: reps}, true
}

func buildAMRAP(m []string) (Prescription, bool) {
	sets, ok := maxOf(m[1], m[2])
	if !ok {
		return Prescription{}, false
	}
	return Prescription{Kind: KindAMRAP, Sets: sets, Reps: AMRAPRange, AMRAP: true}, true
}

func buildSets(m []string) (Prescription, bool) {
	sets, ok := maxOf(m[1], m[2])
	if !ok {
		return Prescription{}, false
	}
	return Prescription{Kind: KindSets, Sets: sets, Reps: models.RepRange{Min: 1, Max: 1}}, true
}

func buildMinutes(m []string) (Prescription, bool) {
	r, ok := rangeOf(m[1], m[2])
	if !ok {
		return Prescription{}, false
	}
	return Prescription{Kind: KindMinutes, Sets: 1, Reps: r, TimeUnit: models.TimeUnitMinutes}, true
}

func buildRepSeconds(m []string) (Prescription, bool) {
	p, ok := setsAndRange(KindRepSeconds, m)
	p.TimeUnit = models.TimeUnitSeconds
	return p, ok
}

func buildSeconds(m []string) (Prescription, bool) {
	r, ok := rangeOf(m[1], m[2])
	if !ok {
		return Prescription{}, false
	}
	return Prescription{Kind: KindSeconds, Sets: 1, Reps: r, TimeUnit: models.TimeUnitSeconds}, true
}

func buildReps(m []string) (Prescription, bool) {
	if words := strings.Fields(m[5]); len(words) > 0 && timeUnitWords[words[0]] {
		return Prescription{}, false
	}
	return setsAndRange(KindReps, m)
}

// setsAndRange reads the shared "<N>[-<M>]x<P>[-<Q>]" captures.
func setsAndRange(kind Kind, m []string) (Prescription, bool) {
	sets, ok := maxOf(m[1], m[2])
	if !ok {
		return Prescription{}, false
	}
	r, ok := rangeOf(m[3], m[4])
	if !ok {
		return Prescription{}, false
	}
	return Prescription{Kind: kind, Sets: sets, Reps: r}, true
}

func (p Prescription) clamped() Prescription {
	if p.Sets < 1 {
		p.Sets = 1
	}
	if p.Reps.Max < p.Reps.Min {
		p.Reps.Min, p.Reps.Max = p.Reps.Max, p.Reps.Min
	}
	return p
}

// maxOf returns max(a, b) where b may be empty.
func maxOf(a, b string) (int, bool) {
	r, ok := rangeOf(a, b)
	if !ok {
		return 0, false
	}
	return max(r.Min, r.Max), true
}

// rangeOf builds {a, b}, or {a, a} when b is empty.
func rangeOf(a, b string) (models.RepRange, bool) {
	lo, err := strconv.Atoi(a)
	if err != nil {
		return models.RepRange{}, false
	}
	hi := lo
	if b != "" {
		if hi, err = strconv.Atoi(b); err != nil {
			return models.RepRange{}, false
		}
	}
	return models.RepRange{Min: lo, Max: hi}, true
}

func atoi3(a, b, c string) (int, int, int, bool) {
	x, err1 := strconv.Atoi(a)
	y, err2 := strconv.Atoi(b)
	z, err3 := strconv.Atoi(c)
	return x, y, z, err1 == nil && err2 == nil && err3 == nil
}

// String renders the prescription as a canonical token.
func (p Prescription) String() string {
	switch p.Kind {
	case KindInterval:
		rest := 0
		if p.RestSec != nil {
			rest = *p.RestSec
		}
		return fmt.Sprintf("%dx:%d/:%d", p.Sets, p.Reps.Min, rest)
	case KindRounds:
		if p.Reps.Min == 1 && p.Reps.Max == 1 {
			return fmt.Sprintf("%d rounds", p.Sets)
		}
		return fmt.Sprintf("%d rounds %s", p.Sets, p.Reps)
	case KindAMRAP:
		return fmt.Sprintf("%d %s AMRAP", p.Sets, plural(p.Sets, "set"))
	case KindSets:
		return fmt.Sprintf("%d %s", p.Sets, plural(p.Sets, "set"))
	case KindMinutes:
		return fmt.Sprintf("%s min", p.Reps)
	case KindRepSeconds:
		return fmt.Sprintf("%dx%ss", p.Sets, p.Reps)
	case KindSeconds:
		return fmt.Sprintf("%ss", p.Reps)
	default:
		return fmt.Sprintf("%dx%s", p.Sets, p.Reps)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
