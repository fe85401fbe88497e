// ABOUTME: Exercise catalog tree and name-key folding.
// ABOUTME: Leaves are the canonical exercise names the normalizer resolves to.
package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category is a node in the catalog; groups nest arbitrarily deep.
type Category struct {
	Name      string     `yaml:"name" json:"name"`
	Exercises []string   `yaml:"exercises,omitempty" json:"exercises,omitempty"`
	Groups    []Category `yaml:"groups,omitempty" json:"groups,omitempty"`
}

// Catalog is the categorized list of canonical exercise names.
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Leaves returns every exercise name, depth first, in declaration order.
func (c Catalog) Leaves() []string {
	var out []string
	for _, cat := range c.Categories {
		out = cat.appendLeaves(out)
	}
	return out
}

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	out := Catalog{Categories: make([]Category, len(c.Categories))}
	for i, cat := range c.Categories {
		out.Categories[i] = cat.clone()
	}
	return out
}

func (c Category) clone() Category {
	out := Category{Name: c.Name, Exercises: append([]string(nil), c.Exercises...)}
	if c.Groups != nil {
		out.Groups = make([]Category, len(c.Groups))
		for i, g := range c.Groups {
			out.Groups[i] = g.clone()
		}
	}
	return out
}

func (c Category) appendLeaves(out []string) []string {
	out = append(out, c.Exercises...)
	for _, g := range c.Groups {
		out = g.appendLeaves(out)
	}
	return out
}

var (
	trailingParenRe = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
	dashNoteRe      = regexp.MustCompile(`\s+[-–—]\s+.*$`)
)

// Clean strips trailing "(...)" and " - note" annotations. Hyphens inside a
// name such as "Pull-Up" are kept.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = dashNoteRe.ReplaceAllString(s, "")
	for {
		next := trailingParenRe.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	return strings.Join(strings.Fields(s), " ")
}

// Key folds a name for comparison: accents removed, case folded and every
// non-alphanumeric rune dropped, so "Pull-Up", "pull up" and "PULLUP" agree.
func Key(name string) string {
	// Transformers carry state; build a fresh chain per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), cases.Fold())
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = strings.ToLower(name)
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, folded)
}

// stems returns the key followed by its plural-stripped forms.
func stems(key string) []string {
	out := []string{key}
	if len(key) <= 3 {
		return out
	}
	if strings.HasSuffix(key, "es") {
		out = append(out, key[:len(key)-2])
	}
	if strings.HasSuffix(key, "s") {
		out = append(out, key[:len(key)-1])
	}
	return out
}
