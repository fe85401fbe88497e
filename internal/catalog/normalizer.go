// ABOUTME: Maps raw knowledge-base exercise names onto canonical catalog names.
// ABOUTME: Alias table first, catalog index second, plural-insensitive match last.
package catalog

import "sort"

// Match describes how a name was resolved.
type Match string

const (
	MatchAlias   Match = "alias"
	MatchCatalog Match = "catalog"
	MatchFuzzy   Match = "fuzzy"
	MatchNone    Match = "none"
)

// Result is the outcome of a lookup.
type Result struct {
	Raw     string `json:"raw"`
	Cleaned string `json:"cleaned"`
	Name    string `json:"name"`
	Match   Match  `json:"match"`
}

// Normalizer is immutable once built and safe for concurrent use.
type Normalizer struct {
	aliases     map[string]string
	index       map[string]string
	aliasStems  map[string]string
	catalogStem map[string]string
}

// NewNormalizer indexes every catalog leaf and alias by Key. Earlier entries
// win on key collisions.
func NewNormalizer(cat Catalog, aliases map[string]string) *Normalizer {
	n := &Normalizer{
		aliases:     make(map[string]string, len(aliases)),
		index:       make(map[string]string),
		aliasStems:  make(map[string]string),
		catalogStem: make(map[string]string),
	}

	// Sort so collisions resolve the same way on every load.
	from := make([]string, 0, len(aliases))
	for k := range aliases {
		from = append(from, k)
	}
	sort.Strings(from)
	for _, raw := range from {
		key := Key(Clean(raw))
		if key == "" {
			continue
		}
		putFirst(n.aliases, key, aliases[raw])
		for _, s := range stems(key) {
			putFirst(n.aliasStems, s, aliases[raw])
		}
	}

	for _, name := range cat.Leaves() {
		key := Key(name)
		if key == "" {
			continue
		}
		putFirst(n.index, key, name)
		for _, s := range stems(key) {
			putFirst(n.catalogStem, s, name)
		}
	}
	return n
}

func putFirst(m map[string]string, k, v string) {
	if _, ok := m[k]; !ok {
		m[k] = v
	}
}

// Normalize returns the canonical name for raw, or the cleaned raw name when
// nothing matches.
func (n *Normalizer) Normalize(raw string) string {
	return n.Lookup(raw).Name
}

// Lookup resolves raw and reports which table matched.
func (n *Normalizer) Lookup(raw string) Result {
	cleaned := Clean(raw)
	res := Result{Raw: raw, Cleaned: cleaned, Name: cleaned, Match: MatchNone}

	key := Key(cleaned)
	if key == "" {
		return res
	}
	if name, ok := n.aliases[key]; ok {
		res.Name, res.Match = name, MatchAlias
		return res
	}
	if name, ok := n.index[key]; ok {
		res.Name, res.Match = name, MatchCatalog
		return res
	}
	for _, s := range stems(key) {
		if name, ok := n.aliasStems[s]; ok {
			res.Name, res.Match = name, MatchFuzzy
			return res
		}
		if name, ok := n.catalogStem[s]; ok {
			res.Name, res.Match = name, MatchFuzzy
			return res
		}
	}
	return res
}

// Known reports whether raw resolves to a catalog or alias entry.
func (n *Normalizer) Known(raw string) bool {
	return n.Lookup(raw).Match != MatchNone
}
