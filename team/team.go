// Package team normalizes free-text team references against a canonical
// alias table. Matching is case-insensitive and substring based so queries
// like "next match for Aus" or common misspellings still resolve.
package team

import "strings"

// aliases maps each canonical team name to the spellings, abbreviations and
// typos seen in real queries. Order within a slice matters only for
// readability; lookup order over canonical names is fixed (see order below)
// so the first alias match wins deterministically.
var aliases = map[string][]string{
	"India":        {"india", "ind"},
	"Australia":    {"australia", "aus", "austraila", "austalia"},
	"England":      {"england", "eng"},
	"Sri Lanka":    {"sri lanka", "srilanka", "sri-lanka", "sl"},
	"South Africa": {"south africa", "southafrica", "sa"},
	"New Zealand":  {"new zealand", "newzealand", "nz"},
	"Pakistan":     {"pakistan", "pak"},
	"Bangladesh":   {"bangladesh", "ban"},
	"West Indies":  {"west indies", "windies", "wi"},
	"Afghanistan":  {"afghanistan", "afg"},
	"Ireland":      {"ireland", "ire"},
	"Zimbabwe":     {"zimbabwe", "zim"},
	"Netherlands":  {"netherlands", "ned"},
	"Nepal":        {"nepal"},
	"UAE":          {"uae"},
}

// order fixes the canonical lookup sequence so substring collisions (e.g.
// "ind" inside "west indies") resolve the same way on every call.
var order = []string{
	"India", "Australia", "England", "Sri Lanka", "South Africa",
	"New Zealand", "Pakistan", "Bangladesh", "West Indies", "Afghanistan",
	"Ireland", "Zimbabwe", "Netherlands", "Nepal", "UAE",
}

// noiseWords are stripped before matching so "next match for india" reduces
// toward the team reference itself.
var noiseWords = []string{"next", "match", "game", "team", "fixture", "series"}

// Normalize resolves free text to a canonical team name. It returns
// ("", false) when no alias matches.
func Normalize(text string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return "", false
	}
	for _, w := range noiseWords {
		q = strings.ReplaceAll(q, w, " ")
	}
	q = strings.Join(strings.Fields(q), " ")

	// Two passes: whole-word matches first so short abbreviations like "sa"
	// cannot fire from inside an unrelated word, then substring matches to
	// catch run-together spellings.
	words := map[string]bool{}
	for _, w := range strings.Fields(q) {
		words[w] = true
	}
	for _, canonical := range order {
		for _, alias := range aliases[canonical] {
			if words[alias] || strings.Contains(q, alias+" ") || strings.HasSuffix(q, alias) && len(alias) > 3 {
				return canonical, true
			}
		}
	}
	for _, canonical := range order {
		for _, alias := range aliases[canonical] {
			if len(alias) > 3 && strings.Contains(q, alias) {
				return canonical, true
			}
		}
	}
	return "", false
}

// Canonical returns the canonical team names in lookup order. Useful for
// user-facing "try one of" messages.
func Canonical() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
