package mention

import (
	"maps"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Aliases maps raw or canonical mention types to canonical ones.
// Keys and values are trimmed and lowercased before use.
type Aliases map[string]string

// defaultAliases targets are never keys themselves, which keeps
// normalization idempotent.
var defaultAliases = Aliases{
	"contacts":    "contact",
	"person":      "contact",
	"people":      "contact",
	"meetings":    "meeting",
	"event":       "meeting",
	"events":      "meeting",
	"assignments": "assignment",
	"task":        "assignment",
	"tasks":       "assignment",
	"todo":        "assignment",
	"todos":       "assignment",
}

// DefaultAliases returns a copy of the built-in synonym table.
func DefaultAliases() Aliases {
	return maps.Clone(defaultAliases)
}

// Normalizer canonicalizes mention types.
// The zero value applies the default synonym table only.
type Normalizer struct {
	table Aliases
}

// NewNormalizer merges the default synonym table with the given overrides.
// Later overrides win over earlier ones and over the defaults. Override
// targets normalize to themselves unless an override remaps them too.
func NewNormalizer(overrides ...Aliases) Normalizer {
	if len(overrides) == 0 {
		return Normalizer{}
	}

	table := make(Aliases, len(defaultAliases))
	maps.Copy(table, defaultAliases)
	explicit := make(map[string]struct{})
	for _, o := range overrides {
		for raw, canonical := range o {
			key := fold(raw)
			if key == "" {
				continue
			}
			table[key] = fold(canonical)
			explicit[key] = struct{}{}
		}
	}
	// Override targets are canonical, and defaults pointing at a remapped
	// type follow it. Either way one pass reaches a fixed point.
	for raw, canonical := range defaultAliases {
		if _, ok := explicit[raw]; ok {
			continue
		}
		if _, ok := explicit[canonical]; ok {
			table[raw] = table[canonical]
		}
	}
	for key := range explicit {
		target := table[key]
		if target == "" {
			continue
		}
		if _, remapped := explicit[target]; !remapped {
			table[target] = target
		}
	}
	return Normalizer{table: table}
}

// Normalize trims and lowercases raw, then applies the alias table.
// Unknown types normalize to themselves; empty input yields "".
func (n Normalizer) Normalize(raw string) string {
	t := fold(raw)
	if t == "" {
		return ""
	}

	table := n.table
	if table == nil {
		table = defaultAliases
	}
	if canonical, ok := table[t]; ok {
		return canonical
	}
	return t
}

// NormalizeType is a shorthand for NewNormalizer(aliases...).Normalize(raw).
func NormalizeType(raw string, aliases ...Aliases) string {
	return NewNormalizer(aliases...).Normalize(raw)
}

func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isASCII(s) {
		return strings.ToLower(s)
	}
	// Casers are stateful, so one is created per call.
	return cases.Lower(language.Und).String(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
