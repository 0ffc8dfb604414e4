package sanitizer

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultRedactionMarker replaces redacted values.
const DefaultRedactionMarker = "[redacted]"

// maxRedactPasses bounds the replacement loop for values that overlap the marker.
const maxRedactPasses = 4

// Redactor removes known sensitive values from text, case-insensitively.
// It is safe for concurrent use.
type Redactor struct {
	marker  string
	secrets []string
	re      *regexp.Regexp
}

// NewRedactor builds a Redactor for the given values. Empty values are ignored.
func NewRedactor(marker string, secrets ...string) *Redactor {
	if marker == "" {
		marker = DefaultRedactionMarker
	}

	uniq := make([]string, 0, len(secrets))
	seen := make(map[string]struct{}, len(secrets))
	for _, s := range secrets {
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, key)
	}

	r := &Redactor{marker: marker, secrets: uniq}
	if len(uniq) == 0 {
		return r
	}

	// Longest first so that a value containing another is replaced whole.
	patterns := slices.Clone(uniq)
	slices.SortFunc(patterns, func(a, b string) int { return len(b) - len(a) })
	for i, p := range patterns {
		patterns[i] = regexp.QuoteMeta(p)
	}
	r.re = regexp.MustCompile(`(?i)(?:` + strings.Join(patterns, "|") + `)`)
	return r
}

// Redact replaces every occurrence of a known value with the marker.
func (r *Redactor) Redact(s string) string {
	if r == nil || r.re == nil {
		return s
	}
	for range maxRedactPasses {
		if !r.re.MatchString(s) {
			break
		}
		s = r.re.ReplaceAllLiteralString(s, r.marker)
	}
	return s
}

// Leaks reports whether s still contains any known value.
func (r *Redactor) Leaks(s string) bool {
	if r == nil || len(r.secrets) == 0 {
		return false
	}
	lower := strings.ToLower(s)
	for _, secret := range r.secrets {
		if strings.Contains(lower, secret) {
			return true
		}
	}
	return false
}
