package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// PromptText prepares untrusted display text for embedding in a prompt:
// escape sequences, control and invisible format characters are removed and
// whitespace, including line breaks, is collapsed to single spaces.
var PromptText = Compose(
	RemoveControlSequences,
	RemoveInvisible,
	SingleLine,
)

// RemoveControlSequences strips ANSI escape sequences and control characters.
// Line breaks and tabs are turned into spaces rather than dropped so that
// words on separate lines stay apart.
func RemoveControlSequences(s string) string {
	s = ansiEscapeRegex.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// RemoveInvisible drops Unicode format characters (zero-width joiners,
// bidirectional overrides, BOM), which can hide text from human reviewers.
func RemoveInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
}

// SingleLine collapses every run of Unicode whitespace into one space and trims.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// LimitLength truncates s to maxRunes runes, appending an ellipsis when cut.
// A non-positive limit leaves s untouched.
func LimitLength(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
