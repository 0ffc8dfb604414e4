// Package sanitizer cleans untrusted display text before it reaches a prompt
// or a log line.
//
// PromptText flattens a string to a single line of printable text: ANSI escape
// sequences, control characters and invisible format characters are removed
// and whitespace runs collapse to one space. LimitLength truncates by runes.
//
// Redactor removes a known set of sensitive values, such as identifiers,
// case-insensitively and can verify afterwards that none of them remain:
//
//	r := sanitizer.NewRedactor(sanitizer.DefaultRedactionMarker, ids...)
//	out := r.Redact(sanitizer.PromptText(label))
//	if r.Leaks(out) {
//		// drop the text
//	}
//
// Apply and Compose chain transformations:
//
//	clean := sanitizer.Compose(sanitizer.RemoveInvisible, sanitizer.SingleLine)
package sanitizer
