package mention

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mentionkit/pkg/sanitizer"
)

const (
	// DefaultMaxLabelsPerType is the number of labels shown per type before
	// the remainder is folded into a "(+N more)" suffix.
	DefaultMaxLabelsPerType = 3

	summaryHeader = "Mentions: "
)

// SummaryOption configures Summarize.
type SummaryOption func(*summaryConfig)

type summaryConfig struct {
	maxLabels      int
	maxLabelLength int
}

// WithMaxLabelsPerType sets how many labels are listed per type.
// Panics on negative values.
func WithMaxLabelsPerType(n int) SummaryOption {
	if n < 0 {
		panic("mention: WithMaxLabelsPerType: n must be >= 0")
	}
	return func(c *summaryConfig) { c.maxLabels = n }
}

// WithMaxLabelLength truncates each label to n runes; 0 disables truncation.
// Panics on negative values.
func WithMaxLabelLength(n int) SummaryOption {
	if n < 0 {
		panic("mention: WithMaxLabelLength: n must be >= 0")
	}
	return func(c *summaryConfig) { c.maxLabelLength = n }
}

// Summarize renders a compact description of r that is safe to place in a
// prompt or a log line, such as
//
//	Mentions: contact=[Dwight Schrute, Jim Halpert]; meeting=2
//
// Only types, labels and counts are used. Labels are flattened to a single
// line and any identifier of any mention in r is redacted from them; if an
// identifier would still appear in the output the summary is withheld.
// The boolean is false when r has no mentions or the summary was withheld.
//
// Short numeric identifiers, as produced by Int64IDParser, collide with
// counts and with digits inside labels. A single unlabeled mention with id 1
// is withheld because its count is "1", and a label "Room 1701" next to id 7
// renders as "Room 1[redacted]01". Prefer UUIDs or long string ids when the
// summary matters.
//
// Labels are rendered as given. Callers that can resolve authoritative labels
// server-side should summarize a Result rebuilt from those instead.
func Summarize[ID comparable](r *Result[ID], opts ...SummaryOption) (string, bool) {
	if r.IsEmpty() {
		return "", false
	}

	cfg := summaryConfig{maxLabels: DefaultMaxLabelsPerType}
	for _, opt := range opts {
		opt(&cfg)
	}

	redactor := newIDRedactor(r)
	parts := make([]string, 0, len(r.order))
	for _, t := range r.order {
		items := r.groups[t]
		if len(items) == 0 {
			continue
		}

		name := redactor.Redact(t)
		labels := make([]string, 0, len(items))
		for _, m := range items {
			label, ok := m.Label()
			if !ok {
				continue
			}
			label = sanitizer.LimitLength(redactor.Redact(sanitizer.PromptText(label)), cfg.maxLabelLength)
			if label != "" {
				labels = append(labels, label)
			}
		}

		if len(labels) == 0 {
			parts = append(parts, name+"="+strconv.Itoa(len(items)))
			continue
		}

		shown := labels[:min(len(labels), cfg.maxLabels)]
		var sb strings.Builder
		sb.WriteString(name)
		sb.WriteString("=[")
		sb.WriteString(strings.Join(shown, ", "))
		if extra := len(labels) - len(shown); extra > 0 {
			fmt.Fprintf(&sb, " (+%d more)", extra)
		}
		sb.WriteString("]")
		parts = append(parts, sb.String())
	}

	if len(parts) == 0 {
		return "", false
	}

	out := summaryHeader + strings.Join(parts, "; ")
	if redactor.Leaks(out) {
		return "", false
	}
	return out, true
}

func newIDRedactor[ID comparable](r *Result[ID]) *sanitizer.Redactor {
	ids := make([]string, 0, r.Len())
	for _, items := range r.groups {
		for _, m := range items {
			ids = append(ids, idString(m.id))
		}
	}
	return sanitizer.NewRedactor(sanitizer.DefaultRedactionMarker, ids...)
}

func idString(id any) string {
	if s, ok := id.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(id)
}
