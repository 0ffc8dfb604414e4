package mention

import "fmt"

// Mention is a structured reference to an entity the user pointed at.
//
// The type is canonical, the identifier passed format validation but still
// has to be confirmed against the caller's tenant, and the label is display
// text supplied by the client: it may be stale or adversarial and must never
// drive access decisions.
type Mention[ID comparable] struct {
	typ     string
	id      ID
	label   string
	labeled bool
}

// New returns a mention without a label. The type is trimmed and lowercased
// but not alias-mapped; use it to rebuild results from canonical data.
func New[ID comparable](mentionType string, id ID) Mention[ID] {
	return Mention[ID]{typ: fold(mentionType), id: id}
}

// WithLabel returns a copy of m carrying the given display label.
func (m Mention[ID]) WithLabel(label string) Mention[ID] {
	m.label = label
	m.labeled = true
	return m
}

// Type returns the canonical mention type.
func (m Mention[ID]) Type() string { return m.typ }

// ID returns the parsed identifier.
func (m Mention[ID]) ID() ID { return m.id }

// Label returns the untrusted display label and whether one was supplied.
func (m Mention[ID]) Label() (string, bool) { return m.label, m.labeled }

// LabelOr returns the label, or fallback when none was supplied.
func (m Mention[ID]) LabelOr(fallback string) string {
	if !m.labeled {
		return fallback
	}
	return m.label
}

// String renders the mention without its identifier so that formatting a
// mention into logs or prompts cannot leak it.
func (m Mention[ID]) String() string {
	if m.labeled {
		return fmt.Sprintf("%s(%q)", m.typ, m.label)
	}
	return m.typ
}
