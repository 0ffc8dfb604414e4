package mention

import (
	"fmt"
	"iter"
)

// Result groups parsed mentions by canonical type.
//
// Groups keep the order in which their type was first seen and mentions keep
// payload order within a group. A Result is read-only once built; every
// accessor returns copies.
type Result[ID comparable] struct {
	normalizer Normalizer
	order      []string
	groups     map[string][]Mention[ID]
}

// NewResult groups already-normalized mentions, typically ones rebuilt from
// authoritative data after validation. Mentions with an empty type are dropped.
func NewResult[ID comparable](mentions ...Mention[ID]) *Result[ID] {
	b := newBuilder[ID](Normalizer{})
	for _, m := range mentions {
		if m.typ == "" {
			continue
		}
		b.add(m)
	}
	return b.build()
}

// GetAll returns a copy of the mentions of the given type. The type is
// normalized like the payload was, unless aliases are given, in which case
// they are applied on top of the default table instead.
// The returned slice is never nil.
func (r *Result[ID]) GetAll(mentionType string, aliases ...Aliases) []Mention[ID] {
	if r == nil {
		return []Mention[ID]{}
	}
	items := r.groups[r.normalizerFor(aliases).Normalize(mentionType)]
	out := make([]Mention[ID], len(items))
	copy(out, items)
	return out
}

// GetFirst returns the first mention of the given type.
func (r *Result[ID]) GetFirst(mentionType string, aliases ...Aliases) (Mention[ID], bool) {
	items := r.GetAll(mentionType, aliases...)
	if len(items) == 0 {
		return Mention[ID]{}, false
	}
	return items[0], true
}

// EnsureAtMostOne returns the only mention of the given type, if any.
// It fails with ErrTooManyMentions when two or more are present.
func (r *Result[ID]) EnsureAtMostOne(mentionType string, aliases ...Aliases) (Mention[ID], bool, error) {
	items := r.GetAll(mentionType, aliases...)
	switch len(items) {
	case 0:
		return Mention[ID]{}, false, nil
	case 1:
		return items[0], true, nil
	default:
		key := r.normalizerFor(aliases).Normalize(mentionType)
		return Mention[ID]{}, false, fmt.Errorf("%w: %d %q mentions", ErrTooManyMentions, len(items), key)
	}
}

// Types returns the canonical types present, in first-seen order.
func (r *Result[ID]) Types() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the total number of mentions across all types.
func (r *Result[ID]) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, items := range r.groups {
		n += len(items)
	}
	return n
}

// IsEmpty reports whether the result holds no groups.
func (r *Result[ID]) IsEmpty() bool {
	return r == nil || len(r.order) == 0
}

// All returns every mention, group by group.
func (r *Result[ID]) All() []Mention[ID] {
	out := make([]Mention[ID], 0, r.Len())
	for _, items := range r.Groups() {
		out = append(out, items...)
	}
	return out
}

// Groups iterates over (type, mentions) pairs in first-seen order.
// Each yielded slice is a copy.
func (r *Result[ID]) Groups() iter.Seq2[string, []Mention[ID]] {
	return func(yield func(string, []Mention[ID]) bool) {
		if r == nil {
			return
		}
		for _, t := range r.order {
			items := r.groups[t]
			out := make([]Mention[ID], len(items))
			copy(out, items)
			if !yield(t, out) {
				return
			}
		}
	}
}

func (r *Result[ID]) normalizerFor(aliases []Aliases) Normalizer {
	if len(aliases) > 0 {
		return NewNormalizer(aliases...)
	}
	return r.normalizer
}

// builder accumulates mentions before they are frozen into a Result.
type builder[ID comparable] struct {
	normalizer Normalizer
	order      []string
	groups     map[string][]Mention[ID]
}

func newBuilder[ID comparable](n Normalizer) *builder[ID] {
	return &builder[ID]{
		normalizer: n,
		groups:     make(map[string][]Mention[ID]),
	}
}

func (b *builder[ID]) add(m Mention[ID]) {
	if _, ok := b.groups[m.typ]; !ok {
		b.order = append(b.order, m.typ)
	}
	b.groups[m.typ] = append(b.groups[m.typ], m)
}

func (b *builder[ID]) build() *Result[ID] {
	order := make([]string, 0, len(b.order))
	for _, t := range b.order {
		if len(b.groups[t]) == 0 {
			delete(b.groups, t)
			continue
		}
		order = append(order, t)
	}
	return &Result[ID]{
		normalizer: b.normalizer,
		order:      order,
		groups:     b.groups,
	}
}
