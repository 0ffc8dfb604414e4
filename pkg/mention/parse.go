package mention

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// mentionsKey is the payload field holding the mentions list.
const mentionsKey = "mentions"

// Parse reads payload["mentions"], normalizes and filters every entry and
// groups the survivors by type using UUID identifiers.
//
// A payload that is not an object, or has no mentions list, yields an empty
// Result. Malformed entries are skipped; a missing or malformed identifier on
// an accepted entry aborts the whole call with a *ParseError.
func Parse(payload any, opts ...Option) (*Result[uuid.UUID], error) {
	return ParseWith(payload, UUIDParser, opts...)
}

// ParseJSON decodes data and parses it like Parse.
func ParseJSON(data []byte, opts ...Option) (*Result[uuid.UUID], error) {
	payload, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return Parse(payload, opts...)
}

// ParseWith is Parse with a caller supplied identifier parser.
func ParseWith[ID comparable](payload any, parseID IDParser[ID], opts ...Option) (*Result[ID], error) {
	if parseID == nil {
		return nil, ErrNilIDParser
	}

	cfg := newParseConfig(opts)
	norm := NewNormalizer(cfg.aliases...)
	b := newBuilder[ID](norm)

	items, ok := mentionList(payload)
	if !ok {
		return b.build(), nil
	}

	var allowed map[string]struct{}
	if cfg.restrict {
		allowed = make(map[string]struct{}, len(cfg.allowed))
		for _, t := range cfg.allowed {
			allowed[norm.Normalize(t)] = struct{}{}
		}
	}

	var seen map[string]map[ID]struct{}
	if cfg.dedupe {
		seen = make(map[string]map[ID]struct{})
	}

	for i, item := range items {
		fields, ok := asObject(item)
		if !ok {
			continue
		}

		mentionType := norm.Normalize(typeText(fields["type"]))
		if mentionType == "" {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[mentionType]; !ok {
				continue
			}
		}

		rawID, present := fields["id"]
		if !present || rawID == nil || isBlank(rawID) {
			return nil, &ParseError{Index: i, Reason: reasonMissingID}
		}
		id, err := parseID(rawID)
		if err != nil {
			return nil, &ParseError{Index: i, Reason: reasonInvalidID}
		}

		if seen != nil {
			ids, ok := seen[mentionType]
			if !ok {
				ids = make(map[ID]struct{})
				seen[mentionType] = ids
			}
			if _, dup := ids[id]; dup {
				continue
			}
			ids[id] = struct{}{}
		}

		m := Mention[ID]{typ: mentionType, id: id}
		if label, ok := labelOf(fields["label"]); ok {
			m = m.WithLabel(label)
		}
		b.add(m)
	}

	return b.build(), nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, ErrInvalidPayload
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, ErrInvalidPayload
	}
	return payload, nil
}

// mentionList extracts the mentions list from a loosely typed payload.
func mentionList(payload any) ([]any, bool) {
	obj, ok := asObject(payload)
	if !ok {
		return nil, false
	}

	switch list := obj[mentionsKey].(type) {
	case []any:
		return list, true
	case []map[string]any:
		items := make([]any, len(list))
		for i, item := range list {
			items[i] = item
		}
		return items, true
	case []map[string]string:
		items := make([]any, len(list))
		for i, item := range list {
			items[i] = item
		}
		return items, true
	default:
		return nil, false
	}
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, obj != nil
	case map[string]string:
		if obj == nil {
			return nil, false
		}
		out := make(map[string]any, len(obj))
		for k, v := range obj {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// textOf coerces scalar values to text. Containers and nil are not
// representable and yield "".
func textOf(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	default:
		return ""
	}
}

// typeText is textOf for the type field, where false and numeric zero
// count as a missing type.
func typeText(v any) string {
	switch val := v.(type) {
	case bool:
		if !val {
			return ""
		}
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return ""
		}
	case float64:
		if val == 0 {
			return ""
		}
	case float32:
		if val == 0 {
			return ""
		}
	case int:
		if val == 0 {
			return ""
		}
	case int64:
		if val == 0 {
			return ""
		}
	case int32:
		if val == 0 {
			return ""
		}
	}
	return textOf(v)
}

func labelOf(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	s := textOf(v)
	return s, s != ""
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
