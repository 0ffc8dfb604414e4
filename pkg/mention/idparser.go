package mention

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDParser converts a raw identifier taken from the payload into a validated
// identifier. It must return an error for anything it does not accept.
type IDParser[ID comparable] func(raw any) (ID, error)

// UUIDParser is the default identifier parser. It accepts uuid.UUID values
// and strings in the canonical 36-character form only.
func UUIDParser(raw any) (uuid.UUID, error) {
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		// Cheap shape check before parsing, uuid.Parse also accepts the
		// urn:uuid: and braced forms.
		if len(v) != 36 || v[8] != '-' || v[13] != '-' || v[18] != '-' || v[23] != '-' {
			return uuid.Nil, ErrInvalidID
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, ErrInvalidID
		}
		return id, nil
	default:
		return uuid.Nil, ErrInvalidID
	}
}

// StringIDParser accepts any non-blank string and returns it trimmed.
// Useful for systems keyed by slugs or external ids.
func StringIDParser(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", ErrInvalidID
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidID
	}
	return s, nil
}

// Int64IDParser accepts integral JSON numbers, Go integers and decimal strings.
// Small numbers are easily found in counts and labels, so Summarize redacts
// or withholds far more often with these ids than with UUIDs.
func Int64IDParser(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, ErrInvalidID
		}
		return n, nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, ErrInvalidID
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, ErrInvalidID
		}
		return n, nil
	default:
		return 0, ErrInvalidID
	}
}
