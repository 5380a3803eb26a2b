package settings

import (
	"errors"
	"fmt"
)

// Owned top-level keys.
const (
	statusLineKey = "statusLine"
	hooksKey      = "hooks"
)

// ErrMalformed is wrapped by every patch error caused by an owned field
// having an unexpected shape. Callers surface it as SETTINGS_CORRUPTED.
var ErrMalformed = errors.New("malformed settings field")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// Document is a decoded settings file.
type Document map[string]any

// IsEmpty reports whether the document has no keys left.
func (d Document) IsEmpty() bool {
	return len(d) == 0
}

// Clone returns a deep copy of d. Only JSON shapes (objects, arrays, scalars)
// are copied structurally.
func (d Document) Clone() Document {
	return cloneValue(map[string]any(d)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Document:
		return Document(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
