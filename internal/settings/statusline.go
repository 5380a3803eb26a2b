package settings

import (
	"strings"
	"unicode"
)

// StatusKind classifies the statusLine field relative to the bridge command.
type StatusKind int

const (
	// StatusAbsent: no usable command (missing, null, empty string, or an
	// object whose command is empty).
	StatusAbsent StatusKind = iota
	// StatusOwned: the bridge is the whole command.
	StatusOwned
	// StatusComposed: the bridge pipes into a foreign downstream command.
	StatusComposed
	// StatusForeign: some other command, no bridge.
	StatusForeign
)

func (k StatusKind) String() string {
	switch k {
	case StatusAbsent:
		return "absent"
	case StatusOwned:
		return "owned"
	case StatusComposed:
		return "composed"
	case StatusForeign:
		return "foreign"
	}
	return "unknown"
}

// Action is the outcome of a status line patch.
type Action string

const (
	ActionCreated        Action = "created"
	ActionPrepended      Action = "prepended"
	ActionAlreadyPresent Action = "already_present"
	ActionRemoved        Action = "removed"
	ActionRestored       Action = "restored"
	ActionNotPresent     Action = "not_present"
)

// StatusLine is the parsed form of the statusLine field.
type StatusLine struct {
	Kind StatusKind
	// Raw is the full command string as found.
	Raw string
	// Downstream is the foreign command a composed value pipes into.
	Downstream string
	// object is the original object form, nil for the bare string form.
	object map[string]any
}

// ParseStatusLine classifies value, the raw statusLine field, against bridge.
// Values that are neither a string nor an object are malformed.
func ParseStatusLine(value any, bridge string) (StatusLine, error) {
	var sl StatusLine

	switch v := value.(type) {
	case nil:
		return sl, nil
	case string:
		sl.Raw = v
	case map[string]any:
		sl.object = v
		switch cmd := v["command"].(type) {
		case nil:
		case string:
			sl.Raw = cmd
		default:
			return sl, malformed("statusLine.command is %T, want string", cmd)
		}
	default:
		return sl, malformed("statusLine is %T, want string or object", value)
	}

	switch {
	case sl.Raw == "":
		sl.Kind = StatusAbsent
	case bridge == "" || !strings.Contains(sl.Raw, bridge):
		sl.Kind = StatusForeign
	default:
		sl.Downstream = stripBridge(sl.Raw, bridge)
		if sl.Downstream == "" {
			sl.Kind = StatusOwned
		} else {
			sl.Kind = StatusComposed
		}
	}
	return sl, nil
}

// stripBridge removes the first occurrence of bridge and the pipe separator
// around it. It returns "" when nothing but pipes and whitespace remain.
func stripBridge(raw, bridge string) string {
	rest := strings.TrimSpace(strings.Replace(raw, bridge, "", 1))
	if rest == "" || rest == "|" {
		return ""
	}
	if after, ok := strings.CutPrefix(rest, "|"); ok {
		rest = strings.TrimLeftFunc(after, unicode.IsSpace)
	}
	if before, ok := strings.CutSuffix(rest, "|"); ok {
		rest = strings.TrimRightFunc(before, unicode.IsSpace)
	}
	return rest
}

// withCommand serializes cmd back in the form the field was found in.
func (sl StatusLine) withCommand(cmd string) any {
	if sl.object == nil {
		return cmd
	}
	out := make(map[string]any, len(sl.object))
	for k, v := range sl.object {
		out[k] = v
	}
	out["command"] = cmd
	return out
}

// StatusLine parses the document's statusLine field.
func (d Document) StatusLine(bridge string) (StatusLine, error) {
	return ParseStatusLine(d[statusLineKey], bridge)
}

// SetStatusLine installs bridge as the status line. A foreign command is kept
// by piping the bridge into it. The returned command is the resulting value.
func (d Document) SetStatusLine(bridge string) (Action, string, error) {
	sl, err := d.StatusLine(bridge)
	if err != nil {
		return "", "", err
	}

	switch sl.Kind {
	case StatusAbsent:
		d[statusLineKey] = bridge
		return ActionCreated, bridge, nil
	case StatusForeign:
		piped := bridge + " | " + sl.Raw
		d[statusLineKey] = sl.withCommand(piped)
		return ActionPrepended, piped, nil
	default:
		return ActionAlreadyPresent, sl.Raw, nil
	}
}

// RemoveStatusLine takes bridge out of the status line, restoring a composed
// downstream command verbatim or deleting the field when only the bridge was
// there.
func (d Document) RemoveStatusLine(bridge string) (Action, error) {
	sl, err := d.StatusLine(bridge)
	if err != nil {
		return "", err
	}

	switch sl.Kind {
	case StatusOwned:
		delete(d, statusLineKey)
		return ActionRemoved, nil
	case StatusComposed:
		d[statusLineKey] = sl.withCommand(sl.Downstream)
		return ActionRestored, nil
	default:
		return ActionNotPresent, nil
	}
}
