package settings

// Hook events registered by the base install.
const (
	EventPreToolUse   = "PreToolUse"
	EventSessionStart = "SessionStart"
)

// hooksRoot returns the hooks object. create adds it when missing.
func (d Document) hooksRoot(create bool) (map[string]any, error) {
	switch v := d[hooksKey].(type) {
	case map[string]any:
		return v, nil
	case nil:
		if !create {
			return nil, nil
		}
		root := map[string]any{}
		d[hooksKey] = root
		return root, nil
	default:
		return nil, malformed("hooks is %T, want object", v)
	}
}

// entryHasCommand reports whether a registration entry carries command in its
// hooks array.
func entryHasCommand(entry any, command string) bool {
	obj, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	hooks, ok := obj["hooks"].([]any)
	if !ok {
		return false
	}
	for _, h := range hooks {
		if hm, ok := h.(map[string]any); ok {
			if c, _ := hm["command"].(string); c == command {
				return true
			}
		}
	}
	return false
}

// AddHook registers command under event with matcher. An existing entry under
// event that already runs command, whatever its matcher, makes this a no-op
// reporting false.
func (d Document) AddHook(event, matcher, command string) (bool, error) {
	root, err := d.hooksRoot(true)
	if err != nil {
		return false, err
	}

	var entries []any
	switch v := root[event].(type) {
	case []any:
		entries = v
	case nil:
	default:
		return false, malformed("hooks.%s is %T, want array", event, v)
	}

	for _, entry := range entries {
		if entryHasCommand(entry, command) {
			return false, nil
		}
	}

	root[event] = append(entries, map[string]any{
		"matcher": matcher,
		"hooks": []any{
			map[string]any{"type": "command", "command": command},
		},
	})
	return true, nil
}

// RemoveHook drops every registration entry that runs command. Matching is
// per entry: an entry that also lists other commands is removed as a whole.
// Event keys, and then the hooks root, are deleted when this removal empties
// them. Events whose value is not an array are left alone.
func (d Document) RemoveHook(command string) (bool, error) {
	root, err := d.hooksRoot(false)
	if err != nil || root == nil {
		return false, err
	}

	found := false
	for event, v := range root {
		entries, ok := v.([]any)
		if !ok {
			continue
		}
		kept := make([]any, 0, len(entries))
		for _, entry := range entries {
			if !entryHasCommand(entry, command) {
				kept = append(kept, entry)
			}
		}
		if len(kept) == len(entries) {
			continue
		}
		found = true
		if len(kept) == 0 {
			delete(root, event)
		} else {
			root[event] = kept
		}
	}

	if found && len(root) == 0 {
		delete(d, hooksKey)
	}
	return found, nil
}

// HasHook reports whether any event runs command.
func (d Document) HasHook(command string) bool {
	root, err := d.hooksRoot(false)
	if err != nil || root == nil {
		return false
	}
	for _, v := range root {
		entries, _ := v.([]any)
		for _, entry := range entries {
			if entryHasCommand(entry, command) {
				return true
			}
		}
	}
	return false
}
