package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	checkPath = "/x/check-thresholds.sh"
	resetPath = "/x/reset.sh"
)

func countCommand(doc Document, event, command string) int {
	root, _ := doc["hooks"].(map[string]any)
	entries, _ := root[event].([]any)
	n := 0
	for _, e := range entries {
		if entryHasCommand(e, command) {
			n++
		}
	}
	return n
}

func TestAddHook_CreatesRootAndEvent(t *testing.T) {
	doc := Document{}

	added, err := doc.AddHook(EventPreToolUse, "", checkPath)
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, Document{"hooks": map[string]any{
		"PreToolUse": []any{
			map[string]any{
				"matcher": "",
				"hooks":   []any{map[string]any{"type": "command", "command": checkPath}},
			},
		},
	}}, doc)
}

func TestAddHook_Idempotent(t *testing.T) {
	doc := Document{}

	added, err := doc.AddHook(EventSessionStart, "compact", resetPath)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = doc.AddHook(EventSessionStart, "compact", resetPath)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, countCommand(doc, EventSessionStart, resetPath))
}

func TestAddHook_DuplicateIgnoresMatcher(t *testing.T) {
	doc := Document{}
	_, err := doc.AddHook(EventSessionStart, "compact", resetPath)
	require.NoError(t, err)

	added, err := doc.AddHook(EventSessionStart, "startup", resetPath)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestAddHook_SameCommandOtherEvent(t *testing.T) {
	doc := Document{}
	_, err := doc.AddHook(EventPreToolUse, "", checkPath)
	require.NoError(t, err)

	added, err := doc.AddHook(EventSessionStart, "", checkPath)
	require.NoError(t, err)
	assert.True(t, added, "duplicates are detected per event")
}

func TestAddHook_PreservesForeignEntries(t *testing.T) {
	doc := Document{"hooks": map[string]any{
		"PreToolUse": []any{
			map[string]any{"matcher": "Bash", "hooks": []any{map[string]any{"type": "command", "command": "/usr/bin/guard"}}},
		},
	}}

	added, err := doc.AddHook(EventPreToolUse, "", checkPath)
	require.NoError(t, err)
	assert.True(t, added)

	entries := doc["hooks"].(map[string]any)["PreToolUse"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "Bash", entries[0].(map[string]any)["matcher"])
}

func TestAddHook_Malformed(t *testing.T) {
	_, err := Document{"hooks": []any{}}.AddHook(EventPreToolUse, "", checkPath)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Document{"hooks": map[string]any{"PreToolUse": "x"}}.AddHook(EventPreToolUse, "", checkPath)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRemoveHook_CleansEmptyEventAndRoot(t *testing.T) {
	doc := Document{"model": "opus"}
	_, _ = doc.AddHook(EventPreToolUse, "", checkPath)
	_, _ = doc.AddHook(EventSessionStart, "compact", resetPath)

	removed, err := doc.RemoveHook(checkPath)
	require.NoError(t, err)
	assert.True(t, removed)
	root := doc["hooks"].(map[string]any)
	assert.NotContains(t, root, EventPreToolUse)
	assert.Contains(t, root, EventSessionStart)

	removed, err = doc.RemoveHook(resetPath)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, Document{"model": "opus"}, doc)
}

func TestRemoveHook_NeverAddedLeavesDocumentUnchanged(t *testing.T) {
	docs := []Document{
		{},
		{"hooks": map[string]any{}},
		{"hooks": map[string]any{"Stop": []any{}}},
		{"hooks": map[string]any{"PreToolUse": []any{
			map[string]any{"matcher": "", "hooks": []any{map[string]any{"type": "command", "command": "/other"}}},
		}}},
		{"hooks": map[string]any{"Notification": "not-an-array"}},
	}

	for _, doc := range docs {
		before := doc.Clone()
		removed, err := doc.RemoveHook(checkPath)
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, before, doc)
	}
}

func TestRemoveHook_KeepsForeignEntries(t *testing.T) {
	foreign := map[string]any{"matcher": "Bash", "hooks": []any{map[string]any{"type": "command", "command": "/usr/bin/guard"}}}
	doc := Document{"hooks": map[string]any{"PreToolUse": []any{foreign}}}
	_, _ = doc.AddHook(EventPreToolUse, "", checkPath)

	removed, err := doc.RemoveHook(checkPath)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []any{foreign}, doc["hooks"].(map[string]any)["PreToolUse"])
}

// An entry that co-registers several commands is removed as a whole when any
// one of them matches. Co-registered commands go with it.
func TestRemoveHook_EntryGranularity(t *testing.T) {
	doc := Document{"hooks": map[string]any{"PreToolUse": []any{
		map[string]any{"matcher": "", "hooks": []any{
			map[string]any{"type": "command", "command": checkPath},
			map[string]any{"type": "command", "command": "/usr/bin/other"},
		}},
	}}}

	removed, err := doc.RemoveHook(checkPath)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, doc.HasHook("/usr/bin/other"))
	assert.NotContains(t, doc, "hooks")
}

func TestRemoveHook_MalformedRoot(t *testing.T) {
	_, err := Document{"hooks": "x"}.RemoveHook(checkPath)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestHasHook(t *testing.T) {
	doc := Document{}
	assert.False(t, doc.HasHook(checkPath))
	_, _ = doc.AddHook(EventPreToolUse, "", checkPath)
	assert.True(t, doc.HasHook(checkPath))
}
