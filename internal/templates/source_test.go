package templates

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"templates/catalog.json": {Data: []byte(`{"templates":[
			{"id":"memory","name":"Memory","description":"Saves memory"},
			{"id":"tomlish","name":"","description":"TOML manifest"},
			{"id":"ghost","name":"Ghost","description":"No manifest"}
		]}`)},
		"templates/memory/template.json": {Data: []byte(`{
			"thresholds_file": "thresholds.json",
			"thresholds_level_prefix": "memory-",
			"hooks": [{"event":"PreToolUse","matcher":"","script":"hooks/save.sh"}],
			"agents": [{"source":"agents/mem.md","dest":"agents/mem.md"}],
			"directories": ["memory"],
			"claude_snippet": "snippet.md",
			"claude_snippet_marker": "<!-- memory -->"
		}`)},
		"templates/memory/thresholds.json": {Data: []byte(`[{"level":"memory-50","percent":50}]`)},
		"templates/tomlish/template.toml": {Data: []byte(`
thresholds_level_prefix = "t-"
directories = ["notes"]

[[hooks]]
event = "SessionStart"
matcher = "compact"
script = "hooks/restore.sh"
`)},
	}
}

func TestSource_Catalog(t *testing.T) {
	s := NewSource(testAssets())

	c, err := s.Catalog()
	require.NoError(t, err)
	assert.Len(t, c.Templates, 3)

	e, err := s.Lookup("memory")
	require.NoError(t, err)
	assert.Equal(t, "Memory", e.DisplayName())

	e, err = s.Lookup("tomlish")
	require.NoError(t, err)
	assert.Equal(t, "tomlish", e.DisplayName())

	_, err = s.Lookup("nope")
	assert.Equal(t, clierrors.ETemplateNotFound, clierrors.GetCode(err))
}

func TestSource_CatalogErrors(t *testing.T) {
	_, err := NewSource(fstest.MapFS{}).Catalog()
	assert.Equal(t, clierrors.EInvalidManifest, clierrors.GetCode(err))

	_, err = NewSource(fstest.MapFS{"templates/catalog.json": {Data: []byte("{")}}).Catalog()
	assert.Equal(t, clierrors.EInvalidManifest, clierrors.GetCode(err))
}

func TestSource_ManifestJSON(t *testing.T) {
	s := NewSource(testAssets())

	m, err := s.Manifest("memory")
	require.NoError(t, err)
	assert.Equal(t, "memory-", m.ThresholdsLevelPrefix)
	assert.Equal(t, []Hook{{Event: "PreToolUse", Matcher: "", Script: "hooks/save.sh"}}, m.Hooks)
	assert.Equal(t, []Agent{{Source: "agents/mem.md", Dest: "agents/mem.md"}}, m.Agents)
	assert.Equal(t, "<!-- memory -->", m.ClaudeSnippetMarker)

	list, err := s.Thresholds("memory", m)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "memory-50", list[0].Level())
}

func TestSource_ManifestTOML(t *testing.T) {
	s := NewSource(testAssets())

	m, err := s.Manifest("tomlish")
	require.NoError(t, err)
	assert.Equal(t, "t-", m.ThresholdsLevelPrefix)
	assert.Equal(t, []string{"notes"}, m.Directories)
	assert.Equal(t, []Hook{{Event: "SessionStart", Matcher: "compact", Script: "hooks/restore.sh"}}, m.Hooks)

	list, err := s.Thresholds("tomlish", m)
	require.NoError(t, err)
	assert.Nil(t, list)
}

func TestSource_ManifestMissing(t *testing.T) {
	s := NewSource(testAssets())

	for _, id := range []string{"ghost", "nope", "", "..", "a/b"} {
		_, err := s.Manifest(id)
		assert.Equal(t, clierrors.ETemplateNotFound, clierrors.GetCode(err), id)
	}
}

func TestSource_ManifestInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"bad json", "template.json", `{"hooks": [}`},
		{"bad toml", "template.toml", `hooks = [`},
		{"escaping agent dest", "template.json", `{"agents":[{"source":"a.md","dest":"../../etc/a.md"}]}`},
		{"absolute script", "template.json", `{"hooks":[{"event":"Stop","script":"/bin/sh"}]}`},
		{"hook without event", "template.json", `{"hooks":[{"script":"a.sh"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSource(fstest.MapFS{"templates/bad/" + tt.file: {Data: []byte(tt.body)}})
			_, err := s.Manifest("bad")
			assert.Equal(t, clierrors.EInvalidManifest, clierrors.GetCode(err))
		})
	}
}

func TestSource_Files(t *testing.T) {
	s := NewSource(testAssets())

	assert.True(t, s.Exists("memory", "thresholds.json"))
	assert.False(t, s.Exists("memory", "missing.md"))
	assert.Equal(t, "templates/memory/snippet.md", s.Path("memory", "snippet.md"))

	data, err := s.ReadFile("memory", "thresholds.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "memory-50")
}
