package assets

import (
	iofs "io/fs"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/templates"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/thresholds"
)

func TestRuntimeFiles(t *testing.T) {
	for _, p := range []string{
		"runtime/bridge.sh",
		"runtime/check-thresholds.sh",
		"runtime/reset.sh",
		"docs/SKILL.md",
	} {
		_, err := iofs.Stat(FS(), p)
		assert.NoError(t, err, p)
	}

	data, err := iofs.ReadFile(FS(), thresholds.DefaultConfigAsset)
	require.NoError(t, err)
	doc, err := fs.DecodeObject(data)
	require.NoError(t, err)
	assert.Contains(t, doc, "thresholds")
}

// Every catalog entry must resolve to a valid manifest whose referenced
// files exist in the bundle.
func TestBundledTemplates(t *testing.T) {
	src := templates.NewSource(FS())
	cat, err := src.Catalog()
	require.NoError(t, err)
	require.NotEmpty(t, cat.Templates)

	for _, e := range cat.Templates {
		t.Run(e.ID, func(t *testing.T) {
			m, err := src.Manifest(e.ID)
			require.NoError(t, err)

			list, err := src.Thresholds(e.ID, m)
			require.NoError(t, err)
			for _, th := range list {
				assert.Contains(t, th.Level(), m.ThresholdsLevelPrefix)
			}

			for _, h := range m.Hooks {
				assert.True(t, src.Exists(e.ID, h.Script), h.Script)
			}
			for _, a := range m.Agents {
				assert.True(t, src.Exists(e.ID, a.Source), a.Source)
			}
			if m.ClaudeSnippet != "" {
				snippet, err := src.ReadFile(e.ID, m.ClaudeSnippet)
				require.NoError(t, err)
				assert.Contains(t, string(snippet), m.ClaudeSnippetMarker)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	assert.Equal(t, FS(), Open(""))

	dir := t.TempDir()
	bundle := Open(dir)
	_, err := iofs.Stat(bundle, path.Join("runtime", "bridge.sh"))
	assert.ErrorIs(t, err, iofs.ErrNotExist)
}
