package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestStore_FreshWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".install-meta.json")
	s := NewStore(fs.NewRealFS(), path, fixedNow)

	ok, err := s.Exists()
	require.NoError(t, err)
	assert.False(t, ok)

	m, err := s.Read()
	require.NoError(t, err)
	assert.Nil(t, m)

	m = s.Fresh("1.0.0", "local")
	require.NoError(t, s.Write(m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0","scope":"local","activeTemplate":null,"installedAt":"2026-03-01T12:30:00.000Z"}`, string(data))

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "", got.Active())

	got.SetActive("handoff")
	require.NoError(t, s.Write(got))
	got, err = s.Read()
	require.NoError(t, err)
	assert.Equal(t, "handoff", got.Active())

	got.SetActive("")
	assert.Nil(t, got.ActiveTemplate)
}

func TestStore_ReadCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".install-meta.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := NewStore(fs.NewRealFS(), path, nil).Read()
	assert.Equal(t, clierrors.EMetaCorrupted, clierrors.GetCode(err))
}

func TestMetadata_ActiveNil(t *testing.T) {
	var m *Metadata
	assert.Equal(t, "", m.Active())
}
