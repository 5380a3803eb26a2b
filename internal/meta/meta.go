// Package meta persists .install-meta.json, which records the install scope
// and the single active template.
package meta

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"time"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
)

// Metadata is the install metadata document.
type Metadata struct {
	Version string `json:"version"`
	Scope   string `json:"scope"`
	// ActiveTemplate is nil when no template is installed; it serializes as null.
	ActiveTemplate *string `json:"activeTemplate"`
	InstalledAt    string  `json:"installedAt"`
}

// Active returns the active template id or "".
func (m *Metadata) Active() string {
	if m == nil || m.ActiveTemplate == nil {
		return ""
	}
	return *m.ActiveTemplate
}

// SetActive sets the active template; "" clears it.
func (m *Metadata) SetActive(id string) {
	if id == "" {
		m.ActiveTemplate = nil
		return
	}
	m.ActiveTemplate = &id
}

// Store handles persistence of the metadata file.
type Store struct {
	FS   fs.FS            // filesystem interface for stubbing
	Path string           // .install-meta.json
	Now  func() time.Time // injectable clock for deterministic tests
}

// NewStore creates a Store. A nil now uses time.Now.
func NewStore(filesystem fs.FS, path string, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{FS: filesystem, Path: path, Now: now}
}

// Exists reports whether the metadata file is present, which is how a base
// install is detected.
func (s *Store) Exists() (bool, error) {
	return fs.Exists(s.FS, s.Path)
}

// Read loads the metadata. A missing file returns (nil, nil).
func (s *Store) Read() (*Metadata, error) {
	data, err := s.FS.ReadFile(s.Path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, clierrors.MetaCorrupted(s.Path, err)
	}
	return &m, nil
}

// Write persists m atomically. The install directory must exist.
func (s *Store) Write(m *Metadata) error {
	return fs.WriteJSONAtomic(s.FS, s.Path, m, 0o644)
}

// Fresh returns metadata for a new base install stamped with the store clock.
func (s *Store) Fresh(version, scope string) *Metadata {
	return &Metadata{
		Version:     version,
		Scope:       scope,
		InstalledAt: s.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
