package templates

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"path"

	"github.com/BurntSushi/toml"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/thresholds"
)

// Asset layout under the templates root.
const (
	Root         = "templates"
	CatalogFile  = "catalog.json"
	ManifestJSON = "template.json"
	ManifestTOML = "template.toml"
)

// Source reads templates from an asset filesystem laid out as
// templates/catalog.json and templates/<id>/template.{json,toml}.
type Source struct {
	fsys iofs.FS
}

// NewSource creates a Source over assets.
func NewSource(assets iofs.FS) *Source {
	return &Source{fsys: assets}
}

// Catalog loads the catalog.
func (s *Source) Catalog() (Catalog, error) {
	p := path.Join(Root, CatalogFile)
	data, err := iofs.ReadFile(s.fsys, p)
	if err != nil {
		return Catalog{}, clierrors.InvalidManifest(p, "catalog is unreadable", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, clierrors.InvalidManifest(p, "catalog is not valid JSON", err)
	}
	return c, nil
}

// Lookup returns the catalog entry for id or TEMPLATE_NOT_FOUND.
func (s *Source) Lookup(id string) (Entry, error) {
	c, err := s.Catalog()
	if err != nil {
		return Entry{}, err
	}
	e, ok := c.Find(id)
	if !ok {
		return Entry{}, clierrors.TemplateNotFound(id)
	}
	return e, nil
}

// Manifest loads the manifest for id, preferring template.json over
// template.toml. A template without either is TEMPLATE_NOT_FOUND.
func (s *Source) Manifest(id string) (*Manifest, error) {
	if !validID(id) {
		return nil, clierrors.TemplateNotFound(id)
	}

	var m Manifest
	p := path.Join(Root, id, ManifestJSON)
	data, err := iofs.ReadFile(s.fsys, p)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, clierrors.InvalidManifest(p, "manifest is not valid JSON", err)
		}
	case errors.Is(err, iofs.ErrNotExist):
		p = path.Join(Root, id, ManifestTOML)
		data, err = iofs.ReadFile(s.fsys, p)
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, clierrors.TemplateNotFound(id)
		}
		if err != nil {
			return nil, err
		}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, clierrors.InvalidManifest(p, "manifest is not valid TOML", err)
		}
	default:
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, clierrors.InvalidManifest(p, err.Error(), err)
	}
	return &m, nil
}

// Path returns the asset path of a file inside a template.
func (s *Source) Path(id, rel string) string {
	return path.Join(Root, id, rel)
}

// ReadFile reads a file inside a template directory.
func (s *Source) ReadFile(id, rel string) ([]byte, error) {
	return iofs.ReadFile(s.fsys, s.Path(id, rel))
}

// Exists reports whether a file inside a template exists.
func (s *Source) Exists(id, rel string) bool {
	_, err := iofs.Stat(s.fsys, s.Path(id, rel))
	return err == nil
}

// FS exposes the underlying asset filesystem for file placement.
func (s *Source) FS() iofs.FS { return s.fsys }

// Thresholds loads the manifest's thresholds file. A manifest without one
// yields nil.
func (s *Source) Thresholds(id string, m *Manifest) ([]thresholds.Threshold, error) {
	if m.ThresholdsFile == "" {
		return nil, nil
	}
	data, err := s.ReadFile(id, m.ThresholdsFile)
	if err != nil {
		return nil, err
	}
	return thresholds.Parse(data, s.Path(id, m.ThresholdsFile))
}

// validID accepts a single path element usable as a directory name.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && iofs.ValidPath(id) && path.Base(id) == id
}
