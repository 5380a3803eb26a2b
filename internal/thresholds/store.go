package thresholds

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"

	"go.uber.org/zap"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/logging"
)

// DefaultConfigAsset is the asset path of the config created on base install.
const DefaultConfigAsset = "runtime/config.default.json"

// Result reports what an upsert changed.
type Result struct {
	Added   int
	Updated int
}

// Store reads and writes one config.json.
type Store struct {
	fs     fs.FS
	path   string
	logger *logging.Logger
}

// NewStore creates a Store for the config document at path.
func NewStore(fsys fs.FS, path string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{fs: fsys, path: path, logger: logger.Named("thresholds")}
}

// Path returns the config document path.
func (s *Store) Path() string { return s.path }

// Read loads the document. A missing file returns (nil, nil).
func (s *Store) Read() (map[string]any, error) {
	doc, err := fs.ReadJSONObject(s.fs, s.path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, clierrors.ConfigCorrupted(s.path, err)
	}
	return doc, nil
}

// Write persists doc, creating the parent directory.
func (s *Store) Write(doc map[string]any) error {
	if err := fs.EnsureDir(s.fs, filepath.Dir(s.path)); err != nil {
		return err
	}
	return fs.WriteJSONAtomic(s.fs, s.path, doc, 0o644)
}

// List returns the current thresholds. A missing document is an empty list.
func (s *Store) List() ([]Threshold, error) {
	doc, err := s.Read()
	if err != nil || doc == nil {
		return nil, err
	}
	raw, err := s.thresholds(doc)
	if err != nil {
		return nil, err
	}
	out := make([]Threshold, 0, len(raw))
	for _, e := range raw {
		if obj, ok := e.(map[string]any); ok {
			out = append(out, Threshold(obj))
		}
	}
	return out, nil
}

// CreateDefault writes the bundled default config when none exists.
// An existing document, valid or not, is never overwritten; a corrupt one is
// reported.
func (s *Store) CreateDefault(ctx context.Context, assets iofs.FS) (bool, error) {
	doc, err := s.Read()
	if err != nil {
		return false, err
	}
	if doc != nil {
		return false, nil
	}

	data, err := iofs.ReadFile(assets, DefaultConfigAsset)
	if err != nil {
		return false, err
	}
	def, err := fs.DecodeObject(data)
	if err != nil {
		return false, clierrors.InvalidManifest(DefaultConfigAsset, "default config is not a JSON object", err)
	}
	if err := s.Write(def); err != nil {
		return false, err
	}
	s.logger.Debug(ctx, "default config created", zap.String("path", s.path))
	return true, nil
}

// Upsert applies incoming thresholds by level. The document must already
// exist; a missing document is reported as corrupted since base install
// always creates it.
func (s *Store) Upsert(ctx context.Context, incoming []Threshold) (Result, error) {
	doc, err := s.Read()
	if err != nil {
		return Result{}, err
	}
	if doc == nil {
		return Result{}, clierrors.ConfigCorrupted(s.path, iofs.ErrNotExist)
	}
	existing, err := s.thresholds(doc)
	if err != nil {
		return Result{}, err
	}

	merged, added, updated := Upsert(existing, incoming)
	doc[thresholdsKey] = merged
	if err := s.Write(doc); err != nil {
		return Result{}, err
	}

	s.logger.Debug(ctx, "thresholds upserted",
		zap.String("path", s.path),
		zap.Int("added", added),
		zap.Int("updated", updated),
		zap.Int("total", len(merged)))
	return Result{Added: added, Updated: updated}, nil
}

// RemoveByPrefix drops thresholds whose level starts with prefix. A missing
// document removes nothing. The file is written only when something changed.
func (s *Store) RemoveByPrefix(ctx context.Context, prefix string) (int, error) {
	doc, err := s.Read()
	if err != nil || doc == nil {
		return 0, err
	}
	existing, err := s.thresholds(doc)
	if err != nil {
		return 0, err
	}

	kept, removed := RemoveByPrefix(existing, prefix)
	if removed == 0 {
		return 0, nil
	}
	doc[thresholdsKey] = kept
	if err := s.Write(doc); err != nil {
		return 0, err
	}

	s.logger.Debug(ctx, "thresholds removed",
		zap.String("path", s.path),
		zap.String("prefix", prefix),
		zap.Int("removed", removed))
	return removed, nil
}

// thresholds returns the raw list. A missing or null key is empty; any other
// non-array value makes the document unusable.
func (s *Store) thresholds(doc map[string]any) ([]any, error) {
	v, ok := doc[thresholdsKey]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, clierrors.ConfigCorrupted(s.path, errors.New(`"thresholds" is not an array`))
	}
	return list, nil
}
