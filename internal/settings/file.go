package settings

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

// WriteResult is the outcome of Save.
type WriteResult string

const (
	Written WriteResult = "written"
	Removed WriteResult = "removed"
)

// File reads and writes one settings document.
type File struct {
	fs     fs.FS
	path   string
	logger *logging.Logger
}

// NewFile creates a File for the settings document at path.
func NewFile(fsys fs.FS, path string, logger *logging.Logger) *File {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &File{fs: fsys, path: path, logger: logger.Named("settings")}
}

// Path returns the settings file path.
func (f *File) Path() string { return f.path }

// Load reads the document. A missing file is an empty document; anything
// that is not a JSON object is SETTINGS_CORRUPTED.
func (f *File) Load() (Document, error) {
	obj, err := fs.ReadJSONObject(f.fs, f.path)
	if errors.Is(err, iofs.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return nil, clierrors.SettingsCorrupted(f.path, err)
	}
	return Document(obj), nil
}

// Save writes doc, or deletes the file when doc is empty. An existing file
// keeps its permission bits.
func (f *File) Save(ctx context.Context, doc Document) (WriteResult, error) {
	if doc.IsEmpty() {
		if err := f.fs.Remove(f.path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return "", err
		}
		f.logger.Debug(ctx, "settings file removed", zap.String("path", f.path))
		return Removed, nil
	}

	if err := fs.EnsureDir(f.fs, filepath.Dir(f.path)); err != nil {
		return "", err
	}
	perm := iofs.FileMode(0o644)
	if info, err := f.fs.Stat(f.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := fs.WriteJSONAtomic(f.fs, f.path, doc, perm); err != nil {
		return "", err
	}
	f.logger.Debug(ctx, "settings written", zap.String("path", f.path), zap.Int("keys", len(doc)))
	return Written, nil
}

// Corrupted converts a patch error into SETTINGS_CORRUPTED for this file.
// Errors that are not ErrMalformed pass through.
func (f *File) Corrupted(err error) error {
	if errors.Is(err, ErrMalformed) {
		return clierrors.SettingsCorrupted(f.path, err)
	}
	return err
}
