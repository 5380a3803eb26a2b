package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const tempPattern = ".ccctx-tmp-*"

// WriteFileAtomic writes data to path atomically using a temp file + rename.
// The temp file is created in the same directory as path so the rename stays on
// one filesystem. On failure the original file (if any) is left unchanged.
// The caller must ensure the parent directory exists.
func WriteFileAtomic(fsys FS, path string, data []byte, perm os.FileMode) error {
	tmpPath, w, err := fsys.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return err
	}

	success := false
	defer func() {
		if !success {
			fsys.Remove(tmpPath)
		}
	}()

	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := fsys.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := fsys.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}

// MarshalIndent renders v as two-space indented JSON with a trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteJSONAtomic marshals v with MarshalIndent and writes it atomically.
// The caller must ensure the parent directory exists.
func WriteJSONAtomic(fsys FS, path string, v any, perm os.FileMode) error {
	data, err := MarshalIndent(v)
	if err != nil {
		return err
	}
	return WriteFileAtomic(fsys, path, data, perm)
}
