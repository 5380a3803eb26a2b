package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ErrNotObject is returned when a document's top-level value is not a JSON object.
var ErrNotObject = errors.New("top-level JSON value is not an object")

// Decode unmarshals exactly one JSON value from data into v. Numbers decode as
// json.Number so opaque fields round-trip without float reformatting.
func Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// DecodeObject decodes data as a JSON object.
func DecodeObject(data []byte) (map[string]any, error) {
	var v any
	if err := Decode(data, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

// ReadJSONObject reads path and decodes it as a JSON object. A missing file
// returns an error satisfying errors.Is(err, fs.ErrNotExist).
func ReadJSONObject(fsys FS, path string) (map[string]any, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeObject(data)
}
