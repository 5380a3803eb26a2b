// Package thresholds owns the threshold list inside config.json.
//
// Each operation reads the document, mutates the list and writes it back
// within one call. Fields other than "thresholds" are preserved verbatim.
package thresholds

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
)

const thresholdsKey = "thresholds"

// Threshold is one threshold record. Only level and percent are interpreted;
// every other field passes through untouched.
type Threshold map[string]any

// Level returns the record's level, or "" when absent or not a string.
func (t Threshold) Level() string {
	s, _ := t["level"].(string)
	return s
}

// Percent returns the record's percent and whether it is a usable number.
func (t Threshold) Percent() (float64, bool) {
	switch v := t["percent"].(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// String renders "percent% - level".
func (t Threshold) String() string {
	pct := "?"
	if p, ok := t.Percent(); ok {
		pct = strconv.FormatFloat(p, 'f', -1, 64)
	}
	return fmt.Sprintf("%s%% - %s", pct, t.Level())
}

// Validate checks the fields this system relies on.
func (t Threshold) Validate() error {
	if t.Level() == "" {
		return fmt.Errorf("threshold is missing a level")
	}
	p, ok := t.Percent()
	if !ok {
		return fmt.Errorf("threshold %q is missing a numeric percent", t.Level())
	}
	if p < 0 || p > 100 {
		return fmt.Errorf("threshold %q percent %v is outside 0..100", t.Level(), p)
	}
	return nil
}

// Parse decodes a threshold bundle file: a JSON array of threshold objects.
// source names the file in error messages.
func Parse(data []byte, source string) ([]Threshold, error) {
	var list []Threshold
	if err := fs.Decode(data, &list); err != nil {
		return nil, clierrors.InvalidManifest(source, "thresholds file is not a JSON array of objects", err)
	}
	for _, t := range list {
		if err := t.Validate(); err != nil {
			return nil, clierrors.InvalidManifest(source, err.Error(), err)
		}
	}
	return list, nil
}

// Levels returns the levels of list in order.
func Levels(list []Threshold) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Level()
	}
	return out
}

// Upsert merges incoming into existing. The result is incoming followed by
// every existing entry whose level is not among the incoming levels.
// updated counts the existing entries that were replaced.
func Upsert(existing []any, incoming []Threshold) (result []any, added, updated int) {
	newLevels := make(map[string]struct{}, len(incoming))
	for _, t := range incoming {
		newLevels[t.Level()] = struct{}{}
	}

	kept := make([]any, 0, len(existing))
	for _, e := range existing {
		if lvl, ok := levelOf(e); ok {
			if _, replaced := newLevels[lvl]; replaced {
				continue
			}
		}
		kept = append(kept, e)
	}

	updated = len(existing) - len(kept)
	added = len(incoming) - updated

	result = make([]any, 0, len(incoming)+len(kept))
	for _, t := range incoming {
		result = append(result, map[string]any(t))
	}
	result = append(result, kept...)
	return result, added, updated
}

// RemoveByPrefix drops every entry whose level starts with prefix. Entries
// without a string level are kept.
func RemoveByPrefix(existing []any, prefix string) (result []any, removed int) {
	result = make([]any, 0, len(existing))
	for _, e := range existing {
		if lvl, ok := levelOf(e); ok && strings.HasPrefix(lvl, prefix) {
			removed++
			continue
		}
		result = append(result, e)
	}
	return result, removed
}

// levelOf returns the level of a raw list element.
func levelOf(e any) (string, bool) {
	obj, ok := e.(map[string]any)
	if !ok {
		return "", false
	}
	lvl, ok := obj["level"].(string)
	return lvl, ok
}
