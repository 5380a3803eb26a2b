// Package templates loads the template catalog and per-template manifests
// from an asset filesystem.
package templates

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Entry is one catalog row.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DisplayName returns the name, falling back to the id.
func (e Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Catalog lists the installable templates.
type Catalog struct {
	Templates []Entry `json:"templates"`
}

// Find returns the entry with id.
func (c Catalog) Find(id string) (Entry, bool) {
	for _, e := range c.Templates {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Hook declares one script to register in the settings document.
type Hook struct {
	Event   string `json:"event" toml:"event"`
	Matcher string `json:"matcher" toml:"matcher"`
	Script  string `json:"script" toml:"script"`
}

// Agent declares one file copied into the claude directory.
type Agent struct {
	Source string `json:"source" toml:"source"`
	Dest   string `json:"dest" toml:"dest"`
}

// Manifest describes a template bundle. All paths are relative: sources to
// the template's asset directory, destinations to the claude directory.
type Manifest struct {
	ThresholdsFile        string   `json:"thresholds_file" toml:"thresholds_file"`
	ThresholdsLevelPrefix string   `json:"thresholds_level_prefix" toml:"thresholds_level_prefix"`
	Hooks                 []Hook   `json:"hooks" toml:"hooks"`
	Agents                []Agent  `json:"agents" toml:"agents"`
	Directories           []string `json:"directories" toml:"directories"`
	ClaudeSnippet         string   `json:"claude_snippet" toml:"claude_snippet"`
	ClaudeSnippetMarker   string   `json:"claude_snippet_marker" toml:"claude_snippet_marker"`
}

// Validate rejects manifests whose paths would escape their base directory
// or whose hooks are incomplete.
func (m *Manifest) Validate() error {
	check := func(what, p string) error {
		if p == "" {
			return fmt.Errorf("%s is empty", what)
		}
		if !filepath.IsLocal(p) {
			return fmt.Errorf("%s %q must be a relative path inside the template", what, p)
		}
		return nil
	}

	if m.ThresholdsFile != "" {
		if err := check("thresholds_file", m.ThresholdsFile); err != nil {
			return err
		}
	}
	for i, h := range m.Hooks {
		if strings.TrimSpace(h.Event) == "" {
			return fmt.Errorf("hooks[%d].event is empty", i)
		}
		if err := check(fmt.Sprintf("hooks[%d].script", i), h.Script); err != nil {
			return err
		}
	}
	for i, a := range m.Agents {
		if err := check(fmt.Sprintf("agents[%d].source", i), a.Source); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("agents[%d].dest", i), a.Dest); err != nil {
			return err
		}
	}
	for i, d := range m.Directories {
		if err := check(fmt.Sprintf("directories[%d]", i), d); err != nil {
			return err
		}
	}
	if m.ClaudeSnippet != "" {
		if err := check("claude_snippet", m.ClaudeSnippet); err != nil {
			return err
		}
	}
	return nil
}
