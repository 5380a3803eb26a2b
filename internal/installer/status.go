package installer

import (
	"github.com/fyrsmithlabs/cc-context-awareness/internal/templates"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/thresholds"
)

// Status is a snapshot of one scope's install.
type Status struct {
	Installed      bool
	Scope          string
	Version        string
	ConfigFile     string
	SettingsFile   string
	Thresholds     []thresholds.Threshold
	ActiveTemplate string
}

// Status reads the install state. Nothing is written.
func (c *Coordinator) Status() (Status, error) {
	st := Status{
		Scope:        c.paths.Scope,
		ConfigFile:   c.paths.ConfigFile,
		SettingsFile: c.paths.SettingsFile,
	}
	ok, err := c.Installed()
	if err != nil || !ok {
		return st, err
	}
	st.Installed = true

	md, err := c.meta.Read()
	if err != nil {
		return st, err
	}
	if md != nil {
		st.Version = md.Version
		st.ActiveTemplate = md.Active()
	}

	st.Thresholds, err = c.config.List()
	if err != nil {
		return st, err
	}
	return st, nil
}

// List returns the catalog entries in catalog order.
func (c *Coordinator) List() ([]templates.Entry, error) {
	cat, err := c.source.Catalog()
	if err != nil {
		return nil, err
	}
	return cat.Templates, nil
}
