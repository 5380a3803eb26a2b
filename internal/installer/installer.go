// Package installer coordinates the multi-document sequences behind every
// CLI command: base install, template install and removal, uninstall, and
// the read-only status and list views.
//
// A sequence reads and writes the threshold config, the settings document,
// the install metadata and the placed files in a fixed order. Steps are not
// rolled back on failure; each is safe to re-run.
package installer

import (
	iofs "io/fs"
	"time"

	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/logging"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/meta"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/paths"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/settings"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/templates"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/thresholds"
)

// Asset paths outside the templates tree.
const (
	runtimeDir = "runtime"
	skillAsset = "docs/SKILL.md"
)

// Reporter receives the user-facing progress lines. *ui.Printer implements it.
type Reporter interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Dim(msg string)
	Blank()
}

type nopReporter struct{}

func (nopReporter) Info(string)    {}
func (nopReporter) Warn(string)    {}
func (nopReporter) Success(string) {}
func (nopReporter) Dim(string)     {}
func (nopReporter) Blank()         {}

// Options configures a Coordinator.
type Options struct {
	FS      fs.FS
	Assets  iofs.FS
	Paths   paths.Paths
	Version string

	// NoClaudeMD skips the project doc snippet on template install.
	NoClaudeMD bool
	// NoSkill skips installing the skill document on base install.
	NoSkill bool
	// FlagDir holds the runtime flag files cleaned up on uninstall.
	FlagDir string

	Logger   *logging.Logger
	Reporter Reporter
	Now      func() time.Time
}

// Coordinator runs install sequences for one scope.
type Coordinator struct {
	fs      fs.FS
	assets  iofs.FS
	source  *templates.Source
	paths   paths.Paths
	version string

	noClaudeMD bool
	noSkill    bool
	flagDir    string

	config   *thresholds.Store
	settings *settings.File
	meta     *meta.Store

	logger *logging.Logger
	out    Reporter
}

// New creates a Coordinator. Nil FS, Logger and Reporter get working defaults.
func New(opts Options) *Coordinator {
	if opts.FS == nil {
		opts.FS = fs.NewRealFS()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	logger := opts.Logger.Named("installer")

	return &Coordinator{
		fs:         opts.FS,
		assets:     opts.Assets,
		source:     templates.NewSource(opts.Assets),
		paths:      opts.Paths,
		version:    opts.Version,
		noClaudeMD: opts.NoClaudeMD,
		noSkill:    opts.NoSkill,
		flagDir:    opts.FlagDir,
		config:     thresholds.NewStore(opts.FS, opts.Paths.ConfigFile, opts.Logger),
		settings:   settings.NewFile(opts.FS, opts.Paths.SettingsFile, opts.Logger),
		meta:       meta.NewStore(opts.FS, opts.Paths.MetaFile, opts.Now),
		logger:     logger,
		out:        opts.Reporter,
	}
}

// Paths returns the resolved locations this coordinator works on.
func (c *Coordinator) Paths() paths.Paths { return c.paths }

// Installed reports whether the install directory exists.
func (c *Coordinator) Installed() (bool, error) {
	return fs.Exists(c.fs, c.paths.InstallDir)
}
