package installer

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/meta"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/paths"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/settings"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/thresholds"
)

// InstallBase places the runtime scripts, creates the default config, wires
// the status line and the two runtime hooks into the settings document,
// installs the skill document and writes install metadata. Re-running it
// refreshes scripts and registrations without touching an existing config,
// the active template or the original install time.
func (c *Coordinator) InstallBase(ctx context.Context) error {
	scope := c.paths.Scope
	c.out.Info(fmt.Sprintf("Installing base system (%s)...", scope))

	if err := fs.EnsureDir(c.fs, c.paths.InstallDir); err != nil {
		return err
	}

	c.out.Info("Copying runtime scripts...")
	for _, name := range paths.RuntimeScripts {
		if err := fs.CopyFrom(c.fs, c.assets, path.Join(runtimeDir, name), c.paths.Script(name), 0o755); err != nil {
			return err
		}
	}
	c.out.Success("Scripts installed to " + c.paths.InstallDir)

	created, err := c.config.CreateDefault(ctx, c.assets)
	if err != nil {
		return err
	}
	if created {
		list, err := c.config.List()
		if err != nil {
			return err
		}
		c.out.Success(fmt.Sprintf("Config created (%s)", describeThresholds(list)))
	} else {
		c.out.Info("Existing config.json preserved")
	}

	if err := c.patchBaseSettings(ctx); err != nil {
		return err
	}

	if !c.noSkill {
		if err := fs.CopyFrom(c.fs, c.assets, skillAsset, c.paths.SkillFile(), 0o644); err != nil {
			return err
		}
		c.out.Success("Installed agent skill")
	}

	if err := c.writeBaseMeta(ctx); err != nil {
		return err
	}

	c.logger.Info(ctx, "base installed",
		zap.String("install_dir", c.paths.InstallDir),
		zap.Bool("config_created", created))

	c.out.Blank()
	c.out.Success(fmt.Sprintf("cc-context-awareness installed (%s)!", scope))
	c.out.Dim("Config:   " + c.paths.ConfigFile)
	c.out.Dim("Settings: " + c.paths.SettingsFile)
	c.out.Dim("Restart Claude Code to activate.")
	return nil
}

// EnsureBase runs InstallBase when no install metadata exists.
func (c *Coordinator) EnsureBase(ctx context.Context) error {
	ok, err := c.meta.Exists()
	if err != nil || ok {
		return err
	}
	c.out.Info("Base system not found, installing automatically...")
	c.out.Blank()
	if err := c.InstallBase(ctx); err != nil {
		return err
	}
	c.out.Blank()
	return nil
}

func (c *Coordinator) patchBaseSettings(ctx context.Context) error {
	doc, err := c.settings.Load()
	if err != nil {
		return err
	}

	action, command, err := doc.SetStatusLine(c.paths.Bridge())
	if err != nil {
		return c.settings.Corrupted(err)
	}
	switch action {
	case settings.ActionCreated:
		c.out.Success("statusLine configured: " + command)
	case settings.ActionPrepended:
		c.out.Success("Bridge prepended to existing statusLine")
		c.out.Dim("statusLine: " + command)
	default:
		c.out.Info("statusLine already configured")
	}

	baseHooks := []struct {
		event, matcher, script, label string
	}{
		{settings.EventPreToolUse, "", paths.CheckScript, "Registered PreToolUse hook (check-thresholds)"},
		{settings.EventSessionStart, "compact", paths.ResetScript, "Registered SessionStart hook (compaction reset)"},
	}
	for _, h := range baseHooks {
		added, err := doc.AddHook(h.event, h.matcher, c.paths.Script(h.script))
		if err != nil {
			return c.settings.Corrupted(err)
		}
		if added {
			c.out.Success(h.label)
		}
	}

	if _, err := c.settings.Save(ctx, doc); err != nil {
		return err
	}
	c.out.Success("Updated " + filepath.Base(c.paths.SettingsFile))
	c.logger.Debug(ctx, "base settings patched", zap.String("status_line", string(action)))
	return nil
}

// writeBaseMeta keeps the active template and install time of a previous
// base install. Unreadable metadata is replaced.
func (c *Coordinator) writeBaseMeta(ctx context.Context) error {
	m := c.meta.Fresh(c.version, c.paths.Scope)
	prev, err := c.meta.Read()
	switch {
	case clierrors.GetCode(err) == clierrors.EMetaCorrupted:
		c.logger.Warn(ctx, "replacing unreadable install metadata", zap.Error(err))
	case err != nil:
		return err
	case prev != nil:
		m.ActiveTemplate = prev.ActiveTemplate
		if prev.InstalledAt != "" {
			m.InstalledAt = prev.InstalledAt
		}
	}
	return c.meta.Write(m)
}

// readMeta loads metadata, failing BASE_NOT_INSTALLED when it is absent.
func (c *Coordinator) readMeta() (*meta.Metadata, error) {
	m, err := c.meta.Read()
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, clierrors.BaseNotInstalled()
	}
	return m, nil
}

func describeThresholds(list []thresholds.Threshold) string {
	if len(list) == 0 {
		return "0 thresholds"
	}
	noun := "thresholds"
	if len(list) == 1 {
		noun = "threshold"
	}
	parts := make([]string, len(list))
	for i, t := range list {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%d %s: %s", len(list), noun, strings.Join(parts, ", "))
}
