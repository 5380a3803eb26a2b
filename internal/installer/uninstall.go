package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/paths"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/settings"
)

// Uninstall removes everything the base install and the active template
// placed, restoring a foreign status line. The caller confirms beforehand.
// NOT_INSTALLED is returned when the install directory is absent.
func (c *Coordinator) Uninstall(ctx context.Context) error {
	ok, err := c.Installed()
	if err != nil {
		return err
	}
	if !ok {
		return clierrors.NotInstalled(c.paths.Scope)
	}

	// Unreadable metadata must not block uninstall; there is then no known
	// active template to remove.
	md, err := c.meta.Read()
	if err != nil {
		c.logger.Warn(ctx, "install metadata unreadable, skipping template removal", zap.Error(err))
	}
	if active := md.Active(); active != "" {
		c.out.Info(fmt.Sprintf("Removing template: %s...", active))
		if err := c.RemoveTemplateAssets(ctx, active); err != nil {
			return err
		}
		c.out.Success("Removed " + active)
	}

	if err := c.unpatchBaseSettings(ctx); err != nil {
		return err
	}

	if _, err := fs.RemovePath(c.fs, c.paths.InstallDir); err != nil {
		return err
	}
	c.out.Success("Removed " + c.paths.InstallDir)

	removed, err := fs.RemovePath(c.fs, c.paths.SkillDir)
	if err != nil {
		return err
	}
	if removed {
		if _, err := fs.RemoveDirIfEmpty(c.fs, c.paths.SkillsDir); err != nil {
			return err
		}
		c.out.Success("Removed agent skill")
	}

	n, err := c.removeFlagFiles()
	if err != nil {
		return err
	}
	if n > 0 {
		c.out.Success("Cleaned up flag files")
	}

	c.logger.Info(ctx, "uninstalled", zap.Int("flag_files", n))

	c.out.Blank()
	c.out.Success(fmt.Sprintf("cc-context-awareness uninstalled (%s).", c.paths.Scope))
	c.out.Dim("Restart Claude Code to apply changes.")
	return nil
}

func (c *Coordinator) unpatchBaseSettings(ctx context.Context) error {
	doc, err := c.settings.Load()
	if err != nil {
		return err
	}

	action, err := doc.RemoveStatusLine(c.paths.Bridge())
	if err != nil {
		return c.settings.Corrupted(err)
	}
	for _, script := range []string{paths.CheckScript, paths.ResetScript} {
		if _, err := doc.RemoveHook(c.paths.Script(script)); err != nil {
			return c.settings.Corrupted(err)
		}
	}

	res, err := c.settings.Save(ctx, doc)
	if err != nil {
		return err
	}
	name := filepath.Base(c.paths.SettingsFile)
	if res == settings.Removed {
		c.out.Success("Removed empty " + name)
	} else {
		c.out.Success("Updated " + name)
	}
	c.logger.Debug(ctx, "base settings removed", zap.String("status_line", string(action)))
	return nil
}

// removeFlagFiles deletes the per-session files the runtime scripts leave in
// the flag directory.
func (c *Coordinator) removeFlagFiles() (int, error) {
	if c.flagDir == "" {
		return 0, nil
	}
	n := 0
	for _, pattern := range paths.FlagPatterns {
		matches, err := c.fs.Glob(filepath.Join(c.flagDir, pattern))
		if err != nil {
			return n, err
		}
		for _, m := range matches {
			ok, err := fs.RemovePath(c.fs, m)
			if err != nil {
				return n, err
			}
			if ok {
				n++
			}
		}
	}
	return n, nil
}
