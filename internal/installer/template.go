package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/logging"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/paths"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/templates"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/thresholds"
)

// snippetSeparator precedes a snippet appended to an existing project doc.
const snippetSeparator = "\n---\n\n"

// Install installs the base system when id is empty, otherwise the template.
func (c *Coordinator) Install(ctx context.Context, id string) error {
	if id == "" {
		return c.InstallBase(ctx)
	}
	return c.InstallTemplate(ctx, id)
}

// InstallTemplate makes id the active template. The id and its manifest are
// validated before anything is written. A different active template is fully
// removed first; reinstalling the active one refreshes it in place.
func (c *Coordinator) InstallTemplate(ctx context.Context, id string) error {
	entry, err := c.source.Lookup(id)
	if err != nil {
		return err
	}
	m, err := c.source.Manifest(id)
	if err != nil {
		return err
	}
	ctx = logging.WithTemplateID(ctx, id)

	if err := c.EnsureBase(ctx); err != nil {
		return err
	}
	md, err := c.readMeta()
	if err != nil {
		return err
	}

	if prev := md.Active(); prev != "" && prev != id {
		c.out.Warn(fmt.Sprintf("%q is currently active. It will be removed.", prev))
		if err := c.RemoveTemplateAssets(ctx, prev); err != nil {
			return err
		}
		md.SetActive("")
		if err := c.meta.Write(md); err != nil {
			return err
		}
		c.out.Success("Removed " + prev)
		c.out.Blank()
	}

	c.out.Info(fmt.Sprintf("Installing template: %s (%s)...", entry.DisplayName(), c.paths.Scope))

	doc, err := c.settings.Load()
	if err != nil {
		return err
	}

	// thresholds
	list, err := c.source.Thresholds(id, m)
	if err != nil {
		return err
	}
	if len(list) > 0 {
		res, err := c.config.Upsert(ctx, list)
		if err != nil {
			return err
		}
		c.out.Success(fmt.Sprintf("Added %d thresholds (%s)", len(list), strings.Join(thresholds.Levels(list), ", ")))
		c.logger.Debug(ctx, "template thresholds applied", zap.Int("added", res.Added), zap.Int("updated", res.Updated))
	}

	// hooks
	if len(m.Hooks) > 0 {
		c.out.Info("Registering hooks...")
	}
	for _, h := range m.Hooks {
		dst := c.paths.TemplateScript(id, h.Script)
		if err := fs.CopyFrom(c.fs, c.source.FS(), c.source.Path(id, h.Script), dst, 0o755); err != nil {
			return err
		}
		if _, err := doc.AddHook(h.Event, h.Matcher, dst); err != nil {
			return c.settings.Corrupted(err)
		}
		c.out.Success("Registered " + h.Script)
	}

	// agents
	if len(m.Agents) > 0 {
		c.out.Info("Installing agents...")
	}
	for _, a := range m.Agents {
		dst := c.paths.InClaudeDir(a.Dest)
		if err := fs.CopyFrom(c.fs, c.source.FS(), c.source.Path(id, a.Source), dst, 0o644); err != nil {
			return err
		}
		c.out.Success("Installed " + filepath.Base(a.Dest))
	}

	// directories
	if len(m.Directories) > 0 {
		c.out.Info("Creating directories...")
		created := make([]string, 0, len(m.Directories))
		for _, d := range m.Directories {
			if err := fs.EnsureDir(c.fs, c.paths.InClaudeDir(d)); err != nil {
				return err
			}
			created = append(created, ".claude/"+filepath.ToSlash(d)+"/")
		}
		c.out.Success("Created " + strings.Join(created, ", "))
	}

	if _, err := c.settings.Save(ctx, doc); err != nil {
		return err
	}

	if !c.noClaudeMD && m.ClaudeSnippet != "" {
		if err := c.installSnippet(ctx, id, m); err != nil {
			return err
		}
	}

	md.SetActive(id)
	if err := c.meta.Write(md); err != nil {
		return err
	}
	c.logger.Info(ctx, "template installed", zap.Int("hooks", len(m.Hooks)), zap.Int("agents", len(m.Agents)))

	c.out.Blank()
	c.out.Success(entry.DisplayName() + " installed!")
	c.out.Dim("Restart Claude Code to activate.")
	return nil
}

// installSnippet appends the template's instructions to the project doc, or
// creates it. A doc that already carries the marker is left alone. Without a
// marker the snippet text itself is the marker. A template whose snippet file
// is missing is skipped.
func (c *Coordinator) installSnippet(ctx context.Context, id string, m *templates.Manifest) error {
	snippet, err := c.source.ReadFile(id, m.ClaudeSnippet)
	if errors.Is(err, iofs.ErrNotExist) {
		c.logger.Debug(ctx, "snippet missing, skipped", zap.String("snippet", m.ClaudeSnippet))
		return nil
	}
	if err != nil {
		return err
	}

	doc := c.paths.ProjectDoc
	existing, err := c.fs.ReadFile(doc)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		if err := c.fs.WriteFile(doc, snippet, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", doc, err)
		}
		c.out.Success("Created " + paths.ProjectDocName + " with template instructions")
		return nil
	case err != nil:
		return err
	}

	marker := []byte(m.ClaudeSnippetMarker)
	if len(marker) == 0 {
		marker = bytes.TrimSpace(snippet)
	}
	if bytes.Contains(existing, marker) {
		c.out.Info(paths.ProjectDocName + ": instructions already present (skipped)")
		return nil
	}

	if err := c.fs.AppendFile(doc, append([]byte(snippetSeparator), snippet...)); err != nil {
		return fmt.Errorf("append %s: %w", doc, err)
	}
	c.out.Success("Appended instructions to " + paths.ProjectDocName)
	return nil
}

// RemoveTemplate removes id when it is the active template and clears it
// from the metadata. Removing any other id only reports what is active.
func (c *Coordinator) RemoveTemplate(ctx context.Context, id string) error {
	md, err := c.readMeta()
	if err != nil {
		return err
	}

	active := md.Active()
	if active != id {
		c.out.Warn(fmt.Sprintf("Template %q is not currently active.", id))
		if active != "" {
			c.out.Dim("Active template: " + active)
		} else {
			c.out.Dim("No template is currently active.")
		}
		return nil
	}

	if err := c.RemoveTemplateAssets(ctx, id); err != nil {
		return err
	}
	md.SetActive("")
	if err := c.meta.Write(md); err != nil {
		return err
	}

	c.out.Blank()
	c.out.Success(id + " removed.")
	c.out.Dim("Restart Claude Code to apply changes.")
	return nil
}

// RemoveTemplateAssets undoes a template install: its thresholds by level
// prefix, its hooks by script path, its agent files and its install
// directory. When the manifest cannot be loaded only the install directory
// is removed, so removal always makes progress.
func (c *Coordinator) RemoveTemplateAssets(ctx context.Context, id string) error {
	ctx = logging.WithTemplateID(ctx, id)

	m, err := c.source.Manifest(id)
	if err != nil {
		c.out.Warn(fmt.Sprintf("Could not load manifest for %s, doing best-effort cleanup", id))
		c.logger.Warn(ctx, "manifest unavailable, removing template directory only", zap.Error(err))
		return c.removeTemplateDir(ctx, id)
	}

	if m.ThresholdsLevelPrefix != "" {
		n, err := c.config.RemoveByPrefix(ctx, m.ThresholdsLevelPrefix)
		if err != nil {
			return err
		}
		if n > 0 {
			c.out.Success(fmt.Sprintf("Removed %d thresholds", n))
		}
	}

	if len(m.Hooks) > 0 {
		doc, err := c.settings.Load()
		if err != nil {
			return err
		}
		removed := 0
		for _, h := range m.Hooks {
			ok, err := doc.RemoveHook(c.paths.TemplateScript(id, h.Script))
			if err != nil {
				return c.settings.Corrupted(err)
			}
			if ok {
				removed++
			}
		}
		if removed > 0 {
			if _, err := c.settings.Save(ctx, doc); err != nil {
				return err
			}
			c.out.Success("Removed hooks from settings")
		}
	}

	for _, a := range m.Agents {
		dst := c.paths.InClaudeDir(a.Dest)
		ok, err := fs.RemovePath(c.fs, dst)
		if err != nil {
			return err
		}
		if ok {
			c.out.Success("Removed " + filepath.Base(a.Dest))
		}
		if err := c.pruneEmptyParents(filepath.Dir(dst)); err != nil {
			return err
		}
	}

	return c.removeTemplateDir(ctx, id)
}

// removeTemplateDir deletes <claude>/<id>. Ids that are not a single path
// element, or that name a directory owned by the base install, are refused
// so unreadable metadata cannot point the removal elsewhere.
func (c *Coordinator) removeTemplateDir(ctx context.Context, id string) error {
	if !filepath.IsLocal(id) || filepath.Base(id) != id || reservedDir(id) {
		c.logger.Warn(ctx, "refusing to remove template directory", zap.String("id", id))
		return nil
	}
	ok, err := fs.RemovePath(c.fs, c.paths.TemplateDir(id))
	if err != nil {
		return err
	}
	if ok {
		c.logger.Debug(ctx, "template directory removed", zap.String("dir", c.paths.TemplateDir(id)))
	}
	return nil
}

// pruneEmptyParents removes dir and its ancestors while they are empty,
// stopping at the claude directory.
func (c *Coordinator) pruneEmptyParents(dir string) error {
	root := filepath.Clean(c.paths.ClaudeDir)
	for {
		dir = filepath.Clean(dir)
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == "." || !filepath.IsLocal(rel) {
			return nil
		}
		removed, err := fs.RemoveDirIfEmpty(c.fs, dir)
		if err != nil || !removed {
			return err
		}
		dir = filepath.Dir(dir)
	}
}

func reservedDir(id string) bool {
	switch id {
	case paths.InstallDirName, "skills", "agents":
		return true
	}
	return false
}
