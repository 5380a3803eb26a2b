// Package paths resolves every on-disk location cc-context-awareness touches
// for one install scope.
package paths

import "path/filepath"

// Names under the install directory and the claude directory.
const (
	InstallDirName  = "cc-context-awareness"
	ConfigFileName  = "config.json"
	MetaFileName    = ".install-meta.json"
	SkillDirName    = "configure-context-awareness"
	SkillFileName   = "SKILL.md"
	ProjectDocName  = "CLAUDE.md"
	BridgeScript    = "bridge.sh"
	CheckScript     = "check-thresholds.sh"
	ResetScript     = "reset.sh"
	settingsLocal   = "settings.local.json"
	settingsGlobal  = "settings.json"
	claudeDirName   = ".claude"
	skillsDirName   = "skills"
)

// Scope values.
const (
	ScopeLocal  = "local"
	ScopeGlobal = "global"
)

// RuntimeScripts lists the scripts copied into the install directory.
var RuntimeScripts = []string{BridgeScript, CheckScript, ResetScript}

// FlagPatterns are the glob patterns of per-session flag files the runtime
// scripts leave behind in the flag directory.
var FlagPatterns = []string{".cc-ctx-pct-*", ".cc-ctx-fired-*", ".cc-ctx-compacted-*"}

// Paths holds the resolved locations for one scope.
type Paths struct {
	Scope        string
	ClaudeDir    string
	SettingsFile string
	InstallDir   string
	ConfigFile   string
	MetaFile     string
	SkillsDir    string
	SkillDir     string
	ProjectDoc   string
}

// Resolve computes paths. Global scope lives under home, local under work.
// The project doc is always in work.
func Resolve(global bool, home, work string) Paths {
	p := Paths{Scope: ScopeLocal}
	root := work
	settings := settingsLocal
	if global {
		p.Scope = ScopeGlobal
		root = home
		settings = settingsGlobal
	}

	p.ClaudeDir = filepath.Join(root, claudeDirName)
	p.SettingsFile = filepath.Join(p.ClaudeDir, settings)
	p.InstallDir = filepath.Join(p.ClaudeDir, InstallDirName)
	p.ConfigFile = filepath.Join(p.InstallDir, ConfigFileName)
	p.MetaFile = filepath.Join(p.InstallDir, MetaFileName)
	p.SkillsDir = filepath.Join(p.ClaudeDir, skillsDirName)
	p.SkillDir = filepath.Join(p.SkillsDir, SkillDirName)
	p.ProjectDoc = filepath.Join(work, ProjectDocName)
	return p
}

// Script returns the installed path of a runtime script.
func (p Paths) Script(name string) string {
	return filepath.Join(p.InstallDir, name)
}

// Bridge is the status-line command registered in the settings file.
func (p Paths) Bridge() string { return p.Script(BridgeScript) }

// SkillFile is the installed skill document.
func (p Paths) SkillFile() string {
	return filepath.Join(p.SkillDir, SkillFileName)
}

// TemplateDir is where a template's hook scripts are installed.
func (p Paths) TemplateDir(id string) string {
	return filepath.Join(p.ClaudeDir, id)
}

// TemplateScript is the installed path of one template hook script.
func (p Paths) TemplateScript(id, script string) string {
	return filepath.Join(p.TemplateDir(id), script)
}

// InClaudeDir resolves a manifest-relative destination such as an agent file
// or a template directory.
func (p Paths) InClaudeDir(rel string) string {
	return filepath.Join(p.ClaudeDir, rel)
}
