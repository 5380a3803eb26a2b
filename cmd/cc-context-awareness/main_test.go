package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dirs struct {
	home, work, flags string
}

func setupDirs(t *testing.T) dirs {
	t.Helper()
	d := dirs{home: t.TempDir(), work: t.TempDir(), flags: t.TempDir()}
	t.Setenv("HOME", d.home)
	t.Setenv("CCCTX_HOME_DIR", d.home)
	t.Setenv("CCCTX_WORK_DIR", d.work)
	t.Setenv("CCCTX_FLAG_DIR", d.flags)
	return d
}

// resetFlags restores every flag to its default so executions don't leak
// state into each other through the package-level command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(""))
	code = execute(&out, &errOut)
	return out.String(), errOut.String(), code
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"install", "remove", "list", "status", "uninstall"} {
		assert.True(t, names[want], want)
	}
}

func TestRoot_InstallsBase(t *testing.T) {
	d := setupDirs(t)

	out, _, code := run(t)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "cc-context-awareness v"+version)
	assert.Contains(t, out, "cc-context-awareness installed (local)!")
	assert.FileExists(t, filepath.Join(d.work, ".claude", "settings.local.json"))
	assert.FileExists(t, filepath.Join(d.work, ".claude", "cc-context-awareness", ".install-meta.json"))
}

func TestInstall_TemplateGlobal(t *testing.T) {
	d := setupDirs(t)

	out, _, code := run(t, "install", "handoff", "--global", "--no-claude-md")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Handoff installed!")

	meta, err := os.ReadFile(filepath.Join(d.home, ".claude", "cc-context-awareness", ".install-meta.json"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"activeTemplate": "handoff"`)
	assert.Contains(t, string(meta), `"scope": "global"`)
	assert.NoFileExists(t, filepath.Join(d.work, "CLAUDE.md"))
	assert.NoDirExists(t, filepath.Join(d.work, ".claude"))
}

func TestInstall_UnknownTemplate(t *testing.T) {
	d := setupDirs(t)

	_, stderr, code := run(t, "install", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `Template "nope" not found`)
	assert.Contains(t, stderr, "error_code: TEMPLATE_NOT_FOUND")
	assert.NoDirExists(t, filepath.Join(d.work, ".claude"))
}

func TestUsageErrors(t *testing.T) {
	setupDirs(t)

	tests := []struct {
		name string
		args []string
	}{
		{"remove without template", []string{"remove"}},
		{"install with two templates", []string{"install", "a", "b"}},
		{"unknown flag", []string{"list", "--bogus"}},
		{"invalid log level", []string{"list", "--log-level", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := run(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr, "error_code: USAGE")
		})
	}
}

func TestList(t *testing.T) {
	setupDirs(t)

	out, _, code := run(t, "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Available templates:")
	assert.Contains(t, out, "session-memory")
	assert.Contains(t, out, "handoff")
	assert.Contains(t, out, "Install with: cc-context-awareness install <template>")
}

func TestStatus(t *testing.T) {
	setupDirs(t)

	out, _, code := run(t, "status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "cc-context-awareness is not installed (local).")

	_, _, code = run(t, "install", "session-memory")
	require.Equal(t, 0, code)

	out, _, code = run(t, "status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Install scope: local")
	assert.Contains(t, out, "Version:       1.0.0")
	assert.Contains(t, out, "Thresholds (4):")
	assert.Contains(t, out, "50% - memory-50")
	assert.Contains(t, out, "Active template: session-memory")
}

func TestRemove(t *testing.T) {
	setupDirs(t)

	_, stderr, code := run(t, "remove", "handoff")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error_code: BASE_NOT_INSTALLED")

	_, _, code = run(t, "install", "handoff")
	require.Equal(t, 0, code)

	out, _, code := run(t, "remove", "handoff")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "handoff removed.")

	out, _, code = run(t, "status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Active template: none")
}

func TestUninstall(t *testing.T) {
	d := setupDirs(t)
	installDir := filepath.Join(d.work, ".claude", "cc-context-awareness")

	out, _, code := run(t, "uninstall")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "is not installed (local).")

	_, _, code = run(t, "install")
	require.Equal(t, 0, code)

	_, stderr, code := run(t, "uninstall")
	assert.Equal(t, 2, code, "non-interactive uninstall needs --yes")
	assert.Contains(t, stderr, "--yes")
	assert.DirExists(t, installDir)

	require.NoError(t, os.WriteFile(filepath.Join(d.flags, ".cc-ctx-pct-1"), []byte("42"), 0o644))

	out, _, code = run(t, "uninstall", "--yes")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "cc-context-awareness uninstalled (local).")
	assert.NoDirExists(t, installDir)
	assert.NoFileExists(t, filepath.Join(d.work, ".claude", "settings.local.json"))
	assert.NoFileExists(t, filepath.Join(d.flags, ".cc-ctx-pct-1"))
}

func TestDebugLogging(t *testing.T) {
	setupDirs(t)

	_, stderr, code := run(t, "list", "--log-level", "debug")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "session ready")
	assert.Contains(t, stderr, "run.id")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, confirm(&out, strings.NewReader(tt.input), "? "), "%q", tt.input)
		assert.Equal(t, "? ", out.String())
	}

	assert.False(t, interactive(strings.NewReader("")))
}
