// Package main implements the cc-context-awareness installer CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/cc-context-awareness/assets"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/config"
	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/fs"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/installer"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/logging"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/paths"
	"github.com/fyrsmithlabs/cc-context-awareness/internal/ui"
)

var (
	// version information
	version = "1.0.0"

	globalScope bool
	configPath  string
	logLevel    string
	noClaudeMD  bool
	noSkill     bool
)

func main() {
	os.Exit(execute(os.Stdout, os.Stderr))
}

// execute runs the root command and maps its error to an exit code.
func execute(out, errOut io.Writer) int {
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	err := rootCmd.Execute()
	if err != nil {
		reportError(ui.NewPrinter(out, errOut), errOut, err)
	}
	return clierrors.ExitCode(err)
}

func reportError(p *ui.Printer, errOut io.Writer, err error) {
	ce, ok := clierrors.AsCLIError(err)
	if !ok {
		p.Error(err.Error())
		return
	}
	p.Error(ce.Msg)
	fmt.Fprintf(errOut, "error_code: %s\n", ce.Code)
}

var rootCmd = &cobra.Command{
	Use:   "cc-context-awareness",
	Short: "Install context-usage awareness into Claude Code",
	Long: `cc-context-awareness wires a status-line bridge and threshold hooks into
Claude Code settings so Claude is told what to do as its context fills up.

Run without a subcommand to install the base system.

Examples:
  # Install into this project (.claude/settings.local.json)
  cc-context-awareness

  # Install for every project (~/.claude/settings.json)
  cc-context-awareness install --global

  # Install a template
  cc-context-awareness install session-memory`,
	Version:       version,
	Args:          usageArgs(cobra.NoArgs),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd, nil)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalScope, "global", "g", false, "Operate on ~/.claude instead of ./.claude")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Installer config file (default ~/.config/cc-context-awareness/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level (trace, debug, info, warn, error)")
	addInstallFlags(rootCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.Wrap(clierrors.EUsage, err.Error(), err)
	})
}

// usageArgs marks argument validation failures as USAGE errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return clierrors.Wrap(clierrors.EUsage, err.Error(), err)
		}
		return nil
	}
}

// session is the per-invocation wiring shared by every command.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *logging.Logger
	printer *ui.Printer
	coord   *installer.Coordinator
}

// newSession loads configuration, applies flags that were set explicitly,
// and builds the coordinator for the selected scope.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("global") {
		cfg.Global = globalScope
	}
	if flags.Changed("no-claude-md") {
		cfg.NoClaudeMD = noClaudeMD
	}
	if flags.Changed("no-skill") {
		cfg.NoSkill = noSkill
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, clierrors.Wrap(clierrors.EUsage, err.Error(), err)
		}
	}

	logger, err := logging.NewLoggerTo(&cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	p := paths.Resolve(cfg.Global, cfg.HomeDir, cfg.WorkDir)
	ctx := logging.WithRunID(cmd.Context(), logging.NewRunID())
	ctx = logging.WithScope(ctx, p.Scope)
	ctx = logging.WithLogger(ctx, logger)

	printer := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	coord := installer.New(installer.Options{
		FS:         fs.NewRealFS(),
		Assets:     assets.Open(cfg.AssetsDir),
		Paths:      p,
		Version:    version,
		NoClaudeMD: cfg.NoClaudeMD,
		NoSkill:    cfg.NoSkill,
		FlagDir:    cfg.FlagDir,
		Logger:     logger,
		Reporter:   printer,
	})

	logger.Debug(ctx, "session ready",
		zap.String("command", cmd.Name()),
		zap.String("claude_dir", p.ClaudeDir),
		zap.String("assets_dir", cfg.AssetsDir))

	return &session{ctx: ctx, cfg: cfg, logger: logger, printer: printer, coord: coord}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
