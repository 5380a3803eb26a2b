package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
)

var assumeYes bool

func init() {
	rootCmd.AddCommand(uninstallCmd)
	uninstallCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

// uninstallCmd removes everything for a scope
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove cc-context-awareness and all templates",
	Long: `Remove the active template, the status-line bridge, the threshold hooks,
the install directory, the skill and leftover runtime flag files. A status line
that was there before install is restored.

Without --yes the command asks for confirmation, and refuses to run when
stdin is not a terminal.

Examples:
  cc-context-awareness uninstall --global --yes`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ok, err := s.coord.Installed()
	if err != nil {
		return err
	}
	if !ok {
		s.printer.Warn(clierrors.NotInstalled(s.coord.Paths().Scope).Error())
		return nil
	}

	if !assumeYes {
		in := cmd.InOrStdin()
		if !interactive(in) {
			return clierrors.New(clierrors.EUsage, "Refusing to uninstall without confirmation. Re-run with --yes.")
		}
		s.printer.Warn("This will remove cc-context-awareness and all templates.")
		if !confirm(cmd.OutOrStdout(), in, "Continue? [y/N] ") {
			s.printer.Info("Cancelled.")
			return nil
		}
	}

	return s.coord.Uninstall(s.ctx)
}

func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func confirm(w io.Writer, r io.Reader, prompt string) bool {
	fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
