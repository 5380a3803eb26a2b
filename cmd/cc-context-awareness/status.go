package main

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/fyrsmithlabs/cc-context-awareness/internal/errors"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusCmd shows what is installed for a scope
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show install status, thresholds and the active template",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	st, err := s.coord.Status()
	if err != nil {
		return err
	}
	if !st.Installed {
		s.printer.Warn(clierrors.NotInstalled(st.Scope).Error())
		s.printer.Dim("Run: cc-context-awareness install")
		return nil
	}

	ver := st.Version
	if ver == "" {
		ver = "unknown"
	}
	s.printer.Info("Install scope: " + st.Scope)
	s.printer.Info("Version:       " + ver)
	s.printer.Info("Config:        " + st.ConfigFile)
	s.printer.Info("Settings:      " + st.SettingsFile)
	s.printer.Blank()
	s.printer.Info(fmt.Sprintf("Thresholds (%d):", len(st.Thresholds)))
	for _, t := range st.Thresholds {
		s.printer.Dim(t.String())
	}
	s.printer.Blank()

	active := st.ActiveTemplate
	if active == "" {
		active = "none"
	}
	s.printer.Info("Active template: " + active)
	return nil
}
