package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(installCmd)
	addInstallFlags(installCmd)
}

func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noClaudeMD, "no-claude-md", false, "Do not add template instructions to CLAUDE.md")
	cmd.Flags().BoolVar(&noSkill, "no-skill", false, "Do not install the configure-context-awareness skill")
}

// installCmd installs the base system or a template
var installCmd = &cobra.Command{
	Use:   "install [template]",
	Short: "Install the base system, or a template on top of it",
	Long: `Install the base system: runtime scripts, default thresholds, the status-line
bridge and the threshold hooks. With a template id, also install that template,
replacing whichever template is currently active. The base system is installed
automatically when missing.

Examples:
  # Base install for this project
  cc-context-awareness install

  # Install the session-memory template globally without touching CLAUDE.md
  cc-context-awareness install session-memory --global --no-claude-md`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	s.printer.Banner(version)
	return s.coord.Install(s.ctx, id)
}
