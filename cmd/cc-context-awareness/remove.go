package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

// removeCmd removes the active template
var removeCmd = &cobra.Command{
	Use:   "remove <template>",
	Short: "Remove the active template",
	Long: `Remove a template's thresholds, hooks, agents and files. The base system
stays installed. Naming a template that is not active changes nothing.

Examples:
  cc-context-awareness remove session-memory`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	return s.coord.RemoveTemplate(s.ctx, args[0])
}
