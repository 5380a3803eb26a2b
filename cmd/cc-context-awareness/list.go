package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

// listCmd lists bundled templates
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	entries, err := s.coord.List()
	if err != nil {
		return err
	}

	rows := make([][2]string, len(entries))
	for i, e := range entries {
		rows[i] = [2]string{e.ID, e.Description}
	}

	s.printer.Info("Available templates:")
	s.printer.Blank()
	s.printer.Table(rows)
	s.printer.Blank()
	s.printer.Dim("Install with: cc-context-awareness install <template>")
	return nil
}
