package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strrl/jb-recent/internal/recent"
)

// NewDebugCommand creates the debug-record command
func NewDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug-record <file>",
		Short: "Print the projects parsed from one recentProjects.xml",
		Args:  cobra.ExactArgs(1),
		RunE:  runDebugRecord,
	}
}

func runDebugRecord(cmd *cobra.Command, args []string) error {
	file := args[0]

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Parsing record: %s\n", file)
	fmt.Fprintln(out, "==========================================")

	records, err := recent.ParseFile(file, paths.Home)
	if err != nil {
		return fmt.Errorf("failed to parse record: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No projects found in this record")
		return nil
	}

	fmt.Fprintf(out, "Found %d projects:\n", len(records))
	for _, r := range records {
		fmt.Fprintf(out, "%15d  %s\n", r.Timestamp, r.Path)
	}
	return nil
}
