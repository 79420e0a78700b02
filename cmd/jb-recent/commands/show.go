package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/strrl/jb-recent/internal/ide"
	"github.com/strrl/jb-recent/internal/projects"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show every recent project per IDE without ranking",
		Long: `Show, for each configured IDE, the record file that was found and the
projects it lists with their last open time. IDEs without a config directory
or with an unreadable record file are reported as such.`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	collector := projects.Collector{
		Descriptors: cfg.Descriptors(paths),
		Resolver:    ide.Resolver{Order: cfg.VersionOrderValue()},
		Home:        paths.Home,
	}

	out := cmd.OutOrStdout()
	for _, src := range collector.FetchSources() {
		fmt.Fprintf(out, "%s\n", src.IDE.Name)
		switch {
		case src.RecordFile == "":
			fmt.Fprintf(out, "   No config directory in %s\n\n", src.IDE.ConfigRoot)
			continue
		case src.Err != nil:
			fmt.Fprintf(out, "   Record: %s\n   Unreadable: %v\n\n", src.RecordFile, src.Err)
			continue
		}

		fmt.Fprintf(out, "   Record: %s\n", src.RecordFile)
		for i, project := range src.Projects {
			fmt.Fprintf(out, "   %d. %s (%s) - %s\n", i+1, project.Name, project.Path, formatTimestamp(project.Timestamp))
		}
		fmt.Fprintln(out)
	}
	return nil
}

func formatTimestamp(ms int64) string {
	if ms == 0 {
		return "unknown"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
