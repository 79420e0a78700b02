package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/strrl/jb-recent/internal/ide"
	"github.com/strrl/jb-recent/pkg/models"
)

// NewOpenCommand creates the open command
func NewOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <ide> <path>",
		Short: "Open a path in one of the configured IDEs",
		Args:  cobra.ExactArgs(2),
		RunE:  runOpen,
	}
}

func runOpen(cmd *cobra.Command, args []string) error {
	descriptor, ok := ide.Find(cfg.Descriptors(paths), args[0])
	if !ok {
		return fmt.Errorf("unknown IDE '%s'", args[0])
	}
	if descriptor.DesktopFile == "" {
		return fmt.Errorf("IDE '%s' has no desktop file configured", descriptor.Name)
	}

	projectPath, err := filepath.Abs(paths.ExpandHome(args[1]))
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(projectPath); err != nil {
		return fmt.Errorf("project path: %w", err)
	}

	launcher, err := newLauncher()
	if err != nil {
		return err
	}
	return launcher.Launch(models.LaunchAction{
		Text:        "Open in " + descriptor.Name,
		DesktopFile: descriptor.DesktopFile,
		ProjectPath: projectPath,
	})
}
