package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/strrl/jb-recent/internal/config"
	"github.com/strrl/jb-recent/internal/launch"
	"github.com/strrl/jb-recent/internal/logging"
	"github.com/strrl/jb-recent/internal/plugin"
	"github.com/strrl/jb-recent/internal/tui"
)

// annotationDefaultsOnError lets a command run on the defaults when the
// config file cannot be loaded
const annotationDefaultsOnError = "defaults-on-config-error"

var (
	configFile string
	logLevel   string

	cfg      *config.Config
	paths    *config.Paths
	closeLog = func() error { return nil }
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jb-recent [query]",
		Short: "Browse and reopen recent JetBrains IDE projects",
		Long: `jb-recent lists the projects recently opened in your JetBrains IDEs,
ranks them against a query and reopens the chosen one in its IDE.`,
		Version:           plugin.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/jb-recent/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(NewQueryCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewOpenCommand())
	rootCmd.AddCommand(NewDebugCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	paths = config.DefaultPaths()
	if configFile == "" {
		configFile = paths.ConfigFile()
	}

	loaded, err := config.LoadFromFile(configFile)
	var loadErr error
	if err != nil {
		if cmd.Annotations[annotationDefaultsOnError] == "" {
			return err
		}
		loaded, loadErr = config.DefaultConfig(), err
	}
	cfg = loaded
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	closeFn, err := logging.Init(cfg.ResolvedLogging(paths), "jb-recent", plugin.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	closeLog = closeFn
	if loadErr != nil {
		slog.Warn("using default config", "file", configFile, "error", loadErr)
	}
	return nil
}

func newLauncher() (launch.Launcher, error) {
	return launch.New(cfg.Launcher)
}

func runTUI(cmd *cobra.Command, args []string) error {
	handler := plugin.New(cfg, paths)

	selected, err := tui.ShowTUI(handler, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if selected == nil || len(selected.Actions) == 0 {
		return nil
	}

	launcher, err := newLauncher()
	if err != nil {
		return err
	}
	return launcher.Launch(selected.Actions[0])
}
