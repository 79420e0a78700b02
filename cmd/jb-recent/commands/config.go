package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/strrl/jb-recent/internal/config"
)

var forceInit bool

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		// --force must be able to replace a broken file
		Annotations: map[string]string{annotationDefaultsOnError: "true"},
		RunE:        runConfigInit,
	}
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configFile)
			return nil
		},
	})

	return configCmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configFile); err == nil && !forceInit {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", configFile)
	}
	if err := config.DefaultConfig().SaveToFile(configFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configFile)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
