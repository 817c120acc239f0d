/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/transmit/pkg/config"
)

func (c *cli) newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration with a generated API key",
		Long: `Create a configuration file with a freshly generated API key for the REST
API. The format follows the file extension, .yaml or .toml.

Examples:
  transmit init
  transmit init --config ./transmit.toml --data-dir ./data`,
		Args: cobra.NoArgs,
		// init creates the config the other commands load.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			force, _ := cmd.Flags().GetBool("force")

			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}
			if config.ConfigExists(configPath) && !force {
				return fmt.Errorf("config already exists at %s, use --force to overwrite", configPath)
			}

			cfg, err := config.BootstrapConfig(configPath, dataDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration written to %s\n", configPath)
			fmt.Fprintf(out, "Data directory: %s\n", cfg.DataDir)
			if show, _ := cmd.Flags().GetBool("print-key"); show {
				fmt.Fprintf(out, "API key: %s\n", cfg.Security.APIKey)
			}
			return nil
		},
	}

	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key")
	return initCmd
}
