/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ssargent/transmit/pkg/config"
	"github.com/ssargent/transmit/pkg/di"
	"github.com/ssargent/transmit/pkg/logging"
	"github.com/ssargent/transmit/pkg/storage"
)

var container *di.Container

// SetContainer injects the dependency container used by Execute
func SetContainer(c *di.Container) {
	container = c
}

// cli carries the state shared by the commands of one invocation
type cli struct {
	container *di.Container
	cfg       *config.Config
	log       zerolog.Logger
}

// NewRootCmd builds the command tree around c
func NewRootCmd(c *di.Container) *cobra.Command {
	if c == nil {
		c = di.NewContainer()
	}
	app := &cli{container: c, cfg: config.DefaultConfig(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "transmit",
		Short: "transmit - little-endian wire codec toolkit",
		Long: `transmit encodes and decodes values of a positional, length-implicit
little-endian wire format, keeps encoded values in a local store and serves
both over a REST API.`,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file, .yaml or .toml (default "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the value store")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error, disabled)")

	rootCmd.AddCommand(
		app.newTypesCmd(),
		app.newEncodeCmd(),
		app.newDecodeCmd(),
		app.newDemoCmd(),
		app.newInitCmd(),
		app.newPutCmd(),
		app.newGetCmd(),
		app.newDeleteCmd(),
		app.newListCmd(),
		app.newServeCmd(),
	)
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := NewRootCmd(container).Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, applies environment and flag overrides and
// builds the logger
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if explicit || config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if _, ok := logging.ParseLevel(cfg.Logging.Level); !ok {
		return fmt.Errorf("unknown log level %q", cfg.Logging.Level)
	}

	c.cfg = cfg
	c.log = logging.New(cfg.Logging, cmd.ErrOrStderr())
	return nil
}

// openStore opens the value store under the configured data directory
func (c *cli) openStore(extra ...storage.Option) (*storage.Store, error) {
	if err := os.MkdirAll(c.cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	opts := append([]storage.Option{
		storage.WithLogger(c.log),
		storage.WithMaxValueSize(c.cfg.Security.MaxValueSize),
	}, extra...)
	s, err := storage.Open(filepath.Join(c.cfg.DataDir, "values"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

// withStore runs fn against an open store and closes it afterwards
func (c *cli) withStore(fn func(s *storage.Store) error, opts ...storage.Option) error {
	s, err := c.openStore(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			c.log.Warn().Err(err).Msg("failed to close store")
		}
	}()
	return fn(s)
}
