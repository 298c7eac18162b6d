package service

import (
	"fmt"
	"io"
	"os"

	"blogposts/app/config"
	"blogposts/app/logging"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const cliVersion = "1.0.0"

var osExit = os.Exit

// cli holds state shared by all subcommands once the root pre-run has loaded it.
type cli struct {
	configPath string
	envName    string
	dbPath     string
	inMemory   bool

	cfg       *config.Config
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:               "blogposts",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "Blog posts REST API",
		Long:              `blogposts serves a JSON REST API for blog posts stored in an embedded document store`,
		Version:           cliVersion,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath, c.envName)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("db-path") {
				cfg.DBPath = c.dbPath
			}
			if cmd.Flags().Changed("in-memory") {
				cfg.InMemory = c.inMemory
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			c.cfg = cfg

			c.logCloser = logging.Setup(logging.LoggerSetupParams{
				LogFileName:   cfg.LogFile,
				LogToStdout:   cfg.LogToStdout,
				LogLevel:      cfg.LogLevel,
				LogFormatJSON: cfg.LogFormatJSON,
			})
			log.Debugf("configuration loaded: env=%s addr=%s db=%s in_memory=%t", c.envName, cfg.Addr(), cfg.DBPath, cfg.InMemory)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.logCloser != nil {
				return c.logCloser.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to the TOML config file")
	flags.StringVar(&c.envName, "env", config.EnvFromOS(), "config section to use (development or production)")
	flags.StringVar(&c.dbPath, "db-path", "", "database directory, overrides the config file")
	flags.BoolVar(&c.inMemory, "in-memory", false, "keep the database in memory only")

	rootCmd.AddCommand(
		newServeCmd(c),
		newInitCmd(c),
		newCleanCmd(c),
		newBackupCmd(c),
		newRestoreCmd(c),
		newSeedCmd(c),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		osExit(1)
	}
}
