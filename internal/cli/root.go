// Package cli exposes the service as a cobra command tree.
package cli

import (
	"fmt"

	"customerapi/internal/config"
	"customerapi/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile string
	cfg     *config.Config
	log     *zap.Logger
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "customerapi",
	Short: "Customer REST API",
	Long: `customerapi serves create, read, update, delete and paginated listing
of customers over HTTP, backed by PostgreSQL, MySQL, SQLite or memory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log, err = logger.New(cfg.App.LogLevel, cfg.App.IsDevelopment())
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "customerapi %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

func SetVersion(v string) {
	version = v
}

func Execute() error {
	return rootCmd.Execute()
}

func Root() *cobra.Command {
	return rootCmd
}
