package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dum-monitor/dum/internal/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "dum",
	Short: "Threshold-driven disk usage monitor and evictor",
	Long: `dum monitors the free space of the storage volume backing a set of
watched directories. When free space drops below the configured threshold,
it deletes the oldest-modified files and subdirectories until enough space
is reclaimed, optionally notifying a Gotify endpoint.

Deletions are permanent; there is no trash or recovery. If dum is run on a
schedule (cron, systemd timer), make sure two runs can never overlap, e.g.
with flock(1) or a systemd service without a timer overlap: two concurrent
runs would double-count the free space deficit.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Run executes the root command.
func Run() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().String("config-file", "", "config file (default is ~/.config/dum/dum.toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "stdout log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-stdout-log", false, "disable logging to stdout")
	rootCmd.PersistentFlags().String("log-file-output-dir", "", "directory to write log files to (default is the config directory)")

	// Viper doesn't support binding the same flag name across multiple
	// commands, so each command binds its own persistent flag set.
	config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd.Execute()
}
