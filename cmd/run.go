package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dum-monitor/dum/internal/pkg/config"
	"github.com/dum-monitor/dum/internal/pkg/controler"
	"github.com/dum-monitor/dum/internal/pkg/log"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one monitoring and eviction pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags().Lookup("config-file").Value.String())
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			logger, err := log.New(log.Config{
				Level:          cfg.LogLevel,
				NoStdout:       cfg.NoStdoutLog,
				FileOutputDir:  cfg.LogFileOutputDir,
				RotationPeriod: cfg.LogFileRotationPeriod(),
				ESURL:          cfg.LogESURL,
				ESIndexPrefix:  cfg.LogESIndexPrefix,
			})
			if err != nil {
				return fmt.Errorf("error initializing logging: %w", err)
			}
			defer logger.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go controler.WatchSignals(ctx, cancel, logger)

			return controler.Run(ctx, cfg, logger, afero.NewOsFs())
		},
	}

	runCmdFlags(cmd)

	return cmd
}

func runCmdFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("dry-run", false, "log what would be deleted without touching the filesystem, skip notification")
	cmd.PersistentFlags().Bool("live-stats", false, "print a live-updating stats table while the run progresses")
	cmd.PersistentFlags().String("prometheus-textfile", "", "write run metrics to this file in Prometheus textfile format")
	cmd.PersistentFlags().String("log-file-rotation", "24h", "rotation period of the log files")

	config.BindFlags(cmd.PersistentFlags())
}
