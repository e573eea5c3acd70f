package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"oaslint.dev/pkg/oaslint/internal/domain"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

var runParallelFlag int
var runWatchFlag bool
var runLintConfigFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Validate and lint schema files",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := applyLintConfigFlag(ctx, runLintConfigFlag); err != nil {
				return err
			}

			processing, err := processingConfig()
			if err != nil {
				return err
			}

			runArgs := domain.RunArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Workers: viper.GetInt(runParallelConfigKey),
				Reports: m.Path(viper.GetString(outputFlagName)),
				Config:  processing,
			}

			if runWatchFlag {
				return workflow.Watch(ctx, runArgs)
			}

			report, err := workflow.Run(ctx, runArgs)
			if err != nil {
				return err
			}

			if report.Failed() {
				cmd.SilenceUsage = true
				return fmt.Errorf("%d of %d schema file(s) failed", report.Totals.Failed, report.Totals.Files)
			}

			return nil
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers (0 uses every CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
	cmd.Flags().BoolVarP(&runWatchFlag, watchFlagName, "w", false, "re-check schema files when they change")
	cmd.Flags().StringVar(&runLintConfigFlag, lintConfigFlagName, "", "lint config file to use instead of the project's own")
}

// applyLintConfigFlag installs an explicitly named lint config before any
// file is processed, so project configs found later are ignored.
func applyLintConfigFlag(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	cfg, err := domain.ResolveFrom(ctx, fsAdapter, m.Path(path))
	if err != nil {
		return fmt.Errorf("load lint config: %w", err)
	}

	applier.Initialize(cfg)

	return nil
}
