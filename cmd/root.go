// Package cmd provides the root command and CLI setup for oaslint.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"oaslint.dev/pkg/oaslint/internal/adapter"
	"oaslint.dev/pkg/oaslint/internal/controller"
	"oaslint.dev/pkg/oaslint/internal/domain"
	"oaslint.dev/pkg/oaslint/internal/lint"
	m "oaslint.dev/pkg/oaslint/internal/model"
	"oaslint.dev/pkg/oaslint/internal/validator"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var watcher adapter.Watcher
var lintEngine *lint.Engine
var applier *domain.ConfigApplier
var configLoader domain.ConfigLoader
var transformers *domain.TransformerRegistry
var runner domain.Runner
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters discovered schema files.
var excludePatterns []string

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	if controller.IsTerminal(os.Stdout) {
		ui = controller.NewTUI(os.Stdout)
	} else {
		ui = controller.NewSimpleUI(rootCmd)
	}

	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	watcher = adapter.NewFSNotifyWatcher(adapter.DefaultDebounce)
	lintEngine = lint.NewEngine()
	applier = domain.NewConfigApplier(lintEngine)
	configLoader = domain.NewConfigLoader(fsAdapter, applier, configLoaderOptions())
	transformers = domain.NewTransformerRegistry()

	engine, err := validator.New()
	cobra.CheckErr(err)

	runner = domain.NewRunner(
		domain.NewSchemaLoader(fsAdapter, transformers),
		configLoader,
		domain.NewValidationAdapter(engine, lintEngine),
	)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		watcher,
		ui,
		runner,
		domain.WithIgnoredNames(ignoredProjectFiles()...),
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...            recursively scan current directory
  - ./api/...        recursively scan the api directory
  - ./api spec.yaml  scan a directory and a single file`

const rootLongDescription = `oaslint validates OpenAPI 3 descriptions and lints them against a
configurable set of style rules. Every schema file is reported as passing,
failing, or as one failing test per lint warning.

` + pathPatternsHelp

const runLongDescription = `Validate and lint the schema files under the given paths (default: current
directory). JSON and YAML files are checked.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "oaslint",
		Short: "OpenAPI schema validator and linter",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports (empty disables reports)",
		)
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "log file path (default from config)")

	bindRootFlags(cmd)
}

// bindRootFlags points the shared config keys at cmd's persistent flags.
func bindRootFlags(cmd *cobra.Command) {
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
