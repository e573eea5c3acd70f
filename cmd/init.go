package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"oaslint.dev/pkg/oaslint/internal/domain"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

// rcFileName is the lint config written by init --rc.
const rcFileName = ".oaslintrc.yaml"

var initRCFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default oaslint.yaml configuration file",
		Long: `Create an oaslint.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually. With --rc a starter
.oaslintrc.yaml lint config is written next to it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)
			cmd.Printf("Transformers available to %s: %s\n", transformRulesConfigKey, strings.Join(transformers.IDs(), ", "))

			if !initRCFlag {
				return nil
			}

			rcPath := fsAdapter.JoinPath(cmd.Context(), configFolderPath, rcFileName)
			if fsAdapter.Exists(cmd.Context(), rcPath) {
				return fmt.Errorf("failed to write lint config: %s already exists", rcPath)
			}

			if err := writeStarterRC(rcPath); err != nil {
				return err
			}

			cmd.Printf("Wrote %s\n", rcPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&initRCFlag, "rc", false, "also write a starter "+rcFileName)

	return cmd
}

func writeStarterRC(path m.Path) error {
	data, err := yaml.Marshal(m.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode lint config: %w", err)
	}

	header := fmt.Sprintf("# Lint config read by oaslint. It can also live under %q in %s.\n",
		domain.DefaultConfigField, domain.DefaultManifest)

	if err := os.WriteFile(string(path), append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write lint config: %w", err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
