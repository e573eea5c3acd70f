package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"oaslint.dev/pkg/oaslint/internal/domain"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

// lintConfigCmd represents the lint-config command.
var lintConfigCmd = newLintConfigCmd()

func newLintConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint-config [path]",
		Short: "Show the lint config that applies to a path",
		Long: `Resolve the project lint config for path (default: current directory) and
print where it was found along with the merged result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := m.Path(".")
			if len(args) == 1 {
				target = m.Path(args[0])
			}

			cfg, source, err := configLoader.Resolve(cmd.Context(), target)
			if err != nil {
				var loadErr *domain.ConfigLoadError
				if !errors.As(err, &loadErr) {
					return err
				}

				cmd.PrintErrf("warning: %v (using defaults)\n", err)
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode lint config: %w", err)
			}

			switch {
			case source.Path == "":
				cmd.Println("# source: defaults")
			case source.Field != "":
				cmd.Printf("# source: %s (%s)\n", source.Path, source.Field)
			default:
				cmd.Printf("# source: %s\n", source.Path)
			}

			cmd.Print(string(out))

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(lintConfigCmd)
}
