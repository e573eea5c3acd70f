package cmd

import (
	"github.com/spf13/cobra"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

var rulesLintConfigFlag string

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "List the active lint rules",
		Long: `List the lint rules that apply to schema files under path (default: current
directory) after the project's lint config has been merged in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := m.Path(".")
			if len(args) == 1 {
				target = m.Path(args[0])
			}

			if err := applyLintConfigFlag(cmd.Context(), rulesLintConfigFlag); err != nil {
				return err
			}

			configLoader.Load(cmd.Context(), target)

			return ui.DisplayRules(cmd.Context(), lintEngine.Rules())
		},
	}

	cmd.Flags().StringVar(&rulesLintConfigFlag, lintConfigFlagName, "", "lint config file to use instead of the project's own")

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
