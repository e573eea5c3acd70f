package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"oaslint.dev/pkg/oaslint/internal/domain"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the last saved run report",
		Long:  "View the run report saved by the last run in the reports directory (see --output).",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))

			_, err := workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})

			return err
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
