package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bundlepatch.dev/pkg/bundlepatch/internal/domain"
	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

var checkReportFlag string
var checkDiffFlag bool

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

const checkLongDescription = `Run the built-in patch rules against the given bundle without writing
anything. Reports what apply would do, including which patterns are
missing in this bundle version.

` + patchExitCodesHelp

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check <bundle>",
		Short:        "Dry-run the patch rules against a bundle file",
		Long:         checkLongDescription,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Patch(context.Background(), domain.PatchArgs{
				Target:       m.Path(args[0]),
				BackupSuffix: viper.GetString(backupSuffixKey),
				Report:       m.Path(checkReportFlag),
				ShowDiff:     checkDiffFlag,
				DryRun:       true,
			})
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&checkReportFlag, reportFlagName, "r", "", "write a YAML run report to this path")
	cmd.Flags().BoolVarP(&checkDiffFlag, diffFlagName, "d", false, "print a unified diff of the would-be changes")
}
