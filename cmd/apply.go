package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bundlepatch.dev/pkg/bundlepatch/internal/domain"
	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

var applyReportFlag string
var applyDiffFlag bool

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

const applyLongDescription = `Apply the built-in patch rules to the given bundle file.

Each rule is matched against the in-memory buffer in a fixed order and
reported individually. When at least one rule changed the buffer, the
original bytes are backed up before the bundle is overwritten in place.

` + patchExitCodesHelp

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "apply <bundle>",
		Short:        "Apply the patch rules to a bundle file",
		Long:         applyLongDescription,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Patch(context.Background(), domain.PatchArgs{
				Target:       m.Path(args[0]),
				BackupSuffix: viper.GetString(backupSuffixKey),
				Report:       m.Path(applyReportFlag),
				ShowDiff:     applyDiffFlag,
			})
		},
	}

	configureApplyFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func configureApplyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&applyReportFlag, reportFlagName, "r", "", "write a YAML run report to this path")
	cmd.Flags().BoolVarP(&applyDiffFlag, diffFlagName, "d", false, "print a unified diff of the changes")
}
