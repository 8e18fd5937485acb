package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bundlepatch.dev/pkg/bundlepatch/internal/domain"
	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// restoreCmd represents the restore command.
var restoreCmd = newRestoreCmd()

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "restore <bundle>",
		Short:        "Restore a bundle from its backup file",
		Long:         "Copy the backup written by apply back over the bundle. The backup file is kept.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Restore(context.Background(), domain.RestoreArgs{
				Target:       m.Path(args[0]),
				BackupSuffix: viper.GetString(backupSuffixKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
