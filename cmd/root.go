// Package cmd provides the root command and CLI setup for bundlepatch.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bundlepatch.dev/pkg/bundlepatch/internal/adapter"
	"bundlepatch.dev/pkg/bundlepatch/internal/controller"
	"bundlepatch.dev/pkg/bundlepatch/internal/domain"
)

var fsAdapter adapter.BundleFSAdapter
var reportStore adapter.ReportStore
var patcher domain.Patcher
var workflow domain.Workflow
var ui controller.UI

// backupSuffixFlag is a root-level flag shared by commands that write or read
// the backup file.
var backupSuffixFlag string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalBundleFSAdapter()
	reportStore = adapter.NewReportStore()
	patcher = domain.NewPatcher(domain.Rules())
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui, patcher)
}

const rootLongDescription = `Bundlepatch rewrites a fixed set of byte sequences inside a minified
application bundle to enable feature-gated functionality. Matching is
tolerant of minifier-renamed identifiers, so the same rule set keeps
working across bundle versions.

Before the first write, the original bundle is copied to a sibling backup
file (default suffix: .bak). An existing backup is silently overwritten.`

const patchExitCodesHelp = `Exit codes:
  0  every rule applied, or the bundle was already fully patched
  1  fatal error, or no rule took effect
  2  some rules applied but at least one pattern was missing`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundlepatch",
		Short: "Feature-gate patcher for minified app bundles",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))
	}

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&backupSuffixFlag, backupSuffixFlagName, "b",
			viper.GetString(backupSuffixKey),
			"suffix appended to the bundle path for the backup file",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(backupSuffixFlagName), backupSuffixKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
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
	if err == nil {
		return
	}

	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	os.Exit(domain.ExitFailure)
}
