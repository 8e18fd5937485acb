package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"bundlepatch.dev/pkg/bundlepatch/internal/domain"
)

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the built-in patch rules",
		Long:  "List the built-in patch rules in the order they are applied.",
		Args:  cobra.ExactArgs(0),
		Run: func(_ *cobra.Command, _ []string) {
			ui.DisplayRules(context.Background(), domain.Rules())
		},
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
