package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rmk/internal/app"
	"go.trai.ch/rmk/internal/core/domain"
)

func (c *CLI) newMakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make [target]",
		Short: "Bring a target up to date",
		Long: "Bring a target up to date, rebuilding it and its stale dependencies\n" +
			"in dependency order. Without an argument the \"" + domain.DefaultTargetName + "\" target is made.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := domain.DefaultTargetName
			if len(args) == 1 {
				target = args[0]
			}

			rulesFile, _ := cmd.Flags().GetString("file")
			stateFile, _ := cmd.Flags().GetString("state")
			watch, _ := cmd.Flags().GetBool("watch")

			opts := app.RunOptions{
				RulesFile: rulesFile,
				StateFile: stateFile,
			}

			if watch {
				return c.app.Watch(cmd.Context(), target, opts)
			}
			return c.app.Run(cmd.Context(), target, opts)
		},
	}
	cmd.Flags().StringP("file", "f", domain.RulesFileName, "Path of the rules file")
	cmd.Flags().StringP("state", "s", "", "Path of the state file (default derived from the rules file)")
	cmd.Flags().BoolP("watch", "w", false, "Re-run the build when watched paths change")
	return cmd
}
