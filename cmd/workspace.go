package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conneroisu/webpulse/internal/report"
)

func newWorkspaceCommand(a *app) *cobra.Command {
	workspaceCmd := &cobra.Command{
		Use:   "workspace [path]",
		Short: "Show monorepo packages and task groups",
		Long: `Workspace analyzes the project at path and prints only its monorepo
topology: the workspace flavors found, every package with its version and
dependencies, task groups and dependencies shared between packages.

Examples:
  webpulse workspace
  webpulse workspace ./mono --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(args)
			if err != nil {
				return err
			}

			project, err := a.analyzer().AnalyzeProjectType(cmd.Context(), root)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			format, opts, err := a.outputOptions(cmd, w)
			if err != nil {
				return err
			}
			return report.WriteWorkspace(w, project, format, opts)
		},
	}

	workspaceCmd.Flags().AddFlagSet(analysisFlags())
	workspaceCmd.Flags().AddFlagSet(outputFlags())

	return workspaceCmd
}
