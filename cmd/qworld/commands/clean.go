package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/qworld/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [paths...]",
		Short: "Remove the scratch directory and compiled diagrams",
		Long: "Remove the scratch directory and compiled diagrams.\n" +
			"With --unused, only diagrams no document below paths references are removed.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			scratch, _ := cmd.Flags().GetBool("scratch")
			artifacts, _ := cmd.Flags().GetBool("artifacts")
			unused, _ := cmd.Flags().GetBool("unused")

			return c.app.Clean(cmd.Context(), args, app.CleanOptions{
				ConfigPath: configPath,
				Scratch:    scratch,
				Artifacts:  artifacts,
				Unused:     unused,
			})
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to qworld.yaml (default: discovered from the working directory)")
	cmd.Flags().Bool("scratch", false, "Clean the scratch directory")
	cmd.Flags().Bool("artifacts", false, "Clean all compiled diagrams")
	cmd.Flags().Bool("unused", false, "Clean compiled diagrams no document references")
	cmd.MarkFlagsMutuallyExclusive("artifacts", "unused")

	return cmd
}
