package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/qworld/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Render documents and compile their diagrams",
		Long: "Render the Markdown documents below the given files or directories to HTML.\n" +
			"Without paths, docs.source from qworld.yaml is built.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			configPath, _ := cmd.Flags().GetString("config")
			strict, _ := cmd.Flags().GetBool("strict")
			watch, _ := cmd.Flags().GetBool("watch")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			metricsTextfile, _ := cmd.Flags().GetString("metrics-textfile")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override output-mode to "linear"
			if ci {
				outputMode = "linear"
			}

			return c.app.Build(cmd.Context(), args, app.BuildOptions{
				ConfigPath:      configPath,
				OutDir:          out,
				Concurrency:     concurrency,
				OutputMode:      outputMode,
				MetricsTextfile: metricsTextfile,
				Strict:          strict,
				Watch:           watch,
			})
		},
	}
	cmd.Flags().String("out", "", "Directory for the rendered HTML (overrides docs.output)")
	cmd.Flags().StringP("config", "c", "", "Path to qworld.yaml (default: discovered from the working directory)")
	cmd.Flags().Bool("strict", false, "Exit with an error when any diagram fails to compile")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild changed documents until interrupted")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, compact, linear, or quiet")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	cmd.Flags().String("metrics-textfile", "", "Write Prometheus metrics to this file after every build")
	cmd.Flags().IntP("concurrency", "j", 0, "Maximum concurrent compilations (overrides concurrencyLimit)")
	return cmd
}
