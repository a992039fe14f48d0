package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/yourusername/gitlanes/internal/lanes"
	"github.com/yourusername/gitlanes/internal/ui/components/graph"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

const defaultRenderWidth = 120

// newRenderCmd creates the command that prints the diagram newest first.
// Colors follow the terminal profile of stdout, so piped output is plain.
func newRenderCmd() *cobra.Command {
	var (
		src   sourceOpts
		width int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the lane diagram to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			load, err := src.loader(cmd, cfg, logger)
			if err != nil {
				return err
			}
			listings, tags, err := load()
			if err != nil {
				return err
			}

			theme := styles.GetTheme(cfg.UI.Theme)
			canvas, _, result := graph.Build(listings, tags, lanes.Options{
				Selected: src.selected(cfg),
				Palette:  theme.LanePalette(cfg.Graph.Palette),
				Logger:   logger,
			})

			out := cmd.OutOrStdout()
			r := graph.NewGraphRenderer(theme, cfg.UI.DateFormat)
			for _, line := range r.Lines(canvas, width, lipgloss.NoColor{}) {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}

			logger.Debug("rendered history",
				"commits", len(result.Assignments),
				"lanes", len(result.Lanes),
				"failed_commits", result.FailedCommits,
				"failed_labels", result.FailedLabels,
				"failed_tags", result.FailedTags,
			)
			if result.FailedCommits > 0 {
				logger.Warn("some commits could not be drawn", "count", result.FailedCommits)
			}
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().IntVarP(&width, "width", "w", defaultRenderWidth, "maximum line width")
	return cmd
}
