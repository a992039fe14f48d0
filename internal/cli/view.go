package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yourusername/gitlanes/internal/app"
)

// newViewCmd creates the interactive diagram command. The TUI owns the
// terminal, so log output goes to --log-file or is dropped.
func newViewCmd() *cobra.Command {
	var (
		src     sourceOpts
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the lane diagram interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			level := loggerFromContext(ctx).GetLevel()

			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			logger := newLogger(w, level)

			load, err := src.loader(cmd, cfg, logger)
			if err != nil {
				return err
			}
			cfg.Graph.SelectedBranch = src.selected(cfg)

			opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
			if cfg.UI.Mouse {
				opts = append(opts, tea.WithMouseCellMotion())
			}

			logger.Debug("starting viewer", "repo", src.repo, "snapshot", src.snapshot)
			if _, err := tea.NewProgram(app.New(cfg, load, logger), opts...).Run(); err != nil {
				return fmt.Errorf("run viewer: %w", err)
			}
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the viewer runs")
	return cmd
}
