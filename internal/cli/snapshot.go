package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourusername/gitlanes/internal/git"
	"github.com/yourusername/gitlanes/internal/snapshot"
)

// newSnapshotCmd exports a repository's branch listings and tags so they can
// be rendered later with --snapshot.
func newSnapshotCmd() *cobra.Command {
	var (
		repoPath string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export branches and tags of a repository as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			repo, err := git.OpenRepository(repoPath)
			if err != nil {
				return err
			}
			listings, tags, err := repo.History(gitOptions(cfg))
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := snapshot.Encode(w, snapshot.FromHistory(listings, tags)); err != nil {
				return err
			}
			logger.Info("exported snapshot", "branches", len(listings), "tags", len(tags), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "path inside the git repository to read")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
