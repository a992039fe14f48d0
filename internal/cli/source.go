package cli

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/yourusername/gitlanes/internal/app"
	"github.com/yourusername/gitlanes/internal/config"
	"github.com/yourusername/gitlanes/internal/git"
	"github.com/yourusername/gitlanes/internal/history"
	"github.com/yourusername/gitlanes/internal/snapshot"
)

var errTwoSources = errors.New("--repo and --snapshot are mutually exclusive")

// sourceOpts selects where history comes from and which branch is focused.
type sourceOpts struct {
	repo     string
	snapshot string
	branch   string
}

func (o *sourceOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.repo, "repo", ".", "path inside the git repository to read")
	cmd.Flags().StringVar(&o.snapshot, "snapshot", "", "read history from a snapshot file instead of a repository")
	cmd.Flags().StringVarP(&o.branch, "branch", "b", "", "branch whose lanes win ties (overrides graph.selected_branch)")
}

// loader returns a function that reads a fresh copy of the history on every
// call, so a reload picks up new commits or an edited snapshot.
func (o *sourceOpts) loader(cmd *cobra.Command, cfg *config.Config, logger *log.Logger) (app.Loader, error) {
	if o.snapshot != "" {
		if cmd.Flags().Changed("repo") {
			return nil, errTwoSources
		}
		path := o.snapshot
		return func() ([]history.Listing, []history.Tag, error) {
			s, err := snapshot.Load(path)
			if err != nil {
				return nil, nil, err
			}
			listings, tags := s.Listings(logger)
			return listings, tags, nil
		}, nil
	}

	repo, err := git.OpenRepository(o.repo)
	if err != nil {
		return nil, err
	}
	opts := gitOptions(cfg)
	return func() ([]history.Listing, []history.Tag, error) {
		return repo.History(opts)
	}, nil
}

// selected returns the focus hint: the flag wins over the config.
func (o *sourceOpts) selected(cfg *config.Config) string {
	if o.branch != "" {
		return o.branch
	}
	return cfg.Graph.SelectedBranch
}

func gitOptions(cfg *config.Config) git.Options {
	return git.Options{
		DefaultBranch:  cfg.Graph.DefaultBranch,
		Protected:      cfg.Graph.ProtectedBranches,
		IncludeRemotes: cfg.Graph.IncludeRemotes,
		MaxCommits:     cfg.Graph.MaxCommits,
	}
}
