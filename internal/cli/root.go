package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. The main
// package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the gitlanes CLI.
//
// Logging defaults to the level from the config file (info when unset) and
// --verbose forces debug. The logger and the loaded config are attached to
// the command context for every subcommand.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "gitlanes",
		Short:        "gitlanes draws branch lanes for a git history",
		Long:         `gitlanes assigns every commit of a repository to a named lane and draws the result as a branch diagram, either interactively or as plain text.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			level, err := parseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			if verbose {
				level = log.DebugLevel
			}

			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("gitlanes %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/gitlanes/config.yaml)")

	root.AddCommand(newViewCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newSnapshotCmd())

	return root
}
