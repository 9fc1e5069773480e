// Package cli implements the fblive command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fblive/fblive/internal/app"
	"github.com/fblive/fblive/internal/logging"
)

// Version is set at build time.
var Version = "dev"

type globals struct {
	apiURL     string
	configPath string
	prefsPath  string
}

// NewRootCommand builds the fblive command tree. Without a subcommand the
// dashboard is started.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "fblive",
		Short: "Terminal dashboard for football match tracking",
		Long: `fblive tracks football matches stored by the fblive backend.

Run without arguments to open the dashboard, or use a subcommand
for one-shot operations from scripts.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: g.configPath,
				PrefsPath:  g.prefsPath,
				APIURL:     g.apiURL,
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.apiURL, "api", "", "backend base URL (overrides FBLIVE_API_URL and config)")
	flags.StringVar(&g.configPath, "config", "", "config file path (default ~/.config/fblive/config.toml)")
	flags.StringVar(&g.prefsPath, "prefs", "", "preferences file path (default ~/.config/fblive/prefs.toml)")

	root.AddCommand(
		newMatchesCommand(g),
		newSearchCommand(g),
		newWatchCommand(g),
		newTeamsCommand(g),
		newDeleteCommand(g),
		newTrackCommand(g),
		newHealthCommand(g),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// services builds the API client stack for a one-shot command. Logs go to
// the command's stderr.
func (g *globals) services(cmd *cobra.Command) (*app.Services, error) {
	cfg, err := app.LoadConfig(g.configPath, g.apiURL)
	if err != nil {
		return nil, err
	}
	logger := logging.NewTerminal(cmd.ErrOrStderr(), cfg.LogLevel)
	svc, err := app.NewServices(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}
	return svc, nil
}
