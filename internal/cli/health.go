package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fblive/fblive/internal/health"
)

// errOffline is returned by the health command so scripts see a non-zero exit.
var errOffline = errors.New("server offline")

func newHealthCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "health",
		Aliases: []string{"status"},
		Short:   "Check whether the backend is reachable",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.services(cmd)
			if err != nil {
				return err
			}
			status := svc.Health.Check(cmd.Context())

			out := cmd.OutOrStdout()
			base := svc.Executor.Resolver().Base()
			fmt.Fprintln(out, titleStyle.Render("fblive health"))
			fmt.Fprintln(out)
			switch status.State {
			case health.Online:
				fmt.Fprintf(out, "  %s %s %s\n", dotHealthy, base, healthyStyle.Render("online"))
				return nil
			case health.Offline:
				fmt.Fprintf(out, "  %s %s %s\n", dotUnhealthy, base, unhealthyStyle.Render("offline"))
				return errOffline
			default:
				fmt.Fprintf(out, "  %s %s %s\n", dotUnknown, base, dimStyle.Render("unknown"))
				return errOffline
			}
		},
	}
}
