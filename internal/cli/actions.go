package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fblive/fblive/internal/api"
)

func newSearchCommand(g *globals) *cobra.Command {
	var req api.SearchRequest
	cmd := &cobra.Command{
		Use:     "search",
		Short:   "Look up a match and store it",
		Example: "  fblive search --home Rangers --away Plzen --date 2024-05-01",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.services(cmd)
			if err != nil {
				return err
			}
			match, err := svc.Client.SearchMatch(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("search match: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
				healthyStyle.Render("saved"), boldStyle.Render(match.Title()), match.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.HomeTeam, "home", "", "home team")
	cmd.Flags().StringVar(&req.AwayTeam, "away", "", "away team")
	cmd.Flags().StringVar(&req.Date, "date", "", "match date (YYYY-MM-DD)")
	return cmd
}

func newWatchCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <id>",
		Short: "Toggle the watch flag of a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.services(cmd)
			if err != nil {
				return err
			}
			if err := svc.Client.ToggleWatch(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("toggle watch: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", healthyStyle.Render("toggled watch"), args[0])
			return nil
		},
	}
}

func newTeamsCommand(g *globals) *cobra.Command {
	var update api.TeamsUpdate
	cmd := &cobra.Command{
		Use:   "teams <id>",
		Short: "Rename the teams of a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.services(cmd)
			if err != nil {
				return err
			}
			if err := svc.Client.UpdateTeams(cmd.Context(), args[0], update); err != nil {
				return fmt.Errorf("update teams: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s vs %s\n",
				healthyStyle.Render("renamed"), update.HomeTeam, update.AwayTeam)
			return nil
		},
	}
	cmd.Flags().StringVar(&update.HomeTeam, "home", "", "home team name")
	cmd.Flags().StringVar(&update.AwayTeam, "away", "", "away team name")
	return cmd
}

func newDeleteCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored match",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.services(cmd)
			if err != nil {
				return err
			}
			if err := svc.Client.DeleteMatch(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete match: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", healthyStyle.Render("deleted"), args[0])
			return nil
		},
	}
}

func newTrackCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Start live tracking of watched matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.services(cmd)
			if err != nil {
				return err
			}
			result, err := svc.Client.StartTracking(cmd.Context())
			if err != nil {
				return fmt.Errorf("start tracking: %w", err)
			}
			out := cmd.OutOrStdout()
			if !result.Started() {
				fmt.Fprintln(out, pendingStyle.Render(result.Message))
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", dotHealthy, result.Message)
			return nil
		},
	}
}
