package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fblive/fblive/internal/api"
)

func newMatchesCommand(g *globals) *cobra.Command {
	var watchedOnly bool
	cmd := &cobra.Command{
		Use:     "matches",
		Aliases: []string{"ls"},
		Short:   "List stored matches",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.services(cmd)
			if err != nil {
				return err
			}
			matches, err := svc.Client.ListMatches(cmd.Context())
			if err != nil {
				return fmt.Errorf("list matches: %w", err)
			}
			matches = api.SortMatches(matches)

			out := cmd.OutOrStdout()
			if watchedOnly {
				kept := matches[:0]
				for _, m := range matches {
					if m.Watch {
						kept = append(kept, m)
					}
				}
				matches = kept
			}
			if len(matches) == 0 {
				fmt.Fprintln(out, dimStyle.Render("no matches stored"))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("ID")+"\t"+
				headerStyle.Render("MATCH")+"\t"+
				headerStyle.Render("KICKOFF")+"\t"+
				headerStyle.Render("STATUS")+"\t"+
				headerStyle.Render("WATCH"))
			for _, m := range matches {
				watch := ""
				if m.Watch {
					watch = "★"
				}
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%s %s\t%s\n",
					m.ID,
					boldStyle.Render(m.Title()),
					m.Date, m.Time,
					statusDot(m.Status), m.Status,
					watch,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&watchedOnly, "watched", "w", false, "only show watched matches")
	return cmd
}
