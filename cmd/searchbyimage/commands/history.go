package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWire("")
			if err != nil {
				return err
			}
			defer w.Close()

			ctx := cmd.Context()
			recs, err := w.History.Recent(ctx, limit)
			if err != nil {
				return err
			}
			st, err := w.History.Stats(ctx)
			if err != nil {
				return err
			}

			cyan := color.New(color.FgCyan).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()

			stdout := cmd.OutOrStdout()
			for _, r := range recs {
				cached := ""
				if r.Cached {
					cached = yellow(" cached")
				}
				fmt.Fprintf(stdout, "%s  %-5s group=%-10s hits=%d top=%.2f%% min=%.2f%%%s\n  %s\n",
					cyan(r.CreatedAt.Local().Format("2006-01-02 15:04:05")),
					r.Origin, r.GroupID, r.HitCount, r.TopSimilarity, r.Threshold, cached, r.ImageURL)
			}
			fmt.Fprintf(stdout, "%d searches, %d served from cache\n", st.Total, st.Cached)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of searches to show")
	return cmd
}
