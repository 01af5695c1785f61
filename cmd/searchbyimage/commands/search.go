package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"searchbyimage/internal/app"
	"searchbyimage/internal/command"
	"searchbyimage/internal/domain"
	"searchbyimage/internal/reply"
)

func searchCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "search <image-url>",
		Short: "Search an image URL and print the reply the bot would post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _, err := app.LoadAPIKey(cfg, passphrase)
			if err != nil {
				return err
			}
			w, err := newWire(key)
			if err != nil {
				return err
			}
			defer w.Close()

			out, err := w.Search.Search(cmd.Context(), domain.SearchRequest{
				ImageURL:  args[0],
				Threshold: threshold,
				Origin:    domain.OriginCLI,
			})
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			faint := color.New(color.Faint).SprintFunc()

			stdout := cmd.OutOrStdout()
			fmt.Fprintln(stdout, out.ReplyText)
			fmt.Fprintln(stdout)

			n := reply.Count(out.Response.Hits, threshold, reply.MaxAnswers)
			fmt.Fprintf(stdout, "%s of %d hits listed", green(n), len(out.Response.Hits))
			if out.Cached {
				fmt.Fprintf(stdout, " %s", yellow("(cached)"))
			}
			fmt.Fprintln(stdout)
			if !out.Cached && out.Response.LongRemaining != domain.QuotaUnknown {
				fmt.Fprintln(stdout, faint(fmt.Sprintf("quota left: %d short, %d daily",
					out.Response.ShortRemaining, out.Response.LongRemaining)))
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", command.DefaultThreshold, "minimum similarity in percent")
	return cmd
}
