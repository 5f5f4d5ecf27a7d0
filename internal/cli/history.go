package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"aoc-inputs/internal/history"
)

func newHistoryCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := history.Open(o.historyPath())
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer h.Close()

			out := cmd.OutOrStdout()

			run, err := h.LastRun()
			if err != nil {
				return err
			}
			if run == nil {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			status := "ok"
			if run.Error != "" {
				status = "failed: " + run.Error
			}
			fmt.Fprintln(out, headerStyle.Render("Last run"))
			fmt.Fprintf(out, "%s  downloaded %d, cached %d  %s\n\n",
				run.StartedAt.Local().Format("2006-01-02 15:04"), run.Downloaded, run.Skipped, status)

			downloads, err := h.Downloads(o.limit)
			if err != nil {
				return err
			}
			if len(downloads) == 0 {
				fmt.Fprintln(out, "No downloads recorded yet.")
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render("Recent downloads"))
			for _, d := range downloads {
				fmt.Fprintf(out, "%s  %d day %-2d  %6s  %s\n",
					d.FetchedAt.Local().Format("2006-01-02 15:04"),
					d.Year, d.Day,
					formatBytes(int64(d.Bytes)),
					dimStyle.Render("run "+shortID(d.RunID)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&o.limit, "limit", "n", 20, "number of downloads to show")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
