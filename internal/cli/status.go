package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"aoc-inputs/internal/calendar"
	"aoc-inputs/internal/models"
	"aoc-inputs/internal/store"
)

type yearStatus struct {
	Year      int   `json:"year"`
	Available int   `json:"available"`
	Cached    int   `json:"cached"`
	Missing   []int `json:"missing"`
}

func newStatusCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which released inputs are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFilter(o.filter()); err != nil {
				return err
			}
			cfg, _, err := o.load()
			if err != nil {
				return err
			}

			st := store.New(cfg.InputDir)
			statuses, err := collectStatus(st, calendar.Released(o.now(), cfg.StartYear, o.filter()))
			if err != nil {
				return err
			}

			if o.jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statuses)
			}
			renderStatus(cmd.OutOrStdout(), st.Root(), calendar.LastAvailable(o.now()), statuses)
			return nil
		},
	}
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "print machine-readable JSON")
	return cmd
}

func collectStatus(st *store.Store, released []models.Puzzle) ([]yearStatus, error) {
	cached, err := st.List()
	if err != nil {
		return nil, err
	}
	have := make(map[models.Puzzle]bool, len(cached))
	for _, p := range cached {
		have[p] = true
	}

	out := []yearStatus{}
	for _, p := range released {
		if len(out) == 0 || out[len(out)-1].Year != p.Year {
			out = append(out, yearStatus{Year: p.Year, Missing: []int{}})
		}
		ys := &out[len(out)-1]
		ys.Available++
		if have[p] {
			ys.Cached++
		} else {
			ys.Missing = append(ys.Missing, p.Day)
		}
	}
	return out, nil
}

func renderStatus(w io.Writer, root string, last models.Puzzle, statuses []yearStatus) {
	fmt.Fprintln(w, headerStyle.Render("Puzzle inputs in "+root))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("latest released: day %d of %d", last.Day, last.Year)))
	fmt.Fprintln(w)

	total, cached := 0, 0
	for _, ys := range statuses {
		total += ys.Available
		cached += ys.Cached

		count := fmt.Sprintf("%2d/%-2d", ys.Cached, ys.Available)
		line := yearStyle.Render(strconv.Itoa(ys.Year))
		if len(ys.Missing) == 0 {
			line += completeStyle.Render(count + " ✓")
		} else {
			line += missingStyle.Render(count) + dimStyle.Render("  missing: "+joinDays(ys.Missing))
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d of %d inputs cached\n", cached, total)
}

func joinDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
