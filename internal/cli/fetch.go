package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"aoc-inputs/internal/adventofcode"
	"aoc-inputs/internal/calendar"
	"aoc-inputs/internal/credential"
	"aoc-inputs/internal/fetcher"
	"aoc-inputs/internal/history"
	"aoc-inputs/internal/models"
	"aoc-inputs/internal/notify"
	"aoc-inputs/internal/store"
)

func runFetch(cmd *cobra.Command, o *options) error {
	if err := validateFilter(o.filter()); err != nil {
		return err
	}
	cfg, env, err := o.load()
	if err != nil {
		return err
	}

	puzzles := calendar.Released(o.now(), cfg.StartYear, o.filter())
	out := cmd.OutOrStdout()

	client := adventofcode.NewClient(cfg.Timeout(),
		adventofcode.WithBaseURL(cfg.BaseURL),
		adventofcode.WithUserAgent(cfg.UserAgent),
	)
	creds := credential.NewLazy(o.prompter(cmd.ErrOrStderr()), env.Session)

	var opts []fetcher.Option
	var hist *history.History
	if cfg.History && !o.dryRun {
		hist = openHistory(o.historyPath())
	}
	if hist != nil {
		defer hist.Close()
		if _, err := hist.BeginRun(); err != nil {
			log.Printf("[history] status=disabled error=%v", err)
			hist = nil
		} else {
			opts = append(opts, fetcher.WithRecorder(hist))
		}
	}

	f := fetcher.New(client, store.New(cfg.InputDir), creds, out, opts...)

	if o.dryRun {
		missing, err := f.Missing(puzzles)
		if err != nil {
			return err
		}
		for _, p := range missing {
			fmt.Fprintf(out, "Would download puzzle input for day %d of year %d\n", p.Day, p.Year)
		}
		fmt.Fprintf(out, "%d of %d puzzle inputs missing\n", len(missing), len(puzzles))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sum, runErr := f.Run(ctx, puzzles)

	if hist != nil {
		if err := hist.FinishRun(len(sum.Downloaded), len(sum.Skipped), runErr); err != nil {
			log.Printf("[history] status=failed error=%v", err)
		}
	}

	if len(sum.Downloaded) > 0 || runErr != nil {
		report := notify.Report{Downloaded: sum.Downloaded, Skipped: len(sum.Skipped), Err: runErr, At: o.now()}
		if err := o.notifier(env).Notify(report); err != nil {
			log.Printf("[notify] status=failed error=%v", err)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, adventofcode.ErrUnauthorized) {
			return fmt.Errorf("%w (is the session cookie still valid?)", runErr)
		}
		return runErr
	}
	return nil
}

func openHistory(path string) *history.History {
	h, err := history.Open(path)
	if err != nil {
		log.Printf("[history] path=%s status=disabled error=%v", path, err)
		return nil
	}
	return h
}

func validateFilter(f calendar.Filter) error {
	if f.Year != 0 && f.Year < models.FirstYear {
		return fmt.Errorf("invalid --year %d: the first event was in %d", f.Year, models.FirstYear)
	}
	if f.Day != 0 && (f.Day < 1 || f.Day > models.LastDay) {
		return fmt.Errorf("invalid --day %d: must be between 1 and %d", f.Day, models.LastDay)
	}
	return nil
}
