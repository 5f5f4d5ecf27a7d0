// Package fetcher walks a list of puzzles and downloads the inputs that are
// not cached yet. It runs strictly in order and stops at the first failure.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"

	"aoc-inputs/internal/models"
)

// InputClient downloads a single puzzle input.
type InputClient interface {
	FetchInput(ctx context.Context, year, day int, session string) (string, error)
}

// Cache is where inputs are kept between runs.
type Cache interface {
	Exists(p models.Puzzle) (bool, error)
	Write(p models.Puzzle, content string) error
	Path(p models.Puzzle) string
}

// Credentials yields the session cookie. Implementations are expected to
// ask the user at most once.
type Credentials interface {
	Get(ctx context.Context) (string, error)
}

// Recorder is told about every successful download.
type Recorder interface {
	RecordDownload(p models.Puzzle, size int) error
}

type State int

const (
	Idle State = iota
	AwaitingCredential
	Fetching
	Failed
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingCredential:
		return "awaiting-credential"
	case Fetching:
		return "fetching"
	case Failed:
		return "failed"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Summary is what a run did, in processing order.
type Summary struct {
	Downloaded []models.Puzzle
	Skipped    []models.Puzzle
}

type Fetcher struct {
	client   InputClient
	cache    Cache
	creds    Credentials
	out      io.Writer
	recorder Recorder
	state    State
}

type Option func(*Fetcher)

// WithRecorder attaches a download ledger. Recorder errors are logged only.
func WithRecorder(r Recorder) Option {
	return func(f *Fetcher) { f.recorder = r }
}

func New(client InputClient, cache Cache, creds Credentials, out io.Writer, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: client,
		cache:  cache,
		creds:  creds,
		out:    out,
		state:  Idle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) State() State {
	return f.state
}

// Missing returns the puzzles from the list whose inputs are not cached.
// It never prompts or touches the network.
func (f *Fetcher) Missing(puzzles []models.Puzzle) ([]models.Puzzle, error) {
	var out []models.Puzzle
	for _, p := range puzzles {
		ok, err := f.cache.Exists(p)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Run downloads every uncached puzzle in order. The first error ends the
// run; the returned Summary covers what happened up to that point.
func (f *Fetcher) Run(ctx context.Context, puzzles []models.Puzzle) (Summary, error) {
	var sum Summary

	for _, p := range puzzles {
		ok, err := f.cache.Exists(p)
		if err != nil {
			return sum, f.fail(err)
		}
		if ok {
			sum.Skipped = append(sum.Skipped, p)
			continue
		}

		session, err := f.session(ctx)
		if err != nil {
			return sum, f.fail(err)
		}

		body, err := f.client.FetchInput(ctx, p.Year, p.Day, session)
		if err != nil {
			return sum, f.fail(fmt.Errorf("puzzle %s: %w", p, err))
		}
		if err := f.cache.Write(p, body); err != nil {
			return sum, f.fail(err)
		}

		sum.Downloaded = append(sum.Downloaded, p)
		fmt.Fprintf(f.out, "Downloaded puzzle input for day %d of year %d\n", p.Day, p.Year)

		if f.recorder != nil {
			if err := f.recorder.RecordDownload(p, len(body)+1); err != nil {
				log.Printf("[history] puzzle=%s status=failed error=%v", p, err)
			}
		}
	}

	f.state = Done
	return sum, nil
}

func (f *Fetcher) session(ctx context.Context) (string, error) {
	if f.state == Idle {
		f.state = AwaitingCredential
	}
	s, err := f.creds.Get(ctx)
	if err != nil {
		return "", err
	}
	f.state = Fetching
	return s, nil
}

func (f *Fetcher) fail(err error) error {
	f.state = Failed
	return err
}
