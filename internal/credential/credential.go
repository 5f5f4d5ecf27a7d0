// Package credential obtains the session cookie at most once per run.
package credential

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const DefaultLabel = "Enter your session cookie: "

var ErrEmptySession = errors.New("empty session cookie")

// Prompter asks the user for a secret.
type Prompter interface {
	Prompt(ctx context.Context, label string) (string, error)
}

// TerminalPrompter reads from a terminal without echo. When in is not a
// terminal the line is read as-is.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

type readResult struct {
	text string
	err  error
}

// Prompt blocks until a line is read or ctx is done. On cancellation the
// terminal state is restored and ctx.Err() is returned; the pending read
// is abandoned.
func (t *TerminalPrompter) Prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(t.Out, label)

	fd := int(t.In.Fd())
	done := make(chan readResult, 1)

	if term.IsTerminal(fd) {
		state, err := term.GetState(fd)
		if err != nil {
			return "", fmt.Errorf("reading session cookie: %w", err)
		}
		go func() {
			b, err := term.ReadPassword(fd)
			done <- readResult{text: string(b), err: err}
		}()

		select {
		case <-ctx.Done():
			term.Restore(fd, state)
			fmt.Fprintln(t.Out)
			return "", ctx.Err()
		case r := <-done:
			fmt.Fprintln(t.Out)
			if r.err != nil {
				return "", fmt.Errorf("reading session cookie: %w", r.err)
			}
			return r.text, nil
		}
	}

	go func() {
		line, err := bufio.NewReader(t.In).ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		done <- readResult{text: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("reading session cookie: %w", r.err)
		}
		return r.text, nil
	}
}

// Lazy hands out the session, prompting the first time it is needed.
type Lazy struct {
	prompter Prompter
	label    string
	value    string
	acquired bool
}

// NewLazy returns a holder that prompts through p. A non-empty preset
// (e.g. from AOC_SESSION) counts as already acquired.
func NewLazy(p Prompter, preset string) *Lazy {
	l := &Lazy{prompter: p, label: DefaultLabel}
	if v := strings.TrimSpace(preset); v != "" {
		l.value = v
		l.acquired = true
	}
	return l
}

func (l *Lazy) Acquired() bool {
	return l.acquired
}

// Get returns the session, prompting on first use only.
func (l *Lazy) Get(ctx context.Context) (string, error) {
	if l.acquired {
		return l.value, nil
	}

	v, err := l.prompter.Prompt(ctx, l.label)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ErrEmptySession
	}

	l.value = v
	l.acquired = true
	return v, nil
}
