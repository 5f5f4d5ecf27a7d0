// Package cli wires the commands of the aoc-inputs binary.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"aoc-inputs/internal/calendar"
	"aoc-inputs/internal/config"
	"aoc-inputs/internal/credential"
	"aoc-inputs/internal/notify"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// deps are the pieces tests swap out.
type deps struct {
	now         func() time.Time
	prompter    func(stderr io.Writer) credential.Prompter
	notifier    func(env config.Env) notify.Notifier
	historyPath func() string
}

func defaultDeps() deps {
	return deps{
		now: time.Now,
		prompter: func(stderr io.Writer) credential.Prompter {
			p := credential.NewTerminalPrompter()
			p.Out = stderr
			return p
		},
		notifier: func(env config.Env) notify.Notifier {
			return notify.FromEnv(env.TelegramToken, env.TelegramChatID)
		},
		historyPath: config.HistoryPath,
	}
}

type options struct {
	deps

	configPath string
	inputDir   string
	startYear  int
	year       int
	day        int
	dryRun     bool
	noHistory  bool
	jsonOut    bool
	limit      int
}

func (o *options) filter() calendar.Filter {
	return calendar.Filter{Year: o.year, Day: o.day}
}

// load reads the config file, then applies env and flag overrides in that order.
func (o *options) load() (*config.Config, config.Env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, config.Env{}, fmt.Errorf("loading config: %w", err)
	}
	env := config.LoadEnv()
	cfg.Apply(env)

	if o.inputDir != "" {
		cfg.InputDir = o.inputDir
	}
	if o.startYear != 0 {
		cfg.StartYear = o.startYear
	}
	if o.noHistory {
		cfg.History = false
	}
	return cfg, env, nil
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{deps: defaultDeps()})
}

func newRootCmd(o *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aoc-inputs",
		Short: "Download and cache Advent of Code puzzle inputs",
		Long: `aoc-inputs downloads the input of every released Advent of Code puzzle
into puzzle-inputs/<year>/<day>.txt, skipping the ones already on disk.

The session cookie is read from AOC_SESSION (a .env file works too) or
asked for once, without echo, when the first missing input is found.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, o)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "path to config file")
	pf.StringVar(&o.inputDir, "dir", "", "directory holding the inputs (default from config)")
	pf.IntVar(&o.startYear, "start-year", 0, "first event year to consider (default from config)")
	pf.IntVarP(&o.year, "year", "y", 0, "only this event year")
	pf.IntVarP(&o.day, "day", "d", 0, "only this day")

	addFetchFlags(rootCmd, o)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download missing puzzle inputs (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, o)
		},
	}
	addFetchFlags(fetchCmd, o)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aoc-inputs %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(newStatusCmd(o))
	rootCmd.AddCommand(newHistoryCmd(o))
	rootCmd.AddCommand(versionCmd)
	return rootCmd
}

func addFetchFlags(cmd *cobra.Command, o *options) {
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "list missing inputs without downloading")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "don't record this run in the history db")
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
