package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/reugn/go-interval/internal/catalog"
	"github.com/reugn/go-interval/internal/config"
	"github.com/reugn/go-interval/interval"
	"github.com/reugn/go-interval/logger"
)

// app holds shared state for all CLI subcommands.
type app struct {
	cfg    config.Config
	store  *catalog.Store
	loc    *time.Location
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// newApp opens the catalog and resolves the configured location.
func newApp(cfg config.Config, stdout, stderr io.Writer) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	s, err := catalog.New(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog %q: %w", cfg.Catalog.Path, err)
	}
	return &app{
		cfg:    cfg,
		store:  s,
		loc:    loc,
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
	}, nil
}

// Close releases the catalog connection.
func (a *app) Close() { a.store.Close() }

// run dispatches a subcommand and returns the process exit code.
func (a *app) run(command string, args []string) int {
	switch command {
	case "eval":
		return a.cmdEval(args)
	case "save":
		return a.cmdSave(args)
	case "show":
		return a.cmdShow(args)
	case "list", "ls":
		return a.cmdList(args)
	case "delete", "rm":
		return a.cmdDelete(args)
	case "run":
		return a.cmdRun(args)
	case "next":
		return a.cmdNext(args)
	case "repl":
		return a.cmdRepl(args)
	default:
		fmt.Fprintf(a.stderr, "interval: unknown command %q\n", command)
		fmt.Fprintln(a.stderr, "Run 'interval --help' for usage.")
		return 1
	}
}

// resolveFlags are the flags shared by the commands resolving expressions.
type resolveFlags struct {
	rollover      *bool
	operationSafe *bool
	trace         *bool
}

func (a *app) addResolveFlags(flags *flag.FlagSet) resolveFlags {
	return resolveFlags{
		rollover:      flags.Bool("rollover", a.cfg.Resolve.Rollover, "carry overflows into the adjacent scope"),
		operationSafe: flags.Bool("operation-safe", a.cfg.Resolve.OperationSafe, "permit overflows caused by arithmetic"),
		trace:         flags.Bool("trace", false, "log every rollover"),
	}
}

// options returns the resolve options selected by the flags.
func (f resolveFlags) options(stderr io.Writer) []interval.ResolveOption {
	opts := []interval.ResolveOption{
		interval.WithRollover(*f.rollover),
		interval.WithOperationSafe(*f.operationSafe),
	}
	if *f.trace {
		opts = append(opts, interval.WithLogger(
			logger.NewSimpleLogger(newStdLogger(stderr), logger.LevelTrace)))
	}
	return opts
}

// lookup returns the source stored under name, falling back to the
// expressions defined in the configuration file.
func (a *app) lookup(ctx context.Context, name string) (string, error) {
	entry, err := a.store.Get(ctx, name)
	if err == nil {
		return entry.Source, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return "", err
	}
	if src, ok := a.cfg.Expressions[name]; ok {
		return src, nil
	}
	return "", err
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime parses value in the app location. An empty value is the
// current time.
func (a *app) parseTime(value string) (time.Time, error) {
	if value == "" {
		return a.now().In(a.loc), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, a.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want RFC 3339 or YYYY-MM-DD[ HH:MM[:SS]]", value)
}

func (a *app) formatTime(t time.Time) string {
	return t.In(a.loc).Format(time.RFC3339Nano)
}

// printJSON writes v to stdout as indented JSON.
func (a *app) printJSON(v any) {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (a *app) errorf(format string, args ...any) int {
	fmt.Fprintf(a.stderr, "interval: "+format+"\n", args...)
	return 1
}

func newStdLogger(w io.Writer) *log.Logger {
	return log.New(w, "", log.LstdFlags)
}
