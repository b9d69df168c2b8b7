// Command interval evaluates, stores and schedules lazily resolved
// calendar expressions such as expr.year.month[1].day[-1].
package main

import (
	"fmt"
	"os"

	"github.com/reugn/go-interval/internal/config"
	"github.com/reugn/go-interval/logger"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version", "-v", "version":
		fmt.Println("interval", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("%v", err)
	}
	logger.SetDefault(cfg.Logger(os.Stderr))

	a, err := newApp(cfg, os.Stdout, os.Stderr)
	if err != nil {
		fatal("%v", err)
	}
	code := a.run(os.Args[1], os.Args[2:])
	a.Close()
	os.Exit(code)
}

func printUsage() {
	fmt.Print(`interval: lazily resolved calendar expressions

Expressions are written in Starlark:
  expr.year.month[1].day[-1]                 last day of February
  expr.month.day[0] + expr.hour.n(9)         9 AM on the first of the month
  (expr.year.month[2].day[0] - expr.day.n(1)).hour[11]

Usage:
  interval <command> [flags]

Commands:
  eval [--at T] <source>       Resolve an expression
  save <name> <source>         Store an expression in the catalog
  show <name>                  Show a stored expression
  list                         List stored and configured expressions
  delete <name>                Remove an expression from the catalog
  run [--at T] <name>          Resolve a stored expression
  next [--cron LINE] <source>  Print the upcoming fire times
  repl                         Interactive Starlark shell

Resolution flags (eval, run, next, repl):
  --rollover=false             Fail instead of carrying into the next scope
  --operation-safe             Permit overflows caused by arithmetic
  --trace                      Log every rollover

Environment:
  INTERVAL_CONFIG_PATH     YAML configuration file
  INTERVAL_DB_PATH         SQLite catalog path (default: interval.db)
  INTERVAL_LOG_LEVEL       trace, debug, info, warn, error or off
  INTERVAL_LOG_FORMAT      text or json (default: text)
  INTERVAL_LOCATION        Time zone of baselines and output (default: Local)
  INTERVAL_ROLLOVER        Default rollover policy (default: true)
  INTERVAL_OPERATION_SAFE  Default operation safe policy (default: false)
`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "interval: "+format+"\n", args...)
	os.Exit(1)
}
