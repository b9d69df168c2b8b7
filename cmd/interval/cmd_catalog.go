package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/reugn/go-interval/interval"
	"github.com/reugn/go-interval/starlarkinterval"
)

func (a *app) cmdSave(args []string) int {
	flags := flag.NewFlagSet("save", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 2 {
		fmt.Fprintln(a.stderr, "usage: interval save <name> <source>")
		return 1
	}

	name := flags.Arg(0)
	src := strings.Join(flags.Args()[1:], " ")
	if _, err := starlarkinterval.Compile(src); err != nil {
		return a.errorf("save: %v", err)
	}
	entry, err := a.store.Save(context.Background(), name, src)
	if err != nil {
		return a.errorf("%v", err)
	}
	fmt.Fprintf(a.stdout, "saved %s (%s)\n", entry.Name, entry.ID)
	return 0
}

func (a *app) cmdShow(args []string) int {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: interval show <name>")
		return 1
	}

	name := flags.Arg(0)
	src, err := a.lookup(context.Background(), name)
	if err != nil {
		return a.errorf("show: %v", err)
	}
	expr, err := starlarkinterval.Compile(src)
	if err != nil {
		return a.errorf("show: %v", err)
	}
	fmt.Fprintf(a.stdout, "name:   %s\nsource: %s\nchain:  %s\n", name, src, interval.Render(expr))
	return 0
}

type listEntry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Origin string `json:"origin"`
}

func (a *app) cmdList(args []string) int {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	entries, err := a.store.List(context.Background())
	if err != nil {
		return a.errorf("%v", err)
	}
	stored := make(map[string]bool, len(entries))
	list := make([]listEntry, 0, len(entries)+len(a.cfg.Expressions))
	for _, e := range entries {
		stored[e.Name] = true
		list = append(list, listEntry{Name: e.Name, Source: e.Source, Origin: "catalog"})
	}
	for name, src := range a.cfg.Expressions {
		if !stored[name] {
			list = append(list, listEntry{Name: name, Source: src, Origin: "config"})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	if *jsonOut {
		a.printJSON(list)
		return 0
	}
	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, e := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Origin, e.Source)
	}
	_ = w.Flush()
	return 0
}

func (a *app) cmdDelete(args []string) int {
	flags := flag.NewFlagSet("delete", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: interval delete <name>")
		return 1
	}

	if err := a.store.Delete(context.Background(), flags.Arg(0)); err != nil {
		return a.errorf("%v", err)
	}
	fmt.Fprintf(a.stdout, "deleted %s\n", flags.Arg(0))
	return 0
}
