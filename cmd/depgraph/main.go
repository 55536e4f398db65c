package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/delaneyj/observed/inspect"
	"github.com/delaneyj/observed/observer"
	"github.com/delaneyj/observed/watcher"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

const (
	formatKey = "format"
	todosKey  = "todos"
)

func main() {
	cmd := &cli.Command{
		Name:  "depgraph",
		Usage: "Print the dependency graph of a sample todo list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "Output format, table or dot",
				Value: "table",
			},
			&cli.UintFlag{
				Name:  todosKey,
				Usage: "Number of todos to start with",
				Value: 3,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String(formatKey)
	if format != "table" && format != "dot" {
		return fmt.Errorf("unknown format %q", format)
	}

	sys := observer.NewSystem()

	todos := observer.NewArray()
	for i := range int(cmd.Uint(todosKey)) {
		todos.Push(observer.FromMap(map[string]any{
			"title": fmt.Sprintf("todo %d", i+1),
			"done":  false,
		}))
	}
	state := observer.FromMap(map[string]any{
		"filter": "all",
		"todos":  todos,
	})
	sys.Observe(state)

	visible := watcher.New(sys, func() (any, error) {
		filter := state.Get("filter").(string)
		list := state.Get("todos").(*observer.Array)
		out := []string{}
		for _, item := range list.Items() {
			todo := item.(*observer.Object)
			done := todo.Get("done").(bool)
			if filter == "all" || (filter == "done") == done {
				out = append(out, todo.Get("title").(string))
			}
		}
		return out, nil
	}, watcher.Lazy(), watcher.Named("visible"))

	remaining := watcher.New(sys, func() (any, error) {
		n := 0
		for _, item := range state.Get("todos").(*observer.Array).Items() {
			if !item.(*observer.Object).Get("done").(bool) {
				n++
			}
		}
		return n, nil
	}, watcher.Named("remaining"))

	renders := 0
	render := watcher.New(sys, func() (any, error) {
		renders++
		return fmt.Sprintf("%v (%v left)", visible.Value(), remaining.Value()), nil
	}, watcher.Named("render"), watcher.OnChange(func(newValue, _ any) {
		log.Printf("render: %v", newValue)
	}))

	todos.Push(observer.FromMap(map[string]any{"title": "write docs", "done": false}))
	if todos.Len() > 0 {
		sys.Set(todos.At(0).(*observer.Object), "done", true)
	}
	sys.Set(state, "filter", "active")

	snap := inspect.Capture(visible, remaining, render)
	if err := snap.Verify(); err != nil {
		return fmt.Errorf("graph is inconsistent: %w", err)
	}

	switch format {
	case "dot":
		inspect.WriteDOT(os.Stdout, snap)
	default:
		inspect.WriteTable(os.Stdout, snap)
	}

	log.Printf(
		"%s watchers, %s deps, %s edges, %s renders",
		humanize.Comma(int64(len(snap.Subscribers))),
		humanize.Comma(int64(len(snap.Deps))),
		humanize.Comma(int64(len(snap.Edges))),
		humanize.Comma(int64(renders)),
	)
	return nil
}
