package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/observed/observer"
	"github.com/delaneyj/observed/watcher"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	renderKey  = "render"
	profileKey = "profile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation through observed objects and arrays",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Writes timed per configuration",
				Value: 100,
			},
			&cli.BoolFlag{
				Name:  renderKey,
				Usage: "Print the result tables",
				Value: true,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100}
)

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Uint(itersKey))
	render := cmd.Bool(renderKey)

	log.Printf("warming up")
	benchmarkPropagate(1, false)
	benchmarkArray(1, false)

	benchmarkPropagate(iters, render)
	benchmarkArray(iters, render)
	return nil
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "watchers", "avg", "min", "p75", "p99", "max", "heap"})
	return tbl
}

func appendResult(tbl table.Writer, name string, watchers int, tach *tachymeter.Tachymeter) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	calc := tach.Calc()
	tbl.AppendRow(table.Row{
		name,
		humanize.Comma(int64(watchers)),
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
		humanize.Bytes(mem.HeapAlloc),
	})
}

// benchmarkPropagate builds w chains of h lazy watchers over one observed
// field, each chain read by an eager watcher, and times writes to the field.
func benchmarkPropagate(iters int, shouldRender bool) {
	tbl := newTable("Observed propagation")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			sys := observer.NewSystem(observer.WithErrorHandler(func(_ observer.Subscriber, err error) {
				log.Panic(err)
			}))
			src := observer.FromMap(map[string]any{"v": 1})
			sys.Observe(src)

			for i := 0; i < w; i++ {
				last := watcher.New(sys, func() (any, error) {
					return src.Get("v").(int) + 1, nil
				}, watcher.Lazy())
				for j := 1; j < h; j++ {
					prev := last
					last = watcher.New(sys, func() (any, error) {
						return prev.Value().(int) + 1, nil
					}, watcher.Lazy())
				}

				tail := last
				watcher.New(sys, func() (any, error) {
					return tail.Value(), nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set("v", src.Get("v").(int)+1)
				tach.AddTime(time.Since(start))
			}

			appendResult(tbl, fmt.Sprintf("propagate: %d * %d", w, h), w*(h+1), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkArray times pushes onto an observed array read by w watchers.
func benchmarkArray(iters int, shouldRender bool) {
	tbl := newTable("Observed array mutation")

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		sys := observer.NewSystem()
		list := observer.NewArray()
		state := observer.FromMap(map[string]any{"list": list})
		sys.Observe(state)

		for i := 0; i < w; i++ {
			watcher.New(sys, func() (any, error) {
				return state.Get("list").(*observer.Array).Len(), nil
			})
		}

		for i := 0; i < iters; i++ {
			item := observer.FromMap(map[string]any{"n": i})
			start := time.Now()
			list.Push(item)
			tach.AddTime(time.Since(start))
		}

		appendResult(tbl, fmt.Sprintf("push: %d", w), w, tach)
	}

	if shouldRender {
		tbl.Render()
	}
}
