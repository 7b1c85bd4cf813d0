package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"builtinreg/internal/builtins"
	"builtinreg/internal/catalog"
	"builtinreg/internal/ui"
)

var (
	checkJobs    int
	checkNoCache bool
	checkUI      string
)

func init() {
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "parallel table loads (0 = GOMAXPROCS)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "do not read or fill the on-disk table cache")
	checkCmd.Flags().StringVar(&checkUI, "ui", "auto", "progress display (auto|on|off)")
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Validate builtin table files and fill the table cache",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := &catalog.Loader{Jobs: checkJobs}
		if !checkNoCache {
			cache, err := catalog.OpenCache("builtinreg")
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: table cache disabled: %v\n", err)
			} else {
				loader.Cache = cache
			}
		}

		var useUI bool
		switch checkUI {
		case "on":
			useUI = true
		case "off":
		case "auto":
			useUI = isTerminal(os.Stdout)
		default:
			return fmt.Errorf("invalid --ui value %q (expected auto|on|off)", checkUI)
		}

		var (
			records []builtins.Descriptor
			events  []catalog.Event
			err     error
		)
		if useUI {
			records, events, err = runLoadWithUI(cmd.Context(), "checking tables", loader, args)
		} else {
			records, events, err = runLoad(cmd.Context(), loader, args)
		}
		renderCheck(cmd.OutOrStdout(), args, events)
		if err != nil {
			return err
		}
		renderCheckSummary(cmd.OutOrStdout(), len(records), len(args), loader.Cache)
		return nil
	},
}

func renderCheckSummary(w io.Writer, records, tables int, cache *catalog.Cache) {
	fmt.Fprintf(w, "\n%d builtins in %d tables\n", records, tables)
	if cache != nil {
		fmt.Fprintf(w, "cache: %s\n", cache.Dir())
	}
}

// collectSink keeps the last event of every file.
type collectSink struct {
	ch   chan catalog.Event
	last map[string]catalog.Event
	done chan struct{}
}

func newCollectSink(forward chan<- catalog.Event) *collectSink {
	s := &collectSink{
		ch:   make(chan catalog.Event, 256),
		last: make(map[string]catalog.Event),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		for ev := range s.ch {
			s.last[ev.File] = ev
			if forward != nil {
				forward <- ev
			}
		}
		if forward != nil {
			close(forward)
		}
	}()
	return s
}

func (s *collectSink) OnEvent(ev catalog.Event) { s.ch <- ev }

// finish waits for every event to be consumed and returns the final event
// per path, in path order.
func (s *collectSink) finish(paths []string) []catalog.Event {
	close(s.ch)
	<-s.done
	out := make([]catalog.Event, 0, len(paths))
	for _, p := range paths {
		if ev, ok := s.last[p]; ok {
			out = append(out, ev)
		}
	}
	return out
}

func runLoad(ctx context.Context, loader *catalog.Loader, paths []string) ([]builtins.Descriptor, []catalog.Event, error) {
	sink := newCollectSink(nil)
	l := *loader
	l.Progress = sink
	records, err := l.LoadFiles(ctx, paths)
	return records, sink.finish(paths), err
}

type loadOutcome struct {
	records []builtins.Descriptor
	events  []catalog.Event
	err     error
}

func runLoadWithUI(ctx context.Context, title string, loader *catalog.Loader, paths []string) ([]builtins.Descriptor, []catalog.Event, error) {
	forward := make(chan catalog.Event, 256)
	outcomeCh := make(chan loadOutcome, 1)

	go func() {
		sink := newCollectSink(forward)
		l := *loader
		l.Progress = sink
		records, err := l.LoadFiles(ctx, paths)
		outcomeCh <- loadOutcome{records: records, events: sink.finish(paths), err: err}
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, paths, forward), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the loader from blocking on a UI that is gone
		go func() {
			for range forward {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.records, outcome.events, uiErr
	}
	return outcome.records, outcome.events, outcome.err
}

func renderCheck(w io.Writer, paths []string, events []catalog.Event) {
	byPath := make(map[string]catalog.Event, len(events))
	for _, ev := range events {
		byPath[ev.File] = ev
	}
	var t table
	for _, p := range paths {
		ev, ok := byPath[p]
		if !ok {
			t.add([]string{"skipped", p, ""}, []*color.Color{disabledColor})
			continue
		}
		switch ev.Status {
		case catalog.StatusError:
			t.add([]string{"error", p, ev.Err.Error()}, []*color.Color{badColor})
		case catalog.StatusCached, catalog.StatusDone:
			t.add([]string{string(ev.Status), p, strconv.Itoa(ev.Records) + " builtins"}, []*color.Color{okColor})
		default:
			t.add([]string{"cancelled", p, ""}, []*color.Color{disabledColor})
		}
	}
	t.write(w)
}
