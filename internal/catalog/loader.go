package catalog

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"builtinreg/internal/builtins"
	"builtinreg/internal/trace"
)

// Loader reads table files, consulting Cache when set.
type Loader struct {
	Cache *Cache
	// Jobs bounds concurrent file loads; <= 0 means GOMAXPROCS.
	Jobs int
	// Progress, when set, receives one event per stage of every file.
	Progress ProgressSink
}

func (l *Loader) emit(ev Event) {
	if l.Progress != nil {
		l.Progress.OnEvent(ev)
	}
}

// LoadFile reads one table file.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]builtins.Descriptor, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeTable, "catalog.load", trace.CurrentSpan(ctx).SpanID)
	started := time.Now()
	fail := func(stage Stage, detail string, err error) ([]builtins.Descriptor, error) {
		span.End(detail)
		l.emit(Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return nil, err
	}

	l.emit(Event{File: path, Stage: StageRead, Status: StatusWorking})
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(StageRead, "read failed", err)
	}
	key := DigestOf(data)
	l.emit(Event{File: path, Stage: StageCache, Status: StatusWorking})
	if records, ok, err := l.Cache.Get(key); err != nil {
		return fail(StageCache, "cache error", err)
	} else if ok {
		span.WithExtra("records", strconv.Itoa(len(records))).End(path + " (cached)")
		l.emit(Event{File: path, Stage: StageCache, Status: StatusCached, Records: len(records), Elapsed: time.Since(started)})
		return records, nil
	}
	l.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
	records, err := Parse(path, data)
	if err != nil {
		return fail(StageParse, "parse failed", err)
	}
	if l.Cache != nil {
		l.emit(Event{File: path, Stage: StageStore, Status: StatusWorking})
	}
	if err := l.Cache.Put(key, path, records); err != nil {
		return fail(StageStore, "cache write failed", fmt.Errorf("%s: %w", path, err))
	}
	span.WithExtra("records", strconv.Itoa(len(records))).End(path)
	l.emit(Event{File: path, Stage: StageParse, Status: StatusDone, Records: len(records), Elapsed: time.Since(started)})
	return records, nil
}

// LoadFiles reads every path concurrently and concatenates the tables in the
// order the paths were given.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]builtins.Descriptor, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	jobs := l.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([][]builtins.Descriptor, len(paths))
	for _, path := range paths {
		l.emit(Event{File: path, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := l.LoadFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]builtins.Descriptor, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
