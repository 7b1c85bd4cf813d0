package observ

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	end := tm.Begin("tables")
	time.Sleep(2 * time.Millisecond)
	end("3 files")
	end("ignored")
	tm.Begin("initialize")("")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "tables" || r.Phases[0].Note != "3 files" {
		t.Fatalf("phase 0 = %+v", r.Phases[0])
	}
	if r.Phases[0].DurationMS < 2 {
		t.Fatalf("phase 0 took %v ms, want >= 2", r.Phases[0].DurationMS)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %v < phase %v", r.TotalMS, r.Phases[0].DurationMS)
	}

	var buf bytes.Buffer
	tm.WriteSummary(&buf)
	out := buf.String()
	for _, want := range []string{"timings:", "tables", "// 3 files", "initialize", "total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Begin("x")("y")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Begin("load")("")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 16 {
		t.Fatalf("phases = %d, want 16", n)
	}
}
