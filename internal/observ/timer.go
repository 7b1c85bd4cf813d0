// Package observ records wall-clock timings of the phases of one CLI run.
package observ

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Phase is one timed step.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases. It is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a phase and returns the function that ends it.
// A nil Timer returns a no-op.
func (t *Timer) Begin(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	t.mu.Unlock()

	return func(note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if p.Dur != 0 {
			return
		}
		p.Dur = time.Since(p.Start)
		p.Note = note
	}
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report lists every phase and their summed duration.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		report.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note}
	}
	report.TotalMS = millis(total)
	return report
}

// WriteSummary prints the report as an aligned table.
func (t *Timer) WriteSummary(w io.Writer) {
	report := t.Report()
	fmt.Fprintln(w, "timings:")
	for _, p := range report.Phases {
		fmt.Fprintf(w, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(w, "  // %s", p.Note)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %-20s %7.2f ms\n", "total", report.TotalMS)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
