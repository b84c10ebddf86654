// Package observ measures how long analysis phases take.
package observ

import (
	"fmt"
	"strings"
	"time"
)

type phase struct {
	name    string
	started time.Time
	took    time.Duration
	note    string
}

// Timer records phases in the order they begin. The nil *Timer ignores
// every call, so callers pass nil when timings are off.
type Timer struct {
	phases []phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, phase{name: name, started: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin. Unknown handles are ignored.
func (t *Timer) End(handle int, note string) {
	if t == nil || handle < 0 || handle >= len(t.phases) {
		return
	}
	p := &t.phases[handle]
	p.took = time.Since(p.started)
	p.note = note
}

// PhaseReport is one phase with its duration in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	var total time.Duration
	for _, p := range t.phases {
		total += p.took
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.took), Note: p.note})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the phases as an aligned table with each phase's share of
// the total.
func (t *Timer) Summary() string {
	r := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		share := 0.0
		if r.TotalMS > 0 {
			share = 100 * p.DurationMS / r.TotalMS
		}
		fmt.Fprintf(&b, "  %-10s %8.3f ms %5.1f%%", p.Name, p.DurationMS, share)
		if p.Note != "" {
			fmt.Fprintf(&b, "  // %s", p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-10s %8.3f ms\n", "total", r.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
