package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer records how long each pass of one conversion took. A nil *Timer is
// valid: Measure still runs the function and nothing is recorded.
type Timer struct {
	phases []PhaseReport
}

func NewTimer() *Timer { return &Timer{phases: make([]PhaseReport, 0, 3)} }

// Measure runs fn as the phase called name.
func (t *Timer) Measure(name string, fn func()) {
	if t == nil {
		fn()
		return
	}
	started := time.Now()
	fn()
	t.phases = append(t.phases, PhaseReport{Name: name, DurationMS: millis(time.Since(started))})
}

// PhaseReport is one measured pass.
type PhaseReport struct {
	Name       string
	DurationMS float64
}

// Report lists the phases in the order they ran.
type Report struct {
	TotalMS float64
	Phases  []PhaseReport
}

func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	r := Report{Phases: append([]PhaseReport(nil), t.phases...)}
	for _, p := range r.Phases {
		r.TotalMS += p.DurationMS
	}
	return r
}

// Summary renders the report as an aligned table with each phase's share
// of the total.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		share := 0.0
		if r.TotalMS > 0 {
			share = 100 * p.DurationMS / r.TotalMS
		}
		fmt.Fprintf(&sb, "  %-12s %8.3f ms %5.1f%%\n", p.Name, p.DurationMS, share)
	}
	fmt.Fprintf(&sb, "  %-12s %8.3f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
