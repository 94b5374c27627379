package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Measure("lex", func() {})
	tm.Measure("serialize", func() {})

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "lex" || r.Phases[1].Name != "serialize" {
		t.Fatalf("unexpected report %+v", r)
	}
	s := tm.Summary()
	for _, want := range []string{"lex", "serialize", "total", "%"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}

	r.Phases[0].Name = "changed"
	if tm.Report().Phases[0].Name != "lex" {
		t.Error("Report must return a copy")
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	ran := false
	tm.Measure("lex", func() { ran = true })
	if !ran {
		t.Fatal("Measure must run fn on a nil timer")
	}
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}
