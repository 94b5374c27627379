package diag_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"texconv/internal/diag"
	"texconv/internal/source"
)

func at(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	for i := range 3 {
		ok := bag.Add(diag.New(diag.SevInfo, diag.LexInfo, at(uint32(i), uint32(i)), "x"))
		if want := i < 2; ok != want {
			t.Errorf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestBagSortAndFilter(t *testing.T) {
	bag := diag.NewBag(0)
	var r diag.Reporter = bag
	r.Report(diag.New(diag.SevInfo, diag.LexUnknownCommand, at(4, 8), "late"))
	r.Report(diag.New(diag.SevWarning, diag.LexUnclosedBrace, at(0, 3), "warn"))
	r.Report(diag.NewError(diag.CnvNestingTooDeep, at(0, 3), "error"))
	r.Report(diag.New(diag.SevInfo, diag.LexMissingGroup, at(0, 1), "short"))

	bag.Sort()
	var got []string
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	if diff := cmp.Diff([]string{"short", "error", "warn", "late"}, got); diff != "" {
		t.Errorf("sorted order (-want +got):\n%s", diff)
	}
	if !bag.HasErrors() {
		t.Error("HasErrors = false")
	}

	errs := bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError })
	if errs.Len() != 1 || errs.Items()[0].Code != diag.CnvNestingTooDeep {
		t.Errorf("Filter kept %v", errs.Items())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[diag.Code]string{
		diag.LexUnclosedBrace:  "LEX1001",
		diag.CnvNestingTooDeep: "CNV3001",
		diag.UnknownCode:       "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if diag.SevWarning.String() != "WARNING" {
		t.Errorf("SevWarning = %q", diag.SevWarning)
	}
}

func TestWithNoteCopies(t *testing.T) {
	base := diag.NewError(diag.CnvPanic, at(0, 1), "boom")
	noted := base.WithNote(at(0, 1), "hint")
	if len(base.Notes) != 0 || len(noted.Notes) != 1 {
		t.Fatalf("WithNote must not touch the receiver: %d / %d notes", len(base.Notes), len(noted.Notes))
	}
}
