package fix

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"texconv/internal/diag"
	"texconv/internal/source"
)

// ErrNoFixes is returned when no fix was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// Result holds the repaired input and what happened to every fix.
type Result struct {
	Output  string
	Applied []AppliedFix
	Skipped []SkippedFix
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

type stagedEdit struct {
	edit  diag.FixEdit
	owner uint32 // Primary.Start of the diagnostic
	order int
}

// Apply applies the fixes of diagnostics to content, the text of input file.
// Fixes are taken in span order; a fix overlapping an already accepted one,
// or pointing outside the input, is skipped as a whole. Of several insertions
// at one offset, the one whose diagnostic starts last goes first, so nested
// unclosed groups close innermost first.
func Apply(file source.FileID, content []byte, diagnostics []diag.Diagnostic) (*Result, error) {
	result := &Result{Output: string(content)}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	var accepted []stagedEdit
	for _, cand := range candidates {
		if reason := checkEdits(file, len(content), cand.fix.Edits, accepted); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			accepted = append(accepted, stagedEdit{edit: e, owner: cand.diag.Primary.Start, order: cand.order})
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			EditCount: len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	result.Output = render(content, accepted)
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	order := 0
	for _, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders by primary span start, then by report order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		return candidates[i].order < candidates[j].order
	})
}

func checkEdits(file source.FileID, size int, edits []diag.FixEdit, accepted []stagedEdit) string {
	for _, e := range edits {
		if e.Span.File != file {
			return "edit targets another input"
		}
		if e.Span.End < e.Span.Start || int(e.Span.End) > size {
			return "edit span out of range"
		}
		for _, prev := range accepted {
			if spansConflict(prev.edit.Span, e.Span) {
				return fmt.Sprintf("conflicts with an edit at %d..%d", prev.edit.Span.Start, prev.edit.Span.End)
			}
		}
	}
	return ""
}

// spansConflict reports whether two edit spans overlap. Spans are half-open;
// two insertions never conflict, an insertion conflicts with a span strictly
// containing its offset.
func spansConflict(a, b source.Span) bool {
	if a.Start == a.End && b.Start == b.End {
		return false
	}
	if a.Start == a.End {
		return b.Start < a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

func render(content []byte, edits []stagedEdit) string {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].edit.Span.Start != edits[j].edit.Span.Start {
			return edits[i].edit.Span.Start < edits[j].edit.Span.Start
		}
		// вставка раньше замены с той же позиции
		ei, ej := edits[i].edit.Span, edits[j].edit.Span
		if (ei.Start == ei.End) != (ej.Start == ej.End) {
			return ei.Start == ei.End
		}
		if edits[i].owner != edits[j].owner {
			return edits[i].owner > edits[j].owner
		}
		return edits[i].order < edits[j].order
	})

	var sb strings.Builder
	pos := uint32(0)
	for _, s := range edits {
		sb.Write(content[pos:s.edit.Span.Start])
		sb.WriteString(s.edit.NewText)
		pos = s.edit.Span.End
	}
	sb.Write(content[pos:])
	return sb.String()
}
