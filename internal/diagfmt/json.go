package diagfmt

import (
	"encoding/json"
	"io"

	"texconv/internal/diag"
	"texconv/internal/source"
)

// Location is a byte range of an input; Line/Col point at its start and are
// filled only when positions are requested.
type Location struct {
	Input string `json:"input"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line,omitempty"`
	Col   uint32 `json:"col,omitempty"`
}

type EditJSON struct {
	Location    Location `json:"location"`
	NewText     string   `json:"new_text"`
	BeforeLines []string `json:"before_lines,omitempty"`
	AfterLines  []string `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string     `json:"title"`
	Edits []EditJSON `json:"edits"`
}

type NoteJSON struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Location Location   `json:"location"`
	Notes    []NoteJSON `json:"notes,omitempty"`
	Fixes    []FixJSON  `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(sp source.Span) Location {
	loc := Location{Start: sp.Start, End: sp.End}
	if f := b.fs.Get(sp.File); f != nil {
		loc.Input = f.Path
	}
	if b.opts.IncludePositions {
		start, _ := b.fs.Resolve(sp)
		loc.Line, loc.Col = start.Line, start.Col
	}
	return loc
}

func (b jsonBuilder) fix(f diag.Fix) FixJSON {
	out := FixJSON{Title: f.Title, Edits: make([]EditJSON, 0, len(f.Edits))}
	for _, e := range f.Edits {
		ej := EditJSON{Location: b.location(e.Span), NewText: e.NewText}
		if b.opts.IncludePreviews {
			if pv, err := previewEdit(b.fs, e); err == nil {
				ej.BeforeLines, ej.AfterLines = pv.before, pv.after
			}
		}
		out.Edits = append(out.Edits, ej)
	}
	return out
}

// BuildDiagnosticsOutput converts the bag without encoding it; opts.Max
// truncates the output, not the bag.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: b.location(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
			}
		}
		if opts.IncludeFixes {
			for _, f := range d.Fixes {
				dj.Fixes = append(dj.Fixes, b.fix(f))
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the bag as one indented document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
