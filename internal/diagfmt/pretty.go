package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"texconv/internal/diag"
	"texconv/internal/source"
)

type palette struct {
	err, warn, info, code, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan),
		code:  color.New(color.Faint),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку входа с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		path := "<input>"
		if file != nil {
			path = file.Path
		}
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		if file != nil {
			writeSnippet(w, file, d.Primary, p)
		}

		if opts.ShowNotes {
			for _, n := range d.Notes {
				pos, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s %d:%d: %s\n", p.note.Sprint("note:"), pos.Line, pos.Col, n.Msg)
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("fix:"), f.Title)
				for _, e := range f.Edits {
					pv, err := previewEdit(fs, e)
					if err != nil {
						continue
					}
					for _, line := range pv.after {
						fmt.Fprintf(w, "    | %s\n", line)
					}
				}
			}
		}
	}
}

// writeSnippet prints the first line of sp with a caret line under it.
// Column alignment uses display width, so wide runes keep the carets in place.
func writeSnippet(w io.Writer, file *source.File, sp source.Span, p palette) {
	start := min(int(sp.Start), len(file.Content))
	lo, hi := lineAround(file.Content, start, start)
	line := string(file.Content[lo:hi])

	prefixLen := start - lo
	underEnd := min(int(sp.End)-lo, len(line))
	pad := runewidth.StringWidth(line[:prefixLen])
	width := max(runewidth.StringWidth(line[prefixLen:max(underEnd, prefixLen)]), 1)

	fmt.Fprintf(w, "  | %s\n", line)
	fmt.Fprintf(w, "  | %s%s\n", strings.Repeat(" ", pad), p.caret.Sprint("^"+strings.Repeat("~", width-1)))
}
