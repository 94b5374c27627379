package diagfmt

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"texconv/internal/diag"
	"texconv/internal/source"
)

// editPreview holds the input lines an edit touches, before and after it.
type editPreview struct {
	before []string
	after  []string
}

func previewEdit(fs *source.FileSet, edit diag.FixEdit) (editPreview, error) {
	if fs == nil {
		return editPreview{}, fmt.Errorf("no file set")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return editPreview{}, fmt.Errorf("input %d not in file set", edit.Span.File)
	}
	content := file.Content
	start, end := int(edit.Span.Start), int(edit.Span.End)
	if start > end || end > len(content) {
		return editPreview{}, fmt.Errorf("edit %s outside %s", edit.Span, file.Path)
	}
	lo, hi := lineAround(content, start, end)
	after := slices.Concat(content[lo:start], []byte(edit.NewText), content[end:hi])
	return editPreview{
		before: previewLines(content[lo:hi]),
		after:  previewLines(after),
	}, nil
}

// lineAround widens [start, end) to whole lines, without the final newline.
func lineAround(content []byte, start, end int) (lo, hi int) {
	lo = bytes.LastIndexByte(content[:start], '\n') + 1
	hi = len(content)
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		hi = end + i
	}
	return lo, hi
}

func previewLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return strings.Split(string(b), "\n")
}
