package fix

import (
	"texconv/internal/diag"
	"texconv/internal/source"
)

// InsertText creates a fix that inserts text at the end of at.
func InsertText(title string, at source.Span, text string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{
			Span:    source.Span{File: at.File, Start: at.End, End: at.End},
			NewText: text,
		}},
	}
}

// ReplaceSpan replaces the text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span, NewText: newText}},
	}
}
