// Package texconv converts mathematical expressions between a LaTeX-like
// notation and a plain-text notation.
//
// ToPlainText and ToLatex keep the "empty string on failure" contract; use
// Convert to see why a conversion failed.
package texconv

import (
	"context"

	"texconv/internal/driver"
)

// Direction selects the target surface of a conversion.
type Direction = driver.Direction

const (
	// DirPlain converts LaTeX into plain text.
	DirPlain = driver.ToPlain
	// DirLatex converts plain text into LaTeX.
	DirLatex = driver.ToLatex
)

// Result is the outcome of Convert.
type Result struct {
	Output string
	// Warnings lists the degradations applied to the input, rendered as
	// "CODE: message".
	Warnings []string
}

// ToPlainText converts a LaTeX expression to plain text.
func ToPlainText(latex string) string {
	return convertOrEmpty(DirPlain, latex)
}

// ToLatex converts a plain-text expression to LaTeX.
func ToLatex(text string) string {
	return convertOrEmpty(DirLatex, text)
}

// Convert runs one conversion with the default settings. Inputs nested
// deeper than the default limit and internal failures are returned as
// errors; everything else converts, possibly with warnings.
func Convert(dir Direction, input string) (Result, error) {
	return ConvertContext(context.Background(), dir, input)
}

func convertOrEmpty(dir Direction, input string) string {
	res, err := ConvertContext(context.Background(), dir, input)
	if err != nil {
		return ""
	}
	return res.Output
}

// ConvertContext is Convert with a caller context; a tracer attached to ctx
// receives the conversion spans and failure events.
func ConvertContext(ctx context.Context, dir Direction, input string) (Result, error) {
	res, err := driver.Convert(ctx, driver.Request{
		Input:     input,
		Direction: dir,
		Config:    driver.DefaultConfig(),
	})
	if err != nil {
		return Result{}, err
	}
	out := Result{Output: res.Output}
	for _, d := range res.Bag.Items() {
		out.Warnings = append(out.Warnings, d.Code.ID()+": "+d.Message)
	}
	return out, nil
}
