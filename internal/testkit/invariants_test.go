package testkit_test

import (
	"strings"
	"testing"

	"texconv/internal/lexer"
	"texconv/internal/source"
	"texconv/internal/testkit"
	"texconv/internal/token"
)

func TestLexedTreesKeepInvariants(t *testing.T) {
	inputs := []struct {
		surface lexer.Surface
		text    string
	}{
		{lexer.Latex, `\sum_{n=1}^{N}{n} + \dfrac{\text{a}}{2}`},
		{lexer.Latex, `a/b/c \cdot 123{,}456 \cdot 10^{7}`},
		{lexer.Latex, `\lim_{x \to 0}({f}) [kg`},
		{lexer.Plain, `sum{n=1}{N}{n} + (a+b)/c [m/s]`},
		{lexer.Plain, `log{2}{x} "quoted" 1,5E-3`},
	}
	for _, in := range inputs {
		fs := source.NewFileSet()
		file := fs.AddString("x", in.text)
		tokens := lexer.New(file, in.surface, lexer.Options{}).All()
		if err := testkit.CheckSpanInvariants(tokens, file); err != nil {
			t.Errorf("%q: %v", in.text, err)
		}
	}
}

func TestCheckSpanInvariantsReportsViolations(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddString("x", "abcd")
	sp := func(start, end uint32) source.Span { return source.Span{File: file.ID, Start: start, End: end} }

	tests := []struct {
		name   string
		tokens []token.Token
		want   string
	}{
		{"outside input", []token.Token{{Kind: token.Variable, Span: sp(2, 9)}}, "outside"},
		{"overlap", []token.Token{{Kind: token.Variable, Span: sp(0, 2)}, {Kind: token.Variable, Span: sp(1, 3)}}, "overlaps"},
		{"child escapes parent", []token.Token{{
			Kind:     token.Braces,
			Span:     sp(0, 2),
			Children: []token.Token{{Kind: token.Variable, Span: sp(1, 3)}},
		}}, "outside"},
		{"wrong file", []token.Token{{Kind: token.Variable, Span: source.Span{File: file.ID + 1}}}, "file mismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testkit.CheckSpanInvariants(tt.tokens, file)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
