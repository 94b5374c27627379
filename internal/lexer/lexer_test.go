package lexer_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"texconv/internal/diag"
	"texconv/internal/lexer"
	"texconv/internal/source"
	"texconv/internal/token"
)

// treeOpts сравнивает деревья без учёта спанов
var treeOpts = cmp.Options{
	cmpopts.IgnoreFields(token.Token{}, "Span"),
	cmpopts.EquateEmpty(),
}

// lex токенизирует строку и возвращает дерево вместе с собранными диагностиками
func lex(t *testing.T, surface lexer.Surface, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddString("test.tex", input)
	bag := diag.NewBag(0)
	opts := lexer.Options{Reporter: &lexer.ReporterAdapter{Sink: bag}}
	return lexer.New(file, surface, opts).All(), bag
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

var (
	v   = token.NewVariable
	op  = token.NewOperator
	num = token.NewInt
	sp  = token.NewWhitespace(" ")
)

func TestLexLatex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
		diags []diag.Code
	}{
		{
			name:  "braced decimal separator",
			input: `123{,}456`,
			want: []token.Token{
				token.NewNumber(token.NumberLit{Whole: "123", Sep: "{,}", Frac: "456"}, "123{,}456"),
			},
		},
		{
			name:  "scientific notation",
			input: `123{,}456 \cdot 10^{7}`,
			want: []token.Token{
				token.NewNumber(token.NumberLit{Whole: "123", Sep: "{,}", Frac: "456", Exp: "7", Sci: true}, `123{,}456 \cdot 10^{7}`),
			},
		},
		{
			name:  "negative exponent",
			input: `2.5\cdot10^{-3}`,
			want: []token.Token{
				token.NewNumber(token.NumberLit{Whole: "2", Sep: ".", Frac: "5", Exp: "-3", Sci: true}, `2.5\cdot10^{-3}`),
			},
		},
		{
			name:  "separator without digits",
			input: `1.`,
			want:  []token.Token{num("1"), v(".")},
		},
		{
			name:  "plain multiplication is not an exponent",
			input: `2 \cdot 3`,
			want:  []token.Token{num("2"), sp, op("*"), sp, num("3")},
		},
		{
			name:  "broken exponent rolls back",
			input: `5 \cdot 10^{x}`,
			want: []token.Token{
				num("5"), sp, op("*"), sp, num("10"), op("^"), token.NewBraces(v("x")),
			},
			diags: []diag.Code{diag.LexExponentRollback},
		},
		{
			name:  "fraction",
			input: `\dfrac{1}{2}`,
			want: []token.Token{
				token.NewDivision([]token.Token{num("1")}, []token.Token{num("2")}),
			},
		},
		{
			name:  "infix slash folds like dfrac",
			input: `x / {y+1}`,
			want: []token.Token{
				token.NewDivision([]token.Token{v("x")}, []token.Token{v("y"), op("+"), num("1")}),
			},
		},
		{
			name:  "fraction with spaces and a missing denominator",
			input: `\dfrac {a}`,
			want: []token.Token{
				token.NewDivision([]token.Token{v("a")}, nil),
			},
			diags: []diag.Code{diag.LexMissingGroup},
		},
		{
			name:  "sum with limits",
			input: `\sum_{n=1}^{N}{n}`,
			want: []token.Token{
				token.NewFunction("sum",
					token.Lower(v("n"), op("="), num("1")),
					token.Upper(v("N")),
					token.Arg(v("n")),
				),
			},
		},
		{
			name:  "argument after whitespace",
			input: `\log_{2} {x}`,
			want: []token.Token{
				token.NewFunction("log", token.Lower(num("2")), token.Arg(v("x"))),
			},
		},
		{
			name:  "parenthesized argument",
			input: `\lim_{x}({y})`,
			want: []token.Token{
				token.NewFunction("lim", token.Lower(v("x")), token.Arg(v("y"))),
			},
		},
		{
			name:  "incomplete parenthesized argument",
			input: `\sin (x)`,
			want: []token.Token{
				token.NewFunction("sin"), sp, v("("), v("x"), v(")"),
			},
		},
		{
			name:  "unknown command",
			input: `\Fred`,
			want:  []token.Token{v(`\Fred`)},
			diags: []diag.Code{diag.LexUnknownCommand},
		},
		{
			name:  "relation command stays a variable",
			input: `a \neq b`,
			want:  []token.Token{v("a"), sp, v(`\neq`), sp, v("b")},
		},
		{
			name:  "two-character operator",
			input: `<=`,
			want:  []token.Token{op("<=")},
		},
		{
			name:  "text is verbatim",
			input: `\text{a {b} c}`,
			want:  []token.Token{token.NewText("a {b} c")},
		},
		{
			name:  "unit brackets",
			input: `5 [kg]`,
			want:  []token.Token{num("5"), sp, token.NewBrackets(v("kg"))},
		},
		{
			name:  "escaped braces",
			input: `\{ x \}`,
			want:  []token.Token{v(`\{`), sp, v("x"), sp, v(`\}`)},
		},
		{
			name:  "word run swallows a backslash",
			input: `x\,`,
			want:  []token.Token{v(`x\`), v(",")},
		},
		{
			name:  "word with apostrophe",
			input: `f'`,
			want:  []token.Token{v("f'")},
		},
		{
			name:  "unclosed brace",
			input: `{a`,
			want:  []token.Token{token.NewBraces(v("a"))},
			diags: []diag.Code{diag.LexUnclosedBrace},
		},
		{
			name:  "unclosed bracket",
			input: `[m`,
			want:  []token.Token{token.NewBrackets(v("m"))},
			diags: []diag.Code{diag.LexUnclosedBracket},
		},
		{
			name:  "unterminated text",
			input: `\text{ab`,
			want:  []token.Token{token.NewText("ab")},
			diags: []diag.Code{diag.LexUnterminatedText},
		},
		{
			name:  "whitespace is kept one character at a time",
			input: "a \t\nb",
			want: []token.Token{
				v("a"), sp, token.NewWhitespace("\t"), token.NewWhitespace("\n"), v("b"),
			},
		},
		{
			name:  "non-ascii rune",
			input: `α+β`,
			want:  []token.Token{v("α"), op("+"), v("β")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bag := lex(t, lexer.Latex, tt.input)
			if diff := cmp.Diff(tt.want, got, treeOpts); diff != "" {
				t.Errorf("LexLatex(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if diff := cmp.Diff(tt.diags, codes(bag), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("LexLatex(%q) diagnostics mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLexPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
		diags []diag.Code
	}{
		{
			name:  "sum with all entries",
			input: `sum{n=1}{N}{n}`,
			want: []token.Token{
				token.NewFunction("sum",
					token.Lower(v("n"), op("="), num("1")),
					token.Upper(v("N")),
					token.Arg(v("n")),
				),
			},
		},
		{
			name:  "roles count from the end",
			input: `sum{N}{n}`,
			want: []token.Token{
				token.NewFunction("sum", token.Upper(v("N")), token.Arg(v("n"))),
			},
		},
		{
			name:  "log base",
			input: `log{2}{x}`,
			want: []token.Token{
				token.NewFunction("log", token.Lower(num("2")), token.Arg(v("x"))),
			},
		},
		{
			name:  "function name without group is a variable",
			input: `sin x`,
			want:  []token.Token{v("sin"), sp, v("x")},
		},
		{
			name:  "quoted text",
			input: `"hi there"`,
			want:  []token.Token{token.NewText("hi there")},
		},
		{
			name:  "escaped quote",
			input: `"a\"b"`,
			want:  []token.Token{token.NewText(`a"b`)},
		},
		{
			name:  "unterminated quote",
			input: `"open`,
			want:  []token.Token{token.NewText("open")},
			diags: []diag.Code{diag.LexUnterminatedText},
		},
		{
			name:  "number with exponent",
			input: `1,5E3`,
			want: []token.Token{
				token.NewNumber(token.NumberLit{Whole: "1", Sep: ",", Frac: "5", Exp: "3", Sci: true}, "1,5E3"),
			},
		},
		{
			name:  "exponent without digits rolls back",
			input: `2e`,
			want:  []token.Token{num("2"), v("e")},
		},
		{
			name:  "grouped digits",
			input: `1,234.5`,
			want: []token.Token{
				token.NewNumber(token.NumberLit{Whole: "1", Sep: ",", Frac: "234.5"}, "1,234.5"),
			},
		},
		{
			name:  "infix division",
			input: `a/b`,
			want: []token.Token{
				token.NewDivision([]token.Token{v("a")}, []token.Token{v("b")}),
			},
		},
		{
			name:  "division unwraps braces and drops spaces",
			input: `{a+b} / {c}`,
			want: []token.Token{
				token.NewDivision([]token.Token{v("a"), op("+"), v("b")}, []token.Token{v("c")}),
			},
		},
		{
			name:  "division binds nearest siblings",
			input: `1 + 2/3`,
			want: []token.Token{
				num("1"), sp, op("+"), sp,
				token.NewDivision([]token.Token{num("2")}, []token.Token{num("3")}),
			},
		},
		{
			name:  "division without operands",
			input: `/`,
			want:  []token.Token{token.NewDivision(nil, nil)},
		},
		{
			name:  "dfrac is accepted",
			input: `\dfrac{1}{2}`,
			want: []token.Token{
				token.NewDivision([]token.Token{num("1")}, []token.Token{num("2")}),
			},
		},
		{
			name:  "backslash name",
			input: `\alpha`,
			want:  []token.Token{v(`\alpha`)},
		},
		{
			name:  "operators",
			input: `a<=b`,
			want:  []token.Token{v("a"), op("<="), v("b")},
		},
		{
			name:  "unit brackets",
			input: `[kg]`,
			want:  []token.Token{token.NewBrackets(v("kg"))},
		},
		{
			name:  "variable with digits",
			input: `x2'`,
			want:  []token.Token{v("x2'")},
		},
		{
			name:  "unclosed function group",
			input: `sin{x`,
			want:  []token.Token{token.NewFunction("sin", token.Arg(v("x")))},
			diags: []diag.Code{diag.LexUnclosedBrace},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bag := lex(t, lexer.Plain, tt.input)
			if diff := cmp.Diff(tt.want, got, treeOpts); diff != "" {
				t.Errorf("LexPlain(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if diff := cmp.Diff(tt.diags, codes(bag), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("LexPlain(%q) diagnostics mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSpans(t *testing.T) {
	got, _ := lex(t, lexer.Latex, `x + \dfrac{1}{2}`)
	if len(got) != 5 {
		t.Fatalf("got %d tokens, want 5", len(got))
	}
	frac := got[4]
	if frac.Span.Start != 4 || frac.Span.End != 16 {
		t.Errorf("fraction span = %s, want 4..16", frac.Span)
	}
	if n := frac.Numerator[0]; n.Span.Start != 11 || n.Span.End != 12 {
		t.Errorf("numerator span = %s, want 11..12", n.Span)
	}

	got, _ = lex(t, lexer.Plain, `a / b`)
	if len(got) != 1 || got[0].Span.Start != 0 || got[0].Span.End != 5 {
		t.Errorf("folded division must cover the whole input, got %+v", got)
	}
}

func TestUnclosedGroupFix(t *testing.T) {
	_, bag := lex(t, lexer.Latex, `{a`)
	if bag.Len() != 1 {
		t.Fatalf("want one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != diag.SevWarning {
		t.Errorf("severity = %v, want WARNING", d.Severity)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "}" {
		t.Fatalf("want a fix inserting '}', got %+v", d.Fixes)
	}
	if at := d.Fixes[0].Edits[0].Span; at.Start != 2 || !at.Empty() {
		t.Errorf("fix must insert at the end of the input, got %s", at)
	}
}

func TestNilReporter(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddString("x", `{\Fred`)
	got := lexer.LexLatex(file, lexer.Options{})
	want := []token.Token{token.NewBraces(v(`\Fred`))}
	if diff := cmp.Diff(want, got, treeOpts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupDepth(t *testing.T) {
	tests := []struct {
		name    string
		surface lexer.Surface
		in      string
		deepest int
		tooDeep bool
	}{
		{"flat", lexer.Latex, "a+b", 0, false},
		{"one group", lexer.Latex, "{a}", 1, false},
		{"fraction of unit", lexer.Latex, `\dfrac{[x]}{y}`, 2, false},
		{"stray closers", lexer.Latex, "}}{", 1, false},
		{"at the limit", lexer.Latex, "{{{x}}}", 3, false},
		{"over the limit", lexer.Latex, "{{{{x}}}}", 3, true},
		{"escaped braces", lexer.Latex, strings.Repeat(`\{`, 10), 0, false},
		{"text literal", lexer.Latex, `	ext{` + strings.Repeat("{", 10) + strings.Repeat("}", 10) + "}", 0, false},
		{"quoted braces", lexer.Plain, `"` + strings.Repeat("{", 10) + `"`, 0, false},
		{"plain escapes", lexer.Plain, strings.Repeat(`\{`, 10), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			lx := lexer.New(fs.AddString("x", tt.in), tt.surface, lexer.Options{MaxDepth: 3})
			lx.All()
			if lx.Deepest() != tt.deepest || lx.TooDeep() != tt.tooDeep {
				t.Errorf("Deepest, TooDeep = %d, %v; want %d, %v", lx.Deepest(), lx.TooDeep(), tt.deepest, tt.tooDeep)
			}
		})
	}
}

func TestGroupOverLimitKeepsSpans(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddString("x", "{{{{x}}}} y")
	tokens := lexer.New(file, lexer.Latex, lexer.Options{MaxDepth: 2}).All()
	if len(tokens) != 3 || tokens[2].Text != "y" {
		t.Fatalf("tokens after the deep group must survive: %+v", tokens)
	}
	inner := tokens[0].Children[0].Children[0]
	if inner.Kind != token.Braces || len(inner.Children) != 0 || inner.Span.End != 7 {
		t.Errorf("group beyond the limit must be consumed whole and left empty: %+v", inner)
	}
}

// Время на байт должно оставаться примерно одинаковым для обоих размеров.
func BenchmarkLexLatex(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 14} {
		input := strings.Repeat(`a+1{,}5 \cdot `, n)
		b.Run(strconv.Itoa(len(input)), func(b *testing.B) {
			fs := source.NewFileSet()
			file := fs.AddString("bench.tex", input)
			b.SetBytes(int64(len(input)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lexer.New(file, lexer.Latex, lexer.Options{}).All()
			}
		})
	}
}
