package format_test

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"texconv/internal/format"
	"texconv/internal/lexer"
	"texconv/internal/source"
	"texconv/internal/token"
)

type conversionCase struct {
	Name  string `yaml:"name"`
	Latex string `yaml:"latex"`
	Plain string `yaml:"plain"`
}

func loadCases(t *testing.T, name string) []conversionCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var cases []conversionCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("parse fixture %s: %v", name, err)
	}
	if len(cases) == 0 {
		t.Fatalf("fixture %s is empty", name)
	}
	return cases
}

func lexLatex(input string) []token.Token {
	fs := source.NewFileSet()
	return lexer.LexLatex(fs.AddString("in.tex", input), lexer.Options{})
}

func lexPlain(input string) []token.Token {
	fs := source.NewFileSet()
	return lexer.LexPlain(fs.AddString("in.txt", input), lexer.Options{})
}

func TestLatexToPlainFixtures(t *testing.T) {
	for _, tc := range loadCases(t, "latex_to_plain.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			if got := format.PlainText(lexLatex(tc.Latex)); got != tc.Plain {
				t.Errorf("PlainText(%q) = %q, want %q", tc.Latex, got, tc.Plain)
			}
		})
	}
}

func TestPlainToLatexFixtures(t *testing.T) {
	for _, tc := range loadCases(t, "plain_to_latex.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			if got := format.Latex(lexPlain(tc.Plain)); got != tc.Latex {
				t.Errorf("Latex(%q) = %q, want %q", tc.Plain, got, tc.Latex)
			}
		})
	}
}

// LaTeX -> tree -> plain -> tree must describe the same expression.
func TestRoundTripThroughPlain(t *testing.T) {
	inputs := []string{
		`\dfrac{1}{2}`,
		`\sum_{n=1}^{N}{n}`,
		`123{,}456 \cdot 10^{7}`,
		`\log_{2}{x} + \sin({y})`,
		`\lim_{x}({f})`,
		`a \cdot b = c`,
		`\dfrac{a+b}{c-d}`,
		`\sqrt{x^{2}}`,
		`\int^{1}{x} <= \dfrac{1}{2}`,
		`1.25 \cdot 10^{-3}`,
		`\alpha + \beta`,
	}
	for _, in := range inputs {
		first := lexLatex(in)
		plain := format.PlainText(first)
		second := lexPlain(plain)
		if !token.Equivalent(first, second) {
			t.Errorf("round trip of %q through %q changed the tree", in, plain)
		}
	}
}

func TestPlainTextRuns(t *testing.T) {
	txt, ws := token.NewText, token.NewWhitespace
	tests := []struct {
		name string
		in   []token.Token
		want string
	}{
		{"trailing whitespace follows the run", []token.Token{txt("a"), ws(" ")}, "[a] "},
		{"leading whitespace precedes the run", []token.Token{ws(" "), txt("a")}, " [a]"},
		{"whitespace joins text", []token.Token{txt("a"), ws(" "), ws(" "), txt("b")}, "[a  b]"},
		{"nested pure groups", []token.Token{token.NewBraces(token.NewBraces(txt("a"))), txt("b")}, "[ab]"},
		{"brackets of text merge", []token.Token{token.NewBrackets(txt("kg"))}, "[kg]"},
		{"empty group is not text", []token.Token{txt("a"), token.NewBraces()}, "[a]{}"},
		{"whitespace-only group is not text", []token.Token{token.NewBraces(ws(" "))}, "{ }"},
		{"variable splits runs", []token.Token{txt("a"), token.NewVariable("x"), txt("b")}, "[a]x[b]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format.PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLatexHandBuilt(t *testing.T) {
	tests := []struct {
		name string
		in   []token.Token
		want string
	}{
		{
			name: "unescaped braces in a variable",
			in:   []token.Token{token.NewVariable("{x}")},
			want: `\{x\}`,
		},
		{
			name: "escaped braces stay",
			in:   []token.Token{token.NewVariable(`\{`)},
			want: `\{`,
		},
		{
			name: "last entry of a role wins",
			in: []token.Token{token.NewFunction("log",
				token.Lower(token.NewInt("2")),
				token.Lower(token.NewInt("10")),
				token.Arg(token.NewVariable("x")),
			)},
			want: `\log_{10} {x}`,
		},
		{
			name: "entries out of scan order",
			in: []token.Token{token.NewFunction("int",
				token.Arg(token.NewVariable("f")),
				token.Upper(token.NewInt("1")),
				token.Lower(token.NewInt("0")),
			)},
			want: `\int_{0}^{1} {f}`,
		},
		{
			name: "grouped digits",
			in:   []token.Token{token.NewNumber(token.NumberLit{Whole: "1", Sep: ",", Frac: "234.5"}, "")},
			want: `1{,}234,5`,
		},
		{
			name: "control word before a function",
			in:   []token.Token{token.NewVariable(`\pi`), token.NewFunction("sin", token.Arg(token.NewVariable("x")))},
			want: `\pi\sin({x})`,
		},
		{
			name: "control word before a variable",
			in:   []token.Token{token.NewVariable(`\infty`), token.NewVariable("n")},
			want: `\infty n`,
		},
		{
			name: "function without entries keeps the argument wrapper",
			in:   []token.Token{token.NewFunction("sum"), token.NewVariable("n")},
			want: `\sum {}n`,
		},
		{
			name: "missing argument of a plain function",
			in:   []token.Token{token.NewFunction("cos", token.Lower(token.NewVariable("a")))},
			want: `\cos({})`,
		},
		{
			name: "escaped backslash is not a control word",
			in:   []token.Token{token.NewVariable(`\\`), token.NewVariable("n")},
			want: `\\n`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format.Latex(tt.in); got != tt.want {
				t.Errorf("Latex = %q, want %q", got, tt.want)
			}
		})
	}
}
