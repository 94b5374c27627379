package format

import (
	"strings"

	"texconv/internal/token"
)

// Latex renders a token tree in the LaTeX surface syntax.
func Latex(ts []token.Token) string {
	p := latexPrinter{w: NewWriter(true)}
	p.seq(ts, false)
	return p.w.String()
}

// latexPrinter threads the unit flag: inside [...] variables are wrapped
// in \text{ ...}.
type latexPrinter struct {
	w *Writer
}

func renderLatex(ts []token.Token, unit bool) string {
	p := latexPrinter{w: NewWriter(true)}
	p.seq(ts, unit)
	return p.w.String()
}

func (p *latexPrinter) seq(ts []token.Token, unit bool) {
	for i := range ts {
		p.token(&ts[i], unit)
	}
}

func (p *latexPrinter) token(t *token.Token, unit bool) {
	switch t.Kind {
	case token.Whitespace:
		p.w.WriteString(t.Text)
	case token.Number:
		p.w.WriteString(latexNumber(t.Num))
	case token.Variable:
		if unit {
			p.w.WriteString(`\text{ ` + escapeBraces(t.Text) + `}`)
			return
		}
		p.w.WriteString(escapeBraces(t.Text))
	case token.Text:
		p.w.WriteString(`\text{` + t.Text + `}`)
	case token.Operator:
		p.operator(t, unit)
	case token.Braces:
		p.w.WriteString("{")
		p.seq(t.Children, unit)
		p.w.WriteString("}")
	case token.Brackets:
		p.w.Space()
		p.seq(t.Children, true)
	case token.Function:
		p.function(t, unit)
	}
}

func (p *latexPrinter) operator(t *token.Token, unit bool) {
	switch {
	case t.IsDivision():
		p.w.WriteString(`\dfrac{` + renderLatex(t.Numerator, unit) + `}{` + renderLatex(t.Denominator, unit) + `}`)
	case t.Text == "*":
		p.w.WriteString(`\cdot`)
	default:
		p.w.WriteString(t.Text)
	}
}

// function places the last entry of each role according to the class of the
// name. Empty subscripts and superscripts lose their marker; the argument
// wrapper is always written, as {} when there is nothing to put in it.
func (p *latexPrinter) function(t *token.Token, unit bool) {
	entry := func(role token.Role) string {
		ts, ok := t.Sub(role)
		if !ok {
			return ""
		}
		return renderLatex(ts, unit)
	}

	p.w.WriteString(`\` + t.Text)
	fn, known := token.LookupFunction(t.Text)
	if known && fn.HasSlot(token.RoleSubscript) {
		if s := entry(token.RoleSubscript); s != "" {
			p.w.WriteString(`_{` + s + `}`)
		}
	}
	if known && fn.HasSlot(token.RoleSuperscript) {
		if s := entry(token.RoleSuperscript); s != "" {
			p.w.WriteString(`^{` + s + `}`)
		}
	}

	arg := entry(token.RoleArgument)
	switch fn.Class {
	case token.ClassLimits, token.ClassSubscript:
		p.w.WriteString(` {` + arg + `}`)
	default:
		p.w.WriteString(`({` + arg + `})`)
	}
}

// escapeBraces prefixes every unescaped brace with a backslash.
func escapeBraces(s string) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c == '{' || c == '}') && (i == 0 || s[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
