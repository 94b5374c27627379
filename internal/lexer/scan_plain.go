package lexer

import (
	"strings"

	"texconv/internal/token"
)

// nextPlain scans one plain-text token and appends it to out. An infix "/"
// rewrites the tail of out: the previous token becomes the numerator.
func (lx *Lexer) nextPlain(out []token.Token) []token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isDec(ch):
		return append(out, lx.scanPlainNumber())
	case ch == '\\':
		if tok, ok := lx.scanPlainEscape(); ok {
			return append(out, tok)
		}
	case ch == '/':
		return lx.foldDivision(out)
	case isLetter(ch):
		return append(out, lx.scanPlainWord())
	case ch == '{':
		return append(out, lx.braces())
	case ch == '[':
		return append(out, lx.brackets())
	case ch == '"':
		return append(out, lx.scanQuoted())
	case lx.atSpace():
		return append(out, lx.scanWhitespace())
	}
	if tok, ok := lx.scanOperator(token.PlainOperators); ok {
		return append(out, tok)
	}
	return append(out, lx.scanRuneVariable())
}

// scanPlainNumber reads digits(,digits)*(.digits(,digits)*)?([eE][+-]?digits)?.
// The first separator seen is recorded as Sep; the rest of the mantissa is Frac.
func (lx *Lexer) scanPlainNumber() token.Token {
	start := lx.cursor.Mark()
	n := token.NumberLit{Whole: lx.digits()}

	var frac strings.Builder
	part := func(sep byte) bool {
		b0, b1, ok := lx.cursor.Peek2()
		if !ok || b0 != sep || !isDec(b1) {
			return false
		}
		lx.cursor.Bump()
		if n.Sep == "" {
			n.Sep = string(sep)
		} else {
			frac.WriteByte(sep)
		}
		frac.WriteString(lx.digits())
		return true
	}
	for part(',') {
	}
	if part('.') {
		for part(',') {
		}
	}
	n.Frac = frac.String()

	expMark := lx.cursor.Mark()
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		signMark := lx.cursor.Mark()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if lx.digits() != "" {
			n.Exp, n.Sci = lx.cursor.TextFrom(signMark), true
		} else {
			lx.cursor.Reset(expMark)
		}
	}

	return token.Token{Kind: token.Number, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start), Num: n}
}

// scanPlainEscape handles `\{`, `\}`, `\dfrac{..}{..}` and `\name`.
func (lx *Lexer) scanPlainEscape() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if b := lx.cursor.Peek(); b == '{' || b == '}' {
		lx.cursor.Bump()
		return token.Token{Kind: token.Variable, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}, true
	}
	for b := lx.cursor.Peek(); isLetter(b) || isDec(b); b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	name := lx.cursor.TextFrom(start)[1:]
	switch name {
	case "":
		lx.cursor.Reset(start)
		return token.Token{}, false
	case "dfrac":
		return lx.dfrac(start), true
	}
	return token.Token{Kind: token.Variable, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}, true
}

// scanPlainWord reads a letter run; a vocabulary name immediately followed
// by '{' is a function, anything else a variable of letters, digits and
// apostrophes.
func (lx *Lexer) scanPlainWord() token.Token {
	start := lx.cursor.Mark()
	name := lx.letters()
	if fn, ok := token.LookupFunction(name); ok && lx.cursor.Peek() == '{' {
		return lx.scanPlainFunction(start, fn)
	}
	for b := lx.cursor.Peek(); isLetter(b) || isDec(b) || b == '\''; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.Variable, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

// scanPlainFunction consumes consecutive brace groups and tags them with the
// roles of the vocabulary table, counted from the last entry.
func (lx *Lexer) scanPlainFunction(start Mark, fn token.FuncInfo) token.Token {
	var entries [][]token.Token
	for lx.cursor.Peek() == '{' {
		children, _ := lx.group('{', '}')
		entries = append(entries, children)
	}
	roles := fn.Roles(len(entries))
	subs := make([]token.SubEquation, len(entries))
	for i, e := range entries {
		subs[i] = token.SubEquation{Role: roles[i], Tokens: e}
	}
	return token.Token{Kind: token.Function, Span: lx.cursor.SpanFrom(start), Text: fn.Name, Subs: subs}
}

// scanQuoted reads "..." with backslash escapes. An unterminated quote keeps
// what was read and is reported.
func (lx *Lexer) scanQuoted() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'
	var b strings.Builder
	escape, closed := false, false
	for !lx.cursor.EOF() {
		c := lx.cursor.Bump()
		if escape {
			b.WriteByte(c)
			escape = false
			continue
		}
		if c == '\\' {
			escape = true
			continue
		}
		if c == '"' {
			closed = true
			break
		}
		b.WriteByte(c)
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.report(KindUnterminatedText, sp, "unterminated quoted text runs to the end of the input")
	}
	return token.Token{Kind: token.Text, Span: sp, Text: b.String()}
}
