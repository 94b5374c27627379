package lexer

import (
	"texconv/internal/token"
)

// nextLatex scans one LaTeX token and appends it to out.
// Порядок правил важен: первое совпавшее побеждает.
func (lx *Lexer) nextLatex(out []token.Token) []token.Token {
	ch := lx.cursor.Peek()
	switch {
	case lx.atSpace():
		return append(out, lx.scanWhitespace())
	case ch == '\\':
		if tok, ok := lx.scanLatexCommand(); ok {
			return append(out, tok)
		}
	case ch == '{':
		return append(out, lx.braces())
	case ch == '[':
		return append(out, lx.brackets())
	case isDec(ch):
		return append(out, lx.scanLatexNumber())
	case ch == '/':
		return lx.foldDivision(out)
	}
	if tok, ok := lx.scanOperator(token.LatexOperators); ok {
		return append(out, tok)
	}
	return append(out, lx.scanLatexWord())
}

// scanLatexCommand handles everything introduced by a backslash followed by
// letters, plus the escaped braces. ok is false when the backslash starts
// neither, leaving the cursor untouched.
func (lx *Lexer) scanLatexCommand() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'

	if b := lx.cursor.Peek(); b == '{' || b == '}' {
		lx.cursor.Bump()
		return token.Token{Kind: token.Variable, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}, true
	}

	name := lx.letters()
	if name == "" {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}

	switch name {
	case "dfrac":
		return lx.dfrac(start), true
	case "cdot":
		return token.Token{Kind: token.Operator, Span: lx.cursor.SpanFrom(start), Text: "*"}, true
	case "text":
		if lx.cursor.Peek() == '{' {
			text, closed := lx.verbatim()
			sp := lx.cursor.SpanFrom(start)
			if !closed {
				lx.report(KindUnterminatedText, sp, `unclosed \text group runs to the end of the input`)
			}
			return token.Token{Kind: token.Text, Span: sp, Text: text}, true
		}
	}

	if fn, ok := token.LookupFunction(name); ok {
		return lx.scanLatexFunction(start, fn), true
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)
	if !token.IsOperator(text) {
		lx.report(KindUnknownCommand, sp, "unknown command "+text+" kept as a variable")
	}
	return token.Token{Kind: token.Variable, Span: sp, Text: text}, true
}

// scanLatexFunction reads `_{...}` / `^{...}` groups in any order and then an
// optional argument, either `{...}` or `({...})`, possibly after whitespace.
func (lx *Lexer) scanLatexFunction(start Mark, fn token.FuncInfo) token.Token {
	var subs []token.SubEquation
	for {
		b0, b1, ok := lx.cursor.Peek2()
		if !ok || b1 != '{' || (b0 != '_' && b0 != '^') {
			break
		}
		role := token.RoleSubscript
		if b0 == '^' {
			role = token.RoleSuperscript
		}
		lx.cursor.Bump()
		children, _ := lx.group('{', '}')
		subs = append(subs, token.SubEquation{Role: role, Tokens: children})
	}
	if arg, ok := lx.latexArgument(); ok {
		subs = append(subs, token.Arg(arg...))
	}
	return token.Token{Kind: token.Function, Span: lx.cursor.SpanFrom(start), Text: fn.Name, Subs: subs}
}

func (lx *Lexer) latexArgument() ([]token.Token, bool) {
	m := lx.cursor.Mark()
	lx.skipSpaces()
	switch lx.cursor.Peek() {
	case '{':
		arg, _ := lx.group('{', '}')
		return arg, true
	case '(':
		// только целиком "({...})", иначе откат
		if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '{' {
			end, closed := lx.matchClose(lx.cursor.Off+2, '{', '}')
			if closed && end+1 < lx.cursor.Limit && lx.file.Content[end+1] == ')' {
				lx.cursor.Bump() // '('
				arg, _ := lx.group('{', '}')
				lx.cursor.Bump() // ')'
				return arg, true
			}
		}
	}
	lx.cursor.Reset(m)
	return nil, false
}

// scanLatexNumber reads digits, an optional decimal separator followed by
// digits, and an optional ` \cdot 10^{exp}` suffix. Each optional part is
// rolled back on its own when it does not match completely.
func (lx *Lexer) scanLatexNumber() token.Token {
	start := lx.cursor.Mark()
	n := token.NumberLit{Whole: lx.digits()}

	sepMark := lx.cursor.Mark()
	switch {
	case lx.cursor.HasPrefix("{,}"), lx.cursor.HasPrefix("{.}"):
		lx.cursor.Advance(3)
	case lx.cursor.Peek() == '.', lx.cursor.Peek() == ',':
		lx.cursor.Bump()
	}
	if lx.cursor.Mark() != sepMark {
		n.Sep = lx.cursor.TextFrom(sepMark)
		n.Frac = lx.digits()
		if n.Frac == "" {
			lx.cursor.Reset(sepMark)
			n.Sep = ""
		}
	}

	expMark := lx.cursor.Mark()
	if exp, ok := lx.latexExponent(start); ok {
		n.Exp, n.Sci = exp, true
	} else {
		lx.cursor.Reset(expMark)
	}

	return token.Token{Kind: token.Number, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start), Num: n}
}

// latexExponent matches `\s*\cdot\s*10\s*^{[+-]?digits}`. A mismatch after
// `\cdot 10^` is reported as a rollback; earlier mismatches are ordinary
// multiplication and stay silent.
func (lx *Lexer) latexExponent(numStart Mark) (string, bool) {
	lx.skipInlineSpaces()
	if !lx.cursor.EatString(`\cdot`) || isLetter(lx.cursor.Peek()) {
		return "", false
	}
	lx.skipInlineSpaces()
	if !lx.cursor.EatString("10") || isDec(lx.cursor.Peek()) {
		return "", false
	}
	lx.skipInlineSpaces()
	if !lx.cursor.Eat('^') {
		return "", false
	}
	expStart := lx.cursor.Mark()
	ok := lx.cursor.Eat('{')
	if ok {
		signMark := lx.cursor.Mark()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		ok = lx.digits() != ""
		exp := lx.cursor.TextFrom(signMark)
		if ok && lx.cursor.Eat('}') {
			return exp, true
		}
	}
	lx.cursor.Reset(expStart)
	lx.report(KindExponentRollback, lx.cursor.SpanFrom(numStart), "malformed exponent suffix; keeping only the base numeral")
	return "", false
}

// skipInlineSpaces skips spaces and tabs.
func (lx *Lexer) skipInlineSpaces() {
	for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

// scanLatexWord is the fallback: the longest run of letters, digits,
// apostrophes and backslashes, or else a single rune.
func (lx *Lexer) scanLatexWord() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if !isLetter(b) && !isDec(b) && b != '\'' && b != '\\' {
			break
		}
		lx.cursor.Bump()
	}
	if lx.cursor.Mark() == start {
		return lx.scanRuneVariable()
	}
	return token.Token{Kind: token.Variable, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}
