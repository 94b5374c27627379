package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"texconv/internal/token"

	"fortio.org/safecast"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune читает текущую руну
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// ===== Классификаторы =====

func isLetter(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }
func isDec(b byte) bool    { return b >= '0' && b <= '9' }

func (lx *Lexer) atSpace() bool {
	r, sz := lx.peekRune()
	return sz > 0 && unicode.IsSpace(r)
}

// skipSpaces drops whitespace without producing tokens.
func (lx *Lexer) skipSpaces() {
	for lx.atSpace() {
		lx.bumpRune()
	}
}

// ===== Общие сканеры =====

// scanWhitespace emits exactly one whitespace character.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	return token.Token{Kind: token.Whitespace, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

// scanOperator tries the table in order; tables are sorted longest first.
func (lx *Lexer) scanOperator(table []string) (token.Token, bool) {
	start := lx.cursor.Mark()
	for _, op := range table {
		if lx.cursor.EatString(op) {
			return token.Token{Kind: token.Operator, Span: lx.cursor.SpanFrom(start), Text: op}, true
		}
	}
	return token.Token{}, false
}

// scanRuneVariable emits the current rune as a Variable.
func (lx *Lexer) scanRuneVariable() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	return token.Token{Kind: token.Variable, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

// digits consumes a run of decimal digits and returns it.
func (lx *Lexer) digits() string {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.cursor.TextFrom(start)
}

// letters consumes a run of ASCII letters and returns it.
func (lx *Lexer) letters() string {
	start := lx.cursor.Mark()
	for isLetter(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.cursor.TextFrom(start)
}
