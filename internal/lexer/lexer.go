package lexer

import (
	"texconv/internal/source"
	"texconv/internal/token"
)

// Surface selects which of the two syntaxes a Lexer reads.
type Surface uint8

const (
	// Latex is the constrained LaTeX math subset.
	Latex Surface = iota
	// Plain is the backslash-free plain-text encoding.
	Plain
)

func (s Surface) String() string {
	if s == Plain {
		return "plain"
	}
	return "latex"
}

// Lexer is a recursive-descent tokenizer over one input. Groups are tokenized
// by narrowing the cursor limit to the group content, so nested calls share
// the cursor instead of re-slicing the input.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	surface Surface

	depth   int // открытые группы на текущем пути рекурсии
	deepest int
	tooDeep bool
}

func New(file *source.File, surface Surface, opts Options) *Lexer {
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		surface: surface,
	}
}

// LexLatex tokenizes a LaTeX input into a token tree.
func LexLatex(file *source.File, opts Options) []token.Token {
	return New(file, Latex, opts).All()
}

// LexPlain tokenizes a plain-text input into a token tree.
func LexPlain(file *source.File, opts Options) []token.Token {
	return New(file, Plain, opts).All()
}

// All tokenizes everything up to the cursor limit.
func (lx *Lexer) All() []token.Token {
	return lx.seq()
}

// Deepest returns the deepest group nesting the lexer descended into.
// Escaped braces, quoted text and \text content never open a group.
func (lx *Lexer) Deepest() int { return lx.deepest }

// TooDeep reports whether a group beyond Options.MaxDepth was met. Such a
// group is consumed with its content left empty, so recursion stays bounded.
func (lx *Lexer) TooDeep() bool { return lx.tooDeep }

// enter accounts for one more open group; false means the limit is hit.
func (lx *Lexer) enter() bool {
	if lx.opts.MaxDepth > 0 && lx.depth >= lx.opts.MaxDepth {
		lx.tooDeep = true
		return false
	}
	lx.depth++
	lx.deepest = max(lx.deepest, lx.depth)
	return true
}

func (lx *Lexer) seq() []token.Token {
	var out []token.Token
	for !lx.cursor.EOF() {
		before := lx.cursor.Off
		out = lx.next(out)
		if lx.cursor.Off == before {
			// сканер обязан продвигаться; страховка от зацикливания
			lx.bumpRune()
		}
	}
	return out
}

// next scans one token of the lexer's surface and appends it to out.
func (lx *Lexer) next(out []token.Token) []token.Token {
	if lx.surface == Plain {
		return lx.nextPlain(out)
	}
	return lx.nextLatex(out)
}

// matchClose finds the byte offset of the delimiter closing a group whose
// content starts at off. Depth counts only open/close of the same style.
// When the group is unbalanced it returns the cursor limit and false.
func (lx *Lexer) matchClose(off uint32, open, close byte) (uint32, bool) {
	depth := 1
	content := lx.file.Content
	for i := off; i < lx.cursor.Limit; i++ {
		switch content[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return lx.cursor.Limit, false
}

// within runs body with the cursor limited to [Off, end) and restores the
// limit afterwards, leaving the cursor at end.
func (lx *Lexer) within(end uint32, body func() []token.Token) []token.Token {
	saved := lx.cursor.Limit
	lx.cursor.Limit = end
	out := body()
	lx.cursor.Off = end
	lx.cursor.Limit = saved
	return out
}

// group scans a balanced group; the cursor must sit on open. The content is
// tokenized recursively with the current surface. An unbalanced group takes
// everything up to the limit and is reported, never rejected.
func (lx *Lexer) group(open, close byte) ([]token.Token, source.Span) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // open
	end, closed := lx.matchClose(lx.cursor.Off, open, close)
	var children []token.Token
	if lx.enter() {
		children = lx.within(end, lx.seq)
		lx.depth--
	} else {
		lx.cursor.Off = end
	}
	if closed {
		lx.cursor.Bump() // close
	} else {
		lx.reportUnclosed(open, lx.cursor.SpanFrom(start))
	}
	return children, lx.cursor.SpanFrom(start)
}

// verbatim scans a balanced brace group and returns its raw content.
func (lx *Lexer) verbatim() (string, bool) {
	lx.cursor.Bump() // '{'
	from := lx.cursor.Mark()
	end, closed := lx.matchClose(lx.cursor.Off, '{', '}')
	lx.cursor.Off = end
	text := lx.cursor.TextFrom(from)
	if closed {
		lx.cursor.Bump()
	}
	return text, closed
}

func (lx *Lexer) reportUnclosed(open byte, sp source.Span) {
	if open == '[' {
		lx.report(KindUnclosedBracket, sp, "unclosed '[' group runs to the end of the input")
		return
	}
	lx.report(KindUnclosedBrace, sp, "unclosed '{' group runs to the end of the input")
}

func (lx *Lexer) braces() token.Token {
	children, sp := lx.group('{', '}')
	return token.Token{Kind: token.Braces, Span: sp, Children: children}
}

func (lx *Lexer) brackets() token.Token {
	children, sp := lx.group('[', ']')
	return token.Token{Kind: token.Brackets, Span: sp, Children: children, Unit: true}
}

// dfrac reads the two brace groups following \dfrac. Whitespace between the
// keyword and the groups is skipped; a missing group becomes empty.
func (lx *Lexer) dfrac(start Mark) token.Token {
	var parts [2][]token.Token
	for i := range parts {
		lx.skipSpaces()
		if lx.cursor.Peek() != '{' {
			which := "numerator"
			if i == 1 {
				which = "denominator"
			}
			lx.report(KindMissingGroup, lx.cursor.SpanFrom(start), `\dfrac has no `+which+" group; using an empty one")
			continue
		}
		parts[i], _ = lx.group('{', '}')
	}
	tok := token.NewDivision(parts[0], parts[1])
	tok.Span = lx.cursor.SpanFrom(start)
	return tok
}

// foldDivision turns an infix `a / b` into Operator("/") with nested operands
// on both surfaces. The nearest non-whitespace sibling on each side is the
// operand; a Braces operand contributes its children. Whitespace around the
// slash is dropped.
func (lx *Lexer) foldDivision(out []token.Token) []token.Token {
	slash := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	for len(out) > 0 && out[len(out)-1].Kind == token.Whitespace {
		out = out[:len(out)-1]
	}
	var num []token.Token
	span := lx.cursor.SpanFrom(slash)
	if len(out) > 0 {
		prev := out[len(out)-1]
		out = out[:len(out)-1]
		num = operand(prev)
		span = span.Cover(prev.Span)
	}

	lx.skipSpaces()
	var den []token.Token
	if !lx.cursor.EOF() {
		next := lx.next(nil)
		for _, t := range next {
			den = append(den, operand(t)...)
			span = span.Cover(t.Span)
		}
	}

	tok := token.NewDivision(num, den)
	tok.Span = span
	return append(out, tok)
}

func operand(t token.Token) []token.Token {
	if t.Kind == token.Braces {
		return t.Children
	}
	return []token.Token{t}
}
