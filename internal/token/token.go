package token

import (
	"texconv/internal/source"
)

// NumberLit holds the parts of a numeric literal as written.
// Whole+Sep+Frac reproduce the mantissa; Exp is only meaningful when Sci is set.
type NumberLit struct {
	Whole string // ведущие цифры
	Sep   string // "", ".", ",", "{,}" or "{.}"
	Frac  string
	Exp   string // with optional sign
	Sci   bool
}

// Mantissa returns the literal without its exponent suffix.
func (n NumberLit) Mantissa() string {
	return n.Whole + n.Sep + n.Frac
}

// SubEquation is one role-tagged child block of a Function.
type SubEquation struct {
	Role   Role
	Tokens []Token
}

// Token is one node of the tree. Which fields are populated depends on Kind:
//
//	Whitespace, Variable, Text   Text
//	Number                       Text (raw literal), Num
//	Operator                     Text (symbol); Numerator/Denominator for "/"
//	Braces, Brackets             Children; Unit for Brackets
//	Function                     Text (name without backslash), Subs
type Token struct {
	Kind Kind
	Span source.Span
	Text string

	Num NumberLit

	Children []Token
	Unit     bool

	Numerator   []Token
	Denominator []Token

	Subs []SubEquation
}

// IsDivision reports whether t is the fraction operator.
func (t Token) IsDivision() bool {
	return t.Kind == Operator && t.Text == "/"
}

// Sub returns the last sub-equation with the given role.
func (t Token) Sub(role Role) ([]Token, bool) {
	for i := len(t.Subs) - 1; i >= 0; i-- {
		if t.Subs[i].Role == role {
			return t.Subs[i].Tokens, true
		}
	}
	return nil, false
}

func NewWhitespace(s string) Token { return Token{Kind: Whitespace, Text: s} }

func NewVariable(s string) Token { return Token{Kind: Variable, Text: s} }

func NewText(s string) Token { return Token{Kind: Text, Text: s} }

func NewOperator(sym string) Token { return Token{Kind: Operator, Text: sym} }

// NewNumber builds a Number from its parts; Text is assembled the way the
// LaTeX tokenizer would have read it when Sci is set.
func NewNumber(n NumberLit, text string) Token {
	if text == "" {
		text = n.Mantissa()
	}
	return Token{Kind: Number, Text: text, Num: n}
}

// NewInt is a shorthand for a separator-less, exponent-less Number.
func NewInt(digits string) Token {
	return NewNumber(NumberLit{Whole: digits}, digits)
}

func NewDivision(num, den []Token) Token {
	return Token{Kind: Operator, Text: "/", Numerator: num, Denominator: den}
}

func NewBraces(children ...Token) Token {
	return Token{Kind: Braces, Children: children}
}

func NewBrackets(children ...Token) Token {
	return Token{Kind: Brackets, Children: children, Unit: true}
}

func NewFunction(name string, subs ...SubEquation) Token {
	return Token{Kind: Function, Text: name, Subs: subs}
}

// Arg, Lower and Upper build sub-equations with the matching role.
func Arg(tokens ...Token) SubEquation   { return SubEquation{Role: RoleArgument, Tokens: tokens} }
func Lower(tokens ...Token) SubEquation { return SubEquation{Role: RoleSubscript, Tokens: tokens} }
func Upper(tokens ...Token) SubEquation { return SubEquation{Role: RoleSuperscript, Tokens: tokens} }
