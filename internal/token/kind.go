package token

// Kind represents the variant of a tree node.
type Kind uint8

const (
	// Invalid is the zero Kind; tokenizers never produce it.
	Invalid Kind = iota
	// Whitespace is a single literal whitespace character.
	Whitespace
	// Number is a numeric literal.
	Number
	// Variable is an opaque identifier or symbol.
	Variable
	// Text is literal free text.
	Text
	// Operator is one symbol from the operator table.
	Operator
	// Braces is a pure grouping node.
	Braces
	// Brackets is a unit annotation group.
	Brackets
	// Function is a vocabulary function with sub-equations.
	Function
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	Whitespace: "Whitespace",
	Number:     "Number",
	Variable:   "Variable",
	Text:       "Text",
	Operator:   "Operator",
	Braces:     "Braces",
	Brackets:   "Brackets",
	Function:   "Function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsGroup reports whether nodes of this kind carry a child sequence in Children.
func (k Kind) IsGroup() bool {
	return k == Braces || k == Brackets
}

// Role tags a function sub-equation.
type Role uint8

const (
	// RoleArgument is the function argument; conventionally the last entry.
	RoleArgument Role = iota
	// RoleSubscript is a `_{...}` entry.
	RoleSubscript
	// RoleSuperscript is a `^{...}` entry.
	RoleSuperscript
)

func (r Role) String() string {
	switch r {
	case RoleArgument:
		return "argument"
	case RoleSubscript:
		return "subscript"
	case RoleSuperscript:
		return "superscript"
	}
	return "role(?)"
}
