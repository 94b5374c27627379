package token

// LatexOperators is the LaTeX operator table, longest match first.
// The backslash entries are shadowed by the \name rule in the LaTeX tokenizer
// and only appear in trees built by hand.
var LatexOperators = []string{
	"<=", ">=", `\neq`, `\or`, `\vee`, `\and`, `\wedge`,
	"=", "<", ">", "+", "-", "*", "/", "^", "_",
}

// PlainOperators is the plain-text operator table, longest match first.
var PlainOperators = []string{
	"<=", ">=", "=", "<", ">", "+", "-", "*", "/", "^", "_",
}

// IsOperator reports whether sym is in the LaTeX operator table.
func IsOperator(sym string) bool {
	for _, op := range LatexOperators {
		if op == sym {
			return true
		}
	}
	return false
}
