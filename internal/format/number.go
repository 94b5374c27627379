package format

import (
	"strings"

	"texconv/internal/token"
)

// canonicalSep drops the LaTeX brace protection from a separator.
func canonicalSep(sep string) string {
	switch sep {
	case "{,}":
		return ","
	case "{.}":
		return "."
	}
	return sep
}

// latexNumber: "." becomes ",", the first "," is braced, and an exponent
// turns into ` \cdot 10^{exp}`.
func latexNumber(n token.NumberLit) string {
	m := n.Whole + canonicalSep(n.Sep) + n.Frac
	m = strings.Replace(m, ".", ",", 1)
	m = strings.Replace(m, ",", "{,}", 1)
	if n.Sci {
		return m + ` \cdot 10^{` + n.Exp + `}`
	}
	return m
}

// plainNumber: braced separators are unwrapped and an exponent becomes E<exp>.
func plainNumber(n token.NumberLit) string {
	m := n.Whole + canonicalSep(n.Sep) + n.Frac
	if n.Sci {
		return m + "E" + n.Exp
	}
	return m
}
