package token

// Equivalent reports whether a and b describe the same expression structure.
// Spans, whitespace tokens, empty sub-equations and the spelling of the decimal
// separator ("{,}" vs ",") are ignored.
func Equivalent(a, b []Token) bool {
	a, b = significant(a), significant(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equivalentToken(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equivalentToken(x, y Token) bool {
	if x.Kind != y.Kind {
		return false
	}
	switch x.Kind {
	case Number:
		return canonicalNumber(x.Num) == canonicalNumber(y.Num)
	case Operator:
		if x.Text != y.Text {
			return false
		}
		if x.IsDivision() {
			return Equivalent(x.Numerator, y.Numerator) && Equivalent(x.Denominator, y.Denominator)
		}
		return true
	case Braces, Brackets:
		return x.Unit == y.Unit && Equivalent(x.Children, y.Children)
	case Function:
		if x.Text != y.Text {
			return false
		}
		xs, ys := nonEmptySubs(x.Subs), nonEmptySubs(y.Subs)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if xs[i].Role != ys[i].Role || !Equivalent(xs[i].Tokens, ys[i].Tokens) {
				return false
			}
		}
		return true
	default:
		return x.Text == y.Text
	}
}

func significant(ts []Token) []Token {
	out := make([]Token, 0, len(ts))
	for _, t := range ts {
		if t.Kind != Whitespace {
			out = append(out, t)
		}
	}
	return out
}

func nonEmptySubs(subs []SubEquation) []SubEquation {
	out := make([]SubEquation, 0, len(subs))
	for _, s := range subs {
		if len(significant(s.Tokens)) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func canonicalNumber(n NumberLit) NumberLit {
	switch n.Sep {
	case "{,}":
		n.Sep = ","
	case "{.}":
		n.Sep = "."
	}
	if !n.Sci {
		n.Exp = ""
	}
	return n
}

// Depth returns the maximum nesting depth of ts; a flat sequence has depth 1
// and an empty one depth 0.
func Depth(ts []Token) int {
	depth := 0
	for _, t := range ts {
		d := 1
		switch {
		case t.Kind.IsGroup():
			d += Depth(t.Children)
		case t.IsDivision():
			d += max(Depth(t.Numerator), Depth(t.Denominator))
		case t.Kind == Function:
			for _, s := range t.Subs {
				d = max(d, 1+Depth(s.Tokens))
			}
		}
		depth = max(depth, d)
	}
	return depth
}
