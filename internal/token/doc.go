// Package token defines the token tree shared by both tokenizers and both serializers.
// Invariants:
//   - Every node exclusively owns its children; trees are never shared or cyclic.
//   - Whitespace tokens hold exactly one character and are never merged.
//   - Number.Text is the literal numeral as written; it is never parsed to a float.
//   - Operator "/" is the only operator with children (Numerator, Denominator).
//     Division is always represented this way, never by sibling position.
//   - Function sub-equations keep scan order; Role says what each entry is.
//   - A tree is not modified after the tokenizer returns it.
package token
