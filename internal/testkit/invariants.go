// Package testkit holds checks shared by the tokenizer tests and fuzzers.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"texconv/internal/source"
	"texconv/internal/token"
)

// CheckSpanInvariants verifies the spans of a token tree read from sf:
// 1) every span lies inside the input and points at sf
// 2) siblings appear in input order and do not overlap
// 3) nested tokens lie inside their parent
func CheckSpanInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkSeq(tokens, source.Span{File: sf.ID, Start: 0, End: size})
}

func checkSeq(tokens []token.Token, parent source.Span) error {
	prevEnd := parent.Start
	for i, t := range tokens {
		sp := t.Span
		if sp.File != parent.File {
			return fmt.Errorf("token %d (%s): span file mismatch: got=%d want=%d", i, t.Kind, sp.File, parent.File)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("token %d (%s): inverted span %v", i, t.Kind, sp)
		}
		if sp.Start < parent.Start || sp.End > parent.End {
			return fmt.Errorf("token %d (%s): span %v is outside %v", i, t.Kind, sp, parent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%s): span %v overlaps the previous sibling ending at %d", i, t.Kind, sp, prevEnd)
		}
		prevEnd = sp.End

		for _, nested := range [][]token.Token{t.Children, t.Numerator, t.Denominator} {
			if err := checkSeq(nested, sp); err != nil {
				return err
			}
		}
		for _, sub := range t.Subs {
			if err := checkSeq(sub.Tokens, sp); err != nil {
				return fmt.Errorf("%s sub-equation: %w", sub.Role, err)
			}
		}
	}
	return nil
}
