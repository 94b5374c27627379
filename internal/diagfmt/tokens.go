package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"texconv/internal/source"
	"texconv/internal/token"
)

// TokenOutput is the serialized form of one tree node.
type TokenOutput struct {
	Kind        string        `json:"kind" msgpack:"kind"`
	Text        string        `json:"text,omitempty" msgpack:"text,omitempty"`
	Span        source.Span   `json:"span" msgpack:"span"`
	Number      *NumberOutput `json:"number,omitempty" msgpack:"number,omitempty"`
	Unit        bool          `json:"unit,omitempty" msgpack:"unit,omitempty"`
	Children    []TokenOutput `json:"children,omitempty" msgpack:"children,omitempty"`
	Numerator   []TokenOutput `json:"numerator,omitempty" msgpack:"numerator,omitempty"`
	Denominator []TokenOutput `json:"denominator,omitempty" msgpack:"denominator,omitempty"`
	Subs        []SubOutput   `json:"subs,omitempty" msgpack:"subs,omitempty"`
}

type NumberOutput struct {
	Whole string `json:"whole" msgpack:"whole"`
	Sep   string `json:"sep,omitempty" msgpack:"sep,omitempty"`
	Frac  string `json:"frac,omitempty" msgpack:"frac,omitempty"`
	Exp   string `json:"exp,omitempty" msgpack:"exp,omitempty"`
}

type SubOutput struct {
	Role   string        `json:"role" msgpack:"role"`
	Tokens []TokenOutput `json:"tokens" msgpack:"tokens"`
}

// BuildTokensOutput converts a tree into its serializable form.
func BuildTokensOutput(ts []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(ts))
	for _, t := range ts {
		o := TokenOutput{
			Kind:     t.Kind.String(),
			Text:     t.Text,
			Span:     t.Span,
			Unit:     t.Unit,
			Children: buildNested(t.Children),
		}
		if t.Kind == token.Number {
			o.Number = &NumberOutput{Whole: t.Num.Whole, Sep: t.Num.Sep, Frac: t.Num.Frac}
			if t.Num.Sci {
				o.Number.Exp = t.Num.Exp
			}
		}
		if t.IsDivision() {
			o.Numerator = BuildTokensOutput(t.Numerator)
			o.Denominator = BuildTokensOutput(t.Denominator)
		}
		for _, s := range t.Subs {
			o.Subs = append(o.Subs, SubOutput{Role: s.Role.String(), Tokens: BuildTokensOutput(s.Tokens)})
		}
		out = append(out, o)
	}
	return out
}

func buildNested(ts []token.Token) []TokenOutput {
	if len(ts) == 0 {
		return nil // Убираем пустые массивы из JSON
	}
	return BuildTokensOutput(ts)
}

// FormatTokensJSON выводит дерево токенов в JSON формате
func FormatTokensJSON(w io.Writer, ts []token.Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTokensOutput(ts))
}

// FormatTokensMsgpack пишет дерево токенов в msgpack.
func FormatTokensMsgpack(w io.Writer, ts []token.Token) error {
	return msgpack.NewEncoder(w).Encode(BuildTokensOutput(ts))
}

// FormatTokensPretty выводит дерево токенов с отступами. Колонка позиций
// выравнивается по ширине отображения, а не по байтам.
func FormatTokensPretty(w io.Writer, ts []token.Token, fs *source.FileSet) error {
	var rows [][2]string
	var walk func(ts []token.Token, depth int, label string)
	walk = func(ts []token.Token, depth int, label string) {
		indent := strings.Repeat("  ", depth)
		if label != "" {
			rows = append(rows, [2]string{indent + label + ":", ""})
			indent += "  "
			depth++
		}
		for _, t := range ts {
			head := indent + t.Kind.String()
			if t.Text != "" {
				head += " " + fmt.Sprintf("%q", t.Text)
			}
			if t.Unit {
				head += " unit"
			}
			start, end := fs.Resolve(t.Span)
			pos := fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
			rows = append(rows, [2]string{head, pos})

			walk(t.Children, depth+1, "")
			if t.IsDivision() {
				walk(t.Numerator, depth+1, "numerator")
				walk(t.Denominator, depth+1, "denominator")
			}
			for _, s := range t.Subs {
				walk(s.Tokens, depth+1, s.Role.String())
			}
		}
	}
	walk(ts, 0, "")

	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r[0]))
	}
	for _, r := range rows {
		if r[1] == "" {
			if _, err := fmt.Fprintln(w, r[0]); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  at %s\n", runewidth.FillRight(r[0], width), r[1]); err != nil {
			return err
		}
	}
	return nil
}
