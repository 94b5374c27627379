package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"texconv/internal/lexer"
	"texconv/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddString("in", `\dfrac{1}{x}`)
	ts := lexer.LexLatex(file, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, ts, fs); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`Operator "/"      at 1:1-1:13`,
		`  numerator:`,
		`    Number "1"    at 1:8-1:9`,
		`  denominator:`,
		`    Variable "x"  at 1:11-1:12`,
		``,
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("pretty tree mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTokensJSONAndMsgpackAgree(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddString("in", `\sum_{n}^{N}{2{,}5 \cdot 10^{3}} [kg]`)
	ts := lexer.LexLatex(file, lexer.Options{})

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, ts); err != nil {
		t.Fatal(err)
	}
	var fromJSON []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}

	var mp bytes.Buffer
	if err := FormatTokensMsgpack(&mp, ts); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack []TokenOutput
	if err := msgpack.Unmarshal(mp.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(fromJSON, fromMsgpack); diff != "" {
		t.Errorf("json and msgpack disagree (-json +msgpack):\n%s", diff)
	}
	if fromJSON[0].Subs[2].Tokens[0].Number.Exp != "3" {
		t.Errorf("exponent lost: %+v", fromJSON[0].Subs[2].Tokens[0])
	}
	if !fromJSON[2].Unit {
		t.Errorf("unit flag lost: %+v", fromJSON[2])
	}
}
