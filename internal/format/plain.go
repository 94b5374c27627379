package format

import (
	"strings"

	"texconv/internal/token"
)

// PlainText renders a token tree in the plain-text surface syntax. Adjacent
// literal text, including text nested in groups that hold nothing else, is
// merged into one bracketed run.
func PlainText(ts []token.Token) string {
	var r plainRun
	r.seq(ts)
	return r.flushed()
}

// plainRun is the state of one rendering call.
//
//	out   - вывод, уже готовый к выдаче
//	text  - накапливаемый текстовый фрагмент
//	ws    - пробелы, пришедшие при непустом text; войдут в фрагмент или
//	        выйдут следом за ним
type plainRun struct {
	out     strings.Builder
	text    strings.Builder
	ws      strings.Builder
	sawText bool
	other   bool
}

func (r *plainRun) flush() {
	if r.text.Len() > 0 {
		r.out.WriteString("[" + r.text.String() + "]")
		r.text.Reset()
	}
	r.out.WriteString(r.ws.String())
	r.ws.Reset()
}

// flushed finishes a call whose result is never merged into a caller's run.
func (r *plainRun) flushed() string {
	r.flush()
	return r.out.String()
}

// pure finishes a group call. When the group held text and nothing else but
// whitespace, the raw unbracketed text is returned with ok=true so the caller
// can keep accumulating.
func (r *plainRun) pure() (string, bool) {
	if r.sawText && !r.other {
		return r.out.String() + r.text.String() + r.ws.String(), true
	}
	return r.flushed(), false
}

func (r *plainRun) appendText(s string) {
	if r.text.Len() > 0 {
		r.text.WriteString(r.ws.String())
		r.ws.Reset()
	}
	r.text.WriteString(s)
	r.sawText = true
}

// emit flushes the pending run and writes a non-text rendering.
func (r *plainRun) emit(s string) {
	r.flush()
	r.out.WriteString(s)
	r.other = true
}

func (r *plainRun) seq(ts []token.Token) {
	for i := range ts {
		r.token(&ts[i])
	}
}

func (r *plainRun) token(t *token.Token) {
	switch t.Kind {
	case token.Whitespace:
		if r.text.Len() > 0 {
			r.ws.WriteString(t.Text)
			return
		}
		r.out.WriteString(t.Text)
	case token.Text:
		r.appendText(t.Text)
	case token.Braces, token.Brackets:
		var sub plainRun
		sub.seq(t.Children)
		inner, ok := sub.pure()
		if ok {
			r.appendText(inner)
			return
		}
		if t.Kind == token.Braces {
			r.emit("{" + inner + "}")
		} else {
			r.emit("[" + inner + "]")
		}
	case token.Number:
		r.emit(plainNumber(t.Num))
	case token.Operator:
		if t.IsDivision() {
			r.emit(`\dfrac{` + PlainText(t.Numerator) + `}{` + PlainText(t.Denominator) + `}`)
			return
		}
		r.emit(t.Text)
	case token.Function:
		r.emit(plainFunction(t))
	default:
		r.emit(t.Text)
	}
}

// plainFunction writes name{..}{..} with the entries in slot order so that
// counting roles from the end reproduces them. Leading slots start at the
// first one present; a missing middle slot or argument becomes {}.
func plainFunction(t *token.Token) string {
	var b strings.Builder
	b.WriteString(t.Text)

	var slots []token.Role
	if fn, ok := token.LookupFunction(t.Text); ok {
		slots = fn.Slots
	}
	started := false
	for _, role := range slots {
		ts, ok := t.Sub(role)
		if !ok && !started {
			continue
		}
		started = true
		b.WriteString("{" + PlainText(ts) + "}")
	}
	arg, _ := t.Sub(token.RoleArgument)
	b.WriteString("{" + PlainText(arg) + "}")
	return b.String()
}
