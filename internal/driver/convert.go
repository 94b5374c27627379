package driver

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"texconv/internal/diag"
	"texconv/internal/format"
	"texconv/internal/lexer"
	"texconv/internal/observ"
	"texconv/internal/source"
	"texconv/internal/token"
	"texconv/internal/trace"
)

// Request describes one conversion.
type Request struct {
	// Name labels the input in diagnostics, e.g. "<arg>" or "exprs.txt:12".
	Name      string
	Input     string
	Direction Direction
	Config    Config
	// Timer receives phase timings; nil disables them.
	Timer *observ.Timer
}

// Result is the outcome of a conversion. On failure Output is empty and Bag
// holds the reason.
type Result struct {
	Output  string
	Tokens  []token.Token
	Bag     *diag.Bag
	FileSet *source.FileSet
	File    *source.File
	// Cached is set when the result came from a DiskCache.
	Cached bool
}

func (r Request) displayName() string {
	if r.Name == "" {
		return "<input>"
	}
	return r.Name
}

// serializers is a variable so tests can inject failures.
var serializers = map[Direction]func([]token.Token) string{
	ToPlain: format.PlainText,
	ToLatex: format.Latex,
}

// Convert tokenizes and serializes one input. Degradations are reported in
// the result's bag; an error is returned only for invalid settings, rejected
// inputs (ErrTooDeep), recovered failures (ErrPanic) and cancellation.
func Convert(ctx context.Context, req Request) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "convert")
	span.Set("to", req.Direction.String())

	res, err := run(ctx, req, true)
	if err != nil {
		span.End(err.Error())
		return res, err
	}
	span.Set("diagnostics", strconv.Itoa(res.Bag.Len()))
	span.End("")
	return res, nil
}

// Tokenize builds the token tree of one input without serializing it.
// req.Direction selects the source surface as in Convert.
func Tokenize(ctx context.Context, req Request) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "tokenize")
	res, err := run(ctx, req, false)
	if err != nil {
		span.End(err.Error())
		return res, err
	}
	span.End("")
	return res, nil
}

func run(ctx context.Context, req Request, serialize bool) (res *Result, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}

	input := req.Input
	if req.Config.Normalize == NormalizeNFC {
		phase(ctx, req.Timer, "normalize", func() {
			input = normalizeNFC(input)
		})
	}

	name := req.displayName()
	fs := source.NewFileSet()
	file := fs.AddString(name, input)
	res = &Result{
		Bag:     diag.NewBag(req.Config.MaxDiagnostics),
		FileSet: fs,
		File:    file,
	}

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			res.Output = ""
			res.Bag.Add(diag.NewError(diag.CnvPanic, file.Span(), "internal failure: "+msg))
			trace.Error(ctx, "panic", msg)
			err = fmt.Errorf("%s: %w: %s", name, ErrPanic, msg)
		}
	}()

	surface := lexer.Latex
	if req.Direction == ToLatex {
		surface = lexer.Plain
	}
	var lx *lexer.Lexer
	phase(ctx, req.Timer, "lex", func() {
		lx = lexer.New(file, surface, lexer.Options{
			Reporter: &lexer.ReporterAdapter{Sink: res.Bag},
			MaxDepth: req.Config.MaxDepth,
		})
		res.Tokens = lx.All()
	})
	if lx.TooDeep() {
		limit := req.Config.MaxDepth
		msg := fmt.Sprintf("groups nest deeper than the limit of %d levels", limit)
		res.Tokens = nil
		res.Bag.Report(diag.NewError(diag.CnvNestingTooDeep, file.Span(), msg).
			WithNote(file.Span(), "raise [convert].max_depth in texconv.toml, or set it to 0 to disable the check"))
		trace.Error(ctx, "too-deep", msg)
		return res, fmt.Errorf("%s: %w: limit %d", name, ErrTooDeep, limit)
	}

	if serialize {
		phase(ctx, req.Timer, "serialize", func() {
			res.Output = serializers[req.Direction](res.Tokens)
		})
	}
	return res, nil
}

func normalizeNFC(s string) string {
	return norm.NFC.String(s)
}

// phase runs fn as a timed pass with its own trace span.
func phase(ctx context.Context, timer *observ.Timer, name string, fn func()) {
	_, span := trace.Start(ctx, trace.ScopePass, name)
	timer.Measure(name, fn)
	span.End("")
}
