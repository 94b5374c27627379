package lexer

import (
	"texconv/internal/diag"
	"texconv/internal/fix"
	"texconv/internal/source"
)

// ReporterAdapter переводит вид деградации в код и серьёзность и передаёт
// диагностику в Sink (обычно *diag.Bag).
type ReporterAdapter struct {
	Sink diag.Reporter
}

type kindInfo struct {
	code  diag.Code
	sev   diag.Severity
	close string // что вставить в конец группы, если есть
}

var kindTable = map[string]kindInfo{
	KindUnclosedBrace:    {diag.LexUnclosedBrace, diag.SevWarning, "}"},
	KindUnclosedBracket:  {diag.LexUnclosedBracket, diag.SevWarning, "]"},
	KindUnterminatedText: {diag.LexUnterminatedText, diag.SevWarning, ""},
	KindMissingGroup:     {diag.LexMissingGroup, diag.SevInfo, ""},
	KindUnknownCommand:   {diag.LexUnknownCommand, diag.SevInfo, ""},
	KindExponentRollback: {diag.LexExponentRollback, diag.SevInfo, ""},
}

// Report implements Reporter.
func (r *ReporterAdapter) Report(kind string, span source.Span, msg string) {
	if r == nil || r.Sink == nil {
		return
	}
	info, ok := kindTable[kind]
	if !ok {
		info = kindInfo{code: diag.LexInfo, sev: diag.SevInfo}
	}
	d := diag.New(info.sev, info.code, span, msg)
	if info.close != "" {
		d = d.WithFix(fix.InsertText("close the group", span, info.close))
	}
	r.Sink.Report(d)
}
