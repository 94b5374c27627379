package lexer

import (
	"texconv/internal/source"
)

// Reporter: тонкий интерфейс, чтобы не тянуть diag сюда.
// Лексер **только вызывает** его; код и серьёзность назначает ReporterAdapter.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Report kinds. Every one of them describes a degradation the tokenizer
// recovered from; none of them stops tokenizing.
const (
	KindUnclosedBrace    = "UnclosedBrace"
	KindUnclosedBracket  = "UnclosedBracket"
	KindUnterminatedText = "UnterminatedText"
	KindMissingGroup     = "MissingGroup"
	KindUnknownCommand   = "UnknownCommand"
	KindExponentRollback = "ExponentRollback"
)

type Options struct {
	Reporter Reporter // может быть nil: тогда ничего не сообщаем, но продолжаем
	// MaxDepth bounds group nesting; 0 means unbounded. See Lexer.TooDeep.
	MaxDepth int
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
