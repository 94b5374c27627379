package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические: деградации токенизаторов
	LexInfo             Code = 1000
	LexUnclosedBrace    Code = 1001
	LexUnclosedBracket  Code = 1002
	LexUnterminatedText Code = 1003
	LexMissingGroup     Code = 1004
	LexUnknownCommand   Code = 1005
	LexExponentRollback Code = 1006

	// Конвертация целиком
	CnvNestingTooDeep Code = 3001
	CnvPanic          Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	LexInfo:             "Lexical information",
	LexUnclosedBrace:    "Unclosed brace group",
	LexUnclosedBracket:  "Unclosed bracket group",
	LexUnterminatedText: "Unterminated text",
	LexMissingGroup:     "Missing group",
	LexUnknownCommand:   "Unknown command",
	LexExponentRollback: "Exponent suffix rolled back",
	CnvNestingTooDeep:   "Nesting too deep",
	CnvPanic:            "Internal conversion failure",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CNV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
