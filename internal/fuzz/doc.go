// Package fuzztests houses Go fuzz harnesses for the tokenizers and
// serializers. Their goal is to guard against panics, broken spans and
// runaway output on arbitrary inputs.
//
// Назначение: прогонять байты через FileSet, оба лексера и оба сериализатора.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/format, internal/diag,
// internal/testkit.
package fuzztests
