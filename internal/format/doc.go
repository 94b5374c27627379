// Package format renders token trees back into one of the two surface syntaxes.
//
// Назначение: сериализаторы дерева в LaTeX (Latex) и в простой текст (PlainText).
// Не делает: токенизации, диагностик и IO; спаны токенов игнорируются.
// Зависимости: internal/token.
//
// Both serializers are pure functions of the tree. Spelling that the tree does
// not record (brace style of the decimal separator, the exponent marker) is
// chosen canonically for the target surface.
package format
