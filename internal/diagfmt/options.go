package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	Max              int  // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

// TokenFormat selects the rendering of a token tree.
type TokenFormat uint8

const (
	TokensPretty TokenFormat = iota
	TokensJSON
	TokensMsgpack
)

// ParseTokenFormat converts a --format flag value.
func ParseTokenFormat(s string) (TokenFormat, bool) {
	switch s {
	case "pretty", "":
		return TokensPretty, true
	case "json":
		return TokensJSON, true
	case "msgpack":
		return TokensMsgpack, true
	}
	return TokensPretty, false
}
