package format

// Writer accumulates rendered output. In LaTeX mode it keeps control words
// from running into a following letter.
type Writer struct {
	buf   []byte
	latex bool
}

// NewWriter creates a writer; latex enables control-word separation.
func NewWriter(latex bool) *Writer {
	return &Writer{buf: make([]byte, 0, 64), latex: latex}
}

func (w *Writer) String() string {
	return string(w.buf)
}

// WriteString appends s. `\cdot` followed by `x` becomes `\cdot x`.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	if w.latex && isLetter(s[0]) && endsWithControlWord(w.buf) {
		w.buf = append(w.buf, ' ')
	}
	w.buf = append(w.buf, s...)
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// endsWithControlWord reports whether buf ends with `\letters` where the
// backslash is not itself escaped.
func endsWithControlWord(buf []byte) bool {
	i := len(buf)
	for i > 0 && isLetter(buf[i-1]) {
		i--
	}
	if i == len(buf) {
		return false
	}
	slashes := 0
	for j := i - 1; j >= 0 && buf[j] == '\\'; j-- {
		slashes++
	}
	return slashes%2 == 1
}

func isLetter(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }
