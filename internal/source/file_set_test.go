package source

import "testing"

func TestResolveMultiline(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddString("batch", "a+b\n\\sin{x}\nc")

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"first char", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 3, LineCol{Line: 1, Col: 4}},
		{"second line start", 4, LineCol{Line: 2, Col: 1}},
		{"inside second line", 6, LineCol{Line: 2, Col: 3}},
		{"last line", 12, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: f.ID, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Fatalf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddString("expr", `\dfrac{1}{2}`)
	if got := f.Text(Span{File: f.ID, Start: 7, End: 8}); got != "1" {
		t.Fatalf("Text = %q, want %q", got, "1")
	}
	if got := f.Text(Span{File: f.ID, Start: 10, End: 99}); got != "2}" {
		t.Fatalf("Text clamps to content, got %q", got)
	}
	if sp := f.Span(); sp.Len() != 12 {
		t.Fatalf("Span().Len() = %d, want 12", sp.Len())
	}
}

func TestLookupReturnsLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddString("stdin", "a")
	second := fs.AddString("stdin", "b")
	got, ok := fs.Lookup("stdin")
	if !ok || got.ID != second.ID {
		t.Fatalf("Lookup returned %v, %v; want id %d", got, ok, second.ID)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q, %v", out, changed)
	}
	if _, changed := normalizeCRLF([]byte("plain")); changed {
		t.Fatal("no CR must report unchanged")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 2, End: 5}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 6}) {
		t.Fatalf("Cover = %v", got)
	}
	c := Span{File: 2, Start: 0, End: 10}
	if got := a.Cover(c); got != a {
		t.Fatalf("Cover across files must keep receiver, got %v", got)
	}
}
