package source

type (
	// FileID uniquely identifies an input within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about an input.
	FileFlags uint8
)

const (
	// FileVirtual indicates the input was added from memory (argument, test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures one expression (or a file of expressions) and its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in an input.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
