package source

type (
	// FileID uniquely identifies a source unit within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source unit.
	FileFlags uint8
)

const (
	// FileVirtual indicates the unit was added from memory (session, stdin, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// UnnamedDisplay is shown instead of an empty unit name.
const UnnamedDisplay = "<input>"

// File captures metadata and content for a single source unit.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source unit.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
