package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet is the unit registry of one program: units are kept in insertion
// order and never removed. A repeated name produces a new FileID.
type FileSet struct {
	files []File
	index map[string]FileID // name -> newest id
}

func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores content under name, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a unit with the same name already exists.
func (fileSet *FileSet) Add(name string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("unit %q too large: %w", name, err))
	}
	normalized := normalizePath(name)
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	// индекс всегда указывает на последнюю версию
	fileSet.index[normalized] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	content, flags := NormalizeContent(content)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory unit with the FileVirtual flag. Bytes are kept verbatim.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Has reports whether id belongs to this set.
func (fileSet *FileSet) Has(id FileID) bool {
	return int(id) < len(fileSet.files)
}

// GetLatest returns the newest unit ID registered under name.
func (fileSet *FileSet) GetLatest(name string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(name)]
	return id, ok
}

func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Files returns units in insertion order. The slice must not be modified.
func (fileSet *FileSet) Files() []File {
	return fileSet.files
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// DisplayName is the unit name, or UnnamedDisplay for an unnamed unit.
func (f *File) DisplayName() string {
	if f.Path == "" {
		return UnnamedDisplay
	}
	return f.Path
}

// GetLine возвращает строку с заданным номером (1-based).
// Для несуществующей строки возвращается "".
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx := uint32(len(f.LineIdx))  //nolint:gosec // bounded by content length
	lenContent := uint32(len(f.Content)) //nolint:gosec // checked in Add

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start > lenContent || start > end {
		return ""
	}
	return string(f.Content[start:end])
}
