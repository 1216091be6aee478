package diagfmt

import (
	"path/filepath"

	"strata/internal/source"
)

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil || !fs.Has(id) {
		return source.UnnamedDisplay
	}
	f := fs.Get(id)
	if f.Path == "" {
		return f.DisplayName()
	}
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeBasename:
		return source.BaseName(f.Path)
	default:
		return f.Path
	}
}
