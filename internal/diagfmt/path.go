package diagfmt

import (
	"path/filepath"

	"cminus/internal/source"
)

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil {
		return ""
	}
	f := fs.Get(id)
	if f == nil {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return fs.DisplayPath(id)
	}
}
