package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows the path relative to the base directory when the file
	// lives below it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses the path the file was loaded with.
	PathModeAbsolute
	PathModeBasename
)

// ParsePathMode maps a flag value onto a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto", "relative":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "basename":
		return PathModeBasename, true
	default:
		return PathModeAuto, false
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}
