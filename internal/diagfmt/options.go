package diagfmt

import (
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts auto, absolute, relative and basename.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "auto", "":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// FileReport is the diagnostics of one file. File may be nil when the file
// could not be loaded.
type FileReport struct {
	Path        string
	File        *source.File
	Diagnostics []diag.Diagnostic
}

func (r FileReport) displayPath(mode PathMode, baseDir string) string {
	if r.File != nil {
		return r.File.FormatPath(mode.String(), baseDir)
	}
	return r.Path
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	// NoSource suppresses the source line and caret.
	NoSource bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int // обрезка вывода, не Bag
}
