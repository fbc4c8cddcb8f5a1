package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/format"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/source"
)

// FormatMode selects the transformation FormatPaths applies.
type FormatMode uint8

const (
	// FormatPrettify expands attribute values into indented blocks.
	FormatPrettify FormatMode = iota
	// FormatCollapse joins indented blocks back into single lines.
	FormatCollapse
)

func (m FormatMode) String() string {
	if m == FormatCollapse {
		return "collapse"
	}
	return "prettify"
}

// ParseFormatMode accepts "prettify" (or "pretty") and "collapse".
func ParseFormatMode(s string) (FormatMode, error) {
	switch s {
	case "prettify", "pretty", "":
		return FormatPrettify, nil
	case "collapse":
		return FormatCollapse, nil
	}
	return 0, fmt.Errorf("unknown format mode %q (want prettify or collapse)", s)
}

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Mode       FormatMode
	Check      bool
	Stdout     bool
	Options    format.Options
	Extensions []string
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths formats the provided files or directories. When opts.Check is
// true, files are not modified; Changed indicates whether formatting would
// update the file contents. When opts.Stdout is true, formatted content is
// returned in the results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := CollectFiles(ctx, paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("format: %w", ErrNoFiles)
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result := FormatResult{Path: path}
		formatted, changed, err := formatSingleFile(path, opts)
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		switch {
		case opts.Check:
			result.Changed = changed
		case opts.Stdout:
			result.Formatted = formatted
			result.Changed = changed
		case changed:
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
				result.Err = err
			} else {
				result.Changed = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// FormatText applies the selected transformation to text.
func FormatText(text string, opts FormatOptions) (string, bool, error) {
	if opts.Mode == FormatCollapse {
		return format.CollapseSource(text)
	}
	return format.PrettifySource(text, opts.Options)
}

func formatSingleFile(path string, opts FormatOptions) ([]byte, bool, error) {
	// #nosec G304 -- path comes from CollectFiles
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	// BOM and CRLF are normalized away, which counts as a change
	file := source.NewFile(path, raw, 0)
	out, _, err := FormatText(file.Text(), opts)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	formatted := []byte(out)
	return formatted, !bytes.Equal(raw, formatted), nil
}
