package format

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEditOutOfRange = errors.New("format: edit out of range")
	ErrEditOverlap    = errors.New("format: overlapping edits")
)

// Edit replaces whole lines [StartLine, EndLine) with NewText.
// An EndLine equal to the line count reaches the end of the document.
type Edit struct {
	StartLine int
	EndLine   int
	NewText   string
}

// lineOffsets returns the byte offset at which every line starts.
func lineOffsets(text string) []int {
	offs := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offs = append(offs, i+1)
		}
	}
	return offs
}

// Apply validates every edit before touching the text. On error the input is
// returned unchanged.
func Apply(text string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}
	offs := lineOffsets(text)
	nlines := len(offs)

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartLine != sorted[j].StartLine {
			return sorted[i].StartLine < sorted[j].StartLine
		}
		return sorted[i].EndLine < sorted[j].EndLine
	})

	for i, e := range sorted {
		if e.StartLine < 0 || e.EndLine < e.StartLine || e.EndLine > nlines {
			return text, fmt.Errorf("edit [%d,%d) of %d lines: %w", e.StartLine, e.EndLine, nlines, ErrEditOutOfRange)
		}
		if i > 0 && sorted[i-1].EndLine > e.StartLine {
			return text, fmt.Errorf("edit [%d,%d) and [%d,%d): %w",
				sorted[i-1].StartLine, sorted[i-1].EndLine, e.StartLine, e.EndLine, ErrEditOverlap)
		}
	}

	offset := func(line int) int {
		if line >= nlines {
			return len(text)
		}
		return offs[line]
	}

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, e := range sorted {
		start, end := offset(e.StartLine), offset(e.EndLine)
		b.WriteString(text[pos:start])
		b.WriteString(e.NewText)
		pos = end
	}
	b.WriteString(text[pos:])
	return b.String(), nil
}
