package lsp

import (
	"strings"
	"unicode/utf8"
)

func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	if len(changes) == 0 {
		return text
	}
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition maps an LSP position (UTF-16 columns) to a byte offset,
// clamping to the line end and the document end.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	line := 0
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	lineEnd := strings.IndexByte(text[i:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += i
	}
	return i + byteOffsetForUTF16(text[i:lineEnd], pos.Character)
}

// byteOffsetForUTF16 converts a UTF-16 column on line to a byte offset.
func byteOffsetForUTF16(line string, units int) int {
	n := 0
	for i, r := range line {
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if n+need > units {
			return i
		}
		n += need
	}
	return len(line)
}

// utf16Column converts a byte column on line to UTF-16 code units.
func utf16Column(line string, col int) int {
	if col > len(line) {
		col = len(line)
	}
	units := 0
	for i := 0; i < col; {
		r, size := utf8.DecodeRuneInString(line[i:])
		if i+size > col {
			break
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return units
}

// linePrefix returns the text of the cursor line up to the cursor.
func linePrefix(text string, pos position) string {
	off := offsetForPosition(text, pos)
	start := strings.LastIndexByte(text[:off], '\n') + 1
	return text[start:off]
}
