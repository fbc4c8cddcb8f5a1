package lsp

import (
	"fortio.org/safecast"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/format"
)

const maxInt32 = int(^uint32(0) >> 1)

// safeInt converts scanner coordinates to LSP ints, saturating on overflow.
func safeInt(n uint32) int {
	v, err := safecast.Conv[int32](n)
	if err != nil {
		return maxInt32
	}
	return int(v)
}

// rangeForDiag converts a byte-column range into UTF-16 positions.
func rangeForDiag(lines []string, r diag.Range) lspRange {
	line := safeInt(r.Line)
	text := ""
	if line < len(lines) {
		text = lines[line]
	}
	return lspRange{
		Start: position{Line: line, Character: utf16Column(text, safeInt(r.StartCol))},
		End:   position{Line: line, Character: utf16Column(text, safeInt(r.EndCol))},
	}
}

// lineStart maps a line index to a position; lines past the end map to the
// end of the last line.
func lineStart(lines []string, line int) position {
	if line < len(lines) {
		return position{Line: line}
	}
	last := len(lines) - 1
	if last < 0 {
		return position{}
	}
	return position{Line: last, Character: utf16Column(lines[last], len(lines[last]))}
}

func textEditsFor(lines []string, edits []format.Edit) []textEdit {
	out := make([]textEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, textEdit{
			Range: lspRange{
				Start: lineStart(lines, e.StartLine),
				End:   lineStart(lines, e.EndLine),
			},
			NewText: e.NewText,
		})
	}
	return out
}
