package format

import (
	"regexp"
	"strings"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
)

var collapseHeaderRx = regexp.MustCompile(`^(&[^\s=]+)\s+([^\s=]+)=`)

// IndentedBlocks returns every header together with the run of lines below it
// that start with two spaces. Blocks are listed bottom-up.
func IndentedBlocks(lines []string) []Block {
	var blocks []Block
	for i := len(lines) - 1; i >= 0; i-- {
		if !collapseHeaderRx.MatchString(lines[i]) {
			continue
		}
		j := i + 1
		var sb strings.Builder
		for j < len(lines) && strings.HasPrefix(lines[j], "  ") {
			sb.WriteString(strings.TrimSpace(lines[j]))
			j++
		}
		blocks = append(blocks, Block{Start: i, End: j, Header: lines[i], Value: sb.String()})
	}
	return blocks
}

// Collapse joins each header with its indented continuation lines. No
// separator is inserted between the joined pieces.
func Collapse(text string) []Edit {
	blocks := IndentedBlocks(lint.SplitLines(text))
	edits := make([]Edit, 0, len(blocks))
	for _, b := range blocks {
		edits = append(edits, Edit{StartLine: b.Start, EndLine: b.End, NewText: b.Header + b.Value + "\n"})
	}
	return edits
}

// CollapseSource applies Collapse and reports whether the text changed.
func CollapseSource(text string) (string, bool, error) {
	out, err := Apply(text, Collapse(text))
	if err != nil {
		return text, false, err
	}
	return out, out != text, nil
}
