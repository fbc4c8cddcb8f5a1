package lsp

import (
	"encoding/json"
	"strings"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/softcode"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	result := buildHover(text, params.Position)
	if result == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, result)
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// wordAt returns the identifier under the cursor, including a leading '@' or
// '!' command sigil, and its byte bounds within line.
func wordAt(line string, col int) (string, int, int) {
	if col > len(line) {
		col = len(line)
	}
	start, end := col, col
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	for end < len(line) && isWordByte(line[end]) {
		end++
	}
	if start > 0 && (line[start-1] == '@' || line[start-1] == '!') {
		start--
	}
	return line[start:end], start, end
}

func buildHover(text string, pos position) *hover {
	lines := lint.SplitLines(text)
	if pos.Line < 0 || pos.Line >= len(lines) {
		return nil
	}
	line := lines[pos.Line]
	word, start, end := wordAt(line, byteOffsetForUTF16(line, pos.Character))
	if word == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(word, "@") || strings.HasPrefix(word, "!") {
		if doc, ok := softcode.CommandDoc(word); ok {
			parts = append(parts, doc)
		} else if softcode.Commands.Has(word) {
			parts = append(parts, "**"+word+"** (PennMUSH Command)")
		}
	} else {
		if sig, ok := softcode.LookupSignature(word); ok {
			parts = append(parts, "```mush\n"+sig.Label+"\n```")
			if sig.Documentation != "" {
				parts = append(parts, sig.Documentation)
			}
		}
		if doc, ok := softcode.FunctionDoc(word); ok {
			parts = append(parts, doc)
		} else if len(parts) == 0 && softcode.Commands.Has(word) {
			parts = append(parts, "**"+word+"** (PennMUSH Command)")
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: strings.Join(parts, "\n\n")},
		Range: &lspRange{
			Start: position{Line: pos.Line, Character: utf16Column(line, start)},
			End:   position{Line: pos.Line, Character: utf16Column(line, end)},
		},
	}
}
