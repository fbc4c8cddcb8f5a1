package lsp

import (
	"encoding/json"
	"sort"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/format"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, buildFoldingRanges(text))
}

// buildFoldingRanges folds every header that owns indented continuation lines.
func buildFoldingRanges(text string) []foldingRange {
	blocks := format.IndentedBlocks(lint.SplitLines(text))
	ranges := make([]foldingRange, 0, len(blocks))
	for _, b := range blocks {
		if b.End-b.Start < 2 {
			continue
		}
		ranges = append(ranges, foldingRange{StartLine: b.Start, EndLine: b.End - 1, Kind: "region"})
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].StartLine < ranges[j].StartLine })
	return ranges
}
