package lsp

import (
	"encoding/json"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/softcode"
)

func (s *Server) handleSignatureHelp(msg *rpcMessage) error {
	var params signatureHelpParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	result := buildSignatureHelp(text, params.Position)
	if result == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, result)
}

func buildSignatureHelp(text string, pos position) *signatureHelp {
	site, ok := lint.EnclosingCall(linePrefix(text, pos))
	if !ok {
		return nil
	}
	sig, ok := softcode.LookupSignature(site.Name)
	if !ok {
		return nil
	}
	params := make([]parameterInformation, 0, len(sig.Params))
	for _, p := range sig.Params {
		params = append(params, parameterInformation{Label: p})
	}
	return &signatureHelp{
		Signatures: []signatureInformation{{
			Label:         sig.Label,
			Documentation: sig.Documentation,
			Parameters:    params,
		}},
		ActiveSignature: 0,
		ActiveParameter: clampActiveParam(site.ActiveArg, len(params)),
	}
}

func clampActiveParam(idx, count int) int {
	if count <= 0 || idx < 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}
