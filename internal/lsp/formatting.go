package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/format"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
)

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	edits, err := changedEdits(text, format.Collapse(text))
	if err != nil {
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	return s.sendResponse(msg.ID, textEditsFor(lint.SplitLines(text), edits))
}

// changedEdits validates edits against text and drops the ones that would not
// change anything.
func changedEdits(text string, edits []format.Edit) ([]format.Edit, error) {
	if _, err := format.Apply(text, edits); err != nil {
		return nil, err
	}
	out := make([]format.Edit, 0, len(edits))
	for _, e := range edits {
		if same, _ := format.Apply(text, []format.Edit{e}); same == text {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Server) handleExecuteCommand(msg *rpcMessage) error {
	var params executeCommandParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	if params.Command != cmdPrettify && params.Command != cmdCollapse {
		return s.sendError(msg.ID, codeInvalidParams, fmt.Sprintf("unknown command %q", params.Command))
	}
	uri := commandTargetURI(params.Arguments)
	if uri == "" {
		return s.sendError(msg.ID, codeInvalidParams, "missing document uri argument")
	}
	uri = canonicalURI(uri)
	text, ok := s.document(uri)
	if !ok {
		return s.sendError(msg.ID, codeInvalidParams, "document is not open")
	}

	var edits []format.Edit
	label := "Collapse PennMUSH softcode"
	if params.Command == cmdPrettify {
		edits = format.Prettify(text, s.currentFormatOptions())
		label = "Prettify PennMUSH softcode"
	} else {
		edits = format.Collapse(text)
	}
	edits, err := changedEdits(text, edits)
	if err != nil {
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	if len(edits) > 0 {
		apply := applyWorkspaceEditParams{
			Label: label,
			Edit: workspaceEdit{Changes: map[string][]textEdit{
				uri: textEditsFor(lint.SplitLines(text), edits),
			}},
		}
		if err := s.sendRequest("workspace/applyEdit", apply); err != nil {
			return err
		}
	}
	return s.sendResponse(msg.ID, nil)
}

// commandTargetURI accepts either a bare URI string or an object with a "uri"
// field as the first argument.
func commandTargetURI(args []json.RawMessage) string {
	if len(args) == 0 {
		return ""
	}
	var uri string
	if err := json.Unmarshal(args[0], &uri); err == nil {
		return uri
	}
	var doc textDocumentIdentifier
	if err := json.Unmarshal(args[0], &doc); err == nil {
		return doc.URI
	}
	return ""
}
