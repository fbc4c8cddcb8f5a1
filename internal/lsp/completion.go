package lsp

import (
	"encoding/json"
	"sync"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/softcode"
)

const (
	completionItemKindFunction = 3
	completionItemKindKeyword  = 14

	insertTextFormatPlainText = 1
	insertTextFormatSnippet   = 2
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	return s.sendResponse(msg.ID, completionList{IsIncomplete: false, Items: completionItems()})
}

// The item list does not depend on the cursor; clients filter by prefix.
var completionItems = sync.OnceValue(buildCompletionItems)

func buildCompletionItems() []completionItem {
	commands := softcode.CommandNames()
	functions := softcode.FunctionNames()
	items := make([]completionItem, 0, len(commands)+len(functions))
	for _, cmd := range commands {
		item := completionItem{
			Label:  cmd,
			Kind:   completionItemKindKeyword,
			Detail: "PennMUSH Command",
		}
		if doc, ok := softcode.CommandDoc(cmd); ok {
			item.Documentation = &markupContent{Kind: "markdown", Value: doc}
		}
		items = append(items, item)
	}
	for _, fn := range functions {
		item := completionItem{
			Label:            fn,
			Kind:             completionItemKindFunction,
			Detail:           "PennMUSH Function",
			InsertText:       fn,
			InsertTextFormat: insertTextFormatPlainText,
		}
		if doc, ok := softcode.FunctionDoc(fn); ok {
			item.Documentation = &markupContent{Kind: "markdown", Value: doc}
		}
		if snippet, ok := softcode.Snippet(fn); ok {
			item.InsertText = snippet
			item.InsertTextFormat = insertTextFormatSnippet
		}
		items = append(items, item)
	}
	return items
}
