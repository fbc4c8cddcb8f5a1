package lsp

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormattingCollapsesBlocks(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{})
	openDoc(t, server, testURI, "&A obj=\n  [x]\n  [y]\n&B obj=done\n")
	drain(t, out)

	params := documentFormattingParams{TextDocument: textDocumentIdentifier{URI: testURI}}
	if err := server.handleFormatting(&rpcMessage{ID: json.RawMessage("1"), Params: mustParams(t, params)}); err != nil {
		t.Fatalf("formatting: %v", err)
	}
	var edits []textEdit
	if err := json.Unmarshal(drain(t, out)[0].Result, &edits); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected only the changed block, got %+v", edits)
	}
	e := edits[0]
	if e.NewText != "&A obj=[x][y]\n" {
		t.Fatalf("unexpected new text %q", e.NewText)
	}
	if e.Range.Start != (position{Line: 0}) || e.Range.End != (position{Line: 3}) {
		t.Fatalf("unexpected range %+v", e.Range)
	}
}

func TestExecutePrettifySendsWorkspaceEdit(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{})
	openDoc(t, server, testURI, "&COUNT Widget=[add(1,[mul(2,3)])] items\n")
	drain(t, out)

	params := executeCommandParams{
		Command:   cmdPrettify,
		Arguments: []json.RawMessage{json.RawMessage(`{"uri":"` + testURI + `"}`)},
	}
	if err := server.handleExecuteCommand(&rpcMessage{ID: json.RawMessage("9"), Params: mustParams(t, params)}); err != nil {
		t.Fatalf("executeCommand: %v", err)
	}
	msgs := drain(t, out)
	if len(msgs) != 2 {
		t.Fatalf("expected applyEdit request and response, got %d messages", len(msgs))
	}
	if msgs[0].Method != "workspace/applyEdit" || !strings.HasPrefix(string(msgs[0].ID), `"pennmush-`) {
		t.Fatalf("unexpected request %+v", msgs[0])
	}
	var apply applyWorkspaceEditParams
	if err := json.Unmarshal(msgs[0].Params, &apply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	edits := apply.Edit.Changes[testURI]
	if len(edits) != 1 || !strings.HasPrefix(edits[0].NewText, "&COUNT Widget=\n    [add(1,\n") {
		t.Fatalf("unexpected edits %+v", edits)
	}
	if string(msgs[1].Result) != "null" {
		t.Fatalf("expected null response, got %s", msgs[1].Result)
	}
}

func TestExecuteCommandErrors(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{})
	cases := []executeCommandParams{
		{Command: "pennmush.unknown"},
		{Command: cmdCollapse},
		{Command: cmdCollapse, Arguments: []json.RawMessage{json.RawMessage(`"file:///nope.mush"`)}},
	}
	for _, params := range cases {
		if err := server.handleExecuteCommand(&rpcMessage{ID: json.RawMessage("1"), Params: mustParams(t, params)}); err != nil {
			t.Fatalf("executeCommand: %v", err)
		}
		msgs := drain(t, out)
		if len(msgs) != 1 || msgs[0].Error == nil || msgs[0].Error.Code != codeInvalidParams {
			t.Fatalf("%+v: expected invalid params, got %+v", params, msgs)
		}
	}
}

func TestCommandTargetURI(t *testing.T) {
	if got := commandTargetURI([]json.RawMessage{json.RawMessage(`"untitled:1"`)}); got != "untitled:1" {
		t.Fatalf("unexpected uri %q", got)
	}
	if got := commandTargetURI([]json.RawMessage{json.RawMessage(`42`)}); got != "" {
		t.Fatalf("expected empty uri, got %q", got)
	}
}
