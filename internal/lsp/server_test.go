package lsp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
)

const testURI = "file:///tmp/widget.mush"

func TestPublishOnOpenIsSynchronous(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{Lint: lint.DefaultOptions()})
	openDoc(t, server, testURI, "think ]\n")

	msgs := drain(t, out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	params := decodePublish(t, msgs[0])
	if params.URI != testURI {
		t.Fatalf("unexpected uri %q", params.URI)
	}
	if params.Version == nil || *params.Version != 1 {
		t.Fatalf("expected version 1, got %v", params.Version)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", params.Diagnostics)
	}
	got := params.Diagnostics[0]
	if got.Message != "Unmatched ']'" || got.Severity != 1 || got.Code != "LNT1001" || got.Source != "pennmush" {
		t.Fatalf("unexpected diagnostic %+v", got)
	}
	if got.Range.Start != (position{Line: 0, Character: 6}) || got.Range.End != (position{Line: 0, Character: 7}) {
		t.Fatalf("unexpected range %+v", got.Range)
	}
}

func TestCleanDocumentPublishesEmptyList(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{Lint: lint.DefaultOptions()})
	openDoc(t, server, testURI, "think [add(1,2)]\n")
	params := decodePublish(t, drain(t, out)[0])
	if params.Diagnostics == nil || len(params.Diagnostics) != 0 {
		t.Fatalf("expected an empty, non-null list, got %+v", params.Diagnostics)
	}
}

func TestDiagnosticColumnsAreUTF16(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{Lint: lint.DefaultOptions()})
	openDoc(t, server, testURI, "think 😀]")
	params := decodePublish(t, drain(t, out)[0])
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", params.Diagnostics)
	}
	if got := params.Diagnostics[0].Range.Start.Character; got != 8 {
		t.Fatalf("expected UTF-16 column 8, got %d", got)
	}
}

func TestDidChangeRescans(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{Lint: lint.DefaultOptions()})
	openDoc(t, server, testURI, "think ]")
	drain(t, out)

	change := didChangeTextDocumentParams{
		TextDocument: versionedTextDocumentIdentifier{URI: testURI, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{
			Range: &lspRange{Start: position{Line: 0, Character: 6}, End: position{Line: 0, Character: 7}},
			Text:  "[add(1,2)]",
		}},
	}
	if err := server.handleDidChange(&rpcMessage{Method: "textDocument/didChange", Params: mustParams(t, change)}); err != nil {
		t.Fatalf("didChange: %v", err)
	}
	params := decodePublish(t, drain(t, out)[0])
	if *params.Version != 2 || len(params.Diagnostics) != 0 {
		t.Fatalf("unexpected publish %+v", params)
	}
	if text, _ := server.document(testURI); text != "think [add(1,2)]" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{Lint: lint.DefaultOptions()})
	openDoc(t, server, testURI, "think ]")
	drain(t, out)

	closeParams := didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: testURI}}
	if err := server.handleDidClose(&rpcMessage{Method: "textDocument/didClose", Params: mustParams(t, closeParams)}); err != nil {
		t.Fatalf("didClose: %v", err)
	}
	msgs := drain(t, out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	params := decodePublish(t, msgs[0])
	if len(params.Diagnostics) != 0 || params.Version != nil {
		t.Fatalf("expected an empty unversioned publish, got %+v", params)
	}
	if _, ok := server.document(testURI); ok {
		t.Fatal("document must be forgotten after close")
	}
}

func TestDebouncedScanDropsStaleResults(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{Debounce: time.Hour, Lint: lint.DefaultOptions()})
	openDoc(t, server, testURI, "think ]")
	if got := drain(t, out); len(got) != 0 {
		t.Fatalf("expected no synchronous publish, got %d messages", len(got))
	}

	server.mu.Lock()
	stale := server.docs[testURI].seq
	server.mu.Unlock()

	server.scheduleDiagnostics(testURI)
	server.mu.Lock()
	current := server.docs[testURI].seq
	server.mu.Unlock()
	server.stopTimers()

	server.runDiagnostics(testURI, stale)
	if got := drain(t, out); len(got) != 0 {
		t.Fatalf("stale scan must not publish, got %d messages", len(got))
	}
	server.runDiagnostics(testURI, current)
	msgs := drain(t, out)
	if len(msgs) != 1 || len(decodePublish(t, msgs[0]).Diagnostics) != 1 {
		t.Fatalf("expected the current scan to publish one diagnostic, got %+v", msgs)
	}
}

func TestConfigurationChangeRescansOpenDocuments(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{Lint: lint.DefaultOptions()})
	openDoc(t, server, testURI, "@frobnicate me")
	if got := decodePublish(t, drain(t, out)[0]).Diagnostics; len(got) != 1 {
		t.Fatalf("expected unknown command warning, got %+v", got)
	}

	settings := json.RawMessage(`{"pennmush":{"diagnostics":{"unknownCommands":false}}}`)
	params := didChangeConfigurationParams{Settings: settings}
	if err := server.handleDidChangeConfiguration(&rpcMessage{Params: mustParams(t, params)}); err != nil {
		t.Fatalf("didChangeConfiguration: %v", err)
	}
	if got := decodePublish(t, drain(t, out)[0]).Diagnostics; len(got) != 0 {
		t.Fatalf("expected no diagnostics after disabling the rule, got %+v", got)
	}
	if server.currentLintOptions().UnknownCommands {
		t.Fatal("setting was not applied")
	}

	// indent width alone does not require a rescan
	if server.applySettings(json.RawMessage(`{"pennmush":{"format":{"indentWidth":4}}}`)) {
		t.Fatal("format settings must not trigger diagnostics")
	}
	if server.currentFormatOptions().IndentWidth != 4 {
		t.Fatalf("unexpected indent width %d", server.currentFormatOptions().IndentWidth)
	}
}

func TestRunLifecycle(t *testing.T) {
	var in bytes.Buffer
	for _, m := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"textDocument/references","params":{}}`,
		`{"jsonrpc":"2.0","id":3,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	} {
		if err := writeMessage(&in, []byte(m)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	var out bytes.Buffer
	var logs bytes.Buffer
	server := NewServer(&in, &out, ServerOptions{Log: &logs})
	err := server.Run(context.Background())
	if !errors.Is(err, ErrExit) {
		t.Fatalf("expected ErrExit, got %v", err)
	}

	msgs := drain(t, &out)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(msgs))
	}
	var init initializeResult
	if err := json.Unmarshal(msgs[0].Result, &init); err != nil {
		t.Fatalf("decode initialize: %v", err)
	}
	caps := init.Capabilities
	if !caps.HoverProvider || !caps.FoldingRangeProvider || !caps.DocumentFormattingProvider {
		t.Fatalf("missing capabilities: %+v", caps)
	}
	if caps.CompletionProvider == nil || strings.Join(caps.CompletionProvider.TriggerCharacters, "") != "@(:" {
		t.Fatalf("unexpected completion triggers: %+v", caps.CompletionProvider)
	}
	if caps.SignatureHelpProvider == nil || strings.Join(caps.SignatureHelpProvider.TriggerCharacters, "") != "(," {
		t.Fatalf("unexpected signature triggers: %+v", caps.SignatureHelpProvider)
	}
	if caps.ExecuteCommandProvider == nil || len(caps.ExecuteCommandProvider.Commands) != 2 {
		t.Fatalf("unexpected commands: %+v", caps.ExecuteCommandProvider)
	}
	if msgs[1].Error == nil || msgs[1].Error.Code != codeMethodNotFound {
		t.Fatalf("expected method not found, got %+v", msgs[1])
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	var in bytes.Buffer
	if err := writeMessage(&in, []byte(`{"jsonrpc":"2.0","method":"exit"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	server := NewServer(&in, &bytes.Buffer{}, ServerOptions{Log: &bytes.Buffer{}})
	if err := server.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("expected ErrExitWithoutShutdown, got %v", err)
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	server := NewServer(strings.NewReader(""), &bytes.Buffer{}, ServerOptions{})
	if err := server.Run(context.Background()); err != nil {
		t.Fatalf("expected clean EOF, got %v", err)
	}
}
