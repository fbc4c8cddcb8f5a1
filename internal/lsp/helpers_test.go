package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

func newTestServer(t *testing.T, opts ServerOptions) (*Server, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	if opts.Log == nil {
		opts.Log = io.Discard
	}
	server := NewServer(bytes.NewReader(nil), &out, opts)
	t.Cleanup(server.stopTimers)
	return server, &out
}

func mustParams(t *testing.T, v any) json.RawMessage {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	return payload
}

func openDoc(t *testing.T, server *Server, uri, text string) {
	t.Helper()
	params := didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, LanguageID: "pennmush", Version: 1, Text: text},
	}
	if err := server.handleDidOpen(&rpcMessage{Method: "textDocument/didOpen", Params: mustParams(t, params)}); err != nil {
		t.Fatalf("didOpen: %v", err)
	}
}

// drain decodes every framed message written so far and resets the buffer.
func drain(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	out.Reset()
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			t.Fatalf("read message: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func decodePublish(t *testing.T, msg rpcMessage) publishDiagnosticsParams {
	t.Helper()
	if msg.Method != "textDocument/publishDiagnostics" {
		t.Fatalf("expected publishDiagnostics, got %q", msg.Method)
	}
	var params publishDiagnosticsParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	return params
}
