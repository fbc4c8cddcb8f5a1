package lsp

import (
	"encoding/json"
	"testing"
)

func TestSignatureHelpParenForm(t *testing.T) {
	help := buildSignatureHelp("think if(%0, yes", position{Line: 0, Character: 16})
	if help == nil {
		t.Fatal("expected signature help")
	}
	if help.Signatures[0].Label != "if(<condition>, <true expression>[, <false expression>])" {
		t.Fatalf("unexpected label %q", help.Signatures[0].Label)
	}
	if len(help.Signatures[0].Parameters) != 3 || help.ActiveParameter != 1 {
		t.Fatalf("unexpected parameters %+v active=%d", help.Signatures[0].Parameters, help.ActiveParameter)
	}
}

func TestSignatureHelpInnermostCall(t *testing.T) {
	text := "think switch(%0, [add(1, 2"
	help := buildSignatureHelp(text, position{Line: 0, Character: len(text)})
	if help == nil || help.Signatures[0].Label[:4] != "add(" {
		t.Fatalf("expected add signature, got %+v", help)
	}
	if help.ActiveParameter != 1 {
		t.Fatalf("expected second parameter, got %d", help.ActiveParameter)
	}
}

func TestSignatureHelpBraceFormIgnoresCase(t *testing.T) {
	text := "think {IF:%0"
	help := buildSignatureHelp(text, position{Line: 0, Character: len(text)})
	if help == nil || help.ActiveParameter != 0 {
		t.Fatalf("expected if signature at first parameter, got %+v", help)
	}
}

func TestSignatureHelpClampsActiveParameter(t *testing.T) {
	text := "think add(1,2,3,4,5"
	help := buildSignatureHelp(text, position{Line: 0, Character: len(text)})
	if help == nil || help.ActiveParameter != len(help.Signatures[0].Parameters)-1 {
		t.Fatalf("expected clamped parameter, got %+v", help)
	}
	if clampActiveParam(-1, 3) != 0 || clampActiveParam(2, 0) != 0 {
		t.Fatal("unexpected clamp result")
	}
}

func TestSignatureHelpNoCall(t *testing.T) {
	for _, text := range []string{"think hello", "think frobnicate(1", "think add(1,2) "} {
		if help := buildSignatureHelp(text, position{Line: 0, Character: len(text)}); help != nil {
			t.Errorf("%q: expected no help, got %+v", text, help)
		}
	}
}

func TestSignatureHelpHandlerReturnsNull(t *testing.T) {
	server, out := newTestServer(t, ServerOptions{})
	params := signatureHelpParams{TextDocument: textDocumentIdentifier{URI: testURI}}
	if err := server.handleSignatureHelp(&rpcMessage{ID: json.RawMessage("3"), Params: mustParams(t, params)}); err != nil {
		t.Fatalf("signatureHelp: %v", err)
	}
	if got := string(drain(t, out)[0].Result); got != "null" {
		t.Fatalf("expected null result for unknown document, got %s", got)
	}
}
