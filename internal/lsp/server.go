package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/format"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

const (
	cmdPrettify = "pennmush.prettifySoftcode"
	cmdCollapse = "pennmush.collapseSoftcode"
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Debounce delays diagnostics after an edit. Zero scans inside the handler.
	Debounce       time.Duration
	MaxDiagnostics int
	Lint           lint.Options
	Format         format.Options
	Trace          bool
	// Log receives trace and error output; defaults to os.Stderr.
	Log io.Writer
}

// Server handles stdio JSON-RPC for the PennMUSH language server.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	logOut io.Writer
	sendMu sync.Mutex

	// mu guards everything below
	mu                sync.Mutex
	docs              map[string]*document
	workspaceRoot     string
	shutdownRequested bool
	debounce          time.Duration
	analysisSeq       uint64
	maxDiagnostics    int
	lintOpts          lint.Options
	formatOpts        format.Options
	traceLSP          bool

	requestSeq atomic.Int64
	baseCtx    context.Context
}

// document is the server-side state of one open editor buffer.
type document struct {
	text    string
	version int
	// seq is the newest scan scheduled for this document; older scans drop
	// their results.
	seq       uint64
	timer     *time.Timer
	published bool
}

func (d *document) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

type handlerFunc func(*Server, *rpcMessage) error

var handlers = map[string]handlerFunc{
	"initialize":                       (*Server).handleInitialize,
	"initialized":                      nil,
	"shutdown":                         (*Server).handleShutdown,
	"exit":                             (*Server).handleExit,
	"workspace/didChangeConfiguration": (*Server).handleDidChangeConfiguration,
	"workspace/executeCommand":         (*Server).handleExecuteCommand,
	"textDocument/didOpen":             (*Server).handleDidOpen,
	"textDocument/didChange":           (*Server).handleDidChange,
	"textDocument/didSave":             (*Server).handleDidSave,
	"textDocument/didClose":            (*Server).handleDidClose,
	"textDocument/hover":               (*Server).handleHover,
	"textDocument/completion":          (*Server).handleCompletion,
	"textDocument/signatureHelp":       (*Server).handleSignatureHelp,
	"textDocument/foldingRange":        (*Server).handleFoldingRange,
	"textDocument/formatting":          (*Server).handleFormatting,
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	logOut := opts.Log
	if logOut == nil {
		logOut = os.Stderr
	}
	return &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		logOut:         logOut,
		docs:           make(map[string]*document),
		debounce:       max(opts.Debounce, 0),
		maxDiagnostics: maxDiagnostics,
		lintOpts:       opts.Lint,
		formatOpts:     opts.Format,
		traceLSP:       opts.Trace,
		baseCtx:        context.Background(),
	}
}

// Run serves LSP requests until exit or EOF.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	defer s.stopTimers()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	if msg.Method == "" {
		// reply to one of our requests (workspace/applyEdit)
		if msg.Error != nil {
			s.logf("client error: %d %s", msg.Error.Code, msg.Error.Message)
		}
		return nil
	}
	if s.currentTrace() {
		s.logf("recv: method=%s", msg.Method)
	}
	handler, known := handlers[msg.Method]
	switch {
	case handler != nil:
		return handler(s, msg)
	case known, len(msg.ID) == 0:
		// notifications nobody handles are dropped
		return nil
	default:
		return s.sendError(msg.ID, codeMethodNotFound, "method not found")
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	root := workspaceRootOf(params)
	s.mu.Lock()
	s.workspaceRoot = root
	trace := s.traceLSP
	s.mu.Unlock()
	if trace {
		s.logf("initialize: root=%q", root)
	}
	if len(params.InitializationOptions) > 0 {
		s.applySettings(params.InitializationOptions)
	}
	return s.sendResponse(msg.ID, initializeResult{
		Capabilities: capabilities(),
		ServerInfo:   &serverInfo{Name: "pennmush", Version: version.Version},
	})
}

// workspaceRootOf picks rootUri, then rootPath, then the first workspace
// folder. The result is absolute when it can be made so.
func workspaceRootOf(params initializeParams) string {
	var root string
	switch {
	case params.RootURI != "":
		root = uriToPath(params.RootURI)
	case params.RootPath != "":
		root = params.RootPath
	case len(params.WorkspaceFolders) > 0:
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	if root == "" {
		return ""
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

func capabilities() serverCapabilities {
	return serverCapabilities{
		TextDocumentSync: textDocumentSyncOptions{
			OpenClose: true,
			Change:    2, // incremental
			Save:      saveOptions{IncludeText: true},
		},
		HoverProvider:              true,
		CompletionProvider:         &completionOptions{TriggerCharacters: []string{"@", "(", ":"}},
		SignatureHelpProvider:      &signatureHelpOptions{TriggerCharacters: []string{"(", ","}},
		FoldingRangeProvider:       true,
		DocumentFormattingProvider: true,
		ExecuteCommandProvider:     &executeCommandOptions{Commands: []string{cmdPrettify, cmdCollapse}},
	}
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.stopTimers()
	s.clearPublishedDiagnostics()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleExit(*rpcMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdownRequested {
		return ErrExit
	}
	return ErrExitWithoutShutdown
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	if prev := s.docs[uri]; prev != nil {
		prev.stopTimer()
	}
	s.docs[uri] = &document{text: params.TextDocument.Text, version: params.TextDocument.Version}
	s.mu.Unlock()
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil {
		// change before open: start from an empty buffer
		doc = &document{}
		s.docs[uri] = doc
	}
	doc.text = applyChanges(doc.text, params.ContentChanges)
	doc.version = params.TextDocument.Version
	trace := s.traceLSP
	s.mu.Unlock()
	if trace {
		s.logf("didChange: uri=%s version=%d changes=%d", uri, params.TextDocument.Version, len(params.ContentChanges))
	}
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc := s.docs[uri]
	if doc != nil && params.Text != nil {
		doc.text = *params.Text
	}
	s.mu.Unlock()
	if doc != nil {
		s.scheduleDiagnostics(uri)
	}
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	if doc := s.docs[uri]; doc != nil {
		doc.stopTimer()
		delete(s.docs, uri)
	}
	s.mu.Unlock()
	if err := s.sendPublish(uri, nil, nil); err != nil {
		s.logf("failed to clear diagnostics: %v", err)
	}
	return nil
}

// document returns the current text of an open buffer.
func (s *Server) document(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[canonicalURI(uri)]
	if !ok {
		return "", false
	}
	return doc.text, true
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	return s.send(rpcResult{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	return s.send(rpcFailure{JSONRPC: "2.0", ID: id, Error: rpcError{Code: code, Message: message}})
}

// sendRequest issues a server-to-client request. Replies are not awaited.
func (s *Server) sendRequest(method string, params any) error {
	id := s.requestSeq.Add(1)
	return s.send(rpcOutgoing{
		JSONRPC: "2.0",
		ID:      fmt.Sprintf("pennmush-%d", id),
		Method:  method,
		Params:  params,
	})
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	return s.send(rpcOutgoing{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  publishDiagnosticsParams{URI: uri, Version: version, Diagnostics: list},
	})
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.logOut, "lsp: "+format+"\n", args...)
}
