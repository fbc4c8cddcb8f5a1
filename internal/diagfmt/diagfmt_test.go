package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"kr.dev/diff"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/source"
)

func sampleReports() []FileReport {
	file := source.Virtual("/home/user/game/widget.mush", "think ]\n@frobnicate me\n")
	return []FileReport{{
		Path: file.Path,
		File: file,
		Diagnostics: []diag.Diagnostic{
			diag.NewError(diag.LintUnmatchedCloser, diag.Range{Line: 0, StartCol: 6, EndCol: 7}, "Unmatched ']'"),
			diag.NewWarning(diag.LintUnknownCommand, diag.Range{Line: 1, StartCol: 0, EndCol: 11}, "Unknown command '@frobnicate'"),
		},
	}}
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleReports(), PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	want := strings.Join([]string{
		"widget.mush:1:7: ERROR LNT1001: Unmatched ']'",
		"   | think ]",
		"   |       ^",
		"widget.mush:2:1: WARNING LNT3001: Unknown command '@frobnicate'",
		"   | @frobnicate me",
		"   | ^~~~~~~~~~~",
		"",
	}, "\n")
	diff.Test(t, t.Errorf, buf.String(), want)
}

func TestPrettyColorAndNoSource(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleReports(), PrettyOpts{Color: true, NoSource: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", out)
	}
	if strings.Contains(out, "think ]") {
		t.Fatalf("source lines must be suppressed, got %q", out)
	}
}

func TestPathModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/game/widget.mush:1:7"},
		{name: "Relative path", mode: PathModeRelative, contains: "\nwidget.mush:2:1"},
		{name: "Basename only", mode: PathModeBasename, contains: "widget.mush:1:7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/game"}
			if err := Pretty(&buf, sampleReports(), opts); err != nil {
				t.Fatalf("pretty: %v", err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Fatalf("expected %q in:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestUnderlineWideRunes(t *testing.T) {
	line := "\tthink 世界]"
	rng := diag.Range{StartCol: uint32(len("\tthink 世界")), EndCol: uint32(len(line))}
	if got, want := underline(line, rng), "\t      "+"    "+"^"; got != want {
		t.Fatalf("underline = %q, want %q", got, want)
	}
	wide := diag.Range{StartCol: uint32(len("\tthink ")), EndCol: uint32(len("\tthink 世界"))}
	if got := underline(line, wide); !strings.HasSuffix(got, "^~~~") {
		t.Fatalf("expected 4-cell underline, got %q", got)
	}
	if got := underline("ab", diag.Range{StartCol: 9, EndCol: 12}); got != "  ^" {
		t.Fatalf("expected clamp to line end, got %q", got)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleReports(), JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("unexpected count %d", out.Count)
	}
	first := out.Diagnostics[0]
	want := DiagnosticJSON{
		Severity: "ERROR",
		Code:     "LNT1001",
		Title:    diag.LintUnmatchedCloser.Title(),
		Message:  "Unmatched ']'",
		Location: LocationJSON{File: "widget.mush", Line: 1, StartCol: 7, EndCol: 8},
	}
	diff.Test(t, t.Errorf, first, want)

	limited := BuildDiagnosticsOutput(sampleReports(), JSONOpts{Max: 1})
	if limited.Count != 1 {
		t.Fatalf("expected Max to truncate, got %d", limited.Count)
	}
	empty := BuildDiagnosticsOutput(nil, JSONOpts{})
	if empty.Diagnostics == nil || empty.Count != 0 {
		t.Fatalf("expected empty non-nil list, got %+v", empty)
	}
}

func TestShort(t *testing.T) {
	reports := append(sampleReports(), FileReport{Path: "clean.mush"})
	var buf bytes.Buffer
	if err := Short(&buf, reports, PathModeBasename, ""); err != nil {
		t.Fatalf("short: %v", err)
	}
	want := "error LNT1001 widget.mush:1:7 Unmatched ']'\n" +
		"warning LNT3001 widget.mush:2:1 Unknown command '@frobnicate'\n"
	diff.Test(t, t.Errorf, buf.String(), want)
}

func TestSummary(t *testing.T) {
	if got := Summary(sampleReports()); got != "1 error, 1 warning in 1 file" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := Summary([]FileReport{{Path: "a"}, {Path: "b"}}); got != "no problems in 2 files" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestParsePathMode(t *testing.T) {
	for _, s := range []string{"auto", "absolute", "relative", "basename"} {
		m, ok := ParsePathMode(s)
		if !ok || m.String() != s {
			t.Errorf("ParsePathMode(%q) = %v, %t", s, m, ok)
		}
	}
	if _, ok := ParsePathMode("weird"); ok {
		t.Fatal("expected failure for unknown mode")
	}
}
