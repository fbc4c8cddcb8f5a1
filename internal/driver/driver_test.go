package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"kr.dev/diff"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/cache"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/softcode"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "format", "testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Status == status {
			n++
		}
	}
	return n
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mush"), "")
	writeFile(t, filepath.Join(dir, "b.MU"), "")
	writeFile(t, filepath.Join(dir, "c.txt"), "")
	writeFile(t, filepath.Join(dir, "sub", "d.mush"), "")
	writeFile(t, filepath.Join(dir, ".git", "e.mush"), "")

	got, err := CollectFiles(context.Background(), []string{
		dir,
		filepath.Join(dir, "c.txt"),
		filepath.Join(dir, "a.mush"),
	}, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.mush"),
		filepath.Join(dir, "b.MU"),
		filepath.Join(dir, "c.txt"),
		filepath.Join(dir, "sub", "d.mush"),
	}
	diff.Test(t, t.Errorf, got, want)

	if _, err := CollectFiles(context.Background(), []string{filepath.Join(dir, "missing")}, nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCheckPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.mush"), "think [add(1,2)]\n")
	writeFile(t, filepath.Join(dir, "bad.mush"), "think ]\n@frobnicate me\n")

	sink := &recordingSink{}
	results, err := CheckPaths(context.Background(), []string{dir}, CheckOptions{
		Lint:     lint.DefaultOptions(),
		Jobs:     2,
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	bad, good := results[0], results[1]
	if filepath.Base(bad.Path) != "bad.mush" || filepath.Base(good.Path) != "good.mush" {
		t.Fatalf("results not ordered by path: %s, %s", bad.Path, good.Path)
	}
	if len(good.Diagnostics) != 0 || good.HasErrors() {
		t.Fatalf("unexpected diagnostics for good.mush: %+v", good.Diagnostics)
	}
	if !bad.HasErrors() || len(bad.Diagnostics) != 2 {
		t.Fatalf("unexpected diagnostics for bad.mush: %+v", bad.Diagnostics)
	}
	if bad.Diagnostics[0].Code != diag.LintUnmatchedCloser || bad.Diagnostics[1].Code != diag.LintUnknownCommand {
		t.Fatalf("diagnostics not sorted by position: %+v", bad.Diagnostics)
	}
	if bad.File == nil || bad.File.GetLine(1) != "think ]" {
		t.Fatalf("expected loaded source for bad.mush")
	}

	if sink.count(StatusQueued) != 2 || sink.count(StatusWorking) != 2 {
		t.Fatalf("unexpected events: %+v", sink.events)
	}
	if sink.count(StatusDone) != 1 || sink.count(StatusError) != 1 {
		t.Fatalf("unexpected final events: %+v", sink.events)
	}
}

func TestCheckPathsUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.mush")
	writeFile(t, path, "think ]\n")
	dc, err := cache.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	opts := CheckOptions{Lint: lint.DefaultOptions(), Cache: dc}

	first, err := CheckPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	second, err := CheckPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if first[0].Cached || !second[0].Cached {
		t.Fatalf("expected miss then hit, got %t then %t", first[0].Cached, second[0].Cached)
	}
	diff.Test(t, t.Errorf, second[0].Diagnostics, first[0].Diagnostics)

	opts.Lint.UnknownCommands = false
	third, err := CheckPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if third[0].Cached {
		t.Fatal("changing lint options must invalidate the cache")
	}
}

func TestCacheFingerprintIncludesTables(t *testing.T) {
	opts := CheckOptions{Lint: lint.DefaultOptions(), MaxDiagnostics: 10}
	fp := cacheFingerprint(opts)
	if !strings.HasSuffix(fp, ",tables="+softcode.TablesFingerprint()) {
		t.Fatalf("fingerprint %q does not carry the table fingerprint", fp)
	}
	opts.MaxDiagnostics = 20
	if cacheFingerprint(opts) == fp {
		t.Fatal("the diagnostic cap must change the fingerprint")
	}
}

func TestCheckFilesReportsLoadErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.mush")
	results, err := CheckFiles(context.Background(), []string{missing}, CheckOptions{})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	res := results[0]
	if res.Err == nil || !res.HasErrors() {
		t.Fatalf("expected load error, got %+v", res)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.IOLoadFileError {
		t.Fatalf("expected IO diagnostic, got %+v", res.Diagnostics)
	}
}

func TestCheckPathsErrors(t *testing.T) {
	if _, err := CheckPaths(context.Background(), []string{t.TempDir()}, CheckOptions{}); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mush"), "think\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckPaths(ctx, []string{dir}, CheckOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFormatPathsModes(t *testing.T) {
	source := readFixture(t, "widget.mush")
	pretty := readFixture(t, "widget.pretty.mush")
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.mush")
	writeFile(t, path, source)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("format check: %v", err)
	}
	if !results[0].Changed {
		t.Fatal("expected check mode to report a change")
	}
	if data, _ := os.ReadFile(path); string(data) != source {
		t.Fatal("check mode must not modify the file")
	}

	results, err = FormatPaths(context.Background(), []string{path}, FormatOptions{Stdout: true})
	if err != nil {
		t.Fatalf("format stdout: %v", err)
	}
	diff.Test(t, t.Errorf, string(results[0].Formatted), pretty)

	if _, err := FormatPaths(context.Background(), []string{path}, FormatOptions{}); err != nil {
		t.Fatalf("format in place: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	diff.Test(t, t.Errorf, string(data), pretty)

	results, err = FormatPaths(context.Background(), []string{path}, FormatOptions{Mode: FormatCollapse, Stdout: true})
	if err != nil {
		t.Fatalf("collapse: %v", err)
	}
	diff.Test(t, t.Errorf, string(results[0].Formatted), readFixture(t, "widget.roundtrip.mush"))
}

func TestFormatPathsNormalizesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.mush")
	writeFile(t, path, "@create Widget\r\n")
	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !results[0].Changed {
		t.Fatal("CRLF input must be reported as changed")
	}
}

func TestParseFormatMode(t *testing.T) {
	if m, err := ParseFormatMode("collapse"); err != nil || m != FormatCollapse {
		t.Fatalf("unexpected %v %v", m, err)
	}
	if _, err := ParseFormatMode("tidy"); err == nil || !strings.Contains(err.Error(), "tidy") {
		t.Fatalf("expected error naming the mode, got %v", err)
	}
}
