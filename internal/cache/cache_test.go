package cache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
)

func samplePayload() *Payload {
	return &Payload{
		Path: "widget.mush",
		Diagnostics: []diag.Diagnostic{
			diag.NewError(diag.LintUnmatchedCloser, diag.Range{Line: 1, StartCol: 4, EndCol: 5}, "Unmatched ']'"),
		},
	}
}

func TestPutGet(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := KeyFor([]byte("think ]"), "f=true")
	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("expected miss, got ok=%t err=%v", ok, err)
	}
	if err := c.Put(key, samplePayload()); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%t err=%v", ok, err)
	}
	if got.Path != "widget.mush" || len(got.Diagnostics) != 1 {
		t.Fatalf("unexpected payload %+v", got)
	}
	if d := got.Diagnostics[0]; d.Code != diag.LintUnmatchedCloser || d.Range.StartCol != 4 || d.Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic %+v", d)
	}

	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != key.String()+".mp" {
		t.Fatalf("expected a single entry without temp files, got %v", entries)
	}
}

func TestKeyDependsOnOptions(t *testing.T) {
	a := KeyFor([]byte("x"), "f=true")
	b := KeyFor([]byte("x"), "f=false")
	if a == b {
		t.Fatal("keys must differ when options differ")
	}
	if a != KeyFor([]byte("x"), "f=true") {
		t.Fatal("keys must be deterministic")
	}
}

func TestSchemaMismatchIsMiss(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := KeyFor([]byte("x"), "")
	data, err := msgpack.Marshal(&Payload{Schema: schemaVersion + 1, Path: "old"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(c.Dir(), key.String()+".mp"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("expected miss on schema mismatch, got ok=%t err=%v", ok, err)
	}

	if err := os.WriteFile(filepath.Join(c.Dir(), key.String()+".mp"), []byte{0xc1}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("expected miss on garbage, got ok=%t err=%v", ok, err)
	}
}

func TestConcurrentPut(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := KeyFor([]byte("shared"), "")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Put(key, samplePayload()); err != nil {
				t.Errorf("put: %v", err)
			}
		}()
	}
	wg.Wait()
	if _, ok, err := c.Get(key); !ok || err != nil {
		t.Fatalf("expected hit, got ok=%t err=%v", ok, err)
	}
}

func TestDropAllAndNilCache(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := KeyFor([]byte("x"), "")
	if err := c.Put(key, samplePayload()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Fatal("expected miss after DropAll")
	}

	var nilCache *DiskCache
	if err := nilCache.Put(key, samplePayload()); err != nil {
		t.Fatalf("nil put: %v", err)
	}
	if _, ok, err := nilCache.Get(key); ok || err != nil {
		t.Fatal("nil cache must always miss")
	}
}

func TestOpenUsesXDGCacheHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	c, err := Open("pennmush")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if want := filepath.Join(base, "pennmush", "lint"); c.Dir() != want {
		t.Fatalf("dir = %q, want %q", c.Dir(), want)
	}
}
