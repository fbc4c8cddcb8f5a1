package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/cache"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/softcode"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/source"
)

// CheckOptions configures CheckPaths.
type CheckOptions struct {
	Lint           lint.Options
	Extensions     []string
	Jobs           int
	MaxDiagnostics int
	// Cache is optional; a nil cache disables caching.
	Cache    *cache.DiskCache
	Progress ProgressSink
}

// CheckResult captures the outcome for a single file.
type CheckResult struct {
	Path        string
	File        *source.File
	Diagnostics []diag.Diagnostic
	// Err is set when the file could not be read. Diagnostics then holds a
	// single IO diagnostic.
	Err    error
	Cached bool
}

// HasErrors reports whether the file failed to load or has error diagnostics.
func (r CheckResult) HasErrors() bool {
	if r.Err != nil {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// CheckPaths scans every softcode file under paths in parallel. Results are
// ordered by path. Only cancellation and collection failures are returned as
// errors; per-file problems are reported in the results.
func CheckPaths(ctx context.Context, paths []string, opts CheckOptions) ([]CheckResult, error) {
	files, err := CollectFiles(ctx, paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return CheckFiles(ctx, files, opts)
}

// CheckFiles scans an already collected file list.
func CheckFiles(ctx context.Context, files []string, opts CheckOptions) ([]CheckResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]CheckResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(opts.Progress, Event{File: path, Status: StatusWorking})
			started := time.Now()
			results[i] = checkFile(path, opts)
			res := &results[i]
			status := StatusDone
			if res.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{
				File:     path,
				Status:   status,
				Cached:   res.Cached,
				Problems: len(res.Diagnostics),
				Err:      res.Err,
				Elapsed:  time.Since(started),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// cacheFingerprint ties cached results to the options and to the name tables
// they were computed against.
func cacheFingerprint(opts CheckOptions) string {
	return fmt.Sprintf("%s,max=%d,tables=%s", opts.Lint.Fingerprint(), opts.MaxDiagnostics, softcode.TablesFingerprint())
}

func checkFile(path string, opts CheckOptions) CheckResult {
	res := CheckResult{Path: path}
	file, err := source.Load(path)
	if err != nil {
		res.Err = err
		res.Diagnostics = []diag.Diagnostic{
			diag.NewError(diag.IOLoadFileError, diag.Range{}, err.Error()),
		}
		return res
	}
	res.File = file

	key := cache.KeyFor(file.Content, cacheFingerprint(opts))
	if payload, ok, err := opts.Cache.Get(key); err == nil && ok {
		res.Diagnostics = payload.Diagnostics
		res.Cached = true
		return res
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	lint.ScanTo(file.Text(), opts.Lint, diag.BagReporter{Bag: bag})
	bag.Sort()
	res.Diagnostics = bag.Items()

	// a failed write only costs a rescan next time
	_ = opts.Cache.Put(key, &cache.Payload{Path: path, Hash: file.Hash, Diagnostics: res.Diagnostics})
	return res
}
