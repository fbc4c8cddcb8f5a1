package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/cache"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diagfmt"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/driver"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Report bracket, token and name problems in softcode files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0 = from config, then GOMAXPROCS)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before checking")
	checkCmd.Flags().Bool("timings", false, "print phase timings to stderr")
	checkCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("no-source", false, "omit source lines from pretty output")
	checkCmd.Flags().String("fail-on", "error", "exit non-zero at this severity or above (error|warning|info)")
	checkCmd.Flags().StringSlice("ext", nil, "file extensions to scan in directories (default from config)")
}

type checkFlags struct {
	format     string
	jobs       int
	ui         toggle
	useCache   bool
	clearCache bool
	timings    bool
	pathMode   diagfmt.PathMode
	noSource   bool
	exts       []string
	failOn     diag.Severity
	quiet      bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error

	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	f.format = strings.ToLower(f.format)
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("check: unsupported output format %q", f.format)
	}

	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.jobs < 0 {
		return f, fmt.Errorf("check: --jobs must be >= 0")
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = parseToggle("ui", uiValue); err != nil {
		return f, err
	}

	if f.useCache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.clearCache, err = cmd.Flags().GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if f.timings, err = cmd.Flags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}

	pathValue, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if f.pathMode, ok = diagfmt.ParsePathMode(pathValue); !ok {
		return f, fmt.Errorf("check: invalid --path-mode %q", pathValue)
	}

	if f.noSource, err = cmd.Flags().GetBool("no-source"); err != nil {
		return f, fmt.Errorf("failed to get no-source flag: %w", err)
	}
	failValue, err := cmd.Flags().GetString("fail-on")
	if err != nil {
		return f, fmt.Errorf("failed to get fail-on flag: %w", err)
	}
	if f.failOn, err = diag.ParseSeverity(failValue); err != nil {
		return f, fmt.Errorf("check: --fail-on: %w", err)
	}
	if f.exts, err = cmd.Flags().GetStringSlice("ext"); err != nil {
		return f, fmt.Errorf("failed to get ext flag: %w", err)
	}
	if f.quiet, err = quietFlag(cmd); err != nil {
		return f, err
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "check: %v\n", stopErr)
		}
	}()

	timer := observ.NewTimer()

	opts := driver.CheckOptions{
		Lint:           cfg.LintOptions(),
		Extensions:     cfg.Check.Extensions,
		Jobs:           cfg.Check.Jobs,
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs = flags.jobs
	}
	if len(flags.exts) > 0 {
		opts.Extensions = normalizeExts(flags.exts)
	}

	if flags.useCache || flags.clearCache {
		dc, cacheErr := cache.Open("pennmush")
		if cacheErr != nil {
			// кэш необязателен
			fmt.Fprintf(cmd.ErrOrStderr(), "check: cache disabled: %v\n", cacheErr)
		} else {
			if flags.clearCache {
				if dropErr := dc.DropAll(); dropErr != nil {
					return fmt.Errorf("check: %s: %w", dc.Dir(), dropErr)
				}
			}
			if flags.useCache {
				opts.Cache = dc
			}
		}
	}

	collectIdx := timer.Begin("collect")
	files, err := driver.CollectFiles(cmd.Context(), args, opts.Extensions)
	timer.End(collectIdx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("check: %w", driver.ErrNoFiles)
	}

	scanIdx := timer.Begin("scan")
	var results []driver.CheckResult
	if !flags.quiet && flags.ui.enabled(interactive) {
		results, err = runCheckWithUI(cmd.Context(), cmd.ErrOrStderr(), "checking", files, opts)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), files, opts)
	}
	timer.End(scanIdx, cachedNote(results))
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	reports := make([]diagfmt.FileReport, 0, len(results))
	failed := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "check: %s: %v\n", res.Path, res.Err)
		}
		if failsAt(res, flags.failOn) {
			failed = true
		}
		reports = append(reports, diagfmt.FileReport{Path: res.Path, File: res.File, Diagnostics: res.Diagnostics})
	}

	renderIdx := timer.Begin("render")
	err = renderCheck(cmd.OutOrStdout(), reports, flags)
	timer.End(renderIdx, flags.format)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	if !flags.quiet && flags.format != "json" {
		fmt.Fprintln(cmd.ErrOrStderr(), diagfmt.Summary(reports))
	}
	if flags.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if failed {
		return errSilentExit
	}
	return nil
}

func failsAt(res driver.CheckResult, threshold diag.Severity) bool {
	if threshold == diag.SevError {
		return res.HasErrors()
	}
	if res.Err != nil {
		return true
	}
	for _, d := range res.Diagnostics {
		if d.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}

func renderCheck(out io.Writer, reports []diagfmt.FileReport, flags checkFlags) error {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	switch flags.format {
	case "json":
		return diagfmt.JSON(out, reports, diagfmt.JSONOpts{PathMode: flags.pathMode, BaseDir: wd})
	case "short":
		return diagfmt.Short(out, reports, flags.pathMode, wd)
	default:
		return diagfmt.Pretty(out, reports, diagfmt.PrettyOpts{
			Color:    !color.NoColor,
			PathMode: flags.pathMode,
			BaseDir:  wd,
			NoSource: flags.noSource,
		})
	}
}

func cachedNote(results []driver.CheckResult) string {
	n := 0
	for _, res := range results {
		if res.Cached {
			n++
		}
	}
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d cached", n)
}

// normalizeExts accepts "mush" and ".mush" alike.
func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

