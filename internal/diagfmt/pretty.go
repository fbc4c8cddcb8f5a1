package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	path   *color.Color
	gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
	}
	all := []*color.Color{p.path, p.gutter}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if c, ok := p.sev[sev]; ok {
		return c
	}
	return p.sev[diag.SevInfo]
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   | <source line>
//	   | ^~~~
//
// Diagnostics are printed in the order given; callers sort beforehand.
func Pretty(w io.Writer, reports []FileReport, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, r := range reports {
		path := r.displayPath(opts.PathMode, opts.BaseDir)
		for _, d := range r.Diagnostics {
			sev := pal.severity(d.Severity)
			if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
				pal.path.Sprintf("%s:%d:%d", path, d.Range.Line+1, d.Range.StartCol+1),
				sev.Sprint(d.Severity.String()), d.Code.ID(), d.Message); err != nil {
				return err
			}
			if opts.NoSource || r.File == nil || d.Code == diag.IOLoadFileError {
				continue
			}
			line := r.File.GetLine(d.Range.Line + 1)
			if line == "" {
				continue
			}
			bar := pal.gutter.Sprint("|")
			caret := underline(line, d.Range)
			if _, err := fmt.Fprintf(w, "   %s %s\n   %s %s\n", bar, line, bar, sev.Sprint(caret)); err != nil {
				return err
			}
		}
	}
	return nil
}

// underline builds the caret line for rng. Tabs in the prefix are kept so
// the caret lines up in terminals; other text is measured in display cells.
func underline(line string, rng diag.Range) string {
	start := clampCol(rng.StartCol, len(line))
	end := clampCol(rng.EndCol, len(line))
	if end < start {
		end = start
	}
	var b strings.Builder
	for _, r := range line[:start] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(line[start:end]), 1)
	b.WriteByte('^')
	b.WriteString(strings.Repeat("~", width-1))
	return b.String()
}

func clampCol(col uint32, n int) int {
	v, err := safecast.Conv[int](col)
	if err != nil || v > n {
		return n
	}
	return v
}

// Summary counts diagnostics by severity across reports.
func Summary(reports []FileReport) string {
	var errs, warns, infos, files int
	for _, r := range reports {
		if len(r.Diagnostics) > 0 {
			files++
		}
		for _, d := range r.Diagnostics {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			default:
				infos++
			}
		}
	}
	if errs+warns+infos == 0 {
		return fmt.Sprintf("no problems in %s", plural(len(reports), "file"))
	}
	parts := []string{plural(errs, "error"), plural(warns, "warning")}
	if infos > 0 {
		parts = append(parts, plural(infos, "note"))
	}
	return fmt.Sprintf("%s in %s", strings.Join(parts, ", "), plural(files, "file"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
