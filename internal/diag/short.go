package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// FormatShortDiagnostics renders one line per diagnostic:
//
//	<severity> <code> <path>:<line>:<col> <message>
//
// Positions are 1-based and message newlines are folded into spaces. Lines
// are ordered by position, then severity label, code and message, so the
// output is stable for golden files. There is no trailing newline; the result
// is empty when diags is.
func FormatShortDiagnostics(path string, diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	path = slashPath(path)

	ordered := slices.Clone(diags)
	slices.SortStableFunc(ordered, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Range.Line, b.Range.Line),
			cmp.Compare(a.Range.StartCol, b.Range.StartCol),
			strings.Compare(a.Severity.Label(), b.Severity.Label()),
			strings.Compare(a.Code.ID(), b.Code.ID()),
			strings.Compare(oneLine(a.Message), oneLine(b.Message)),
		)
	})

	lines := make([]string, len(ordered))
	for i, d := range ordered {
		lines[i] = fmt.Sprintf("%s %s %s:%d:%d %s",
			d.Severity.Label(), d.Code.ID(), path, d.Range.Line+1, d.Range.StartCol+1, oneLine(d.Message))
	}
	return strings.Join(lines, "\n")
}

func slashPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

var newlineFolder = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func oneLine(msg string) string {
	return strings.TrimSpace(newlineFolder.Replace(msg))
}
