package diagfmt

import (
	"encoding/json"
	"io"
)

// LocationJSON представляет местоположение в файле для JSON. Positions are
// 1-based; columns count bytes.
type LocationJSON struct {
	File     string `json:"file"`
	Line     uint32 `json:"line"`
	StartCol uint32 `json:"start_col"`
	EndCol   uint32 `json:"end_col"`
}

// DiagnosticJSON представляет диагностику в JSON формате.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title,omitempty"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(reports []FileReport, opts JSONOpts) DiagnosticsOutput {
	diagnostics := make([]DiagnosticJSON, 0)
outer:
	for _, r := range reports {
		path := r.displayPath(opts.PathMode, opts.BaseDir)
		for _, d := range r.Diagnostics {
			if opts.Max > 0 && len(diagnostics) >= opts.Max {
				break outer
			}
			diagnostics = append(diagnostics, DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Title:    d.Code.Title(),
				Message:  d.Message,
				Location: LocationJSON{
					File:     path,
					Line:     d.Range.Line + 1,
					StartCol: d.Range.StartCol + 1,
					EndCol:   d.Range.EndCol + 1,
				},
			})
		}
	}
	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

// JSON writes every diagnostic as one indented document.
func JSON(w io.Writer, reports []FileReport, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(reports, opts))
}
