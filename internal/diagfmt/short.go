package diagfmt

import (
	"io"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
)

// Short writes one line per diagnostic using diag.FormatShortDiagnostics.
func Short(w io.Writer, reports []FileReport, mode PathMode, baseDir string) error {
	for _, r := range reports {
		out := diag.FormatShortDiagnostics(r.displayPath(mode, baseDir), r.Diagnostics)
		if out == "" {
			continue
		}
		if _, err := io.WriteString(w, out+"\n"); err != nil {
			return err
		}
	}
	return nil
}
