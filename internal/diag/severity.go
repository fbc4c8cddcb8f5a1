package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics from informational to fatal.
type Severity uint8

const (
	// SevInfo marks bracket notes and hints.
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "info", SevWarning: "warning", SevError: "error"}

// String returns the upper-case tag used by the pretty printer.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return strings.ToUpper(severityNames[s])
	}
	return "UNKNOWN"
}

// Label is the lower-case name used in short and JSON output.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// AtLeast reports whether s is as severe as min.
func (s Severity) AtLeast(min Severity) bool { return s >= min }

// ParseSeverity accepts the lower- or upper-case labels plus "note" for info.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info", "note":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q (want error, warning or info)", s)
}
