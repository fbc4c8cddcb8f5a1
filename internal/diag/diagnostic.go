package diag

import "fmt"

// Range addresses a span on a single line. All values are 0-based, EndCol is
// exclusive, columns count bytes of the line.
type Range struct {
	Line     uint32
	StartCol uint32
	EndCol   uint32
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d", r.Line, r.StartCol, r.EndCol)
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Range    Range
}

func New(sev Severity, code Code, rng Range, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Range:    rng,
		Message:  msg,
	}
}

func NewError(code Code, rng Range, msg string) Diagnostic {
	return New(SevError, code, rng, msg)
}

func NewWarning(code Code, rng Range, msg string) Diagnostic {
	return New(SevWarning, code, rng, msg)
}
