package diag

// Reporter задаёт минимальный контракт получения диагностик от сканера.
type Reporter interface {
	Report(code Code, sev Severity, rng Range, msg string)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, rng Range, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, rng, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, rng Range, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, rng, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, rng Range, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, rng, msg)
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, rng Range, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, rng, msg)
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Range, b.diag.Message)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter пишет диагностики в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, rng Range, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(New(sev, code, rng, msg))
}

// SliceReporter appends every diagnostic without a limit.
type SliceReporter struct {
	Items []Diagnostic
}

func (r *SliceReporter) Report(code Code, sev Severity, rng Range, msg string) {
	r.Items = append(r.Items, New(sev, code, rng, msg))
}

// FilterReporter forwards only diagnostics accepted by Keep.
type FilterReporter struct {
	Next Reporter
	Keep func(Code, Severity) bool
}

func (r FilterReporter) Report(code Code, sev Severity, rng Range, msg string) {
	if r.Next == nil {
		return
	}
	if r.Keep != nil && !r.Keep(code, sev) {
		return
	}
	r.Next.Report(code, sev, rng, msg)
}
