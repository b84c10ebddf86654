package diag

import "asmodeus/internal/source"

// Reporter receives diagnostics from an analysis pass.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string)
}

// ReportBuilder holds one diagnostic until Emit hands it to the reporter.
// Emitting twice has no effect.
type ReportBuilder struct {
	r    Reporter
	d    Diagnostic
	sent bool
}

// ReportError starts an error-severity diagnostic.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevError, code, primary, msg)}
}

// ReportWarning starts a warning-severity diagnostic.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevWarning, code, primary, msg)}
}

func (b *ReportBuilder) Emit() {
	if b == nil || b.sent || b.r == nil {
		return
	}
	b.sent = true
	b.r.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message)
}

// BagReporter adds reports to Bag; a nil Bag drops them.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string) {
	if r.Bag != nil {
		r.Bag.Add(New(sev, code, primary, msg))
	}
}
