package diag

// Severity ranks diagnostics; higher is more severe.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Protocol maps s to the LSP DiagnosticSeverity scale, where 1 is an error
// and 3 is information.
func (s Severity) Protocol() int {
	if s >= SevError {
		return 1
	}
	return 3 - int(s)
}
