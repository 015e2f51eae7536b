package doctor

// Severity classifies how urgent an issue is.
type Severity string

const (
	// SeverityError blocks moves until resolved.
	SeverityError Severity = "error"
	// SeverityWarn degrades moves but doesn't block them.
	SeverityWarn Severity = "warn"
	// SeverityInfo is housekeeping advice.
	SeverityInfo Severity = "info"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Repo        string   // repository name, empty for environment issues
	Description string   // human-readable description
	Hint        string   // suggested remediation, may be empty
	Severity    Severity // issue severity
}
