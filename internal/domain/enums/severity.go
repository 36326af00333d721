package enums

// Severity orders moderation outcomes from harmless to critical.
// Verdict escalation is a plain max over triggered checks, so the
// integer order is part of the contract.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a stored label back to its level. Unknown labels
// come back as low rather than erroring; severity is advisory once an
// item is already queued.
func ParseSeverity(value string) Severity {
	switch value {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func MaxSeverity(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}
