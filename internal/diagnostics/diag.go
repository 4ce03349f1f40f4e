package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Diagnostic is one observable event pushed to /diag subscribers.
// Nothing in here affects rendering; it exists for the companion UI.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Evidence map[string]any `json:"evidence,omitempty"`
}

// Well-known codes.
const (
	CodeFetchFailed    = "FETCH.HTTP"
	CodeDecodeBad      = "DECODE.TRUNCATED"
	CodeCommandBad     = "CMD.INVALID"
	CodeConfigFallback = "CONFIG.FALLBACK"
	CodeDriverWrite    = "DRIVER.WRITE"
)

func FetchFailed(err error) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     CodeFetchFailed,
		Summary:  "forecast fetch failed",
		Detail:   err.Error(),
	}
}

func DecodeFailed(err error, got int) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     CodeDecodeBad,
		Summary:  "forecast payload discarded",
		Detail:   err.Error(),
		Evidence: map[string]any{"bytes": got},
	}
}

func CommandRejected(err error) Diagnostic {
	return Diagnostic{
		Severity: Info,
		Code:     CodeCommandBad,
		Summary:  "control command rejected",
		Detail:   err.Error(),
	}
}

func ConfigFallback(kind, path string, err error) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     CodeConfigFallback,
		Summary:  kind + " config unreadable, running on defaults",
		Detail:   err.Error(),
		Evidence: map[string]any{"path": path},
	}
}

func DriverWriteFailed(err error) Diagnostic {
	return Diagnostic{
		Severity: Err,
		Code:     CodeDriverWrite,
		Summary:  "driver write failed",
		Detail:   err.Error(),
	}
}
