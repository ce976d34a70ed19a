package domain

import "time"

type AccessOutcome string

const (
	OutcomeRedirect  AccessOutcome = "redirect"
	OutcomeForbidden AccessOutcome = "forbidden"
)

// AccessAuditEntry records a navigation the gate did not let through.
type AccessAuditEntry struct {
	SessionID  string
	UserID     int64
	Email      string
	Path       string
	Outcome    AccessOutcome
	Target     string
	Reason     string
	OccurredAt time.Time
}
