package model

import (
	"fmt"
	"time"
)

// Status is the workflow lane of a job application. Values serialize as
// their symbolic names ("Draft", "Applied", ...); clients match on these
// strings, so the names are a compatibility contract.
type Status string

const (
	StatusDraft        Status = "Draft"
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusOffer        Status = "Offer"
	StatusRejected     Status = "Rejected"
	StatusAccepted     Status = "Accepted"
)

// ParseStatus validates a status string against the fixed enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusAccepted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Application represents a tracked job application owned by exactly one user.
// Invariant: UpdatedAt >= CreatedAt, both stored as UTC instants.
type Application struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Company   string    `json:"company"`
	RoleTitle string    `json:"roleTitle"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
