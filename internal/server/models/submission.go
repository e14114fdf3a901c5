package models

import (
	"path"
	"strings"
	"time"
)

// Status is the review lifecycle of a submission. Any status is reachable
// from any other, including itself (a self-transition is a no-op).
type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ViolationTypes is the fixed set of categories a salaysay can be filed under.
var ViolationTypes = []string{
	"Attendance Issue",
	"Dress Code Violation",
	"Academic Misconduct",
	"Behavioral Issue",
	"Property Damage",
	"Other",
}

// ValidViolationType reports whether v is one of ViolationTypes.
func ValidViolationType(v string) bool {
	for _, t := range ViolationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Submission links an uploaded blob to its owner, category and review status.
type Submission struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FilePath      string    `json:"file_path"`
	ViolationType string    `json:"violation_type"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`

	// Owner is populated on all-users listings for display purposes.
	Owner *Profile `json:"owner,omitempty"`
}

// FileName returns the original name of the uploaded file. Storage keys are
// derived as "<unix-millis>_<original name>", so the timestamp prefix is
// stripped when present.
func (s *Submission) FileName() string {
	base := path.Base(s.FilePath)
	if i := strings.Index(base, "_"); i > 0 {
		prefix := base[:i]
		digits := true
		for _, r := range prefix {
			if r < '0' || r > '9' {
				digits = false
				break
			}
		}
		if digits {
			return base[i+1:]
		}
	}
	return base
}
