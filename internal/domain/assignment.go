package domain

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID          uuid.UUID  `db:"id"`
	SubmitterID uuid.UUID  `db:"submitter_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	FilePath    string     `db:"file_path"`
	Status      Status     `db:"status"`
	ClassID     *uuid.UUID `db:"class_id"`
	Deadline    *time.Time `db:"deadline"`
	AllowLate   bool       `db:"allow_late"`
	CreatedAt   time.Time  `db:"created_at"`
	EditedAt    time.Time  `db:"edited_at"`
}

type Status string

const (
	StatusSubmitted    Status = "submitted"
	StatusFirstReview  Status = "first_review"
	StatusSecondReview Status = "second_review"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusFirstReview, StatusSecondReview,
		StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition leaves this status.
func (s Status) Terminal() bool {
	return s == StatusApproved
}

func StatusFromString(s string) (Status, bool) {
	status := Status(s)
	return status, status.IsValid()
}

type AssignmentFilter struct {
	SubmitterID uuid.UUID
	Statuses    []Status
}
