package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is an immutable audit record created by exactly one workflow
// transition. There is no update or delete path for reviews anywhere in
// the service.
type Review struct {
	ID           uuid.UUID    `db:"id"`
	AssignmentID uuid.UUID    `db:"assignment_id"`
	ReviewerID   uuid.UUID    `db:"reviewer_id"`
	ReviewerRole Role         `db:"reviewer_role"`
	Rubric       []RubricItem `db:"rubric"`
	Action       ReviewAction `db:"action"`
	Comment      *string      `db:"comment"`
	CreatedAt    time.Time    `db:"created_at"`
}

type ReviewAction string

const (
	ReviewActionReviewed ReviewAction = "reviewed"
	ReviewActionApproved ReviewAction = "approved"
	ReviewActionRejected ReviewAction = "rejected"
)

func (a ReviewAction) String() string {
	return string(a)
}

func (a ReviewAction) IsValid() bool {
	switch a {
	case ReviewActionReviewed, ReviewActionApproved, ReviewActionRejected:
		return true
	default:
		return false
	}
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

func DecisionFromString(s string) (Decision, bool) {
	d := Decision(s)
	return d, d.IsValid()
}
