package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleReviewer  Role = "reviewer"
	RoleApprover  Role = "approver"
	RoleOverseer  Role = "overseer"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleSubmitter, RoleReviewer, RoleApprover, RoleOverseer:
		return true
	default:
		return false
	}
}

func RoleFromString(s string) (Role, bool) {
	role := Role(s)
	return role, role.IsValid()
}

// Actor is an authenticated identity paired with exactly one role. Every
// workflow operation takes the actor explicitly; the engine never reads
// ambient session state.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// RoleAssignment maps a user to a role. Rows are provisioned externally
// and are read-only to this service.
type RoleAssignment struct {
	UserID    uuid.UUID  `db:"user_id"`
	Role      Role       `db:"role"`
	ClassID   *uuid.UUID `db:"class_id"`
	CreatedAt time.Time  `db:"created_at"`
}
