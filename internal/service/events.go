package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reviewflow/internal/domain"
)

const (
	EventSubmitted   = "assignment.submitted"
	EventClaimed     = "assignment.claimed"
	EventReviewed    = "assignment.reviewed"
	EventApproved    = "assignment.approved"
	EventRejected    = "assignment.rejected"
	EventResubmitted = "assignment.resubmitted"
)

// Event is the notification payload published after a committed
// transition. Consumers (the notification sink) key on AssignmentID.
type Event struct {
	Type         string        `json:"type"`
	AssignmentID uuid.UUID     `json:"assignment_id"`
	SubmitterID  uuid.UUID     `json:"submitter_id"`
	ActorID      uuid.UUID     `json:"actor_id"`
	Status       domain.Status `json:"status"`
	OccurredAt   time.Time     `json:"occurred_at"`
}

// emit publishes best-effort, post-commit. A failed publish is logged
// and dropped: notification delivery is a side-effect sink, never part
// of the transition.
func (s *WorkflowService) emit(ctx context.Context, eventType string, assignment *domain.Assignment, actor domain.Actor) {
	if s.events == nil {
		return
	}

	event := Event{
		Type:         eventType,
		AssignmentID: assignment.ID,
		SubmitterID:  assignment.SubmitterID,
		ActorID:      actor.ID,
		Status:       assignment.Status,
		OccurredAt:   time.Now(),
	}

	if err := s.events.Send(ctx, assignment.ID.String(), event); err != nil {
		if s.logger != nil {
			s.logger.Warn(ctx, "failed to publish workflow event",
				zap.String("event", eventType),
				zap.String("assignment_id", assignment.ID.String()),
				zap.Error(err),
			)
		}
	}
}
