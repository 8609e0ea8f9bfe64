package service

import (
	"context"

	"github.com/google/uuid"

	"reviewflow/internal/data"
	"reviewflow/internal/domain"
)

type AssignmentRepository interface {
	Create(ctx context.Context, input *data.CreateAssignmentInput) (*domain.Assignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]*domain.Assignment, error)
	ListByStatuses(ctx context.Context, statuses []domain.Status) ([]*domain.Assignment, error)
	ListAll(ctx context.Context) ([]*domain.Assignment, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
	ApplyTransition(ctx context.Context, t *data.Transition) (*domain.Assignment, error)
}

type ReviewRepository interface {
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Review, error)
	LatestByAction(ctx context.Context, assignmentID uuid.UUID, action domain.ReviewAction) (*domain.Review, error)
}

type BlobStore interface {
	Put(ctx context.Context, path string, data []byte) error
	PresignGet(ctx context.Context, path string) (string, error)
}

type EventProducer interface {
	Send(ctx context.Context, key string, message interface{}) error
}
