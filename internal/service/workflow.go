package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reviewflow/internal/data"
	"reviewflow/internal/domain"
	"reviewflow/internal/errdefs"
	"reviewflow/pkg/logging"
)

// WorkflowService is the single mutation point for assignment state. It
// validates the actor's role and the request, then applies the status
// transition and its audit review atomically through the repository.
type WorkflowService struct {
	assignmentRepo AssignmentRepository
	reviewRepo     ReviewRepository
	blob           BlobStore
	events         EventProducer
	criteria       []string
	logger         *logging.Logger
}

func NewWorkflowService(
	assignmentRepo AssignmentRepository,
	reviewRepo ReviewRepository,
	blob BlobStore,
	events EventProducer,
	criteria []string,
	logger *logging.Logger,
) *WorkflowService {
	if len(criteria) == 0 {
		criteria = domain.DefaultCriteria
	}
	return &WorkflowService{
		assignmentRepo: assignmentRepo,
		reviewRepo:     reviewRepo,
		blob:           blob,
		events:         events,
		criteria:       criteria,
		logger:         logger,
	}
}

func (s *WorkflowService) Criteria() []string {
	return s.criteria
}

type SubmitInput struct {
	Title       string
	Description *string
	File        []byte
	ClassID     *uuid.UUID
	Deadline    *time.Time
	AllowLate   bool
}

func (s *WorkflowService) SubmitAssignment(ctx context.Context, actor domain.Actor, input *SubmitInput) (*domain.Assignment, error) {
	if actor.Role != domain.RoleSubmitter {
		return nil, errdefs.ErrPermissionDenied
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("missing title: %w", errdefs.ErrValidation)
	}
	if len(input.File) == 0 {
		return nil, fmt.Errorf("missing file: %w", errdefs.ErrValidation)
	}

	path := objectPath(actor.ID)
	if err := s.blob.Put(ctx, path, input.File); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.Create(ctx, &data.CreateAssignmentInput{
		SubmitterID: actor.ID,
		Title:       input.Title,
		Description: input.Description,
		FilePath:    path,
		ClassID:     input.ClassID,
		Deadline:    input.Deadline,
		AllowLate:   input.AllowLate,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, EventSubmitted, assignment, actor)
	return assignment, nil
}

// ClaimForReview moves a submitted or rejected assignment into the
// first reviewer's hands. A rejected one can be pulled back without
// waiting on the submitter; the claim then fences out a concurrent
// resubmission. Claiming is optional: RecordReview accepts unclaimed
// assignments too.
func (s *WorkflowService) ClaimForReview(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) (*domain.Assignment, error) {
	if actor.Role != domain.RoleReviewer {
		return nil, errdefs.ErrPermissionDenied
	}

	assignment, err := s.assignmentRepo.ApplyTransition(ctx, &data.Transition{
		AssignmentID: assignmentID,
		From:         []domain.Status{domain.StatusSubmitted, domain.StatusRejected},
		To:           domain.StatusFirstReview,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, EventClaimed, assignment, actor)
	return assignment, nil
}

func (s *WorkflowService) RecordReview(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, rubric []domain.RubricItem, comment *string) (*domain.Review, error) {
	if actor.Role != domain.RoleReviewer {
		return nil, errdefs.ErrPermissionDenied
	}
	if err := domain.ValidateRubric(s.criteria, rubric); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ReviewerID:   actor.ID,
		ReviewerRole: actor.Role,
		Rubric:       rubric,
		Action:       domain.ReviewActionReviewed,
		Comment:      comment,
	}

	assignment, err := s.assignmentRepo.ApplyTransition(ctx, &data.Transition{
		AssignmentID: assignmentID,
		From:         []domain.Status{domain.StatusSubmitted, domain.StatusFirstReview},
		To:           domain.StatusSecondReview,
		Review:       review,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, EventReviewed, assignment, actor)
	return review, nil
}

func (s *WorkflowService) Decide(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, decision domain.Decision, comment string) (*domain.Assignment, error) {
	if actor.Role != domain.RoleApprover {
		return nil, errdefs.ErrPermissionDenied
	}
	if !decision.IsValid() {
		return nil, fmt.Errorf("unknown decision %q: %w", decision, errdefs.ErrValidation)
	}
	if decision == domain.DecisionReject && strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("missing rejection comment: %w", errdefs.ErrValidation)
	}

	review := &domain.Review{
		ReviewerID:   actor.ID,
		ReviewerRole: actor.Role,
		Action:       domain.ReviewActionApproved,
	}
	to := domain.StatusApproved
	event := EventApproved
	if decision == domain.DecisionReject {
		review.Action = domain.ReviewActionRejected
		to = domain.StatusRejected
		event = EventRejected
	}
	if comment != "" {
		review.Comment = &comment
	}

	assignment, err := s.assignmentRepo.ApplyTransition(ctx, &data.Transition{
		AssignmentID: assignmentID,
		From:         []domain.Status{domain.StatusSecondReview},
		To:           to,
		Review:       review,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, event, assignment, actor)
	return assignment, nil
}

// Resubmit replaces the rejected submission's file and returns the
// assignment to the start of the workflow. Prior reviews are retained.
func (s *WorkflowService) Resubmit(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, file []byte) (*domain.Assignment, error) {
	if actor.Role != domain.RoleSubmitter {
		return nil, errdefs.ErrPermissionDenied
	}
	if len(file) == 0 {
		return nil, fmt.Errorf("missing replacement file: %w", errdefs.ErrValidation)
	}

	existing, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if existing.SubmitterID != actor.ID {
		return nil, errdefs.ErrPermissionDenied
	}

	path := objectPath(actor.ID)
	if err := s.blob.Put(ctx, path, file); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.ApplyTransition(ctx, &data.Transition{
		AssignmentID: assignmentID,
		From:         []domain.Status{domain.StatusRejected},
		To:           domain.StatusSubmitted,
		FilePath:     &path,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, EventResubmitted, assignment, actor)
	return assignment, nil
}

func objectPath(submitterID uuid.UUID) string {
	return fmt.Sprintf("%s/%d.pdf", submitterID, time.Now().UnixMilli())
}
