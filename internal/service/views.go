package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"reviewflow/internal/domain"
	"reviewflow/internal/errdefs"
)

// reviewerWorklist is everything not yet past the first stage: fresh
// submissions, claimed-but-unreviewed ones, and rejections waiting on
// the submitter.
var reviewerWorklist = []domain.Status{
	domain.StatusSubmitted,
	domain.StatusFirstReview,
	domain.StatusRejected,
}

// WorklistItem is one row of a role-scoped view. LatestRejection is
// populated for the submitter's rejected assignments to drive the
// resubmission flow.
type WorklistItem struct {
	Assignment      *domain.Assignment
	LatestRejection *domain.Review
}

// ListFor returns the actor's worklist. Views read the same rows the
// engine writes; nothing is cached.
func (s *WorkflowService) ListFor(ctx context.Context, actor domain.Actor) ([]*WorklistItem, error) {
	switch actor.Role {
	case domain.RoleSubmitter:
		return s.listForSubmitter(ctx, actor.ID)
	case domain.RoleReviewer:
		return s.listByStatuses(ctx, reviewerWorklist)
	case domain.RoleApprover:
		return s.listByStatuses(ctx, []domain.Status{domain.StatusSecondReview})
	case domain.RoleOverseer:
		assignments, err := s.assignmentRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return wrap(assignments), nil
	default:
		return nil, errdefs.ErrPermissionDenied
	}
}

func (s *WorkflowService) listForSubmitter(ctx context.Context, submitterID uuid.UUID) ([]*WorklistItem, error) {
	assignments, err := s.assignmentRepo.ListBySubmitter(ctx, submitterID)
	if err != nil {
		return nil, err
	}

	items := wrap(assignments)
	for _, item := range items {
		if item.Assignment.Status != domain.StatusRejected {
			continue
		}
		rejection, err := s.reviewRepo.LatestByAction(ctx, item.Assignment.ID, domain.ReviewActionRejected)
		if err != nil {
			if errors.Is(err, errdefs.ErrNotFound) {
				continue
			}
			return nil, err
		}
		item.LatestRejection = rejection
	}
	return items, nil
}

func (s *WorkflowService) listByStatuses(ctx context.Context, statuses []domain.Status) ([]*WorklistItem, error) {
	assignments, err := s.assignmentRepo.ListByStatuses(ctx, statuses)
	if err != nil {
		return nil, err
	}
	return wrap(assignments), nil
}

func wrap(assignments []*domain.Assignment) []*WorklistItem {
	items := make([]*WorklistItem, len(assignments))
	for i, a := range assignments {
		items[i] = &WorklistItem{Assignment: a}
	}
	return items
}

// GetAssignment returns one assignment with its full audit trail in
// creation order. Submitters only see their own.
func (s *WorkflowService) GetAssignment(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Assignment, []*domain.Review, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := canSee(actor, assignment); err != nil {
		return nil, nil, err
	}

	reviews, err := s.reviewRepo.ListByAssignment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return assignment, reviews, nil
}

// GetAssignmentFileURL returns a short-lived download URL for the
// stored document.
func (s *WorkflowService) GetAssignmentFileURL(ctx context.Context, actor domain.Actor, id uuid.UUID) (string, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := canSee(actor, assignment); err != nil {
		return "", err
	}
	return s.blob.PresignGet(ctx, assignment.FilePath)
}

// StatusReport is the overseer's aggregate: per-status counts plus the
// full history, read-only.
type StatusReport struct {
	Counts      map[domain.Status]int
	Assignments []*domain.Assignment
}

func (s *WorkflowService) OverseerReport(ctx context.Context, actor domain.Actor) (*StatusReport, error) {
	if actor.Role != domain.RoleOverseer {
		return nil, errdefs.ErrPermissionDenied
	}

	counts, err := s.assignmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, status := range []domain.Status{
		domain.StatusSubmitted, domain.StatusFirstReview, domain.StatusSecondReview,
		domain.StatusApproved, domain.StatusRejected,
	} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}

	assignments, err := s.assignmentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &StatusReport{Counts: counts, Assignments: assignments}, nil
}

func canSee(actor domain.Actor, assignment *domain.Assignment) error {
	switch actor.Role {
	case domain.RoleReviewer, domain.RoleApprover, domain.RoleOverseer:
		return nil
	case domain.RoleSubmitter:
		if assignment.SubmitterID == actor.ID {
			return nil
		}
		return errdefs.ErrPermissionDenied
	default:
		return errdefs.ErrPermissionDenied
	}
}
