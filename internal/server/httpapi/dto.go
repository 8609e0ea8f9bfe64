package httpapi

import (
	"time"

	"github.com/google/uuid"

	"reviewflow/internal/domain"
	"reviewflow/internal/service"
)

type assignmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	SubmitterID uuid.UUID  `json:"submitter_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	ClassID     *uuid.UUID `json:"class_id,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	AllowLate   bool       `json:"allow_late"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    time.Time  `json:"edited_at"`
}

type reviewResponse struct {
	ID           uuid.UUID           `json:"id"`
	AssignmentID uuid.UUID           `json:"assignment_id"`
	ReviewerID   uuid.UUID           `json:"reviewer_id"`
	ReviewerRole string              `json:"reviewer_role"`
	Rubric       []domain.RubricItem `json:"rubric,omitempty"`
	Action       string              `json:"action"`
	Comment      *string             `json:"comment,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type worklistItemResponse struct {
	assignmentResponse
	LatestRejection *reviewResponse `json:"latest_rejection,omitempty"`
}

type assignmentDetailResponse struct {
	assignmentResponse
	Reviews []*reviewResponse `json:"reviews"`
}

type statusReportResponse struct {
	Counts      map[string]int        `json:"counts"`
	Assignments []*assignmentResponse `json:"assignments"`
}

type reviewRequest struct {
	Rubric  []domain.RubricItem `json:"rubric"`
	Comment *string             `json:"comment,omitempty"`
}

type decisionRequest struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment,omitempty"`
}

func toAssignmentResponse(a *domain.Assignment) *assignmentResponse {
	return &assignmentResponse{
		ID:          a.ID,
		SubmitterID: a.SubmitterID,
		Title:       a.Title,
		Description: a.Description,
		Status:      a.Status.String(),
		ClassID:     a.ClassID,
		Deadline:    a.Deadline,
		AllowLate:   a.AllowLate,
		CreatedAt:   a.CreatedAt,
		EditedAt:    a.EditedAt,
	}
}

func toReviewResponse(r *domain.Review) *reviewResponse {
	return &reviewResponse{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		ReviewerID:   r.ReviewerID,
		ReviewerRole: r.ReviewerRole.String(),
		Rubric:       r.Rubric,
		Action:       r.Action.String(),
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

func toWorklistResponse(items []*service.WorklistItem) []*worklistItemResponse {
	out := make([]*worklistItemResponse, len(items))
	for i, item := range items {
		resp := &worklistItemResponse{assignmentResponse: *toAssignmentResponse(item.Assignment)}
		if item.LatestRejection != nil {
			resp.LatestRejection = toReviewResponse(item.LatestRejection)
		}
		out[i] = resp
	}
	return out
}

func toStatusReportResponse(report *service.StatusReport) *statusReportResponse {
	counts := make(map[string]int, len(report.Counts))
	for status, count := range report.Counts {
		counts[status.String()] = count
	}
	assignments := make([]*assignmentResponse, len(report.Assignments))
	for i, a := range report.Assignments {
		assignments[i] = toAssignmentResponse(a)
	}
	return &statusReportResponse{Counts: counts, Assignments: assignments}
}
