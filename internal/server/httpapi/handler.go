package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reviewflow/internal/domain"
	"reviewflow/internal/errdefs"
	"reviewflow/internal/service"
)

const maxUploadBytes = 32 << 20

type Workflow interface {
	SubmitAssignment(ctx context.Context, actor domain.Actor, input *service.SubmitInput) (*domain.Assignment, error)
	ClaimForReview(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) (*domain.Assignment, error)
	RecordReview(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, rubric []domain.RubricItem, comment *string) (*domain.Review, error)
	Decide(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, decision domain.Decision, comment string) (*domain.Assignment, error)
	Resubmit(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, file []byte) (*domain.Assignment, error)
	ListFor(ctx context.Context, actor domain.Actor) ([]*service.WorklistItem, error)
	GetAssignment(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Assignment, []*domain.Review, error)
	GetAssignmentFileURL(ctx context.Context, actor domain.Actor, id uuid.UUID) (string, error)
	OverseerReport(ctx context.Context, actor domain.Actor) (*service.StatusReport, error)
}

type ActorResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (domain.Actor, error)
}

type Handler struct {
	workflow Workflow
}

func NewHandler(workflow Workflow) *Handler {
	return &Handler{workflow: workflow}
}

func (h *Handler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Group(func(r chi.Router) {
		r.Post("/assignments", h.SubmitAssignment)
		r.Get("/assignments", h.ListAssignments)
		r.Get("/assignments/{id}", h.GetAssignment)
		r.Get("/assignments/{id}/file-url", h.GetAssignmentFileURL)
		r.Post("/assignments/{id}/claim", h.ClaimForReview)
		r.Post("/assignments/{id}/review", h.RecordReview)
		r.Post("/assignments/{id}/decision", h.Decide)
		r.Post("/assignments/{id}/resubmit", h.Resubmit)

		r.Get("/reports/status", h.StatusReport)
	})
}

func (h *Handler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, errdefs.ErrUnauthenticated)
		return
	}

	input, err := parseSubmitForm(r)
	if err != nil {
		writeError(w, err)
		return
	}

	assignment, err := h.workflow.SubmitAssignment(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentResponse(assignment))
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, errdefs.ErrUnauthenticated)
		return
	}

	items, err := h.workflow.ListFor(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorklistResponse(items))
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	assignment, reviews, err := h.workflow.GetAssignment(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := &assignmentDetailResponse{
		assignmentResponse: *toAssignmentResponse(assignment),
		Reviews:            make([]*reviewResponse, len(reviews)),
	}
	for i, review := range reviews {
		resp.Reviews[i] = toReviewResponse(review)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAssignmentFileURL(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	url, err := h.workflow.GetAssignmentFileURL(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) ClaimForReview(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	assignment, err := h.workflow.ClaimForReview(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentResponse(assignment))
}

func (h *Handler) RecordReview(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", errdefs.ErrValidation))
		return
	}

	review, err := h.workflow.RecordReview(r.Context(), actor, id, req.Rubric, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", errdefs.ErrValidation))
		return
	}

	decision, ok := domain.DecisionFromString(req.Decision)
	if !ok {
		writeError(w, fmt.Errorf("unknown decision %q: %w", req.Decision, errdefs.ErrValidation))
		return
	}

	assignment, err := h.workflow.Decide(r.Context(), actor, id, decision, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentResponse(assignment))
}

func (h *Handler) Resubmit(w http.ResponseWriter, r *http.Request) {
	actor, id, err := actorAndID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	file, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	assignment, err := h.workflow.Resubmit(r.Context(), actor, id, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentResponse(assignment))
}

func (h *Handler) StatusReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, errdefs.ErrUnauthenticated)
		return
	}

	report, err := h.workflow.OverseerReport(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatusReportResponse(report))
}

func actorAndID(r *http.Request) (domain.Actor, uuid.UUID, error) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		return domain.Actor{}, uuid.Nil, errdefs.ErrUnauthenticated
	}

	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return domain.Actor{}, uuid.Nil, fmt.Errorf("invalid assignment id %q: %w", raw, errdefs.ErrValidation)
	}
	return actor, id, nil
}

func parseSubmitForm(r *http.Request) (*service.SubmitInput, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", errdefs.ErrValidation)
	}

	input := &service.SubmitInput{
		Title: r.FormValue("title"),
	}
	if desc := r.FormValue("description"); desc != "" {
		input.Description = &desc
	}
	if raw := r.FormValue("class_id"); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid class_id: %w", errdefs.ErrValidation)
		}
		input.ClassID = &classID
	}
	if raw := r.FormValue("deadline"); raw != "" {
		deadline, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline: %w", errdefs.ErrValidation)
		}
		input.Deadline = &deadline
	}
	input.AllowLate = r.FormValue("allow_late") == "true"

	file, err := readUpload(r)
	if err != nil {
		return nil, err
	}
	input.File = file

	return input, nil
}

func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", errdefs.ErrValidation)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file: %w", errdefs.ErrValidation)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", errdefs.ErrValidation)
	}
	return data, nil
}
