package httpapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"reviewflow/internal/domain"
	"reviewflow/internal/errdefs"
	"reviewflow/internal/server/httpapi"
	"reviewflow/internal/server/httpapi/mocks"
	"reviewflow/internal/service"
	"reviewflow/pkg/logging"
)

func setup(t *testing.T) (*gomock.Controller, http.Handler, *mocks.MockWorkflow, *mocks.MockActorResolver) {
	ctrl := gomock.NewController(t)

	mockWorkflow := mocks.NewMockWorkflow(ctrl)
	mockResolver := mocks.NewMockActorResolver(ctrl)

	router := httpapi.NewRouter(httpapi.NewHandler(mockWorkflow), mockResolver, logging.New(zap.NewNop()))
	return ctrl, router, mockWorkflow, mockResolver
}

func doRequest(t *testing.T, router http.Handler, method, path string, userID string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func expectActor(mockResolver *mocks.MockActorResolver, role domain.Role) domain.Actor {
	actor := domain.Actor{ID: uuid.New(), Role: role}
	mockResolver.EXPECT().Resolve(gomock.Any(), actor.ID).Return(actor, nil)
	return actor
}

func uploadBody(t *testing.T, fields map[string]string, fileContents string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileContents != "" {
		part, err := writer.CreateFormFile("file", "paper.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContents))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Error_MissingHeader", func(t *testing.T) {
		_, router, _, _ := setup(t)

		rec := doRequest(t, router, http.MethodGet, "/assignments", "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		_, router, _, _ := setup(t)

		rec := doRequest(t, router, http.MethodGet, "/assignments", "not-a-uuid", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Error_UnknownUser", func(t *testing.T) {
		ctrl, router, _, mockResolver := setup(t)
		defer ctrl.Finish()

		userID := uuid.New()
		mockResolver.EXPECT().Resolve(gomock.Any(), userID).
			Return(domain.Actor{}, errdefs.ErrUnauthenticated)

		rec := doRequest(t, router, http.MethodGet, "/assignments", userID.String(), nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("TraceIDHeaderSet", func(t *testing.T) {
		_, router, _, _ := setup(t)

		rec := doRequest(t, router, http.MethodGet, "/assignments", "", nil, "")
		assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
	})
}

func TestSubmitAssignmentHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleSubmitter)
		assignmentID := uuid.New()

		mockWorkflow.EXPECT().SubmitAssignment(gomock.Any(), actor, gomock.AssignableToTypeOf(&service.SubmitInput{})).
			DoAndReturn(func(_ interface{}, _ domain.Actor, input *service.SubmitInput) (*domain.Assignment, error) {
				assert.Equal(t, "Research Paper", input.Title)
				assert.Equal(t, []byte("%PDF-1.4"), input.File)
				assert.True(t, input.AllowLate)
				return &domain.Assignment{
					ID:          assignmentID,
					SubmitterID: actor.ID,
					Title:       input.Title,
					Status:      domain.StatusSubmitted,
				}, nil
			})

		body, contentType := uploadBody(t, map[string]string{
			"title":      "Research Paper",
			"allow_late": "true",
		}, "%PDF-1.4")

		rec := doRequest(t, router, http.MethodPost, "/assignments", actor.ID.String(), body, contentType)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, assignmentID.String(), resp["id"])
		assert.Equal(t, "submitted", resp["status"])
	})

	t.Run("Error_MissingFile", func(t *testing.T) {
		ctrl, router, _, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleSubmitter)
		body, contentType := uploadBody(t, map[string]string{"title": "Research Paper"}, "")

		rec := doRequest(t, router, http.MethodPost, "/assignments", actor.ID.String(), body, contentType)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "file")
	})

	t.Run("Error_WrongRole", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)
		mockWorkflow.EXPECT().SubmitAssignment(gomock.Any(), actor, gomock.Any()).
			Return(nil, errdefs.ErrPermissionDenied)

		body, contentType := uploadBody(t, map[string]string{"title": "Research Paper"}, "x")

		rec := doRequest(t, router, http.MethodPost, "/assignments", actor.ID.String(), body, contentType)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestListAssignmentsHandler(t *testing.T) {
	ctrl, router, mockWorkflow, mockResolver := setup(t)
	defer ctrl.Finish()

	actor := expectActor(mockResolver, domain.RoleSubmitter)
	comment := "needs more detail"
	rejectedID := uuid.New()

	mockWorkflow.EXPECT().ListFor(gomock.Any(), actor).Return([]*service.WorklistItem{
		{
			Assignment: &domain.Assignment{ID: rejectedID, SubmitterID: actor.ID, Status: domain.StatusRejected},
			LatestRejection: &domain.Review{
				AssignmentID: rejectedID,
				Action:       domain.ReviewActionRejected,
				Comment:      &comment,
			},
		},
	}, nil)

	rec := doRequest(t, router, http.MethodGet, "/assignments", actor.ID.String(), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "rejected", resp[0]["status"])
	rejection, ok := resp[0]["latest_rejection"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, comment, rejection["comment"])
}

func TestGetAssignmentHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)
		id := uuid.New()

		mockWorkflow.EXPECT().GetAssignment(gomock.Any(), actor, id).Return(
			&domain.Assignment{ID: id, Status: domain.StatusSecondReview},
			[]*domain.Review{{AssignmentID: id, Action: domain.ReviewActionReviewed}},
			nil,
		)

		rec := doRequest(t, router, http.MethodGet, "/assignments/"+id.String(), actor.ID.String(), nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		reviews, ok := resp["reviews"].([]interface{})
		require.True(t, ok)
		assert.Len(t, reviews, 1)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		ctrl, router, _, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)

		rec := doRequest(t, router, http.MethodGet, "/assignments/not-a-uuid", actor.ID.String(), nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)
		mockWorkflow.EXPECT().GetAssignment(gomock.Any(), actor, gomock.Any()).
			Return(nil, nil, errdefs.ErrNotFound)

		rec := doRequest(t, router, http.MethodGet, "/assignments/"+uuid.NewString(), actor.ID.String(), nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetAssignmentFileURLHandler(t *testing.T) {
	ctrl, router, mockWorkflow, mockResolver := setup(t)
	defer ctrl.Finish()

	actor := expectActor(mockResolver, domain.RoleApprover)
	id := uuid.New()

	mockWorkflow.EXPECT().GetAssignmentFileURL(gomock.Any(), actor, id).
		Return("https://blob/paper.pdf?sig=abc", nil)

	rec := doRequest(t, router, http.MethodGet, fmt.Sprintf("/assignments/%s/file-url", id), actor.ID.String(), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://blob/paper.pdf?sig=abc", resp["url"])
}

func TestClaimForReviewHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)
		id := uuid.New()

		mockWorkflow.EXPECT().ClaimForReview(gomock.Any(), actor, id).
			Return(&domain.Assignment{ID: id, Status: domain.StatusFirstReview}, nil)

		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/claim", id), actor.ID.String(), nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "first_review")
	})

	t.Run("Error_AlreadyClaimed", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)
		mockWorkflow.EXPECT().ClaimForReview(gomock.Any(), actor, gomock.Any()).
			Return(nil, fmt.Errorf("assignment is now first_review: %w", errdefs.ErrStaleState))

		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/claim", uuid.New()), actor.ID.String(), nil, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRecordReviewHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)
		id := uuid.New()

		mockWorkflow.EXPECT().RecordReview(gomock.Any(), actor, id, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, _ domain.Actor, _ uuid.UUID, rubric []domain.RubricItem, _ *string) (*domain.Review, error) {
				require.Len(t, rubric, 1)
				assert.Equal(t, "Paper Topic", rubric[0].Criterion)
				return &domain.Review{ID: uuid.New(), AssignmentID: id, Action: domain.ReviewActionReviewed}, nil
			})

		body := strings.NewReader(`{"rubric":[{"criterion":"Paper Topic","score":3}]}`)
		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/review", id), actor.ID.String(), body, "application/json")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "reviewed")
	})

	t.Run("Error_MalformedBody", func(t *testing.T) {
		ctrl, router, _, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)

		body := strings.NewReader(`{"rubric":`)
		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/review", uuid.New()), actor.ID.String(), body, "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Error_IncompleteRubric", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleReviewer)
		mockWorkflow.EXPECT().RecordReview(gomock.Any(), actor, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf(`missing score for "Annotations": %w`, errdefs.ErrValidation))

		body := strings.NewReader(`{"rubric":[]}`)
		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/review", uuid.New()), actor.ID.String(), body, "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Annotations")
	})
}

func TestDecideHandler(t *testing.T) {
	t.Run("Success_Approve", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleApprover)
		id := uuid.New()

		mockWorkflow.EXPECT().Decide(gomock.Any(), actor, id, domain.DecisionApprove, "").
			Return(&domain.Assignment{ID: id, Status: domain.StatusApproved}, nil)

		body := strings.NewReader(`{"decision":"approve"}`)
		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/decision", id), actor.ID.String(), body, "application/json")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "approved")
	})

	t.Run("Success_Reject", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleApprover)
		id := uuid.New()

		mockWorkflow.EXPECT().Decide(gomock.Any(), actor, id, domain.DecisionReject, "needs more detail").
			Return(&domain.Assignment{ID: id, Status: domain.StatusRejected}, nil)

		body := strings.NewReader(`{"decision":"reject","comment":"needs more detail"}`)
		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/decision", id), actor.ID.String(), body, "application/json")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Error_UnknownDecision", func(t *testing.T) {
		ctrl, router, _, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleApprover)

		body := strings.NewReader(`{"decision":"defer"}`)
		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/decision", uuid.New()), actor.ID.String(), body, "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestResubmitHandler(t *testing.T) {
	ctrl, router, mockWorkflow, mockResolver := setup(t)
	defer ctrl.Finish()

	actor := expectActor(mockResolver, domain.RoleSubmitter)
	id := uuid.New()

	mockWorkflow.EXPECT().Resubmit(gomock.Any(), actor, id, []byte("revised")).
		Return(&domain.Assignment{ID: id, SubmitterID: actor.ID, Status: domain.StatusSubmitted}, nil)

	body, contentType := uploadBody(t, nil, "revised")
	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/assignments/%s/resubmit", id), actor.ID.String(), body, contentType)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "submitted")
}

func TestStatusReportHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleOverseer)

		mockWorkflow.EXPECT().OverseerReport(gomock.Any(), actor).Return(&service.StatusReport{
			Counts: map[domain.Status]int{
				domain.StatusSubmitted:    1,
				domain.StatusFirstReview:  0,
				domain.StatusSecondReview: 0,
				domain.StatusApproved:     2,
				domain.StatusRejected:     0,
			},
			Assignments: []*domain.Assignment{{ID: uuid.New(), Status: domain.StatusApproved}},
		}, nil)

		rec := doRequest(t, router, http.MethodGet, "/reports/status", actor.ID.String(), nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		counts, ok := resp["counts"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(2), counts["approved"])
		assert.Equal(t, float64(0), counts["rejected"])
	})

	t.Run("Error_WrongRole", func(t *testing.T) {
		ctrl, router, mockWorkflow, mockResolver := setup(t)
		defer ctrl.Finish()

		actor := expectActor(mockResolver, domain.RoleSubmitter)
		mockWorkflow.EXPECT().OverseerReport(gomock.Any(), actor).
			Return(nil, errdefs.ErrPermissionDenied)

		rec := doRequest(t, router, http.MethodGet, "/reports/status", actor.ID.String(), nil, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
