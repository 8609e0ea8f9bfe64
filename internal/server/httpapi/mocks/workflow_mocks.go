package mocks

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"reviewflow/internal/domain"
	"reviewflow/internal/service"
)

type MockWorkflow struct {
	ctrl     *gomock.Controller
	recorder *MockWorkflowMockRecorder
}

type MockWorkflowMockRecorder struct {
	mock *MockWorkflow
}

func NewMockWorkflow(ctrl *gomock.Controller) *MockWorkflow {
	mock := &MockWorkflow{ctrl: ctrl}
	mock.recorder = &MockWorkflowMockRecorder{mock}
	return mock
}

func (m *MockWorkflow) EXPECT() *MockWorkflowMockRecorder {
	return m.recorder
}

func (m *MockWorkflow) SubmitAssignment(ctx context.Context, actor domain.Actor, input *service.SubmitInput) (*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitAssignment", ctx, actor, input)
	ret0, _ := ret[0].(*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockWorkflowMockRecorder) SubmitAssignment(ctx, actor, input interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitAssignment", reflect.TypeOf((*MockWorkflow)(nil).SubmitAssignment), ctx, actor, input)
}

func (m *MockWorkflow) ClaimForReview(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) (*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimForReview", ctx, actor, assignmentID)
	ret0, _ := ret[0].(*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockWorkflowMockRecorder) ClaimForReview(ctx, actor, assignmentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimForReview", reflect.TypeOf((*MockWorkflow)(nil).ClaimForReview), ctx, actor, assignmentID)
}

func (m *MockWorkflow) RecordReview(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, rubric []domain.RubricItem, comment *string) (*domain.Review, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordReview", ctx, actor, assignmentID, rubric, comment)
	ret0, _ := ret[0].(*domain.Review)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockWorkflowMockRecorder) RecordReview(ctx, actor, assignmentID, rubric, comment interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordReview", reflect.TypeOf((*MockWorkflow)(nil).RecordReview), ctx, actor, assignmentID, rubric, comment)
}

func (m *MockWorkflow) Decide(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, decision domain.Decision, comment string) (*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Decide", ctx, actor, assignmentID, decision, comment)
	ret0, _ := ret[0].(*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockWorkflowMockRecorder) Decide(ctx, actor, assignmentID, decision, comment interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Decide", reflect.TypeOf((*MockWorkflow)(nil).Decide), ctx, actor, assignmentID, decision, comment)
}

func (m *MockWorkflow) Resubmit(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, file []byte) (*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Resubmit", ctx, actor, assignmentID, file)
	ret0, _ := ret[0].(*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockWorkflowMockRecorder) Resubmit(ctx, actor, assignmentID, file interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Resubmit", reflect.TypeOf((*MockWorkflow)(nil).Resubmit), ctx, actor, assignmentID, file)
}

func (m *MockWorkflow) ListFor(ctx context.Context, actor domain.Actor) ([]*service.WorklistItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListFor", ctx, actor)
	ret0, _ := ret[0].([]*service.WorklistItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockWorkflowMockRecorder) ListFor(ctx, actor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListFor", reflect.TypeOf((*MockWorkflow)(nil).ListFor), ctx, actor)
}

func (m *MockWorkflow) GetAssignment(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Assignment, []*domain.Review, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAssignment", ctx, actor, id)
	ret0, _ := ret[0].(*domain.Assignment)
	ret1, _ := ret[1].([]*domain.Review)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockWorkflowMockRecorder) GetAssignment(ctx, actor, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAssignment", reflect.TypeOf((*MockWorkflow)(nil).GetAssignment), ctx, actor, id)
}

func (m *MockWorkflow) GetAssignmentFileURL(ctx context.Context, actor domain.Actor, id uuid.UUID) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAssignmentFileURL", ctx, actor, id)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockWorkflowMockRecorder) GetAssignmentFileURL(ctx, actor, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAssignmentFileURL", reflect.TypeOf((*MockWorkflow)(nil).GetAssignmentFileURL), ctx, actor, id)
}

func (m *MockWorkflow) OverseerReport(ctx context.Context, actor domain.Actor) (*service.StatusReport, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OverseerReport", ctx, actor)
	ret0, _ := ret[0].(*service.StatusReport)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockWorkflowMockRecorder) OverseerReport(ctx, actor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OverseerReport", reflect.TypeOf((*MockWorkflow)(nil).OverseerReport), ctx, actor)
}

type MockActorResolver struct {
	ctrl     *gomock.Controller
	recorder *MockActorResolverMockRecorder
}

type MockActorResolverMockRecorder struct {
	mock *MockActorResolver
}

func NewMockActorResolver(ctrl *gomock.Controller) *MockActorResolver {
	mock := &MockActorResolver{ctrl: ctrl}
	mock.recorder = &MockActorResolverMockRecorder{mock}
	return mock
}

func (m *MockActorResolver) EXPECT() *MockActorResolverMockRecorder {
	return m.recorder
}

func (m *MockActorResolver) Resolve(ctx context.Context, userID uuid.UUID) (domain.Actor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Resolve", ctx, userID)
	ret0, _ := ret[0].(domain.Actor)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockActorResolverMockRecorder) Resolve(ctx, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Resolve", reflect.TypeOf((*MockActorResolver)(nil).Resolve), ctx, userID)
}
