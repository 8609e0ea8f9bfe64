package mocks

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"reviewflow/internal/data"
	"reviewflow/internal/domain"
)

type MockAssignmentRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAssignmentRepositoryMockRecorder
}

type MockAssignmentRepositoryMockRecorder struct {
	mock *MockAssignmentRepository
}

func NewMockAssignmentRepository(ctrl *gomock.Controller) *MockAssignmentRepository {
	mock := &MockAssignmentRepository{ctrl: ctrl}
	mock.recorder = &MockAssignmentRepositoryMockRecorder{mock}
	return mock
}

func (m *MockAssignmentRepository) EXPECT() *MockAssignmentRepositoryMockRecorder {
	return m.recorder
}

func (m *MockAssignmentRepository) Create(ctx context.Context, input *data.CreateAssignmentInput) (*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, input)
	ret0, _ := ret[0].(*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAssignmentRepositoryMockRecorder) Create(ctx, input interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockAssignmentRepository)(nil).Create), ctx, input)
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAssignmentRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockAssignmentRepository)(nil).GetByID), ctx, id)
}

func (m *MockAssignmentRepository) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListBySubmitter", ctx, submitterID)
	ret0, _ := ret[0].([]*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAssignmentRepositoryMockRecorder) ListBySubmitter(ctx, submitterID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListBySubmitter", reflect.TypeOf((*MockAssignmentRepository)(nil).ListBySubmitter), ctx, submitterID)
}

func (m *MockAssignmentRepository) ListByStatuses(ctx context.Context, statuses []domain.Status) ([]*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByStatuses", ctx, statuses)
	ret0, _ := ret[0].([]*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAssignmentRepositoryMockRecorder) ListByStatuses(ctx, statuses interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByStatuses", reflect.TypeOf((*MockAssignmentRepository)(nil).ListByStatuses), ctx, statuses)
}

func (m *MockAssignmentRepository) ListAll(ctx context.Context) ([]*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAll", ctx)
	ret0, _ := ret[0].([]*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAssignmentRepositoryMockRecorder) ListAll(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAll", reflect.TypeOf((*MockAssignmentRepository)(nil).ListAll), ctx)
}

func (m *MockAssignmentRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountByStatus", ctx)
	ret0, _ := ret[0].(map[domain.Status]int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAssignmentRepositoryMockRecorder) CountByStatus(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountByStatus", reflect.TypeOf((*MockAssignmentRepository)(nil).CountByStatus), ctx)
}

func (m *MockAssignmentRepository) ApplyTransition(ctx context.Context, t *data.Transition) (*domain.Assignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApplyTransition", ctx, t)
	ret0, _ := ret[0].(*domain.Assignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAssignmentRepositoryMockRecorder) ApplyTransition(ctx, t interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApplyTransition", reflect.TypeOf((*MockAssignmentRepository)(nil).ApplyTransition), ctx, t)
}

type MockReviewRepository struct {
	ctrl     *gomock.Controller
	recorder *MockReviewRepositoryMockRecorder
}

type MockReviewRepositoryMockRecorder struct {
	mock *MockReviewRepository
}

func NewMockReviewRepository(ctrl *gomock.Controller) *MockReviewRepository {
	mock := &MockReviewRepository{ctrl: ctrl}
	mock.recorder = &MockReviewRepositoryMockRecorder{mock}
	return mock
}

func (m *MockReviewRepository) EXPECT() *MockReviewRepositoryMockRecorder {
	return m.recorder
}

func (m *MockReviewRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Review, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByAssignment", ctx, assignmentID)
	ret0, _ := ret[0].([]*domain.Review)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReviewRepositoryMockRecorder) ListByAssignment(ctx, assignmentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByAssignment", reflect.TypeOf((*MockReviewRepository)(nil).ListByAssignment), ctx, assignmentID)
}

func (m *MockReviewRepository) LatestByAction(ctx context.Context, assignmentID uuid.UUID, action domain.ReviewAction) (*domain.Review, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LatestByAction", ctx, assignmentID, action)
	ret0, _ := ret[0].(*domain.Review)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockReviewRepositoryMockRecorder) LatestByAction(ctx, assignmentID, action interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LatestByAction", reflect.TypeOf((*MockReviewRepository)(nil).LatestByAction), ctx, assignmentID, action)
}

type MockRoleRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRoleRepositoryMockRecorder
}

type MockRoleRepositoryMockRecorder struct {
	mock *MockRoleRepository
}

func NewMockRoleRepository(ctrl *gomock.Controller) *MockRoleRepository {
	mock := &MockRoleRepository{ctrl: ctrl}
	mock.recorder = &MockRoleRepositoryMockRecorder{mock}
	return mock
}

func (m *MockRoleRepository) EXPECT() *MockRoleRepositoryMockRecorder {
	return m.recorder
}

func (m *MockRoleRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.RoleAssignment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByUser", ctx, userID)
	ret0, _ := ret[0].(*domain.RoleAssignment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockRoleRepositoryMockRecorder) GetByUser(ctx, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByUser", reflect.TypeOf((*MockRoleRepository)(nil).GetByUser), ctx, userID)
}

type MockRoleCache struct {
	ctrl     *gomock.Controller
	recorder *MockRoleCacheMockRecorder
}

type MockRoleCacheMockRecorder struct {
	mock *MockRoleCache
}

func NewMockRoleCache(ctrl *gomock.Controller) *MockRoleCache {
	mock := &MockRoleCache{ctrl: ctrl}
	mock.recorder = &MockRoleCacheMockRecorder{mock}
	return mock
}

func (m *MockRoleCache) EXPECT() *MockRoleCacheMockRecorder {
	return m.recorder
}

func (m *MockRoleCache) Get(ctx context.Context, userID uuid.UUID) (*domain.RoleAssignment, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, userID)
	ret0, _ := ret[0].(*domain.RoleAssignment)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (mr *MockRoleCacheMockRecorder) Get(ctx, userID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockRoleCache)(nil).Get), ctx, userID)
}

func (m *MockRoleCache) Set(ctx context.Context, ra *domain.RoleAssignment) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Set", ctx, ra)
}

func (mr *MockRoleCacheMockRecorder) Set(ctx, ra interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Set", reflect.TypeOf((*MockRoleCache)(nil).Set), ctx, ra)
}
