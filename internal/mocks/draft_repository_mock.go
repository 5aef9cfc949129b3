package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"meal-server/internal/models"
	"meal-server/internal/repository"
)

// MockDraftRepository is a mock type for the DraftRepository type
type MockDraftRepository struct {
	mock.Mock
}

// NewMockDraftRepository creates a new instance of MockDraftRepository.
func NewMockDraftRepository(t interface {
	mock.TestingT
	Helper()
}) *MockDraftRepository {
	m := &MockDraftRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

// Create provides a mock function with given fields: ctx, draft
func (_m *MockDraftRepository) Create(ctx context.Context, draft *models.Draft) error {
	ret := _m.Called(ctx, draft)
	return ret.Error(0)
}

// Get provides a mock function with given fields: ctx, id
func (_m *MockDraftRepository) Get(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Draft
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Draft); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Draft)
		}
	}

	return r0, ret.Error(1)
}

// Update provides a mock function with given fields: ctx, draft
func (_m *MockDraftRepository) Update(ctx context.Context, draft *models.Draft) error {
	ret := _m.Called(ctx, draft)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, draft
func (_m *MockDraftRepository) Delete(ctx context.Context, draft *models.Draft) error {
	ret := _m.Called(ctx, draft)
	return ret.Error(0)
}

// ListByUser provides a mock function with given fields: ctx, userID, limit, cursor
func (_m *MockDraftRepository) ListByUser(ctx context.Context, userID string, limit int, cursor string) (*models.DraftPage, error) {
	ret := _m.Called(ctx, userID, limit, cursor)

	var r0 *models.DraftPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.DraftPage)
	}

	return r0, ret.Error(1)
}

var _ repository.DraftRepository = (*MockDraftRepository)(nil)
