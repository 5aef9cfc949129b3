package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"meal-server/internal/models"
	"meal-server/internal/service"
)

// MockDraftService is a mock type for the DraftService type
type MockDraftService struct {
	mock.Mock
}

// NewMockDraftService creates a new instance of MockDraftService.
func NewMockDraftService(t interface {
	mock.TestingT
	Helper()
}) *MockDraftService {
	m := &MockDraftService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

// CreateDraft provides a mock function with given fields: ctx, userID, description
func (_m *MockDraftService) CreateDraft(ctx context.Context, userID, description string) (*models.Draft, error) {
	ret := _m.Called(ctx, userID, description)

	var r0 *models.Draft
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Draft)
	}
	return r0, ret.Error(1)
}

// GetDraft provides a mock function with given fields: ctx, id, userID
func (_m *MockDraftService) GetDraft(ctx context.Context, id uuid.UUID, userID string) (*models.Draft, error) {
	ret := _m.Called(ctx, id, userID)

	var r0 *models.Draft
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Draft)
	}
	return r0, ret.Error(1)
}

// ListDrafts provides a mock function with given fields: ctx, userID, limit, cursor
func (_m *MockDraftService) ListDrafts(ctx context.Context, userID string, limit int, cursor string) (*models.DraftPage, error) {
	ret := _m.Called(ctx, userID, limit, cursor)

	var r0 *models.DraftPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.DraftPage)
	}
	return r0, ret.Error(1)
}

// DeleteDraft provides a mock function with given fields: ctx, id, userID
func (_m *MockDraftService) DeleteDraft(ctx context.Context, id uuid.UUID, userID string) error {
	ret := _m.Called(ctx, id, userID)
	return ret.Error(0)
}

// AddComponent provides a mock function with given fields: ctx, id, userID, description
func (_m *MockDraftService) AddComponent(ctx context.Context, id uuid.UUID, userID, description string) (*models.Draft, error) {
	ret := _m.Called(ctx, id, userID, description)

	var r0 *models.Draft
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Draft)
	}
	return r0, ret.Error(1)
}

// RemoveComponent provides a mock function with given fields: ctx, id, userID, componentID
func (_m *MockDraftService) RemoveComponent(ctx context.Context, id uuid.UUID, userID, componentID string) (*models.Draft, error) {
	ret := _m.Called(ctx, id, userID, componentID)

	var r0 *models.Draft
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Draft)
	}
	return r0, ret.Error(1)
}

var _ service.DraftService = (*MockDraftService)(nil)

// MockMealService is a mock type for the MealService type
type MockMealService struct {
	mock.Mock
}

// NewMockMealService creates a new instance of MockMealService.
func NewMockMealService(t interface {
	mock.TestingT
	Helper()
}) *MockMealService {
	m := &MockMealService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

// SaveFromDraft provides a mock function with given fields: ctx, userID, draftID
func (_m *MockMealService) SaveFromDraft(ctx context.Context, userID string, draftID uuid.UUID) (*models.StoredMeal, error) {
	ret := _m.Called(ctx, userID, draftID)

	var r0 *models.StoredMeal
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.StoredMeal)
	}
	return r0, ret.Error(1)
}

// ListMeals provides a mock function with given fields: ctx, userID, limit, next
func (_m *MockMealService) ListMeals(ctx context.Context, userID string, limit int, next string) (*models.MealPage, bool, error) {
	ret := _m.Called(ctx, userID, limit, next)

	var r0 *models.MealPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.MealPage)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

// GetMeal provides a mock function with given fields: ctx, userID, mealID
func (_m *MockMealService) GetMeal(ctx context.Context, userID, mealID string) (*models.StoredMeal, error) {
	ret := _m.Called(ctx, userID, mealID)

	var r0 *models.StoredMeal
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.StoredMeal)
	}
	return r0, ret.Error(1)
}

var _ service.MealService = (*MockMealService)(nil)
