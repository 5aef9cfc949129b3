package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"meal-server/internal/models"
	"meal-server/internal/repository"
)

// MockMealStore is a mock type for the MealStore type
type MockMealStore struct {
	mock.Mock
}

// NewMockMealStore creates a new instance of MockMealStore.
func NewMockMealStore(t interface {
	mock.TestingT
	Helper()
}) *MockMealStore {
	m := &MockMealStore{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

// Save provides a mock function with given fields: ctx, meal
func (_m *MockMealStore) Save(ctx context.Context, meal *models.StoredMeal) (*models.StoredMeal, error) {
	ret := _m.Called(ctx, meal)

	var r0 *models.StoredMeal
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.StoredMeal)
	}

	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockMealStore) GetByID(ctx context.Context, id string) (*models.StoredMeal, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.StoredMeal
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.StoredMeal)
	}

	return r0, ret.Error(1)
}

// ListByUser provides a mock function with given fields: ctx, userID, limit, next
func (_m *MockMealStore) ListByUser(ctx context.Context, userID string, limit int, next string) (*models.MealPage, error) {
	ret := _m.Called(ctx, userID, limit, next)

	var r0 *models.MealPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.MealPage)
	}

	return r0, ret.Error(1)
}

var _ repository.MealStore = (*MockMealStore)(nil)

// MockMealListCache is a mock type for the MealListCache type
type MockMealListCache struct {
	mock.Mock
}

// NewMockMealListCache creates a new instance of MockMealListCache.
func NewMockMealListCache(t interface {
	mock.TestingT
	Helper()
}) *MockMealListCache {
	m := &MockMealListCache{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

// Get provides a mock function with given fields: ctx, userID, limit, next
func (_m *MockMealListCache) Get(ctx context.Context, userID string, limit int, next string) (*models.MealPage, bool) {
	ret := _m.Called(ctx, userID, limit, next)

	var r0 *models.MealPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.MealPage)
	}

	return r0, ret.Bool(1)
}

// Set provides a mock function with given fields: ctx, userID, limit, next, page
func (_m *MockMealListCache) Set(ctx context.Context, userID string, limit int, next string, page *models.MealPage) {
	_m.Called(ctx, userID, limit, next, page)
}

// Invalidate provides a mock function with given fields: ctx, userID
func (_m *MockMealListCache) Invalidate(ctx context.Context, userID string) {
	_m.Called(ctx, userID)
}

var _ repository.MealListCache = (*MockMealListCache)(nil)
