package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"meal-server/internal/generator"
	"meal-server/internal/models"
	"meal-server/internal/service"
)

// MockGenerator is a mock type for the Generator type
type MockGenerator struct {
	mock.Mock
}

// NewMockGenerator creates a new instance of MockGenerator.
func NewMockGenerator(t interface {
	mock.TestingT
	Helper()
}) *MockGenerator {
	m := &MockGenerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

// GenerateMeal provides a mock function with given fields: ctx, description
func (_m *MockGenerator) GenerateMeal(ctx context.Context, description string) (*models.Meal, error) {
	ret := _m.Called(ctx, description)

	var r0 *models.Meal
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Meal)
	}

	return r0, ret.Error(1)
}

// GenerateComponent provides a mock function with given fields: ctx, meal, description
func (_m *MockGenerator) GenerateComponent(ctx context.Context, meal *models.Meal, description string) (*models.Component, error) {
	ret := _m.Called(ctx, meal, description)

	var r0 *models.Component
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Component)
	}

	return r0, ret.Error(1)
}

var _ generator.Generator = (*MockGenerator)(nil)

// MockBackgroundRunner is a mock type for the BackgroundRunner type
type MockBackgroundRunner struct {
	mock.Mock
}

// NewMockBackgroundRunner creates a new instance of MockBackgroundRunner.
func NewMockBackgroundRunner(t interface {
	mock.TestingT
	Helper()
}) *MockBackgroundRunner {
	m := &MockBackgroundRunner{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

// SpawnGenerate provides a mock function with given fields: draftID, input
func (_m *MockBackgroundRunner) SpawnGenerate(draftID uuid.UUID, input string) {
	_m.Called(draftID, input)
}

// SpawnAddComponent provides a mock function with given fields: draftID, description
func (_m *MockBackgroundRunner) SpawnAddComponent(draftID uuid.UUID, description string) {
	_m.Called(draftID, description)
}

var _ service.BackgroundRunner = (*MockBackgroundRunner)(nil)
