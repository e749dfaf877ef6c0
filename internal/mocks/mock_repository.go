package mocks

import (
	"context"
	"time"

	"healio/internal/models"
	"healio/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Shared MockFoodRepository
type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) List(ctx context.Context, filter repository.FoodFilter) ([]models.Food, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Food), args.Get(1).(int64), args.Error(2)
}

func (m *MockFoodRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFoodRepository) FindByID(ctx context.Context, id uint) (*models.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Food), args.Error(1)
}

func (m *MockFoodRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Food, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Food), args.Error(1)
}

func (m *MockFoodRepository) Create(ctx context.Context, food *models.Food) error {
	args := m.Called(ctx, food)
	return args.Error(0)
}

func (m *MockFoodRepository) Update(ctx context.Context, food *models.Food) error {
	args := m.Called(ctx, food)
	return args.Error(0)
}

func (m *MockFoodRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Shared MockMealRepository
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) Create(ctx context.Context, meal *models.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *MockMealRepository) FindByID(ctx context.Context, userID, id uint) (*models.Meal, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealRepository) FindByUserAndDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealRepository) Update(ctx context.Context, meal *models.Meal, replaceItems bool) error {
	args := m.Called(ctx, meal, replaceItems)
	return args.Error(0)
}

func (m *MockMealRepository) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
