package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"healio/internal/controllers"
	"healio/internal/mocks"
	"healio/internal/models"
	"healio/internal/nutrition"
	"healio/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mealMocks struct {
	meals *mocks.MockMealRepository
	foods *mocks.MockFoodRepository
	users *mocks.MockUserRepository
	cache *mocks.MockSummaryCache
}

func (m *mealMocks) assertExpectations(t *testing.T) {
	m.meals.AssertExpectations(t)
	m.foods.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func setupMealControllerWithMock() (*controllers.MealController, *mealMocks) {
	m := &mealMocks{
		meals: new(mocks.MockMealRepository),
		foods: new(mocks.MockFoodRepository),
		users: new(mocks.MockUserRepository),
		cache: new(mocks.MockSummaryCache),
	}
	svc := services.NewMealService(m.meals, m.foods, m.users, m.cache, zap.NewNop())
	return controllers.NewMealController(svc), m
}

var oatmeal = models.Food{
	ID: 1, Name: "Oatmeal", ServingSize: 40, ServingUnit: "grams",
	Nutrition: nutrition.Profile{Calories: 150, Protein: 5, Carbs: 27, Fat: 3, Fiber: 4},
}

func TestLogMealHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mealMocks)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful log",
			body: map[string]interface{}{
				"date": "2024-01-15T08:30:00Z", "mealType": "breakfast",
				"items": []map[string]interface{}{{"foodId": 1, "quantity": 2}},
			},
			setupMock: func(m *mealMocks) {
				m.foods.On("FindByIDs", mock.Anything, []uint{1}).Return([]models.Food{oatmeal}, nil)
				m.meals.On("Create", mock.Anything, mock.MatchedBy(func(meal *models.Meal) bool {
					return meal.UserID == 1 && meal.TotalNutrition.Calories == 300 && meal.TotalNutrition.Fiber == 8
				})).Return(nil)
				m.cache.On("InvalidateDay", mock.Anything, uint(1), mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Meal logged successfully",
		},
		{
			name: "unknown food",
			body: map[string]interface{}{
				"mealType": "lunch",
				"items":    []map[string]interface{}{{"foodId": 42, "quantity": 1}},
			},
			setupMock: func(m *mealMocks) {
				m.foods.On("FindByIDs", mock.Anything, []uint{42}).Return([]models.Food{}, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Failed to log meal",
		},
		{
			name: "invalid meal type",
			body: map[string]interface{}{
				"mealType": "brunch",
				"items":    []map[string]interface{}{{"foodId": 1, "quantity": 1}},
			},
			setupMock:      func(m *mealMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name:           "no items",
			body:           map[string]interface{}{"mealType": "dinner", "items": []interface{}{}},
			setupMock:      func(m *mealMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name: "zero quantity",
			body: map[string]interface{}{
				"mealType": "snack",
				"items":    []map[string]interface{}{{"foodId": 1, "quantity": 0}},
			},
			setupMock:      func(m *mealMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name: "bad date",
			body: map[string]interface{}{
				"date": "yesterday", "mealType": "snack",
				"items": []map[string]interface{}{{"foodId": 1, "quantity": 1}},
			},
			setupMock:      func(m *mealMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, m := setupMealControllerWithMock()
			tt.setupMock(m)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(1))
			router.POST("/meals", controller.LogMeal)

			w := performRequest(router, "POST", "/meals", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decodeResponse(t, w)["message"], tt.expectedMsg)

			m.assertExpectations(t)
		})
	}
}

func TestGetMealsHandler(t *testing.T) {
	controller, m := setupMealControllerWithMock()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	from, to := services.DayBounds(day)

	m.meals.On("FindByUserAndDateRange", mock.Anything, uint(1), from, to).Return([]models.Meal{
		{ID: 1, MealType: models.MealTypeBreakfast, TotalNutrition: nutrition.Profile{Calories: 300, Protein: 10}},
		{ID: 2, MealType: models.MealTypeLunch, TotalNutrition: nutrition.Profile{Calories: 700, Protein: 30}},
	}, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.GET("/meals", controller.GetMeals)

	w := performRequest(router, "GET", "/meals?date=2024-01-15", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "2024-01-15", data["date"])
	assert.Len(t, data["meals"], 2)
	total := data["dailyTotal"].(map[string]interface{})
	assert.Equal(t, 1000.0, total["calories"])
	assert.Equal(t, 40.0, total["protein"])
	assert.Equal(t, 0.0, total["vitaminC"])

	m.assertExpectations(t)
}

func TestGetMealsHandlerBadDate(t *testing.T) {
	controller, _ := setupMealControllerWithMock()
	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.GET("/meals", controller.GetMeals)

	w := performRequest(router, "GET", "/meals?date=15-01-2024", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeResponse(t, w)["message"], "Invalid date")
}

func TestGetSummaryHandler(t *testing.T) {
	user := models.NewUser("jane@example.com", "Jane")
	user.ID = 1
	meals := []models.Meal{{TotalNutrition: nutrition.Profile{Calories: 1800, Protein: 40, Carbs: 200, Fat: 60}}}

	tests := []struct {
		name           string
		setupMock      func(*mealMocks)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "summary against stored goals",
			setupMock: func(m *mealMocks) {
				m.cache.On("GetSummary", mock.Anything, uint(1), "2024-01-15").Return(nil, false, nil)
				m.cache.On("Version", mock.Anything, uint(1), "2024-01-15").Return("0/0", nil)
				m.users.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
				m.meals.On("FindByUserAndDateRange", mock.Anything, uint(1), mock.Anything, mock.Anything).Return(meals, nil)
				m.cache.On("SetSummary", mock.Anything, uint(1), "2024-01-15", "0/0", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Summary retrieved successfully",
		},
		{
			name: "zero goal",
			setupMock: func(m *mealMocks) {
				noCalories := *user
				noCalories.DailyCalorieGoal = 0
				m.cache.On("GetSummary", mock.Anything, uint(1), "2024-01-15").Return(nil, false, nil)
				m.cache.On("Version", mock.Anything, uint(1), "2024-01-15").Return("0/0", nil)
				m.users.On("FindByID", mock.Anything, uint(1)).Return(&noCalories, nil)
				m.meals.On("FindByUserAndDateRange", mock.Anything, uint(1), mock.Anything, mock.Anything).Return(meals, nil)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "Failed to compute summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, m := setupMealControllerWithMock()
			tt.setupMock(m)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(1))
			router.GET("/meals/summary", controller.GetSummary)

			w := performRequest(router, "GET", "/meals/summary?date=2024-01-15", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeResponse(t, w)
			assert.Contains(t, response["message"], tt.expectedMsg)
			if tt.expectedStatus == http.StatusOK {
				data := response["data"].(map[string]interface{})
				remaining := data["remaining"].(map[string]interface{})
				percentages := data["percentages"].(map[string]interface{})
				assert.Equal(t, 200.0, remaining["calories"])
				assert.Equal(t, 86.0, percentages["fat"])
			} else {
				assert.Contains(t, response["error"], "calories")
			}

			m.assertExpectations(t)
		})
	}
}

func TestUpdateMealHandler(t *testing.T) {
	stored := func() *models.Meal {
		meal := &models.Meal{ID: 5, UserID: 1, Date: time.Date(2024, 1, 15, 8, 0, 0, 0, time.Local), MealType: models.MealTypeBreakfast}
		meal.SetItems([]nutrition.Item{{FoodID: 2, FoodName: "Toast", Quantity: 1, Nutrition: nutrition.Profile{Calories: 90}}})
		return meal
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mealMocks)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "replace items",
			body: map[string]interface{}{"items": []map[string]interface{}{{"foodId": 1, "quantity": 1}}},
			setupMock: func(m *mealMocks) {
				m.meals.On("FindByID", mock.Anything, uint(1), uint(5)).Return(stored(), nil)
				m.foods.On("FindByIDs", mock.Anything, []uint{1}).Return([]models.Food{oatmeal}, nil)
				m.meals.On("Update", mock.Anything, mock.MatchedBy(func(meal *models.Meal) bool {
					return len(meal.Items) == 1 && meal.Items[0].FoodName == "Oatmeal" && meal.TotalNutrition.Calories == 150
				}), true).Return(nil)
				m.cache.On("InvalidateDay", mock.Anything, uint(1), "2024-01-15").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Meal updated successfully",
		},
		{
			name: "notes only",
			body: map[string]interface{}{"notes": "extra honey"},
			setupMock: func(m *mealMocks) {
				m.meals.On("FindByID", mock.Anything, uint(1), uint(5)).Return(stored(), nil)
				m.meals.On("Update", mock.Anything, mock.MatchedBy(func(meal *models.Meal) bool {
					return meal.Notes == "extra honey" && meal.TotalNutrition.Calories == 90
				}), false).Return(nil)
				m.cache.On("InvalidateDay", mock.Anything, uint(1), "2024-01-15").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Meal updated successfully",
		},
		{
			name: "other user's meal",
			body: map[string]interface{}{"notes": "x"},
			setupMock: func(m *mealMocks) {
				m.meals.On("FindByID", mock.Anything, uint(1), uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Failed to update meal",
		},
		{
			name:           "invalid meal type",
			body:           map[string]interface{}{"mealType": "elevenses"},
			setupMock:      func(m *mealMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, m := setupMealControllerWithMock()
			tt.setupMock(m)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(1))
			router.PUT("/meals/:id", controller.UpdateMeal)

			w := performRequest(router, "PUT", "/meals/5", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decodeResponse(t, w)["message"], tt.expectedMsg)

			m.assertExpectations(t)
		})
	}
}

func TestDeleteMealHandler(t *testing.T) {
	controller, m := setupMealControllerWithMock()
	m.meals.On("FindByID", mock.Anything, uint(1), uint(5)).
		Return(&models.Meal{ID: 5, UserID: 1, Date: time.Date(2024, 1, 15, 8, 0, 0, 0, time.Local)}, nil)
	m.meals.On("Delete", mock.Anything, uint(1), uint(5)).Return(nil)
	m.cache.On("InvalidateDay", mock.Anything, uint(1), "2024-01-15").Return(nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.DELETE("/meals/:id", controller.DeleteMeal)

	w := performRequest(router, "DELETE", "/meals/5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeResponse(t, w)["message"], "Meal deleted successfully")
	m.assertExpectations(t)
}

func TestMealRoutesRequireUser(t *testing.T) {
	controller, _ := setupMealControllerWithMock()
	router := setupTestRouter()
	router.GET("/meals/:id", controller.GetMeal)

	w := performRequest(router, "GET", "/meals/1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
