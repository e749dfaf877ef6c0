package controllers_test

import (
	"net/http"
	"testing"

	"healio/internal/controllers"
	"healio/internal/mocks"
	"healio/internal/models"
	"healio/internal/nutrition"
	"healio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func setupFoodControllerWithMock() (*controllers.FoodController, *mocks.MockFoodRepository) {
	mockRepo := new(mocks.MockFoodRepository)
	return controllers.NewFoodController(mockRepo), mockRepo
}

func TestListFoods(t *testing.T) {
	foods := []models.Food{{ID: 1, Name: "Apple", Category: "Fruits"}, {ID: 2, Name: "Avocado", Category: "Fruits"}}

	tests := []struct {
		name          string
		query         string
		filter        repository.FoodFilter
		total         int64
		expectedPages float64
		expectedLimit float64
	}{
		{
			name:          "defaults",
			query:         "",
			filter:        repository.FoodFilter{Page: 1, Limit: 20},
			total:         2,
			expectedPages: 1,
			expectedLimit: 20,
		},
		{
			name:          "search and paging",
			query:         "?search=av&category=Fruits&page=2&limit=1",
			filter:        repository.FoodFilter{Search: "av", Category: "Fruits", Page: 2, Limit: 1},
			total:         3,
			expectedPages: 3,
			expectedLimit: 1,
		},
		{
			name:          "limit capped and bad page ignored",
			query:         "?page=-4&limit=1000",
			filter:        repository.FoodFilter{Page: 1, Limit: 100},
			total:         250,
			expectedPages: 3,
			expectedLimit: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockRepo := setupFoodControllerWithMock()
			mockRepo.On("List", mock.Anything, tt.filter).Return(foods, tt.total, nil)

			router := setupTestRouter()
			router.GET("/foods", controller.ListFoods)

			w := performRequest(router, "GET", "/foods"+tt.query, nil)
			assert.Equal(t, http.StatusOK, w.Code)

			response := decodeResponse(t, w)
			assert.Contains(t, response["message"], "Foods retrieved successfully")
			assert.Len(t, response["data"], 2)
			pagination := response["pagination"].(map[string]interface{})
			assert.Equal(t, tt.expectedPages, pagination["pages"])
			assert.Equal(t, tt.expectedLimit, pagination["limit"])
			assert.Equal(t, float64(tt.total), pagination["total"])

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetCategories(t *testing.T) {
	controller, mockRepo := setupFoodControllerWithMock()
	mockRepo.On("Categories", mock.Anything).Return([]string{"Dairy", "Fruits", "Grains"}, nil)

	router := setupTestRouter()
	router.GET("/foods/categories", controller.GetCategories)

	w := performRequest(router, "GET", "/foods/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"Dairy", "Fruits", "Grains"}, decodeResponse(t, w)["data"])
}

func TestGetFood(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockFoodRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "found",
			path: "/foods/1",
			setupMock: func(m *mocks.MockFoodRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&models.Food{ID: 1, Name: "Apple"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Food retrieved successfully",
		},
		{
			name: "not found",
			path: "/foods/9",
			setupMock: func(m *mocks.MockFoodRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Food not found",
		},
		{
			name:           "invalid id",
			path:           "/foods/abc",
			setupMock:      func(m *mocks.MockFoodRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockRepo := setupFoodControllerWithMock()
			tt.setupMock(mockRepo)

			router := setupTestRouter()
			router.GET("/foods/:id", controller.GetFood)

			w := performRequest(router, "GET", tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decodeResponse(t, w)["message"], tt.expectedMsg)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCreateFood(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockFoodRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful creation",
			body: map[string]interface{}{
				"name": "Greek Yogurt", "category": "Dairy", "servingSize": 170,
				"nutrition": map[string]interface{}{"calories": 100, "protein": 17, "carbs": 6, "fat": 0.7, "calcium": 187},
			},
			setupMock: func(m *mocks.MockFoodRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(f *models.Food) bool {
					return f.Name == "Greek Yogurt" && f.ServingUnit == "grams" &&
						f.Nutrition == nutrition.Profile{Calories: 100, Protein: 17, Carbs: 6, Fat: 0.7, Calcium: 187}
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Food created successfully",
		},
		{
			name: "negative nutrient",
			body: map[string]interface{}{
				"name": "Bad", "category": "Dairy", "servingSize": 1,
				"nutrition": map[string]interface{}{"calories": -5, "protein": 0, "carbs": 0, "fat": 0},
			},
			setupMock:      func(m *mocks.MockFoodRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name: "zero macros are accepted",
			body: map[string]interface{}{
				"name": "Water", "category": "Drinks", "servingSize": 250, "servingUnit": "ml",
				"nutrition": map[string]interface{}{"calories": 0, "protein": 0, "carbs": 0, "fat": 0},
			},
			setupMock: func(m *mocks.MockFoodRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(f *models.Food) bool {
					return f.Name == "Water" && f.Nutrition == nutrition.Profile{}
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Food created successfully",
		},
		{
			name: "missing nutrition",
			body: map[string]interface{}{
				"name": "Mystery", "category": "Snacks", "servingSize": 30,
			},
			setupMock:      func(m *mocks.MockFoodRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name: "missing fat",
			body: map[string]interface{}{
				"name": "Crackers", "category": "Snacks", "servingSize": 30,
				"nutrition": map[string]interface{}{"calories": 130, "protein": 3, "carbs": 20},
			},
			setupMock:      func(m *mocks.MockFoodRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name:           "missing name",
			body:           map[string]interface{}{"category": "Dairy", "servingSize": 1},
			setupMock:      func(m *mocks.MockFoodRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockRepo := setupFoodControllerWithMock()
			tt.setupMock(mockRepo)

			router := setupTestRouter()
			router.POST("/foods", controller.CreateFood)

			w := performRequest(router, "POST", "/foods", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decodeResponse(t, w)["message"], tt.expectedMsg)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateFood(t *testing.T) {
	controller, mockRepo := setupFoodControllerWithMock()
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&models.Food{ID: 1, Name: "Apple", Category: "Fruits"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(f *models.Food) bool {
		return f.ID == 1 && f.Name == "Green Apple" && f.Nutrition.Calories == 80
	})).Return(nil)

	router := setupTestRouter()
	router.PUT("/foods/:id", controller.UpdateFood)

	w := performRequest(router, "PUT", "/foods/1", map[string]interface{}{
		"name": "Green Apple", "category": "Fruits", "servingSize": 1, "servingUnit": "piece",
		"nutrition": map[string]interface{}{"calories": 80, "protein": 0.4, "carbs": 21, "fat": 0.2},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestDeleteFood(t *testing.T) {
	tests := []struct {
		name           string
		repoErr        error
		expectedStatus int
	}{
		{"deleted", nil, http.StatusOK},
		{"missing", gorm.ErrRecordNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockRepo := setupFoodControllerWithMock()
			mockRepo.On("Delete", mock.Anything, uint(3)).Return(tt.repoErr)

			router := setupTestRouter()
			router.DELETE("/foods/:id", controller.DeleteFood)

			w := performRequest(router, "DELETE", "/foods/3", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}
