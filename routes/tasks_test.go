package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"organizely/organizer/database"
	"organizely/organizer/models"
	"organizely/organizer/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type MockTaskService struct{}

func (m *MockTaskService) CreateTask(db *database.Database, taskData map[string]interface{}) (models.Task, error) {
	title, _ := taskData["title"].(string)
	if title == "" {
		return models.Task{}, services.ErrTitleRequired
	}

	userIDStr, _ := taskData["user_id"].(string)
	var userID uuid.UUID
	if userIDStr != "" {
		userID = uuid.Must(uuid.Parse(userIDStr))
	}

	return models.Task{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    title,
		Priority: models.DefaultPriorityLevel,
	}, nil
}

func (m *MockTaskService) GetTaskById(db *database.Database, id string) (models.Task, error) {
	switch id {
	case ownedTaskID.String():
		return models.Task{
			ID:        ownedTaskID,
			UserID:    testUserID,
			Title:     "Test Task",
			Latitude:  51.5237,
			Longitude: -0.1585,
		}, nil
	case foreignTaskID.String():
		return models.Task{ID: foreignTaskID, UserID: foreignUserID, Title: "Foreign Task"}, nil
	}
	return models.Task{}, services.ErrTaskNotFound
}

func (m *MockTaskService) UpdateTask(db *database.Database, id string, updatedData map[string]interface{}) (models.Task, error) {
	if id != ownedTaskID.String() {
		return models.Task{}, services.ErrTaskNotFound
	}
	title, _ := updatedData["title"].(string)
	return models.Task{ID: ownedTaskID, UserID: testUserID, Title: title}, nil
}

func (m *MockTaskService) DeleteTask(db *database.Database, id string) error {
	if id != ownedTaskID.String() {
		return services.ErrTaskNotFound
	}
	return nil
}

func (m *MockTaskService) ToggleCompletion(db *database.Database, id string) (models.Task, error) {
	if id != ownedTaskID.String() {
		return models.Task{}, services.ErrTaskNotFound
	}
	return models.Task{ID: ownedTaskID, UserID: testUserID, Title: "Test Task", IsCompleted: true}, nil
}

func (m *MockTaskService) GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error) {
	tasks := []models.Task{
		{ID: ownedTaskID, UserID: testUserID, Title: "Test Task", IsCompleted: false},
		{ID: foreignTaskID, UserID: testUserID, Title: "Test Task 2", IsCompleted: true},
	}

	if completed, ok := params["completed"].(string); ok && completed != "" {
		isCompleted := completed == "true"
		var filtered []models.Task
		for _, task := range tasks {
			if task.IsCompleted == isCompleted {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}

	return tasks, nil
}

type stubGeocoder struct {
	address string
}

func (g *stubGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	return g.address
}

func TestCreateTask(t *testing.T) {
	router, apiGroup := newTestRouter()
	db := &database.Database{}
	mockService := &MockTaskService{}
	RegisterTaskRoutes(apiGroup, db, mockService, nil, nil)

	t.Run("Valid JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/tasks", bytes.NewBuffer([]byte(`{"title":"Test Task"}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Missing Title", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/tasks", bytes.NewBuffer([]byte(`{"description":"no title"}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetTaskById(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterTaskRoutes(apiGroup, &database.Database{}, &MockTaskService{}, nil, nil)

	t.Run("Task Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/tasks/"+uuid.New().String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Task Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/tasks/"+ownedTaskID.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Test Task")
	})

	t.Run("Foreign Task Forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/tasks/"+foreignTaskID.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUpdateTask(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterTaskRoutes(apiGroup, &database.Database{}, &MockTaskService{}, nil, nil)

	t.Run("Task Updated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/tasks/"+ownedTaskID.String(), bytes.NewBuffer([]byte(`{"title":"Updated Task"}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Updated Task")
	})

	t.Run("Foreign Task Forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/tasks/"+foreignTaskID.String(), bytes.NewBuffer([]byte(`{"title":"Updated Task"}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterTaskRoutes(apiGroup, &database.Database{}, &MockTaskService{}, nil, nil)

	t.Run("Task Deleted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/tasks/"+ownedTaskID.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Task Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/tasks/"+uuid.New().String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToggleTask(t *testing.T) {
	router, apiGroup := newTestRouter()
	mockService := &MockTaskService{}
	scheduler := services.NewCompletionScheduler(&database.Database{}, mockService, time.Hour)
	RegisterTaskRoutes(apiGroup, &database.Database{}, mockService, scheduler, nil)

	t.Run("Immediate Toggle", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/tasks/"+ownedTaskID.String()+"/toggle", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"is_completed":true`)
	})

	t.Run("Deferred Toggle Schedules", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/tasks/"+ownedTaskID.String()+"/toggle?deferred=true", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"scheduled":true`)
	})

	t.Run("Second Deferred Toggle Cancels", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/tasks/"+ownedTaskID.String()+"/toggle?deferred=true", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"scheduled":false`)
	})
}

func TestGetTaskLocation(t *testing.T) {
	router, apiGroup := newTestRouter()
	geocoder := &stubGeocoder{address: "221B Baker Street, London"}
	RegisterTaskRoutes(apiGroup, &database.Database{}, &MockTaskService{}, nil, geocoder)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/tasks/"+ownedTaskID.String()+"/location", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "221B Baker Street, London")
}

func TestGetTasks(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterTaskRoutes(apiGroup, &database.Database{}, &MockTaskService{}, nil, nil)

	t.Run("Get Tasks With No Filters", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/tasks", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Test Task")
		assert.Contains(t, w.Body.String(), "Test Task 2")
	})

	t.Run("Get Tasks By Completion Status", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/tasks?completed=true", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Test Task 2")
		assert.NotContains(t, w.Body.String(), `"Test Task"`)
	})
}
