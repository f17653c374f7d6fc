package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"organizely/organizer/database"
	"organizely/organizer/models"
	"organizely/organizer/services"
	"organizely/organizer/views"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	ownedProjectID   = uuid.MustParse("223e4567-e89b-12d3-a456-426614174000")
	foreignProjectID = uuid.MustParse("223e4567-e89b-12d3-a456-426614174001")
)

type MockProjectService struct{}

func (m *MockProjectService) CreateProject(db *database.Database, projectData map[string]interface{}) (models.Project, error) {
	title, _ := projectData["title"].(string)
	if title == "" {
		return models.Project{}, services.ErrTitleRequired
	}
	return models.Project{ID: uuid.New(), UserID: testUserID, Title: title}, nil
}

func (m *MockProjectService) GetProjectById(db *database.Database, id string) (models.Project, error) {
	switch id {
	case ownedProjectID.String():
		return models.Project{ID: ownedProjectID, UserID: testUserID, Title: "Renovate kitchen"}, nil
	case foreignProjectID.String():
		return models.Project{ID: foreignProjectID, UserID: foreignUserID, Title: "Someone else's plan"}, nil
	}
	return models.Project{}, services.ErrProjectNotFound
}

func (m *MockProjectService) UpdateProject(db *database.Database, id string, updatedData map[string]interface{}) (models.Project, error) {
	title, _ := updatedData["title"].(string)
	return models.Project{ID: ownedProjectID, UserID: testUserID, Title: title}, nil
}

func (m *MockProjectService) DeleteProject(db *database.Database, id string) error {
	return nil
}

func (m *MockProjectService) GetProjects(db *database.Database, params map[string]interface{}) ([]models.Project, error) {
	return []models.Project{
		{ID: ownedProjectID, UserID: testUserID, Title: "Beta project", Priority: 3},
		{ID: uuid.New(), UserID: testUserID, Title: "Alpha project", Priority: 5},
	}, nil
}

func (m *MockProjectService) GetProjectStats(db *database.Database, id string, asOf time.Time) (views.ProjectStats, error) {
	return views.ProjectStats{Overdue: 1, Open: 2, Completed: 3}, nil
}

func TestGetProjects_SortedByTitle(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterProjectRoutes(apiGroup, &database.Database{}, &MockProjectService{}, &MockTaskService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/projects?sort=title", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "Alpha project"), strings.Index(body, "Beta project"))
}

func TestCreateProject(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterProjectRoutes(apiGroup, &database.Database{}, &MockProjectService{}, &MockTaskService{})

	t.Run("Valid JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/projects", bytes.NewBuffer([]byte(`{"title":"Plan vacation"}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Missing Title", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/projects", bytes.NewBuffer([]byte(`{}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetProjectById(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterProjectRoutes(apiGroup, &database.Database{}, &MockProjectService{}, &MockTaskService{})

	t.Run("Project Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/projects/"+ownedProjectID.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Renovate kitchen")
	})

	t.Run("Project Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/projects/"+uuid.New().String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Foreign Project Forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/projects/"+foreignProjectID.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDeleteProject(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterProjectRoutes(apiGroup, &database.Database{}, &MockProjectService{}, &MockTaskService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/v1/projects/"+ownedProjectID.String(), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetProjectStats(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterProjectRoutes(apiGroup, &database.Database{}, &MockProjectService{}, &MockTaskService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/projects/"+ownedProjectID.String()+"/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"overdue":1`)
	assert.Contains(t, w.Body.String(), `"open":2`)
	assert.Contains(t, w.Body.String(), `"completed":3`)
	assert.Contains(t, w.Body.String(), `"total":6`)
}

func TestGetProjectTasks_Buckets(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterProjectRoutes(apiGroup, &database.Database{}, &MockProjectService{}, &bucketTaskService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/projects/"+ownedProjectID.String()+"/tasks", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Overdue item")
	assert.Contains(t, body, "Open item")
	assert.Contains(t, body, "Done item")
	assert.Less(t, strings.Index(body, "Overdue item"), strings.Index(body, "Open item"))
}

// bucketTaskService returns one task per completion bucket.
type bucketTaskService struct {
	MockTaskService
}

func (m *bucketTaskService) GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error) {
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)
	return []models.Task{
		{ID: uuid.New(), UserID: testUserID, Title: "Overdue item", DueDate: &past},
		{ID: uuid.New(), UserID: testUserID, Title: "Open item", DueDate: &future},
		{ID: uuid.New(), UserID: testUserID, Title: "Done item", IsCompleted: true},
	}, nil
}
