package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"organizely/organizer/database"
	"organizely/organizer/models"
	"organizely/organizer/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// todayTaskService serves a fixed snapshot spanning today, tomorrow and an
// overdue yesterday.
type todayTaskService struct {
	MockTaskService
}

func (m *todayTaskService) GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error) {
	laterToday := time.Now().Add(time.Minute)
	tomorrow := time.Now().AddDate(0, 0, 1)
	yesterday := time.Now().AddDate(0, 0, -1)
	return []models.Task{
		{ID: uuid.New(), UserID: testUserID, Title: "Due later today", DueDate: &laterToday},
		{ID: uuid.New(), UserID: testUserID, Title: "Done today", DueDate: &laterToday, IsCompleted: true},
		{ID: uuid.New(), UserID: testUserID, Title: "Due tomorrow", DueDate: &tomorrow},
		{ID: uuid.New(), UserID: testUserID, Title: "Missed yesterday", DueDate: &yesterday},
		{ID: uuid.New(), UserID: testUserID, Title: "No due date"},
	}, nil
}

// sortableTodayService serves two open tasks whose priority order and title
// order disagree.
type sortableTodayService struct {
	MockTaskService
}

func (m *sortableTodayService) GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error) {
	laterToday := time.Now().Add(time.Minute)
	return []models.Task{
		{ID: uuid.New(), UserID: testUserID, Title: "Zulu chores", Priority: 5, DueDate: &laterToday},
		{ID: uuid.New(), UserID: testUserID, Title: "Alpha chores", Priority: 1, DueDate: &laterToday},
	}, nil
}

func TestGetTodayView(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterViewRoutes(apiGroup, &database.Database{}, &todayTaskService{}, models.DefaultReferenceSet(), services.NewSortPreferenceStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/views/today", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Due later today")
	assert.Contains(t, body, "Done today")
	assert.NotContains(t, body, "Due tomorrow")
	assert.NotContains(t, body, "Missed yesterday")
	assert.NotContains(t, body, "No due date")
}

func TestGetOverdueView(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterViewRoutes(apiGroup, &database.Database{}, &todayTaskService{}, models.DefaultReferenceSet(), services.NewSortPreferenceStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/views/overdue", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Missed yesterday")
	assert.NotContains(t, body, "Due tomorrow")
	assert.NotContains(t, body, "Done today")
}

func TestSortPreference(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterViewRoutes(apiGroup, &database.Database{}, &sortableTodayService{}, models.DefaultReferenceSet(), services.NewSortPreferenceStore())

	t.Run("Default State", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/views/sort", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"key":"priority"`)
	})

	t.Run("Default Order Is Priority Descending", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/views/today", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Less(t, strings.Index(body, "Zulu chores"), strings.Index(body, "Alpha chores"))
	})

	t.Run("Toggle Activates Title Ascending", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/views/sort/toggle?key=title", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"key":"title"`)
		assert.Contains(t, w.Body.String(), `"title_ascending":true`)
	})

	t.Run("Views Follow The Toggled State", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/views/today", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Less(t, strings.Index(body, "Alpha chores"), strings.Index(body, "Zulu chores"))
	})

	t.Run("Explicit Query Params Win", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/views/today?sort=priority&order=desc", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Less(t, strings.Index(body, "Zulu chores"), strings.Index(body, "Alpha chores"))
	})
}

func TestGetReference(t *testing.T) {
	router, apiGroup := newTestRouter()
	RegisterViewRoutes(apiGroup, &database.Database{}, &MockTaskService{}, models.DefaultReferenceSet(), services.NewSortPreferenceStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reference", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Critical")
	assert.Contains(t, body, "Trivial")
	assert.Contains(t, body, "School")
	assert.Contains(t, body, `"default_priority":3`)
}
