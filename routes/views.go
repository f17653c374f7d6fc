package routes

import (
	"net/http"
	"time"

	"organizely/organizer/database"
	"organizely/organizer/models"
	"organizely/organizer/services"
	"organizely/organizer/views"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterViewRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface, refs models.ReferenceSet, sortPrefs *services.SortPreferenceStore) {
	group.GET("/views/today", func(c *gin.Context) { GetTodayView(c, db, taskService, sortPrefs) })
	group.GET("/views/overdue", func(c *gin.Context) { GetOverdueView(c, db, taskService, sortPrefs) })
	group.GET("/views/sort", func(c *gin.Context) { GetSortPreference(c, sortPrefs) })
	group.POST("/views/sort/toggle", func(c *gin.Context) { ToggleSortPreference(c, sortPrefs) })
	group.GET("/reference", func(c *gin.Context) { GetReference(c, refs) })
}

// viewSortParams resolves the sort for a view: explicit sort/order query
// parameters win, otherwise the user's stored toggle state applies.
func viewSortParams(c *gin.Context, sortPrefs *services.SortPreferenceStore, userID uuid.UUID) (views.SortKey, bool) {
	if c.Query("sort") == "" && c.Query("order") == "" && sortPrefs != nil {
		state := sortPrefs.Get(userID)
		return state.Key, state.Ascending(state.Key)
	}
	return sortParams(c)
}

// GetTodayView returns the tasks due within the caller's current calendar
// day, split into a todo section and a completed section.
func GetTodayView(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, sortPrefs *services.SortPreferenceStore) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetTasks(db, map[string]interface{}{
		"user_id": userID.String(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	start, end := views.TodayWindow(now)
	dueToday := views.FilterByDueWindow(tasks, start, end)

	key, ascending := viewSortParams(c, sortPrefs, userID)
	todo := views.SortTasks(views.FilterByCompletion(dueToday, false), key, ascending, now)
	completed := views.SortTasks(views.FilterByCompletion(dueToday, true), key, ascending, now)

	c.JSON(http.StatusOK, gin.H{
		"date":      start,
		"todo":      todo,
		"completed": completed,
	})
}

func GetOverdueView(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, sortPrefs *services.SortPreferenceStore) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetTasks(db, map[string]interface{}{
		"user_id": userID.String(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	key, ascending := viewSortParams(c, sortPrefs, userID)
	overdue := views.SortTasks(views.FilterOverdue(tasks, now), key, ascending, now)

	c.JSON(http.StatusOK, gin.H{"tasks": overdue})
}

func GetSortPreference(c *gin.Context, sortPrefs *services.SortPreferenceStore) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sortPrefs.Get(userID))
}

// ToggleSortPreference flips the direction stored for the given key and
// makes it the caller's active sort key.
func ToggleSortPreference(c *gin.Context, sortPrefs *services.SortPreferenceStore) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	key := views.ParseSortKey(c.Query("key"))
	c.JSON(http.StatusOK, sortPrefs.Toggle(userID, key))
}

// GetReference exposes the priority and label catalogs so clients render
// names and colors from the same tables the server uses.
func GetReference(c *gin.Context, refs models.ReferenceSet) {
	c.JSON(http.StatusOK, gin.H{
		"priorities":       refs.Priorities,
		"labels":           refs.Labels,
		"default_priority": models.DefaultPriorityLevel,
	})
}
