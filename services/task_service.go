package services

import (
	"errors"
	"time"

	"organizely/organizer/broker"
	"organizely/organizer/database"
	"organizely/organizer/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskServiceInterface interface {
	CreateTask(db *database.Database, taskData map[string]interface{}) (models.Task, error)
	GetTaskById(db *database.Database, id string) (models.Task, error)
	UpdateTask(db *database.Database, id string, updatedData map[string]interface{}) (models.Task, error)
	DeleteTask(db *database.Database, id string) error
	ToggleCompletion(db *database.Database, id string) (models.Task, error)
	GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error)
}

type TaskService struct{}

func (s *TaskService) CreateTask(db *database.Database, taskData map[string]interface{}) (models.Task, error) {
	// Validation happens before any store write.
	title, ok := taskData["title"].(string)
	if !ok || title == "" {
		return models.Task{}, ErrTitleRequired
	}

	userIDStr, ok := taskData["user_id"].(string)
	if !ok || userIDStr == "" {
		return models.Task{}, errors.New("user_id is required")
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var userCount int64
	if err := tx.Model(&models.User{}).Where("id = ?", userIDStr).Count(&userCount).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}
	if userCount == 0 {
		tx.Rollback()
		return models.Task{}, ErrUserNotFound
	}

	task := models.Task{
		ID:       uuid.New(),
		UserID:   uuid.Must(uuid.Parse(userIDStr)),
		Title:    title,
		Priority: models.DefaultPriorityLevel,
	}

	if description, ok := taskData["description"].(string); ok {
		task.Description = description
	}
	if priority, ok := numberField(taskData, "priority"); ok {
		task.Priority = priority
	}
	if label, ok := taskData["label"].(string); ok {
		// Unrecognized labels are stored as given and only fall back to
		// "Misc" at display time.
		task.Label = label
	}
	if completed, ok := taskData["is_completed"].(bool); ok {
		task.IsCompleted = completed
	}
	if lat, ok := taskData["latitude"].(float64); ok {
		task.Latitude = lat
	}
	if lon, ok := taskData["longitude"].(float64); ok {
		task.Longitude = lon
	}
	if due, err := dueDateField(taskData); err != nil {
		tx.Rollback()
		return models.Task{}, err
	} else if due != nil {
		task.DueDate = due
	}

	if projectIDStr, ok := taskData["project_id"].(string); ok && projectIDStr != "" {
		projectID, err := uuid.Parse(projectIDStr)
		if err != nil {
			tx.Rollback()
			return models.Task{}, ErrProjectNotFound
		}
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			tx.Rollback()
			return models.Task{}, ErrProjectNotFound
		}
		task.ProjectID = &projectID
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := models.NewEvent(
		string(broker.TaskCreated),
		"task",
		task.UserID.String(),
		map[string]interface{}{
			"task_id":      task.ID.String(),
			"user_id":      task.UserID.String(),
			"title":        task.Title,
			"priority":     task.Priority,
			"is_completed": task.IsCompleted,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) GetTaskById(db *database.Database, id string) (models.Task, error) {
	var task models.Task
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) UpdateTask(db *database.Database, id string, updatedData map[string]interface{}) (models.Task, error) {
	updates := make(map[string]interface{})

	if title, ok := updatedData["title"]; ok {
		titleStr, _ := title.(string)
		if titleStr == "" {
			return models.Task{}, ErrTitleRequired
		}
		updates["title"] = titleStr
	}
	if description, ok := updatedData["description"].(string); ok {
		updates["description"] = description
	}
	if priority, ok := numberField(updatedData, "priority"); ok {
		updates["priority"] = priority
	}
	if label, ok := updatedData["label"].(string); ok {
		updates["label"] = label
	}
	if completed, ok := updatedData["is_completed"].(bool); ok {
		updates["is_completed"] = completed
	}
	if lat, ok := updatedData["latitude"].(float64); ok {
		updates["latitude"] = lat
	}
	if lon, ok := updatedData["longitude"].(float64); ok {
		updates["longitude"] = lon
	}
	if due, err := dueDateField(updatedData); err != nil {
		return models.Task{}, err
	} else if due != nil {
		updates["due_date"] = due
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	// Updates also refreshes updated_at, so every edit moves it forward.
	if err := tx.Model(&task).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := models.NewEvent(
		string(broker.TaskUpdated),
		"task",
		task.UserID.String(),
		map[string]interface{}{
			"task_id":      task.ID.String(),
			"user_id":      task.UserID.String(),
			"title":        task.Title,
			"is_completed": task.IsCompleted,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// ToggleCompletion flips the committed completion state and persists it
// immediately. Deferred toggles are handled by the CompletionScheduler on
// top of this.
func (s *TaskService) ToggleCompletion(db *database.Database, id string) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	task.IsCompleted = !task.IsCompleted
	if err := tx.Model(&task).Update("is_completed", task.IsCompleted).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := models.NewEvent(
		string(broker.TaskToggled),
		"task",
		task.UserID.String(),
		map[string]interface{}{
			"task_id":      task.ID.String(),
			"user_id":      task.UserID.String(),
			"is_completed": task.IsCompleted,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// DeleteTask removes the task and its subtasks in one transaction.
func (s *TaskService) DeleteTask(db *database.Database, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := tx.Where("task_id = ?", task.ID).Delete(&models.Subtask{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.TaskDeleted),
		"task",
		task.UserID.String(),
		map[string]interface{}{
			"task_id": task.ID.String(),
			"user_id": task.UserID.String(),
		},
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *TaskService) GetTasks(db *database.Database, params map[string]interface{}) ([]models.Task, error) {
	var tasks []models.Task
	query := db.DB

	if userID, ok := params["user_id"].(string); ok && userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if projectID, ok := params["project_id"].(string); ok && projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	// Unassigned is its own selector, distinct from any project id.
	if unassigned, ok := params["unassigned"].(bool); ok && unassigned {
		query = query.Where("project_id IS NULL")
	}

	if completed, ok := params["completed"].(string); ok && completed != "" {
		query = query.Where("is_completed = ?", completed == "true")
	}

	if label, ok := params["label"].(string); ok && label != "" {
		query = query.Where("label = ?", label)
	}

	result := query.Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// numberField reads an integer that may arrive as a JSON float64 or as an
// int from internal callers.
func numberField(data map[string]interface{}, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// dueDateField parses an optional RFC 3339 due date.
func dueDateField(data map[string]interface{}) (*time.Time, error) {
	raw, ok := data["due_date"].(string)
	if !ok || raw == "" {
		return nil, nil
	}
	due, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, ErrValidation
	}
	return &due, nil
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
