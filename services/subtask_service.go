package services

import (
	"errors"

	"organizely/organizer/broker"
	"organizely/organizer/database"
	"organizely/organizer/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubtaskServiceInterface interface {
	CreateSubtask(db *database.Database, subtaskData map[string]interface{}) (models.Subtask, error)
	GetSubtaskById(db *database.Database, id string) (models.Subtask, error)
	UpdateSubtask(db *database.Database, id string, updatedData map[string]interface{}) (models.Subtask, error)
	DeleteSubtask(db *database.Database, id string) error
	ListSubtasksByTask(db *database.Database, taskID string) ([]models.Subtask, error)
}

type SubtaskService struct{}

func (s *SubtaskService) CreateSubtask(db *database.Database, subtaskData map[string]interface{}) (models.Subtask, error) {
	title, ok := subtaskData["title"].(string)
	if !ok || title == "" {
		return models.Subtask{}, ErrTitleRequired
	}

	taskIDStr, ok := subtaskData["task_id"].(string)
	if !ok || taskIDStr == "" {
		return models.Subtask{}, errors.New("task_id is required")
	}

	taskID, err := uuid.Parse(taskIDStr)
	if err != nil {
		return models.Subtask{}, ErrTaskNotFound
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Subtask{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subtask{}, ErrTaskNotFound
		}
		return models.Subtask{}, err
	}

	subtask := models.Subtask{
		ID:       uuid.New(),
		UserID:   task.UserID,
		TaskID:   task.ID,
		Title:    title,
		Priority: models.DefaultPriorityLevel,
	}

	if description, ok := subtaskData["description"].(string); ok {
		subtask.Description = description
	}
	if priority, ok := numberField(subtaskData, "priority"); ok {
		subtask.Priority = priority
	}
	if label, ok := subtaskData["label"].(string); ok {
		subtask.Label = label
	}
	if due, err := dueDateField(subtaskData); err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	} else if due != nil {
		subtask.DueDate = due
	}

	if err := tx.Create(&subtask).Error; err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	}

	event, err := models.NewEvent(
		string(broker.SubtaskCreated),
		"subtask",
		subtask.UserID.String(),
		map[string]interface{}{
			"subtask_id": subtask.ID.String(),
			"task_id":    subtask.TaskID.String(),
			"user_id":    subtask.UserID.String(),
			"title":      subtask.Title,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	}

	return subtask, nil
}

func (s *SubtaskService) GetSubtaskById(db *database.Database, id string) (models.Subtask, error) {
	var subtask models.Subtask
	if err := db.DB.First(&subtask, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subtask{}, ErrSubtaskNotFound
		}
		return models.Subtask{}, err
	}
	return subtask, nil
}

func (s *SubtaskService) UpdateSubtask(db *database.Database, id string, updatedData map[string]interface{}) (models.Subtask, error) {
	updates := make(map[string]interface{})

	if title, ok := updatedData["title"]; ok {
		titleStr, _ := title.(string)
		if titleStr == "" {
			return models.Subtask{}, ErrTitleRequired
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
	if due, err := dueDateField(updatedData); err != nil {
		return models.Subtask{}, err
	} else if due != nil {
		updates["due_date"] = due
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Subtask{}, tx.Error
	}

	var subtask models.Subtask
	if err := tx.First(&subtask, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subtask{}, ErrSubtaskNotFound
		}
		return models.Subtask{}, err
	}

	if err := tx.Model(&subtask).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	}

	event, err := models.NewEvent(
		string(broker.SubtaskUpdated),
		"subtask",
		subtask.UserID.String(),
		map[string]interface{}{
			"subtask_id": subtask.ID.String(),
			"task_id":    subtask.TaskID.String(),
			"user_id":    subtask.UserID.String(),
			"title":      subtask.Title,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Subtask{}, err
	}

	return subtask, nil
}

func (s *SubtaskService) DeleteSubtask(db *database.Database, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var subtask models.Subtask
	if err := tx.First(&subtask, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubtaskNotFound
		}
		return err
	}

	if err := tx.Delete(&subtask).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.SubtaskDeleted),
		"subtask",
		subtask.UserID.String(),
		map[string]interface{}{
			"subtask_id": subtask.ID.String(),
			"task_id":    subtask.TaskID.String(),
			"user_id":    subtask.UserID.String(),
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

func (s *SubtaskService) ListSubtasksByTask(db *database.Database, taskID string) ([]models.Subtask, error) {
	var subtasks []models.Subtask
	if err := db.DB.Where("task_id = ?", taskID).Find(&subtasks).Error; err != nil {
		return nil, err
	}
	return subtasks, nil
}

var SubtaskServiceInstance SubtaskServiceInterface = &SubtaskService{}
