package services

import (
	"errors"
	"time"

	"organizely/organizer/broker"
	"organizely/organizer/database"
	"organizely/organizer/models"
	"organizely/organizer/views"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectServiceInterface interface {
	CreateProject(db *database.Database, projectData map[string]interface{}) (models.Project, error)
	GetProjectById(db *database.Database, id string) (models.Project, error)
	UpdateProject(db *database.Database, id string, updatedData map[string]interface{}) (models.Project, error)
	DeleteProject(db *database.Database, id string) error
	GetProjects(db *database.Database, params map[string]interface{}) ([]models.Project, error)
	GetProjectStats(db *database.Database, id string, asOf time.Time) (views.ProjectStats, error)
}

type ProjectService struct{}

func (s *ProjectService) CreateProject(db *database.Database, projectData map[string]interface{}) (models.Project, error) {
	title, ok := projectData["title"].(string)
	if !ok || title == "" {
		return models.Project{}, ErrTitleRequired
	}

	userIDStr, ok := projectData["user_id"].(string)
	if !ok || userIDStr == "" {
		return models.Project{}, errors.New("user_id is required")
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Project{}, tx.Error
	}

	var userCount int64
	if err := tx.Model(&models.User{}).Where("id = ?", userIDStr).Count(&userCount).Error; err != nil {
		tx.Rollback()
		return models.Project{}, err
	}
	if userCount == 0 {
		tx.Rollback()
		return models.Project{}, ErrUserNotFound
	}

	project := models.Project{
		ID:       uuid.New(),
		UserID:   uuid.Must(uuid.Parse(userIDStr)),
		Title:    title,
		Priority: models.DefaultPriorityLevel,
	}

	if description, ok := projectData["description"].(string); ok {
		project.Description = description
	}
	if priority, ok := numberField(projectData, "priority"); ok {
		project.Priority = priority
	}
	if due, err := dueDateField(projectData); err != nil {
		tx.Rollback()
		return models.Project{}, err
	} else if due != nil {
		project.DueDate = due
	}

	if err := tx.Create(&project).Error; err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	event, err := models.NewEvent(
		string(broker.ProjectCreated),
		"project",
		project.UserID.String(),
		map[string]interface{}{
			"project_id": project.ID.String(),
			"user_id":    project.UserID.String(),
			"title":      project.Title,
			"priority":   project.Priority,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	return project, nil
}

func (s *ProjectService) GetProjectById(db *database.Database, id string) (models.Project, error) {
	var project models.Project
	if err := db.DB.Preload("Tasks").First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(db *database.Database, id string, updatedData map[string]interface{}) (models.Project, error) {
	updates := make(map[string]interface{})

	if title, ok := updatedData["title"]; ok {
		titleStr, _ := title.(string)
		if titleStr == "" {
			return models.Project{}, ErrTitleRequired
		}
		updates["title"] = titleStr
	}
	if description, ok := updatedData["description"].(string); ok {
		updates["description"] = description
	}
	if priority, ok := numberField(updatedData, "priority"); ok {
		updates["priority"] = priority
	}
	if completed, ok := updatedData["is_completed"].(bool); ok {
		updates["is_completed"] = completed
	}
	if due, err := dueDateField(updatedData); err != nil {
		return models.Project{}, err
	} else if due != nil {
		updates["due_date"] = due
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Project{}, tx.Error
	}

	var project models.Project
	if err := tx.First(&project, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}

	if err := tx.Model(&project).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	event, err := models.NewEvent(
		string(broker.ProjectUpdated),
		"project",
		project.UserID.String(),
		map[string]interface{}{
			"project_id": project.ID.String(),
			"user_id":    project.UserID.String(),
			"title":      project.Title,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	return project, nil
}

// DeleteProject removes the project; its tasks are kept and become
// unassigned rather than cascading away with it.
func (s *ProjectService) DeleteProject(db *database.Database, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var project models.Project
	if err := tx.First(&project, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if err := tx.Model(&models.Task{}).Where("project_id = ?", project.ID).
		Update("project_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&project).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.ProjectDeleted),
		"project",
		project.UserID.String(),
		map[string]interface{}{
			"project_id": project.ID.String(),
			"user_id":    project.UserID.String(),
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

func (s *ProjectService) GetProjects(db *database.Database, params map[string]interface{}) ([]models.Project, error) {
	var projects []models.Project
	query := db.DB

	if userID, ok := params["user_id"].(string); ok && userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if title, ok := params["title"].(string); ok && title != "" {
		query = query.Where("title LIKE ?", "%"+title+"%")
	}

	if completed, ok := params["completed"].(string); ok && completed != "" {
		query = query.Where("is_completed = ?", completed == "true")
	}

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectStats buckets one snapshot of the project's tasks into
// overdue/open/completed counts as of the given instant.
func (s *ProjectService) GetProjectStats(db *database.Database, id string, asOf time.Time) (views.ProjectStats, error) {
	var project models.Project
	if err := db.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return views.ProjectStats{}, ErrProjectNotFound
		}
		return views.ProjectStats{}, err
	}

	var tasks []models.Task
	if err := db.DB.Where("project_id = ?", project.ID).Find(&tasks).Error; err != nil {
		return views.ProjectStats{}, err
	}

	return views.CollectStats(tasks, asOf), nil
}

var ProjectServiceInstance ProjectServiceInterface = &ProjectService{}
