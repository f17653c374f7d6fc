package database

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"organizely/organizer/models"

	"github.com/google/uuid"
)

// SeedDemoData populates a handful of demo projects and tasks for a user so
// the tabs have something to show on a fresh install. It is a no-op when the
// user already owns any project.
func SeedDemoData(d *Database, userID uuid.UUID, refs models.ReferenceSet) error {
	var count int64
	if err := d.DB.Model(&models.Project{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding demo projects and tasks...")

	projects := make([]models.Project, 0, 5)
	for i := 0; i < 5; i++ {
		due := time.Now().Add(time.Duration(rand.Intn(64000)) * time.Second)
		project := models.Project{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       fmt.Sprintf("Project %d", rand.Intn(100)+1),
			Description: fmt.Sprintf("Project description for this project with extra words %d", rand.Intn(100)+1),
			Priority:    refs.Priorities[rand.Intn(len(refs.Priorities))].Level,
			DueDate:     &due,
		}
		if err := d.DB.Create(&project).Error; err != nil {
			return err
		}
		projects = append(projects, project)
	}

	for i := 0; i < 50; i++ {
		due := time.Now().Add(time.Duration(rand.Intn(64000)) * time.Second)
		task := models.Task{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       fmt.Sprintf("Task %d", rand.Intn(100)+1),
			Description: fmt.Sprintf("Task description for this project with extra words %d", rand.Intn(100)+1),
			Priority:    refs.Priorities[rand.Intn(len(refs.Priorities))].Level,
			Label:       refs.Labels[rand.Intn(len(refs.Labels))].Name,
			DueDate:     &due,
			Latitude:    rand.Float64()*180 - 90,
			Longitude:   rand.Float64()*360 - 180,
			IsCompleted: rand.Intn(2) == 0,
		}
		project := projects[rand.Intn(len(projects))]
		task.ProjectID = &project.ID

		if err := d.DB.Create(&task).Error; err != nil {
			return err
		}
	}

	return nil
}
