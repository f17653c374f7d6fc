package services

import (
	"errors"

	"organizely/organizer/broker"
	"organizely/organizer/database"
	"organizely/organizer/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserServiceInterface interface {
	Register(db *database.Database, email, password, displayName string) (models.User, error)
	GetUserById(db *database.Database, id string) (models.User, error)
	UpdateUser(db *database.Database, id string, updatedData map[string]interface{}) (models.User, error)
	DeleteUser(db *database.Database, id string) error
}

type UserService struct {
	auth AuthServiceInterface
}

func NewUserService(auth AuthServiceInterface) *UserService {
	return &UserService{auth: auth}
}

func (s *UserService) Register(db *database.Database, email, password, displayName string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, ErrValidation
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var existing int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if existing > 0 {
		tx.Rollback()
		return models.User{}, ErrResourceExists
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	event, err := models.NewEvent(
		string(broker.UserCreated),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id": user.ID.String(),
			"email":   user.Email,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(db *database.Database, id string, updatedData map[string]interface{}) (models.User, error) {
	updates := make(map[string]interface{})

	if displayName, ok := updatedData["display_name"].(string); ok {
		updates["display_name"] = displayName
	}
	if password, ok := updatedData["password"].(string); ok && password != "" {
		hash, err := s.auth.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		updates["password_hash"] = hash
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if err := tx.Model(&user).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	event, err := models.NewEvent(
		string(broker.UserUpdated),
		"user",
		user.ID.String(),
		map[string]interface{}{
			"user_id": user.ID.String(),
			"email":   user.Email,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) DeleteUser(db *database.Database, id string) error {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return db.DB.Delete(&user).Error
}

var UserServiceInstance UserServiceInterface
