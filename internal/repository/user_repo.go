package repository

import (
	"errors"

	"attendance-tracker/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(userID string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	UpdateStatus(userID string, status string) error
	GetActiveEmployees() ([]*models.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) (UserRepository, error) {
	// Auto-migration creates the table if it does not exist
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, err
	}

	return &GormUserRepository{db: db}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	// Check whether a user with this email already exists
	exists, err := r.EmailExists(user.Email)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("user already exists")
	}

	return r.db.Create(user).Error
}

func (r *GormUserRepository) GetByID(userID string) (*models.User, error) {
	var user models.User
	result := r.db.Where("user_id = ?", userID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) EmailExists(email string) (bool, error) {
	var count int64
	result := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *GormUserRepository) UpdateStatus(userID string, status string) error {
	result := r.db.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}

	return nil
}

func (r *GormUserRepository) GetActiveEmployees() ([]*models.User, error) {
	var users []*models.User
	result := r.db.Where("role = ? AND status = ?", models.RoleEmployee, models.UserStatusActive).
		Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}
