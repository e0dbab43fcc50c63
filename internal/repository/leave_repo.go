package repository

import (
	"errors"
	"time"

	"attendance-tracker/internal/models"

	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(leave *models.Leave) error
	Update(leave *models.Leave) error
	GetByID(id uint) (*models.Leave, error)
	GetApproved(userID string, allUsers bool) ([]*models.Leave, error)
	GetApprovedCovering(userID string, day time.Time) (*models.Leave, error)
	GetUpcomingForUser(from time.Time, userID string) ([]*models.Leave, error)
	GetUpcomingExcludingUser(from time.Time, userID string) ([]*models.Leave, error)
	DeleteByUserID(userID string) error
}

type GormLeaveRepository struct {
	db *gorm.DB
}

func NewGormLeaveRepository(db *gorm.DB) (LeaveRepository, error) {
	if err := db.AutoMigrate(&models.Leave{}); err != nil {
		return nil, err
	}
	return &GormLeaveRepository{db: db}, nil
}

func (r *GormLeaveRepository) Create(leave *models.Leave) error {
	return r.db.Create(leave).Error
}

func (r *GormLeaveRepository) Update(leave *models.Leave) error {
	return r.db.Save(leave).Error
}

func (r *GormLeaveRepository) GetByID(id uint) (*models.Leave, error) {
	var leave models.Leave
	result := r.db.First(&leave, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &leave, nil
}

func (r *GormLeaveRepository) GetApproved(userID string, allUsers bool) ([]*models.Leave, error) {
	var leaves []*models.Leave

	query := r.db.Preload("User").Where("status = ?", models.LeaveApproved)
	if !allUsers {
		query = query.Where("user_id = ?", userID)
	}

	err := query.Find(&leaves).Error
	return leaves, err
}

// GetApprovedCovering returns an approved leave whose inclusive date range
// contains the given day, if any.
func (r *GormLeaveRepository) GetApprovedCovering(userID string, day time.Time) (*models.Leave, error) {
	var leave models.Leave
	result := r.db.Where("user_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
		userID, models.LeaveApproved, day, day).
		First(&leave)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &leave, nil
}

func (r *GormLeaveRepository) GetUpcomingForUser(from time.Time, userID string) ([]*models.Leave, error) {
	var leaves []*models.Leave
	err := r.db.Preload("User").
		Where("user_id = ? AND start_date >= ?", userID, from).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *GormLeaveRepository) GetUpcomingExcludingUser(from time.Time, userID string) ([]*models.Leave, error) {
	var leaves []*models.Leave
	err := r.db.Preload("User").
		Where("user_id <> ? AND start_date >= ?", userID, from).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *GormLeaveRepository) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Leave{}).Error
}
