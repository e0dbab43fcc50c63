package repository

import (
	"errors"

	"attendance-tracker/internal/models"

	"gorm.io/gorm"
)

type BreakRepository interface {
	Create(brk *models.Break) error
	Update(brk *models.Break) error
	GetOpenByAttendanceID(attendanceID uint) (*models.Break, error)
	GetLatestByAttendanceID(attendanceID uint) (*models.Break, error)
	DeleteByAttendanceIDs(attendanceIDs []uint) error
}

type GormBreakRepository struct {
	db *gorm.DB
}

func NewGormBreakRepository(db *gorm.DB) (BreakRepository, error) {
	if err := db.AutoMigrate(&models.Break{}); err != nil {
		return nil, err
	}
	return &GormBreakRepository{db: db}, nil
}

func (r *GormBreakRepository) Create(brk *models.Break) error {
	return r.db.Create(brk).Error
}

func (r *GormBreakRepository) Update(brk *models.Break) error {
	return r.db.Save(brk).Error
}

// GetOpenByAttendanceID returns the break with no end time for the given
// attendance row. At most one such row exists at a time.
func (r *GormBreakRepository) GetOpenByAttendanceID(attendanceID uint) (*models.Break, error) {
	var brk models.Break
	result := r.db.Where("attendance_id = ? AND break_end IS NULL", attendanceID).First(&brk)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &brk, nil
}

func (r *GormBreakRepository) GetLatestByAttendanceID(attendanceID uint) (*models.Break, error) {
	var brk models.Break
	result := r.db.Where("attendance_id = ?", attendanceID).Order("id DESC").First(&brk)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &brk, nil
}

func (r *GormBreakRepository) DeleteByAttendanceIDs(attendanceIDs []uint) error {
	if len(attendanceIDs) == 0 {
		return nil
	}
	return r.db.Where("attendance_id IN ?", attendanceIDs).Delete(&models.Break{}).Error
}
