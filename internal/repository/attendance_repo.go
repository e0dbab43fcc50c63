package repository

import (
	"errors"
	"time"

	"attendance-tracker/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(attendance *models.Attendance) error
	Update(attendance *models.Attendance) error
	GetByID(id uint) (*models.Attendance, error)
	GetForWindow(userID string, start, end time.Time) (*models.Attendance, error)
	GetOpenForWindow(userID string, start, end time.Time) (*models.Attendance, error)
	GetHistory(userID string, allUsers bool) ([]*models.Attendance, error)
	GetIDsByUserID(userID string) ([]uint, error)
	DeleteByUserID(userID string) error
}

type GormAttendanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRepository(db *gorm.DB) (*GormAttendanceRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Auto-migration
	if err := db.AutoMigrate(&models.Attendance{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance table")
		return nil, err
	}

	logger.Info("Attendance repository initialized")

	return &GormAttendanceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormAttendanceRepository) Create(attendance *models.Attendance) error {
	r.logger.WithFields(logrus.Fields{
		"user_id":  attendance.UserID,
		"check_in": attendance.CheckIn.Format("2006-01-02 15:04"),
	}).Info("Creating attendance record")

	result := r.db.Create(attendance)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create attendance record")
		return result.Error
	}

	return nil
}

func (r *GormAttendanceRepository) Update(attendance *models.Attendance) error {
	r.logger.WithFields(logrus.Fields{
		"id":      attendance.ID,
		"user_id": attendance.UserID,
	}).Info("Updating attendance record")

	result := r.db.Save(attendance)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update attendance record")
		return result.Error
	}

	return nil
}

func (r *GormAttendanceRepository) GetByID(id uint) (*models.Attendance, error) {
	var attendance models.Attendance
	result := r.db.Preload("Breaks").First(&attendance, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Attendance record not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance record by ID")
		return nil, result.Error
	}

	return &attendance, nil
}

// GetForWindow returns the attendance row whose check-in falls inside the
// half-open [start, end) window, breaks preloaded.
func (r *GormAttendanceRepository) GetForWindow(userID string, start, end time.Time) (*models.Attendance, error) {
	var attendance models.Attendance
	result := r.db.Preload("Breaks").
		Where("user_id = ? AND check_in >= ? AND check_in < ?", userID, start, end).
		First(&attendance)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"start":   start.Format("2006-01-02"),
		}).Debug("No attendance record in window")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance record for window")
		return nil, result.Error
	}

	return &attendance, nil
}

// GetOpenForWindow is GetForWindow restricted to rows without a check-out
func (r *GormAttendanceRepository) GetOpenForWindow(userID string, start, end time.Time) (*models.Attendance, error) {
	var attendance models.Attendance
	result := r.db.Preload("Breaks").
		Where("user_id = ? AND check_in >= ? AND check_in < ? AND check_out IS NULL", userID, start, end).
		First(&attendance)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("user_id", userID).Debug("No open attendance record in window")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get open attendance record")
		return nil, result.Error
	}

	return &attendance, nil
}

func (r *GormAttendanceRepository) GetHistory(userID string, allUsers bool) ([]*models.Attendance, error) {
	var records []*models.Attendance

	query := r.db.Preload("Breaks").Preload("User").Order("check_in DESC")
	if !allUsers {
		query = query.Where("user_id = ?", userID)
	}

	result := query.Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance history")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"all_users": allUsers,
		"count":     len(records),
	}).Debug("Retrieved attendance history")

	return records, nil
}

func (r *GormAttendanceRepository) GetIDsByUserID(userID string) ([]uint, error) {
	var ids []uint
	result := r.db.Model(&models.Attendance{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance IDs for user")
		return nil, result.Error
	}

	return ids, nil
}

func (r *GormAttendanceRepository) DeleteByUserID(userID string) error {
	r.logger.WithField("user_id", userID).Info("Deleting all attendance records for user")

	result := r.db.Where("user_id = ?", userID).Delete(&models.Attendance{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete user attendance records")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"rows_affected": result.RowsAffected,
	}).Info("User attendance records deleted successfully")

	return nil
}
