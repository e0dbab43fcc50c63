package service

import (
	"time"

	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	breakRepo      repository.BreakRepository
	logger         *logrus.Logger
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	breakRepo repository.BreakRepository,
) *AttendanceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		logger:         logger,
	}
}

// AttendanceStatus is the derived view of one user's day. Nothing here is
// persisted; it is recomputed from the rows on every call.
type AttendanceStatus struct {
	Status              string             `json:"status"`
	IsCheckedIn         bool               `json:"isCheckedIn"`
	Attendance          *models.Attendance `json:"attendance"`
	TotalHours          string             `json:"totalHours,omitempty"`
	CurrentWorkingHours string             `json:"currentWorkingHours,omitempty"`
}

// Status derives the current attendance state for the user's day
// containing now.
func (s *AttendanceService) Status(userID string, now time.Time) (*AttendanceStatus, error) {
	start, end := dayWindow(now)

	attendance, err := s.attendanceRepo.GetForWindow(userID, start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load today's attendance")
		return nil, err
	}

	status := &AttendanceStatus{
		Status:     models.DeriveStatus(attendance),
		Attendance: attendance,
	}

	switch status.Status {
	case models.AttendanceCheckedOut:
		status.TotalHours = models.FormatHours(attendance.TotalHours)
	case models.AttendanceCheckedIn, models.AttendanceOnBreak:
		status.IsCheckedIn = true
		// Advisory only: elapsed hours so far, never written back
		status.CurrentWorkingHours = models.FormatHours(attendance.HoursWorked(now))
	}

	return status, nil
}

// CheckIn opens the user's attendance record for the day containing now.
// At most one record may exist per user per day.
func (s *AttendanceService) CheckIn(userID string, now time.Time) (*models.Attendance, error) {
	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"check_in": now.Format("15:04"),
	}).Info("User checking in")

	start, end := dayWindow(now)

	existing, err := s.attendanceRepo.GetForWindow(userID, start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check existing attendance")
		return nil, err
	}

	if existing != nil {
		s.logger.WithField("user_id", userID).Warn("User already checked in today")
		return nil, &ConflictError{Message: "Already checked-in today"}
	}

	attendance := &models.Attendance{
		UserID:   userID,
		CheckIn:  now,
		CheckOut: nil,
	}

	if err := s.attendanceRepo.Create(attendance); err != nil {
		s.logger.WithError(err).Error("Failed to create attendance record")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":      attendance.ID,
		"user_id": userID,
		"date":    now.Format("2006-01-02"),
	}).Info("User checked in successfully")

	return attendance, nil
}

// CheckOut closes the user's open attendance record for today. An open
// break is ended first as a side effect; the returned flag reports
// whether that happened. Total hours span check-in to check-out with no
// break deduction.
func (s *AttendanceService) CheckOut(userID string, now time.Time) (*models.Attendance, bool, error) {
	s.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"check_out": now.Format("15:04"),
	}).Info("User checking out")

	start, end := dayWindow(now)

	attendance, err := s.attendanceRepo.GetOpenForWindow(userID, start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to find open attendance")
		return nil, false, err
	}

	if attendance == nil {
		s.logger.WithField("user_id", userID).Warn("No active check-in found for today")
		return nil, false, &ValidationError{Message: "No active check-in found for today"}
	}

	breakClosed := false
	openBreak, err := s.breakRepo.GetOpenByAttendanceID(attendance.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check open break")
		return nil, false, err
	}

	if openBreak != nil {
		breakEnd := now
		openBreak.BreakEnd = &breakEnd
		if err := s.breakRepo.Update(openBreak); err != nil {
			s.logger.WithError(err).Error("Failed to auto-close open break")
			return nil, false, err
		}
		breakClosed = true
		s.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"break_id": openBreak.ID,
		}).Info("Open break auto-closed on check-out")
	}

	checkOut := now
	attendance.CheckOut = &checkOut
	attendance.TotalHours = attendance.HoursWorked(checkOut)

	if err := s.attendanceRepo.Update(attendance); err != nil {
		s.logger.WithError(err).Error("Failed to update attendance on check-out")
		return nil, false, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":          attendance.ID,
		"user_id":     userID,
		"total_hours": attendance.TotalHours,
	}).Info("User checked out successfully")

	return attendance, breakClosed, nil
}
