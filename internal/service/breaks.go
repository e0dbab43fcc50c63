package service

import (
	"time"

	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

// Break-specific derived statuses reported by the break status endpoint
const (
	BreakStatusNotCheckedIn = "not_checked_in"
	BreakStatusNoBreak      = "no_break"
	BreakStatusCanTakeBreak = "can_take_break"
	BreakStatusOnBreak      = "on_break"
)

type BreakService struct {
	attendanceRepo repository.AttendanceRepository
	breakRepo      repository.BreakRepository
	logger         *logrus.Logger
}

func NewBreakService(
	attendanceRepo repository.AttendanceRepository,
	breakRepo repository.BreakRepository,
) *BreakService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &BreakService{
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		logger:         logger,
	}
}

type BreakStatus struct {
	Status  string `json:"status"`
	Button  string `json:"button,omitempty"`
	Message string `json:"message,omitempty"`
}

// Status reports whether the user can take or end a break right now
func (s *BreakService) Status(userID string, now time.Time) (*BreakStatus, error) {
	start, end := dayWindow(now)

	attendance, err := s.attendanceRepo.GetForWindow(userID, start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load today's attendance for break status")
		return nil, err
	}

	if attendance == nil {
		return &BreakStatus{
			Status:  BreakStatusNotCheckedIn,
			Message: "Please check in first to use break functionality",
		}, nil
	}

	latest, err := s.breakRepo.GetLatestByAttendanceID(attendance.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load latest break")
		return nil, err
	}

	status := BreakStatusNoBreak
	if latest != nil {
		if latest.IsOpen() {
			status = BreakStatusOnBreak
		} else {
			status = BreakStatusCanTakeBreak
		}
	}

	button := "Take Break"
	if status == BreakStatusOnBreak {
		button = "End Break"
	}

	return &BreakStatus{Status: status, Button: button}, nil
}

// Start opens a break on today's attendance record. Only one break may be
// open at a time.
func (s *BreakService) Start(userID string, now time.Time) (*models.Break, error) {
	s.logger.WithField("user_id", userID).Info("User starting break")

	start, end := dayWindow(now)

	attendance, err := s.attendanceRepo.GetForWindow(userID, start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load today's attendance for break start")
		return nil, err
	}

	if attendance == nil {
		return nil, &NotFoundError{Message: "No attendance record found for today"}
	}

	active, err := s.breakRepo.GetOpenByAttendanceID(attendance.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check open break")
		return nil, err
	}

	if active != nil {
		s.logger.WithField("user_id", userID).Warn("User already on a break")
		return nil, &ConflictError{Message: "Already on a break"}
	}

	brk := &models.Break{
		AttendanceID: attendance.ID,
		BreakStart:   now,
	}

	if err := s.breakRepo.Create(brk); err != nil {
		s.logger.WithError(err).Error("Failed to create break")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"break_id":      brk.ID,
		"attendance_id": attendance.ID,
		"user_id":       userID,
	}).Info("Break started")

	return brk, nil
}

// End closes the open break on today's attendance record
func (s *BreakService) End(userID string, now time.Time) (*models.Break, error) {
	s.logger.WithField("user_id", userID).Info("User ending break")

	start, end := dayWindow(now)

	attendance, err := s.attendanceRepo.GetForWindow(userID, start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load today's attendance for break end")
		return nil, err
	}

	if attendance == nil {
		return nil, &NotFoundError{Message: "No attendance record found for today"}
	}

	active, err := s.breakRepo.GetOpenByAttendanceID(attendance.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to find open break")
		return nil, err
	}

	if active == nil {
		return nil, &ValidationError{Message: "No active break to end"}
	}

	breakEnd := now
	active.BreakEnd = &breakEnd

	if err := s.breakRepo.Update(active); err != nil {
		s.logger.WithError(err).Error("Failed to end break")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"break_id": active.ID,
		"user_id":  userID,
	}).Info("Break ended")

	return active, nil
}
