package service

import (
	"strings"
	"time"

	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

type LeaveService struct {
	leaveRepo repository.LeaveRepository
	userRepo  repository.UserRepository
	logger    *logrus.Logger
}

func NewLeaveService(leaveRepo repository.LeaveRepository, userRepo repository.UserRepository) *LeaveService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &LeaveService{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Submit files a leave request for the caller. A start date in the past
// is clamped to today and reported in the returned message instead of
// failing the request; an end date in the past is rejected. Admin
// requests are approved immediately, everyone else's start PENDING.
func (s *LeaveService) Submit(userID string, startDate, endDate time.Time, reason string, now time.Time) (*models.Leave, string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, "", &ValidationError{Message: "All fields are required"}
	}

	today := models.DateOnly(now)
	start := models.DateOnly(startDate)
	end := models.DateOnly(endDate)

	if end.Before(today) {
		return nil, "", &ValidationError{Message: "End date cannot be in the past. Please select valid leave dates."}
	}

	dateMessage := ""
	if start.Before(today) {
		start = today
		dateMessage = "Start date was adjusted to today as past dates are not allowed. "
	}

	if start.After(end) {
		return nil, "", &ValidationError{Message: "Start date cannot be after end date"}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up leave requester")
		return nil, "", err
	}

	if user == nil {
		return nil, "", &NotFoundError{Message: "User not found"}
	}

	status := models.LeavePending
	if user.IsAdmin() {
		status = models.LeaveApproved
	}

	leave := &models.Leave{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		Status:    status,
	}

	if err := s.leaveRepo.Create(leave); err != nil {
		s.logger.WithError(err).Error("Failed to create leave request")
		return nil, "", err
	}

	message := dateMessage + "Leave request submitted successfully"
	if user.IsAdmin() {
		message = dateMessage + "Leave request auto-approved for admin"
	}

	s.logger.WithFields(logrus.Fields{
		"leave_id": leave.ID,
		"user_id":  userID,
		"status":   leave.Status,
	}).Info("Leave request created")

	return leave, message, nil
}

type LeaveView struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Valid     bool      `json:"valid"`
}

// Upcoming lists leave requests starting today or later. Employees see
// their own requests; admins see everyone else's.
func (s *LeaveService) Upcoming(userID string, now time.Time) ([]LeaveView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up caller for leave listing")
		return nil, err
	}

	if user == nil {
		return nil, &NotFoundError{Message: "User not found"}
	}

	today := models.DateOnly(now)

	var leaves []*models.Leave
	if user.IsAdmin() {
		leaves, err = s.leaveRepo.GetUpcomingExcludingUser(today, userID)
	} else {
		leaves, err = s.leaveRepo.GetUpcomingForUser(today, userID)
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to load upcoming leaves")
		return nil, err
	}

	views := make([]LeaveView, 0, len(leaves))
	for _, leave := range leaves {
		views = append(views, LeaveView{
			ID:        leave.ID,
			UserID:    leave.UserID,
			Name:      leave.User.Name,
			Email:     leave.User.Email,
			Reason:    leave.Reason,
			Status:    leave.Status,
			StartDate: leave.StartDate,
			EndDate:   leave.EndDate,
			Valid:     !models.DateOnly(leave.StartDate).Before(today),
		})
	}

	return views, nil
}

// UpdateStatus changes a leave request's status. Only an admin may do
// this, and the caller's role is fetched fresh rather than read from the
// token.
func (s *LeaveService) UpdateStatus(callerID string, leaveID uint, status string) (*models.Leave, error) {
	admin, err := s.userRepo.GetByID(callerID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up caller for leave status update")
		return nil, err
	}

	if admin == nil || !admin.IsAdmin() {
		return nil, &ForbiddenError{Message: "Admin access required"}
	}

	if !models.IsValidLeaveStatus(status) {
		return nil, &ValidationError{Message: "Invalid leave status"}
	}

	leave, err := s.leaveRepo.GetByID(leaveID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load leave request")
		return nil, err
	}

	if leave == nil {
		return nil, &NotFoundError{Message: "Leave request not found"}
	}

	leave.Status = status
	if err := s.leaveRepo.Update(leave); err != nil {
		s.logger.WithError(err).Error("Failed to update leave status")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"leave_id": leave.ID,
		"status":   leave.Status,
		"admin_id": callerID,
	}).Info("Leave status updated")

	return leave, nil
}
