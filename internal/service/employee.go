package service

import (
	"time"

	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

// Roster live statuses
const (
	RosterNotCheckedIn = "Not Checked In"
	RosterCheckedIn    = "Checked In"
	RosterOnBreak      = "On Break"
	RosterCheckedOut   = "Checked Out"
	RosterOnLeave      = "On Leave"
)

type EmployeeService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	breakRepo      repository.BreakRepository
	leaveRepo      repository.LeaveRepository
	logger         *logrus.Logger
}

func NewEmployeeService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	breakRepo repository.BreakRepository,
	leaveRepo repository.LeaveRepository,
) *EmployeeService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &EmployeeService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		leaveRepo:      leaveRepo,
		logger:         logger,
	}
}

// requireAdmin re-fetches the caller and checks the role against current
// state. Token claims are never trusted for authorization.
func (s *EmployeeService) requireAdmin(callerID, message string) error {
	caller, err := s.userRepo.GetByID(callerID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up caller for admin check")
		return err
	}

	if caller == nil || !caller.IsAdmin() {
		return &ForbiddenError{Message: message}
	}

	return nil
}

type EmployeeStatusView struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// Roster lists every active employee with their live status for today.
// Leave takes precedence over attendance facts.
func (s *EmployeeService) Roster(callerID string, now time.Time) ([]EmployeeStatusView, error) {
	if err := s.requireAdmin(callerID, "You are not privileged to check the details"); err != nil {
		return nil, err
	}

	employees, err := s.userRepo.GetActiveEmployees()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load active employees")
		return nil, err
	}

	start, end := dayWindow(now)

	roster := make([]EmployeeStatusView, 0, len(employees))
	for _, employee := range employees {
		status, err := s.liveStatus(employee.UserID, start, end, now)
		if err != nil {
			return nil, err
		}

		roster = append(roster, EmployeeStatusView{
			Name:   employee.Name,
			UserID: employee.UserID,
			Email:  employee.Email,
			Status: status,
		})
	}

	return roster, nil
}

func (s *EmployeeService) liveStatus(userID string, start, end, now time.Time) (string, error) {
	onLeave, err := s.leaveRepo.GetApprovedCovering(userID, models.DateOnly(now))
	if err != nil {
		return "", err
	}
	if onLeave != nil {
		return RosterOnLeave, nil
	}

	attendance, err := s.attendanceRepo.GetForWindow(userID, start, end)
	if err != nil {
		return "", err
	}

	switch models.DeriveStatus(attendance) {
	case models.AttendanceCheckedOut:
		return RosterCheckedOut, nil
	case models.AttendanceOnBreak:
		return RosterOnBreak, nil
	case models.AttendanceCheckedIn:
		return RosterCheckedIn, nil
	default:
		return RosterNotCheckedIn, nil
	}
}

// Remove soft-deletes an employee account. The user row is kept with a
// DELETED status so it can be reassigned later, but the dependent leave,
// break and attendance rows are destroyed outright.
func (s *EmployeeService) Remove(callerID, employeeID string) error {
	if err := s.requireAdmin(callerID, "You are not privileged to delete employees"); err != nil {
		return err
	}

	employee, err := s.userRepo.GetByID(employeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up employee for removal")
		return err
	}

	if employee == nil || employee.Role != models.RoleEmployee {
		return &NotFoundError{Message: "Employee not found"}
	}

	if employeeID == callerID {
		return &ValidationError{Message: "Cannot delete your own account"}
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"admin_id":    callerID,
	}).Info("Removing employee")

	if err := s.leaveRepo.DeleteByUserID(employeeID); err != nil {
		s.logger.WithError(err).Error("Failed to delete employee leaves")
		return err
	}

	attendanceIDs, err := s.attendanceRepo.GetIDsByUserID(employeeID)
	if err != nil {
		return err
	}

	if err := s.breakRepo.DeleteByAttendanceIDs(attendanceIDs); err != nil {
		s.logger.WithError(err).Error("Failed to delete employee breaks")
		return err
	}

	if err := s.attendanceRepo.DeleteByUserID(employeeID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateStatus(employeeID, models.UserStatusDeleted); err != nil {
		s.logger.WithError(err).Error("Failed to mark employee as deleted")
		return err
	}

	s.logger.WithField("employee_id", employeeID).Info("Employee removed successfully")

	return nil
}

// Assign reactivates a previously removed or inactive account
func (s *EmployeeService) Assign(callerID, employeeUserID string) (*models.User, error) {
	if err := s.requireAdmin(callerID, "Admin access required"); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(employeeUserID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up user for assignment")
		return nil, err
	}

	if user == nil {
		return nil, &NotFoundError{Message: "User not found"}
	}

	if user.IsActive() {
		return nil, &ConflictError{Message: "User is already an active employee"}
	}

	if err := s.userRepo.UpdateStatus(employeeUserID, models.UserStatusActive); err != nil {
		s.logger.WithError(err).Error("Failed to reactivate user")
		return nil, err
	}

	user.Status = models.UserStatusActive

	s.logger.WithFields(logrus.Fields{
		"user_id":  employeeUserID,
		"admin_id": callerID,
	}).Info("Employee assigned successfully")

	return user, nil
}
