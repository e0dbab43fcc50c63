package service

import (
	"fmt"
	"testing"
	"time"

	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A uniquely named shared in-memory database keeps every pooled
	// connection pointed at the same data within one test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	return db
}

type fixture struct {
	db         *gorm.DB
	users      repository.UserRepository
	attendance repository.AttendanceRepository
	breaks     repository.BreakRepository
	leaves     repository.LeaveRepository

	attendanceSvc *AttendanceService
	breakSvc      *BreakService
	leaveSvc      *LeaveService
	employeeSvc   *EmployeeService
	historySvc    *HistoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)

	users, err := repository.NewGormUserRepository(db)
	require.NoError(t, err)
	attendance, err := repository.NewGormAttendanceRepository(db)
	require.NoError(t, err)
	breaks, err := repository.NewGormBreakRepository(db)
	require.NoError(t, err)
	leaves, err := repository.NewGormLeaveRepository(db)
	require.NoError(t, err)

	return &fixture{
		db:            db,
		users:         users,
		attendance:    attendance,
		breaks:        breaks,
		leaves:        leaves,
		attendanceSvc: NewAttendanceService(attendance, breaks),
		breakSvc:      NewBreakService(attendance, breaks),
		leaveSvc:      NewLeaveService(leaves, users),
		employeeSvc:   NewEmployeeService(users, attendance, breaks, leaves),
		historySvc:    NewHistoryService(attendance, leaves, users),
	}
}

func (f *fixture) createUser(t *testing.T, name, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed-password",
		Role:     role,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, f.users.Create(user))

	return user
}

func (f *fixture) attendanceCount(t *testing.T, userID string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, f.db.Model(&models.Attendance{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

// at builds a local timestamp on the given date
func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}
