package service

import (
	"testing"
	"time"

	"attendance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInCreatesSingleRowPerDay(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "alice", models.RoleEmployee)

	morning := at(2024, time.March, 4, 9, 0)

	attendance, err := f.attendanceSvc.CheckIn(user.UserID, morning)
	require.NoError(t, err)
	require.NotZero(t, attendance.ID)
	assert.Nil(t, attendance.CheckOut)

	// Second attempt the same day is a conflict and must not add a row
	_, err = f.attendanceSvc.CheckIn(user.UserID, morning.Add(2*time.Hour))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Already checked-in today", conflict.Message)
	assert.EqualValues(t, 1, f.attendanceCount(t, user.UserID))

	// The next calendar day opens a fresh window
	_, err = f.attendanceSvc.CheckIn(user.UserID, morning.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.attendanceCount(t, user.UserID))
}

func TestCheckOutRequiresOpenAttendance(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", models.RoleEmployee)

	now := at(2024, time.March, 4, 17, 0)

	_, _, err := f.attendanceSvc.CheckOut(user.UserID, now)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	// Checking out twice is also rejected: the row is no longer open
	_, err = f.attendanceSvc.CheckIn(user.UserID, at(2024, time.March, 4, 9, 0))
	require.NoError(t, err)
	_, _, err = f.attendanceSvc.CheckOut(user.UserID, now)
	require.NoError(t, err)
	_, _, err = f.attendanceSvc.CheckOut(user.UserID, now.Add(time.Minute))
	require.ErrorAs(t, err, &validation)
}

func TestCheckOutComputesTotalHours(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "carol", models.RoleEmployee)

	// 09:00 - 17:00 with a 12:00-12:30 break: breaks are tracked but
	// never subtracted from the total.
	_, err := f.attendanceSvc.CheckIn(user.UserID, at(2024, time.March, 4, 9, 0))
	require.NoError(t, err)
	_, err = f.breakSvc.Start(user.UserID, at(2024, time.March, 4, 12, 0))
	require.NoError(t, err)
	_, err = f.breakSvc.End(user.UserID, at(2024, time.March, 4, 12, 30))
	require.NoError(t, err)

	attendance, breakClosed, err := f.attendanceSvc.CheckOut(user.UserID, at(2024, time.March, 4, 17, 0))
	require.NoError(t, err)
	assert.False(t, breakClosed)
	assert.Equal(t, "8.00", models.FormatHours(attendance.TotalHours))
	require.NotNil(t, attendance.CheckOut)
}

func TestCheckOutAutoClosesOpenBreak(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "dave", models.RoleEmployee)

	_, err := f.attendanceSvc.CheckIn(user.UserID, at(2024, time.March, 4, 9, 0))
	require.NoError(t, err)
	brk, err := f.breakSvc.Start(user.UserID, at(2024, time.March, 4, 12, 0))
	require.NoError(t, err)

	checkOut := at(2024, time.March, 4, 17, 30)
	attendance, breakClosed, err := f.attendanceSvc.CheckOut(user.UserID, checkOut)
	require.NoError(t, err)
	assert.True(t, breakClosed)
	assert.Equal(t, "8.50", models.FormatHours(attendance.TotalHours))

	var closed models.Break
	require.NoError(t, f.db.First(&closed, brk.ID).Error)
	require.NotNil(t, closed.BreakEnd)
	assert.Equal(t, checkOut.Unix(), closed.BreakEnd.Unix())
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "erin", models.RoleEmployee)

	day := at(2024, time.March, 4, 8, 0)

	status, err := f.attendanceSvc.Status(user.UserID, day)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceNotCheckedIn, status.Status)
	assert.False(t, status.IsCheckedIn)
	assert.Nil(t, status.Attendance)

	_, err = f.attendanceSvc.CheckIn(user.UserID, at(2024, time.March, 4, 9, 0))
	require.NoError(t, err)

	status, err = f.attendanceSvc.Status(user.UserID, at(2024, time.March, 4, 11, 0))
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceCheckedIn, status.Status)
	assert.True(t, status.IsCheckedIn)
	// Advisory elapsed time, recomputed per read and never stored
	assert.Equal(t, "2.00", status.CurrentWorkingHours)

	_, err = f.breakSvc.Start(user.UserID, at(2024, time.March, 4, 12, 0))
	require.NoError(t, err)

	status, err = f.attendanceSvc.Status(user.UserID, at(2024, time.March, 4, 12, 10))
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceOnBreak, status.Status)
	assert.True(t, status.IsCheckedIn)

	_, err = f.breakSvc.End(user.UserID, at(2024, time.March, 4, 12, 30))
	require.NoError(t, err)

	status, err = f.attendanceSvc.Status(user.UserID, at(2024, time.March, 4, 13, 0))
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceCheckedIn, status.Status)

	_, _, err = f.attendanceSvc.CheckOut(user.UserID, at(2024, time.March, 4, 17, 0))
	require.NoError(t, err)

	status, err = f.attendanceSvc.Status(user.UserID, at(2024, time.March, 4, 18, 0))
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceCheckedOut, status.Status)
	assert.False(t, status.IsCheckedIn)
	assert.Equal(t, "8.00", status.TotalHours)
}

func TestBreakGuards(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "frank", models.RoleEmployee)

	day := at(2024, time.March, 4, 12, 0)

	// No attendance row yet
	_, err := f.breakSvc.Start(user.UserID, day)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	_, err = f.attendanceSvc.CheckIn(user.UserID, at(2024, time.March, 4, 9, 0))
	require.NoError(t, err)

	// Ending with no open break
	_, err = f.breakSvc.End(user.UserID, day)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = f.breakSvc.Start(user.UserID, day)
	require.NoError(t, err)

	// One open break at a time
	_, err = f.breakSvc.Start(user.UserID, day.Add(5*time.Minute))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Already on a break", conflict.Message)

	_, err = f.breakSvc.End(user.UserID, day.Add(30*time.Minute))
	require.NoError(t, err)

	// A second break the same day is fine once the first is closed
	_, err = f.breakSvc.Start(user.UserID, day.Add(3*time.Hour))
	require.NoError(t, err)
}

func TestBreakStatusReporting(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "grace", models.RoleEmployee)

	day := at(2024, time.March, 4, 10, 0)

	status, err := f.breakSvc.Status(user.UserID, day)
	require.NoError(t, err)
	assert.Equal(t, BreakStatusNotCheckedIn, status.Status)
	assert.NotEmpty(t, status.Message)

	_, err = f.attendanceSvc.CheckIn(user.UserID, at(2024, time.March, 4, 9, 0))
	require.NoError(t, err)

	status, err = f.breakSvc.Status(user.UserID, day)
	require.NoError(t, err)
	assert.Equal(t, BreakStatusNoBreak, status.Status)
	assert.Equal(t, "Take Break", status.Button)

	_, err = f.breakSvc.Start(user.UserID, day)
	require.NoError(t, err)

	status, err = f.breakSvc.Status(user.UserID, day.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, BreakStatusOnBreak, status.Status)
	assert.Equal(t, "End Break", status.Button)

	_, err = f.breakSvc.End(user.UserID, day.Add(20*time.Minute))
	require.NoError(t, err)

	status, err = f.breakSvc.Status(user.UserID, day.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, BreakStatusCanTakeBreak, status.Status)
	assert.Equal(t, "Take Break", status.Button)
}
