package service

import (
	"testing"
	"time"

	"attendance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) addAttendance(t *testing.T, userID string, checkIn time.Time, hours float64) *models.Attendance {
	t.Helper()

	checkOut := checkIn.Add(time.Duration(hours * float64(time.Hour)))
	attendance := &models.Attendance{
		UserID:     userID,
		CheckIn:    checkIn,
		CheckOut:   &checkOut,
		TotalHours: models.RoundHours(hours),
	}
	require.NoError(t, f.attendance.Create(attendance))

	return attendance
}

func (f *fixture) addApprovedLeave(t *testing.T, userID string, start, end time.Time) *models.Leave {
	t.Helper()

	leave := &models.Leave{
		UserID:    userID,
		StartDate: models.DateOnly(start),
		EndDate:   models.DateOnly(end),
		Reason:    "family function",
		Status:    models.LeaveApproved,
	}
	require.NoError(t, f.leaves.Create(leave))

	return leave
}

func TestHistoryMergesLeaveAroundAttendance(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "henry", models.RoleEmployee)

	// Approved leave Jan 10-12, but the user came in on the 11th
	f.addApprovedLeave(t, user.UserID, at(2024, time.January, 10, 0, 0), at(2024, time.January, 12, 0, 0))
	f.addAttendance(t, user.UserID, at(2024, time.January, 11, 9, 0), 8)

	result, err := f.historySvc.History(user.UserID, 1, 10)
	require.NoError(t, err)
	require.Len(t, result.History, 3)

	assert.Equal(t, "2024-01-12", result.History[0].Date)
	assert.Equal(t, HistoryLeave, result.History[0].Status)
	assert.Equal(t, "family function", result.History[0].Reason)
	assert.Equal(t, "0.00", result.History[0].TimeSpent)

	// Attendance wins over the leave entry for the same date
	assert.Equal(t, "2024-01-11", result.History[1].Date)
	assert.Equal(t, HistoryPresent, result.History[1].Status)
	assert.Equal(t, "8.00", result.History[1].TimeSpent)

	assert.Equal(t, "2024-01-10", result.History[2].Date)
	assert.Equal(t, HistoryLeave, result.History[2].Status)

	for _, entry := range result.History {
		assert.Equal(t, user.Name, entry.Name)
		assert.Equal(t, user.Email, entry.Email)
	}
}

func TestHistoryLeaveSpanProducesOneEntryPerDay(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "irene", models.RoleEmployee)

	f.addApprovedLeave(t, user.UserID, at(2024, time.February, 5, 0, 0), at(2024, time.February, 9, 0, 0))

	result, err := f.historySvc.History(user.UserID, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.History, 5)

	for i, entry := range result.History {
		assert.Equal(t, HistoryLeave, entry.Status)
		if i > 0 {
			assert.Less(t, entry.Date, result.History[i-1].Date)
		}
	}
}

func TestHistoryIgnoresPendingAndRejectedLeaves(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "jack", models.RoleEmployee)

	leave := &models.Leave{
		UserID:    user.UserID,
		StartDate: models.DateOnly(at(2024, time.April, 1, 0, 0)),
		EndDate:   models.DateOnly(at(2024, time.April, 2, 0, 0)),
		Reason:    "pending trip",
		Status:    models.LeavePending,
	}
	require.NoError(t, f.leaves.Create(leave))

	result, err := f.historySvc.History(user.UserID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, result.History)
}

func TestHistoryPagination(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "kate", models.RoleEmployee)

	for day := 1; day <= 7; day++ {
		f.addAttendance(t, user.UserID, at(2024, time.May, day, 9, 0), 8)
	}

	full, err := f.historySvc.History(user.UserID, 1, 100)
	require.NoError(t, err)
	require.Len(t, full.History, 7)
	assert.False(t, full.Pagination.HasMore)

	// Each page must be a direct slice of the full sorted sequence
	limit := 3
	for page := 1; page <= 3; page++ {
		result, err := f.historySvc.History(user.UserID, page, limit)
		require.NoError(t, err)

		offset := (page - 1) * limit
		upper := offset + limit
		if upper > len(full.History) {
			upper = len(full.History)
		}

		assert.Equal(t, full.History[offset:upper], result.History, "page %d", page)
		assert.Equal(t, offset+limit < len(full.History), result.Pagination.HasMore, "page %d", page)
		assert.Equal(t, 7, result.Pagination.TotalRecords)
		assert.Equal(t, page, result.Pagination.CurrentPage)
	}

	// Past the end: empty page, no more records
	result, err := f.historySvc.History(user.UserID, 4, limit)
	require.NoError(t, err)
	assert.Empty(t, result.History)
	assert.False(t, result.Pagination.HasMore)
}

func TestHistoryAdminSeesAllUsers(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "boss", models.RoleAdmin)
	alice := f.createUser(t, "alice", models.RoleEmployee)
	bob := f.createUser(t, "bob", models.RoleEmployee)

	f.addAttendance(t, alice.UserID, at(2024, time.June, 3, 9, 0), 8)
	f.addAttendance(t, bob.UserID, at(2024, time.June, 3, 10, 0), 7)

	result, err := f.historySvc.History(admin.UserID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, result.History, 2)

	// An employee only sees their own rows
	mine, err := f.historySvc.History(alice.UserID, 1, 10)
	require.NoError(t, err)
	require.Len(t, mine.History, 1)
	assert.Equal(t, alice.UserID, mine.History[0].UserID)
}

func TestHistoryUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.historySvc.History("missing-id", 1, 5)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
