package service

import (
	"fmt"
	"sort"

	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	historyDateFormat = "2006-01-02"
	historyTimeFormat = "15:04:05"
)

// History entry statuses
const (
	HistoryPresent = "Present"
	HistoryLeave   = "Leave"
)

type HistoryService struct {
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRepository
	userRepo       repository.UserRepository
	logger         *logrus.Logger
}

func NewHistoryService(
	attendanceRepo repository.AttendanceRepository,
	leaveRepo repository.LeaveRepository,
	userRepo repository.UserRepository,
) *HistoryService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &HistoryService{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

type BreakView struct {
	BreakStart string `json:"breakStart"`
	BreakEnd   string `json:"breakEnd,omitempty"`
	Duration   string `json:"duration"`
}

type HistoryEntry struct {
	Date      string      `json:"date"`
	CheckIn   string      `json:"checkIn,omitempty"`
	CheckOut  string      `json:"checkOut,omitempty"`
	TimeSpent string      `json:"timeSpent"`
	Status    string      `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	Breaks    []BreakView `json:"breaks"`
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
}

type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalRecords int  `json:"totalRecords"`
	HasMore      bool `json:"hasMore"`
	Limit        int  `json:"limit"`
}

type HistoryResult struct {
	History    []HistoryEntry `json:"history"`
	Pagination Pagination     `json:"pagination"`
}

// History assembles the merged per-day timeline of attendance rows and
// approved leave ranges, newest date first, then applies offset/limit
// pagination. Admins get the timeline across all users.
func (s *HistoryService) History(userID string, page, limit int) (*HistoryResult, error) {
	caller, err := s.userRepo.GetByID(userID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up caller for history")
		return nil, err
	}

	if caller == nil {
		return nil, &NotFoundError{Message: "User not found"}
	}

	isAdmin := caller.IsAdmin()

	records, err := s.attendanceRepo.GetHistory(userID, isAdmin)
	if err != nil {
		return nil, err
	}

	leaves, err := s.leaveRepo.GetApproved(userID, isAdmin)
	if err != nil {
		return nil, err
	}

	entries := assembleHistory(records, leaves, caller)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	total := len(entries)
	offset := (page - 1) * limit

	pageEntries := []HistoryEntry{}
	if offset < total {
		upper := offset + limit
		if upper > total {
			upper = total
		}
		pageEntries = entries[offset:upper]
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"page":    page,
		"limit":   limit,
		"total":   total,
	}).Debug("Assembled attendance history")

	return &HistoryResult{
		History: pageEntries,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalRecords: total,
			HasMore:      offset+limit < total,
			Limit:        limit,
		},
	}, nil
}

// assembleHistory merges attendance facts with approved leave ranges. An
// attendance entry always wins over a leave entry for the same user and
// date: a leave day the person worked anyway is reported as Present.
func assembleHistory(records []*models.Attendance, leaves []*models.Leave, caller *models.User) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(records))
	seen := make(map[string]bool)

	for _, record := range records {
		date := record.CheckIn.Format(historyDateFormat)

		entry := HistoryEntry{
			Date:      date,
			CheckIn:   record.CheckIn.Format(historyTimeFormat),
			TimeSpent: "0.00",
			Status:    HistoryPresent,
			Breaks:    breakViews(record.Breaks),
			UserID:    record.User.UserID,
			Name:      record.User.Name,
			Email:     record.User.Email,
		}

		if record.CheckOut != nil {
			entry.CheckOut = record.CheckOut.Format(historyTimeFormat)
			entry.TimeSpent = models.FormatHours(record.TotalHours)
		}

		entries = append(entries, entry)
		seen[record.UserID+"|"+date] = true
	}

	for _, leave := range leaves {
		start := models.DateOnly(leave.StartDate)
		end := models.DateOnly(leave.EndDate)

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			date := d.Format(historyDateFormat)
			if seen[leave.UserID+"|"+date] {
				continue
			}
			seen[leave.UserID+"|"+date] = true

			entry := HistoryEntry{
				Date:      date,
				TimeSpent: "0.00",
				Status:    HistoryLeave,
				Reason:    leave.Reason,
				Breaks:    []BreakView{},
				UserID:    leave.UserID,
				Name:      leave.User.Name,
				Email:     leave.User.Email,
			}
			if entry.Name == "" {
				entry.Name = caller.Name
				entry.Email = caller.Email
			}

			entries = append(entries, entry)
		}
	}

	// Newest day first. Order within one date is not defined.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	return entries
}

func breakViews(breaks []models.Break) []BreakView {
	views := make([]BreakView, 0, len(breaks))
	for i := range breaks {
		brk := &breaks[i]

		view := BreakView{
			BreakStart: brk.BreakStart.Format(historyTimeFormat),
			Duration:   "Ongoing",
		}
		if brk.BreakEnd != nil {
			view.BreakEnd = brk.BreakEnd.Format(historyTimeFormat)
			view.Duration = fmt.Sprintf("%d mins", brk.DurationMinutes())
		}

		views = append(views, view)
	}
	return views
}
