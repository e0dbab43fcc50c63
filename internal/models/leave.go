package models

import "time"

// Leave request statuses
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

type Leave struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index" json:"user_id"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	Status    string    `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Leave) TableName() string {
	return "leaves"
}

// IsValidLeaveStatus reports whether s is one of the three leave statuses
func IsValidLeaveStatus(s string) bool {
	return s == LeavePending || s == LeaveApproved || s == LeaveRejected
}

// Covers checks whether the given calendar day falls inside the
// inclusive [StartDate, EndDate] range.
func (l *Leave) Covers(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(l.StartDate)) && !d.After(DateOnly(l.EndDate))
}

// DateOnly truncates a timestamp to midnight local time
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
