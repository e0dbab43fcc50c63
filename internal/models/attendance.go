package models

import (
	"fmt"
	"math"
	"time"
)

// Derived attendance statuses. Status is never stored: it is recomputed
// from the attendance and break rows on every read.
const (
	AttendanceNotCheckedIn = "not_checked_in"
	AttendanceCheckedIn    = "checked_in"
	AttendanceOnBreak      = "on_break"
	AttendanceCheckedOut   = "checked_out"
)

type Attendance struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     string     `gorm:"type:char(36);not null;index" json:"user_id"`
	CheckIn    time.Time  `gorm:"not null;index" json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	TotalHours float64    `gorm:"type:decimal(5,2)" json:"total_hours"`

	User   User    `gorm:"foreignKey:UserID" json:"-"`
	Breaks []Break `gorm:"foreignKey:AttendanceID;constraint:OnDelete:CASCADE" json:"breaks,omitempty"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// IsOpen checks whether the working day is still in progress
func (a *Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// HoursWorked returns hours between check-in and until, rounded to 2
// decimal places.
func (a *Attendance) HoursWorked(until time.Time) float64 {
	return RoundHours(until.Sub(a.CheckIn).Hours())
}

// OpenBreak returns the loaded break row with no end time, if any
func (a *Attendance) OpenBreak() *Break {
	for i := range a.Breaks {
		if a.Breaks[i].IsOpen() {
			return &a.Breaks[i]
		}
	}
	return nil
}

// DeriveStatus computes the attendance status for one user and day as a
// pure function of the row and its breaks. A nil attendance means the
// user never checked in.
func DeriveStatus(a *Attendance) string {
	if a == nil {
		return AttendanceNotCheckedIn
	}
	if a.CheckOut != nil {
		return AttendanceCheckedOut
	}
	if a.OpenBreak() != nil {
		return AttendanceOnBreak
	}
	return AttendanceCheckedIn
}

// RoundHours rounds an hour count to 2 decimal places
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// FormatHours renders an hour count the way the API reports it, e.g. "8.50"
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}
