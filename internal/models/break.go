package models

import "time"

type Break struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AttendanceID uint       `gorm:"not null;index" json:"attendance_id"`
	BreakStart   time.Time  `gorm:"not null" json:"break_start"`
	BreakEnd     *time.Time `json:"break_end"`

	Attendance Attendance `gorm:"foreignKey:AttendanceID" json:"-"`
}

func (Break) TableName() string {
	return "breaks"
}

// IsOpen checks whether the break is still running
func (b *Break) IsOpen() bool {
	return b.BreakEnd == nil
}

// DurationMinutes returns the closed break length in whole minutes.
// Returns 0 for an open break.
func (b *Break) DurationMinutes() int {
	if b.BreakEnd == nil {
		return 0
	}
	return int(b.BreakEnd.Sub(b.BreakStart).Minutes())
}
