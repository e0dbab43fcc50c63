package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    string = "ADMIN"
	RoleEmployee string = "EMPLOYEE"
)

// Account statuses. Users are never hard-deleted: removal flips the
// status to DELETED and "assign" flips it back to ACTIVE.
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
	UserStatusDeleted  = "DELETED"
)

type User struct {
	UserID    string    `gorm:"type:char(36);primaryKey" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);default:'EMPLOYEE'" json:"role"`
	Status    string    `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Attendances []Attendance `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Leaves      []Leave      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

// IsAdmin checks whether the user has the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive checks whether the account is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// SetRole sets the role
func (u *User) SetRole(role Role) {
	u.Role = string(role)
}

// TableName sets the table name in the DB
func (User) TableName() string {
	return "users"
}
