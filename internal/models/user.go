package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RolePGAM               UserRole = "pgam"
	RoleOfficeAssistant    UserRole = "office_assistant"
	RoleProgramCoordinator UserRole = "program_coordinator"
	RoleSupervisor         UserRole = "supervisor"
	RoleChairperson        UserRole = "chairperson"
)

// User is directory data resolved from the identity provider; the service
// never owns or mutates it. A user may hold several roles at once.
type User struct {
	ID          string     `json:"id" gorm:"primaryKey;size:255"`
	FullName    string     `json:"full_name" gorm:"not null;size:200"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	StaffNumber string     `json:"staff_number" gorm:"size:20"`
	Department  string     `json:"department" gorm:"size:100"`
	Roles       []UserRole `json:"roles" gorm:"-"`

	EmailVerified bool `json:"email_verified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Actor carries the caller's identity into every core operation. Passing it
// explicitly keeps the visibility filter a pure function of the request
// instead of an ambient current-user lookup.
type Actor struct {
	UserID      string     `json:"user_id"`
	StaffNumber string     `json:"staff_number"`
	Department  string     `json:"department"`
	Roles       []UserRole `json:"roles"`
}

func (a Actor) HasRole(role UserRole) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) HasAnyRole(roles ...UserRole) bool {
	for _, role := range roles {
		if a.HasRole(role) {
			return true
		}
	}
	return false
}
