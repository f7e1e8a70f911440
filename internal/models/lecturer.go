package models

import (
	"time"

	"gorm.io/gorm"
)

type LecturerTitle string

const (
	TitleDr        LecturerTitle = "Dr"
	TitleAssocProf LecturerTitle = "AssocProf"
	TitleProf      LecturerTitle = "Prof"
)

// titleRanks is the seniority ordering used by every eligibility comparison.
// Dr < AssocProf < Prof. Unknown titles rank below Dr.
var titleRanks = map[LecturerTitle]int{
	TitleDr:        1,
	TitleAssocProf: 2,
	TitleProf:      3,
}

func (t LecturerTitle) Rank() int {
	return titleRanks[t]
}

// AtLeast reports whether t ranks equal to or above other.
func (t LecturerTitle) AtLeast(other LecturerTitle) bool {
	return t.Rank() >= other.Rank()
}

func (t LecturerTitle) Display() string {
	switch t {
	case TitleAssocProf:
		return "Assoc Prof"
	case TitleProf:
		return "Prof"
	default:
		return string(t)
	}
}

// Lecturer is master data owned by the administrative modules; the
// nomination engine only ever reads it.
type Lecturer struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	StaffNumber string        `json:"staff_number" gorm:"uniqueIndex;not null;size:20"`
	FullName    string        `json:"full_name" gorm:"not null;size:200;index"`
	Email       string        `json:"email" gorm:"size:255"`
	Title       LecturerTitle `json:"title" gorm:"not null;size:20;index" validate:"required,oneof=Dr AssocProf Prof"`
	Department  string        `json:"department" gorm:"not null;size:100;index"`

	// External examiners carry the institution they come from; host-faculty
	// lecturers leave it empty.
	IsFromHostFaculty   bool    `json:"is_from_host_faculty" gorm:"not null;default:true"`
	ExternalInstitution *string `json:"external_institution" gorm:"size:200"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Lecturer) TableName() string {
	return "lecturers"
}
