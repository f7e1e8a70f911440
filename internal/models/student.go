package models

import (
	"time"

	"gorm.io/gorm"
)

type EvaluationType string

const (
	FirstEvaluation EvaluationType = "FirstEvaluation"
	ReEvaluation    EvaluationType = "ReEvaluation"
)

type Student struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	MatricNumber    string         `json:"matric_number" gorm:"uniqueIndex;not null;size:20"`
	FullName        string         `json:"full_name" gorm:"not null;size:200"`
	Department      string         `json:"department" gorm:"not null;size:100;index"`
	CurrentSemester int            `json:"current_semester" gorm:"not null" validate:"min=1,max=20"`
	EvaluationType  EvaluationType `json:"evaluation_type" gorm:"not null;size:30;default:FirstEvaluation" validate:"omitempty,oneof=FirstEvaluation ReEvaluation"`

	MainSupervisorID uint `json:"main_supervisor_id" gorm:"not null;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	MainSupervisor Lecturer   `json:"main_supervisor" gorm:"foreignKey:MainSupervisorID"`
	CoSupervisors  []Lecturer `json:"co_supervisors" gorm:"many2many:student_co_supervisors"`
	Evaluations    []Evaluation `json:"evaluations,omitempty" gorm:"foreignKey:StudentID"`
}

func (Student) TableName() string {
	return "students"
}

// SupervisorIDs returns the main supervisor plus all co-supervisors.
func (s *Student) SupervisorIDs() []uint {
	ids := make([]uint, 0, len(s.CoSupervisors)+1)
	ids = append(ids, s.MainSupervisorID)
	for _, co := range s.CoSupervisors {
		ids = append(ids, co.ID)
	}
	return ids
}

// IsSupervisor reports whether the lecturer supervises the student in any
// capacity (main or co-supervisor).
func (s *Student) IsSupervisor(lecturerID uint) bool {
	if s.MainSupervisorID == lecturerID {
		return true
	}
	for _, co := range s.CoSupervisors {
		if co.ID == lecturerID {
			return true
		}
	}
	return false
}
