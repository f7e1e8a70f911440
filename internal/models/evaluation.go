package models

import (
	"time"

	"gorm.io/datatypes"
)

type NominationStatus string

const (
	StatusPending   NominationStatus = "Pending"
	StatusNominated NominationStatus = "Nominated"
	StatusLocked    NominationStatus = "Locked"
	StatusPostponed NominationStatus = "Postponed"
)

// Evaluation is the per-student-per-semester nomination and chairperson
// assignment record. (student_id, semester) is unique; the composite index
// backs the DuplicateNomination guarantee under concurrent creation.
type Evaluation struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	StudentID    uint   `json:"student_id" gorm:"not null;uniqueIndex:idx_student_semester"`
	Semester     int    `json:"semester" gorm:"not null;uniqueIndex:idx_student_semester;index"`
	AcademicYear string `json:"academic_year" gorm:"not null;size:9"`

	// Derived from examiner completeness, never set by direct input.
	NominationStatus NominationStatus `json:"nomination_status" gorm:"not null;default:Pending;index"`

	Examiner1ID *uint `json:"examiner1_id" gorm:"index"`
	Examiner2ID *uint `json:"examiner2_id" gorm:"index"`
	Examiner3ID *uint `json:"examiner3_id" gorm:"index"`

	ChairpersonID  *uint `json:"chairperson_id" gorm:"index"`
	IsAutoAssigned bool  `json:"is_auto_assigned" gorm:"not null;default:false"`

	NominatedBy *string    `json:"nominated_by" gorm:"size:255"`
	NominatedAt *time.Time `json:"nominated_at"`

	LockedBy *string    `json:"locked_by" gorm:"size:255"`
	LockedAt *time.Time `json:"locked_at"`

	IsPostponed        bool           `json:"is_postponed" gorm:"not null;default:false"`
	PostponementReason *string        `json:"postponement_reason" gorm:"type:text"`
	PostponedTo        *time.Time     `json:"postponed_to"`
	PostponementLog    datatypes.JSON `json:"postponement_log,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student     Student   `json:"student" gorm:"foreignKey:StudentID"`
	Examiner1   *Lecturer `json:"examiner1" gorm:"foreignKey:Examiner1ID"`
	Examiner2   *Lecturer `json:"examiner2" gorm:"foreignKey:Examiner2ID"`
	Examiner3   *Lecturer `json:"examiner3" gorm:"foreignKey:Examiner3ID"`
	Chairperson *Lecturer `json:"chairperson" gorm:"foreignKey:ChairpersonID"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// PostponementEntry is one row of the postponement log kept on the record.
type PostponementEntry struct {
	Reason      string    `json:"reason"`
	PostponedTo time.Time `json:"postponed_to"`
	PostponedBy string    `json:"postponed_by"`
	PostponedAt time.Time `json:"postponed_at"`
}

// DeriveNominationStatus computes the status from examiner completeness:
// Nominated iff all three slots are set, Pending otherwise. Locked and
// Postponed are assigned by their own operations, never derived.
func DeriveNominationStatus(examiner1, examiner2, examiner3 *uint) NominationStatus {
	if examiner1 != nil && examiner2 != nil && examiner3 != nil {
		return StatusNominated
	}
	return StatusPending
}

func (e *Evaluation) IsLocked() bool {
	return e.NominationStatus == StatusLocked
}

// ExaminerIDs returns the occupied examiner slots in slot order.
func (e *Evaluation) ExaminerIDs() []uint {
	ids := make([]uint, 0, 3)
	for _, id := range []*uint{e.Examiner1ID, e.Examiner2ID, e.Examiner3ID} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}

// HasExaminer reports whether the lecturer occupies any examiner slot.
func (e *Evaluation) HasExaminer(lecturerID uint) bool {
	for _, id := range e.ExaminerIDs() {
		if id == lecturerID {
			return true
		}
	}
	return false
}
