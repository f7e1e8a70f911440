package validator

import (
	"fmt"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
)

// RuleViolationError reports a failed committee eligibility rule. The reason
// is surfaced verbatim to the end user, so it is written in plain language.
type RuleViolationError struct {
	Slot   string `json:"slot"`
	Reason string `json:"reason"`
}

func (e *RuleViolationError) Error() string {
	return e.Reason
}

func newRuleViolation(slot, format string, args ...interface{}) *RuleViolationError {
	return &RuleViolationError{Slot: slot, Reason: fmt.Sprintf(format, args...)}
}

// Committee is the resolved composition an eligibility check runs against.
// Callers resolve all entities up front; no rule touches the database.
type Committee struct {
	MainSupervisor *models.Lecturer
	CoSupervisors  []models.Lecturer
	Examiners      [3]*models.Lecturer
}

// MaxTitle returns the highest title held by the supervisor and the occupied
// examiner slots.
func (c Committee) MaxTitle() models.LecturerTitle {
	best := models.LecturerTitle("")
	consider := func(l *models.Lecturer) {
		if l != nil && l.Title.Rank() > best.Rank() {
			best = l.Title
		}
	}
	consider(c.MainSupervisor)
	for _, ex := range c.Examiners {
		consider(ex)
	}
	return best
}

// Supervision is the student's supervisory team an examiner candidate is
// checked against. No member of it may occupy an examiner slot.
type Supervision struct {
	MainSupervisor *models.Lecturer
	CoSupervisors  []models.Lecturer
}

func (sv Supervision) isCoSupervisor(id uint) bool {
	for _, co := range sv.CoSupervisors {
		if co.ID == id {
			return true
		}
	}
	return false
}

// EligibilityValidator holds the committee composition rules. The rules are
// pure: they read only the lecturers handed to them.
type EligibilityValidator struct{}

func NewEligibilityValidator() *EligibilityValidator {
	return &EligibilityValidator{}
}

// ValidateExaminer1 checks the first-examiner rules: no supervisory overlap,
// host-faculty affiliated, and a title floor that escalates to Prof when the
// supervisor is a Prof.
func (ev *EligibilityValidator) ValidateExaminer1(supervision Supervision, candidate *models.Lecturer) error {
	if candidate.ID == supervision.MainSupervisor.ID {
		return newRuleViolation("examiner1", "Examiner 1 must not be the main supervisor")
	}
	if supervision.isCoSupervisor(candidate.ID) {
		return newRuleViolation("examiner1", "Examiner 1 must not be a co-supervisor of the student")
	}
	if !candidate.IsFromHostFaculty {
		return newRuleViolation("examiner1", "Examiner 1 must be from the host faculty")
	}
	if supervision.MainSupervisor.Title == models.TitleProf {
		if candidate.Title != models.TitleProf {
			return newRuleViolation("examiner1", "Examiner 1 must be a Prof as main supervisor is a Prof")
		}
		return nil
	}
	if !candidate.Title.AtLeast(models.TitleAssocProf) {
		return newRuleViolation("examiner1", "Examiner 1 must be at least an Assoc Prof")
	}
	return nil
}

// ValidateExaminer2 checks the second-examiner rules. Examiner 2 may be
// external and the Assoc Prof recommendation is advisory only; the hard
// rules are the supervisory conflicts.
func (ev *EligibilityValidator) ValidateExaminer2(supervision Supervision, candidate *models.Lecturer) error {
	if candidate.ID == supervision.MainSupervisor.ID {
		return newRuleViolation("examiner2", "Examiner 2 must not be the main supervisor")
	}
	if supervision.isCoSupervisor(candidate.ID) {
		return newRuleViolation("examiner2", "Examiner 2 must not be a co-supervisor of the student")
	}
	return nil
}

// ValidateExaminer3 checks the third-examiner rules: no supervisory overlap
// and host-faculty affiliated. No title floor.
func (ev *EligibilityValidator) ValidateExaminer3(supervision Supervision, candidate *models.Lecturer) error {
	if candidate.ID == supervision.MainSupervisor.ID {
		return newRuleViolation("examiner3", "Examiner 3 must not be the main supervisor")
	}
	if supervision.isCoSupervisor(candidate.ID) {
		return newRuleViolation("examiner3", "Examiner 3 must not be a co-supervisor of the student")
	}
	if !candidate.IsFromHostFaculty {
		return newRuleViolation("examiner3", "Examiner 3 must be from the host faculty")
	}
	return nil
}

// ValidateExaminerSlot dispatches to the rule for the given slot (1..3).
func (ev *EligibilityValidator) ValidateExaminerSlot(slot int, supervision Supervision, candidate *models.Lecturer) error {
	switch slot {
	case 1:
		return ev.ValidateExaminer1(supervision, candidate)
	case 2:
		return ev.ValidateExaminer2(supervision, candidate)
	case 3:
		return ev.ValidateExaminer3(supervision, candidate)
	default:
		return fmt.Errorf("invalid examiner slot %d", slot)
	}
}

// ValidateChairperson checks the chairperson rules against the resolved
// committee: no overlap with any supervisory or examiner role, and a title
// floor that escalates to Prof when any committee member is a Prof.
func (ev *EligibilityValidator) ValidateChairperson(candidate *models.Lecturer, committee Committee) error {
	if committee.MainSupervisor != nil && candidate.ID == committee.MainSupervisor.ID {
		return newRuleViolation("chairperson", "Chairperson must not be the main supervisor")
	}
	for _, co := range committee.CoSupervisors {
		if candidate.ID == co.ID {
			return newRuleViolation("chairperson", "Chairperson must not be a co-supervisor of the student")
		}
	}
	for i, ex := range committee.Examiners {
		if ex != nil && candidate.ID == ex.ID {
			return newRuleViolation("chairperson", "Chairperson must not be Examiner %d of the student", i+1)
		}
	}

	if committee.MaxTitle() == models.TitleProf {
		if candidate.Title != models.TitleProf {
			return newRuleViolation("chairperson", "Chairperson must be a Prof as a committee member is a Prof")
		}
		return nil
	}
	if !candidate.Title.AtLeast(models.TitleAssocProf) {
		return newRuleViolation("chairperson", "Chairperson must be at least an Assoc Prof")
	}
	return nil
}
