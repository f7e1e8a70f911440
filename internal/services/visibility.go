package services

import (
	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
)

// BuildEvaluationScope derives the visibility predicate from the actor's
// roles. Branches from every held role are unioned; PGAM and Office
// Assistant short-circuit to unrestricted. An actor with no matching role
// gets the empty scope, which matches nothing.
//
// The lecturer argument is the directory record matching the actor's staff
// number, nil when the actor is not a lecturer. The examiner branch is
// implicit: any lecturer sees evaluations where they occupy an examiner
// slot, whatever their roles say.
func BuildEvaluationScope(actor models.Actor, lecturer *models.Lecturer) repositories.EvaluationScope {
	if actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant) {
		return repositories.EvaluationScope{All: true}
	}

	var scope repositories.EvaluationScope

	if actor.HasRole(models.RoleProgramCoordinator) && actor.Department != "" {
		dept := actor.Department
		scope.Department = &dept
	}

	if lecturer != nil {
		if actor.HasRole(models.RoleSupervisor) {
			id := lecturer.ID
			scope.SupervisorLecturerID = &id
		}
		if actor.HasRole(models.RoleChairperson) {
			id := lecturer.ID
			scope.ChairLecturerID = &id
		}

		// Implicit branch: examiners see their own assignments.
		id := lecturer.ID
		scope.ExaminerLecturerID = &id
	}

	return scope
}

// scopeMatches applies the scope to a single loaded evaluation, for reads
// that fetch by id rather than through a filtered query. The evaluation
// must have its Student preloaded.
func scopeMatches(scope repositories.EvaluationScope, evaluation *models.Evaluation) bool {
	if scope.All {
		return true
	}
	if scope.Department != nil && evaluation.Student.Department == *scope.Department {
		return true
	}
	if scope.SupervisorLecturerID != nil && evaluation.Student.MainSupervisorID == *scope.SupervisorLecturerID {
		return true
	}
	if scope.ChairLecturerID != nil && evaluation.ChairpersonID != nil && *evaluation.ChairpersonID == *scope.ChairLecturerID {
		return true
	}
	if scope.ExaminerLecturerID != nil && evaluation.HasExaminer(*scope.ExaminerLecturerID) {
		return true
	}
	return false
}
