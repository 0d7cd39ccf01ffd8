package service

import (
	"github.com/harshith-dev/coursehub-api/internal/models"
)

// Action names a guarded operation. The guard is a pure function of the
// actor, the action and the target resource; it touches no storage.
type Action string

const (
	ActionCourseCreate     Action = "create course"
	ActionCourseUpdate     Action = "update course"
	ActionCourseDelete     Action = "delete course"
	ActionModuleAdd        Action = "add module"
	ActionModuleDelete     Action = "delete module"
	ActionAssignmentAdd    Action = "add assignment"
	ActionAssignmentDelete Action = "delete assignment"
	ActionSubmissionsView  Action = "view submissions"
	ActionGrade            Action = "grade submission"
	ActionEnroll           Action = "enroll"
	ActionDeEnroll         Action = "de-enroll"
	ActionSubmit           Action = "submit assignment"
	ActionUserList         Action = "list users"
	ActionUserDelete       Action = "delete user"
	ActionUserUpdate       Action = "update user"
	ActionPasswordChange   Action = "change password"
	ActionAuditView        Action = "view audit trail"
	ActionStatsView        Action = "view enrollment stats"
	ActionSupportReply     Action = "reply to support message"
)

// Resource identifies the target of a guarded action. OwnerID is the
// mentor who owns a course; SubjectID is the account a user-scoped
// action targets. Either may be nil when the action has no such target.
type Resource struct {
	OwnerID   *uint
	SubjectID *uint
}

// Authorize decides whether actor may perform action on resource. A nil
// return means allowed. Admins bypass only administrative actions;
// course ownership is never bypassed, an admin who wants to edit a
// course must own it as its mentor.
func Authorize(actor models.User, action Action, resource Resource) *AuthorizationError {
	switch action {
	case ActionCourseCreate:
		if !actor.IsMentor() {
			return NewAuthorizationError(string(action), "mentor role required")
		}
		return nil

	case ActionCourseUpdate, ActionCourseDelete,
		ActionModuleAdd, ActionModuleDelete,
		ActionAssignmentAdd, ActionAssignmentDelete,
		ActionSubmissionsView, ActionGrade:
		if !actor.IsMentor() {
			return NewAuthorizationError(string(action), "mentor role required")
		}
		if resource.OwnerID == nil || *resource.OwnerID != actor.ID {
			return NewAuthorizationError(string(action), "not the course mentor")
		}
		return nil

	case ActionEnroll, ActionDeEnroll, ActionSubmit:
		if actor.Role != models.RoleUser {
			return NewAuthorizationError(string(action), "student role required")
		}
		return nil

	case ActionUserList, ActionAuditView, ActionStatsView, ActionSupportReply:
		if !actor.IsAdmin() {
			return NewAuthorizationError(string(action), "admin role required")
		}
		return nil

	case ActionUserDelete:
		if actor.IsAdmin() {
			return nil
		}
		if resource.SubjectID != nil && *resource.SubjectID == actor.ID {
			return nil
		}
		return NewAuthorizationError(string(action), "admin role required")

	case ActionUserUpdate:
		if actor.IsAdmin() {
			return nil
		}
		if resource.SubjectID != nil && *resource.SubjectID == actor.ID {
			return nil
		}
		return NewAuthorizationError(string(action), "may only update own account")

	case ActionPasswordChange:
		if resource.SubjectID != nil && *resource.SubjectID == actor.ID {
			return nil
		}
		return NewAuthorizationError(string(action), "may only change own password")
	}

	return NewAuthorizationError(string(action), "unknown action")
}
