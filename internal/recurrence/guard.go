package recurrence

import (
	"recurring-planner/internal/model"
)

// IsCompletionAllowed reports whether setting the task's status to newStatus
// is permitted. Templates can never be marked done directly; every other
// update, on templates and occurrences alike, is allowed. Enforcement is the
// caller's job: the update layer consults this before committing.
func IsCompletionAllowed(task model.Task, newStatus model.Status) bool {
	return !(task.IsTemplate() && newStatus == model.StatusDone)
}

// CheckCompletion is IsCompletionAllowed as an error, for callers that
// propagate the rejection instead of branching on it.
func CheckCompletion(task model.Task, newStatus model.Status) error {
	if !IsCompletionAllowed(task, newStatus) {
		return ErrTemplateCompletionForbidden
	}
	return nil
}
