package service

import (
	"taskr/internal/errors"
	"taskr/internal/model"
)

// Task actions subject to the ownership guard.
type taskAction int

const (
	actionComplete taskAction = iota
	actionDelete
)

// authorize is the ownership guard: it rejects any mutation where the acting
// user does not own the target task. Pure predicate, no side effects; the
// returned error names the attempted action so the user-facing message
// distinguishes complete from delete.
func authorize(actingUserID uint, task *model.Task, action taskAction) error {
	if task.OwnerID == actingUserID {
		return nil
	}
	if action == actionDelete {
		return errors.ErrForbiddenDelete
	}
	return errors.ErrForbiddenUpdate
}
