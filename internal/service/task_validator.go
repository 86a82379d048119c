package service

import (
	"strings"
	"time"

	"taskr/internal/errors"
)

const (
	minPriority = 1
	maxPriority = 10
)

// taskValidator validates new task input field by field so the failing
// field can be reported to the user.
type taskValidator struct{}

func newTaskValidator() *taskValidator {
	return &taskValidator{}
}

// ValidateNewTask checks name, due date, and priority. It returns a
// ValidationError naming the first failing field, or nil.
func (v *taskValidator) ValidateNewTask(name string, dueDate time.Time, priority int) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name", "This field is required.")
	}
	if dueDate.IsZero() {
		return errors.NewValidationError("due_date", "This field is required.")
	}
	if priority < minPriority || priority > maxPriority {
		return errors.NewValidationError("priority", "Priority must be between 1 and 10.")
	}
	return nil
}
