package domain

import "errors"

// Sentinel defaults substituted for missing task fields.
//
// DefaultPomodoroCount replicates the upstream policy of treating a zero
// pomodoro count as "not provided" and substituting a fixed placeholder.
// That policy conflates an intentional 0 with an omitted value; the constant
// is named and applied in exactly one place (NewTask) so the substitution is
// visible rather than buried in field validators.
const (
	// DefaultTaskName is stored when a task is created without a name.
	DefaultTaskName = "Untitled task"

	// DefaultPomodoroCount is stored when a task is created with a zero or
	// absent pomodoro count.
	DefaultPomodoroCount = 111
)

// Task validation errors
var (
	ErrEmptyTaskOwner = errors.New("task owner cannot be empty")
)

// Task represents a single pomodoro task owned by a user.
// (Name, UserID) is unique; CategoryID is nil for uncategorized tasks and is
// cleared, not cascaded, when the category is deleted.
type Task struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PomodoroCount int    `json:"pomodoro_count"`
	CategoryID    *int64 `json:"category_id"`
	UserID        int64  `json:"user_id"`
}

// TaskInput is the caller-supplied portion of a task. Zero values are legal
// and are normalized to the sentinel defaults by NewTask.
type TaskInput struct {
	Name          string `json:"name"`
	PomodoroCount int    `json:"pomodoro_count"`
	CategoryID    *int64 `json:"category_id"`
}

// NewTask builds a Task for the given owner, applying the sentinel defaults
// as an explicit normalization step: an empty name becomes DefaultTaskName
// and a zero pomodoro count becomes DefaultPomodoroCount. The ID is assigned
// by the store on insert.
// Returns an error if the owner ID is missing.
func NewTask(input TaskInput, ownerID int64) (*Task, error) {
	if ownerID == 0 {
		return nil, ErrEmptyTaskOwner
	}

	task := &Task{
		Name:          input.Name,
		PomodoroCount: input.PomodoroCount,
		CategoryID:    input.CategoryID,
		UserID:        ownerID,
	}
	task.normalize()

	return task, nil
}

// normalize substitutes the sentinel defaults for absent fields.
func (t *Task) normalize() {
	if t.Name == "" {
		t.Name = DefaultTaskName
	}
	if t.PomodoroCount == 0 {
		t.PomodoroCount = DefaultPomodoroCount
	}
}
