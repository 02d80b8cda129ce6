// Package status defines the canonical status values for projects,
// tasks, and users. The strings are stored verbatim in Mongo and shown
// verbatim by the view layer, so they are display-cased here rather
// than normalized.
package status

// Project statuses.
const (
	ProjectNotStarted        = "Not Started"
	ProjectInProgress        = "In Progress"
	ProjectOnHold            = "On Hold"
	ProjectPendingCompletion = "Pending completion"
	ProjectCompleted         = "Completed"
)

// Task statuses. "Pending completion" is a legacy value still present
// on stored tasks; the workflow and projector treat it as "In progress"
// (the board collapses the two into one column).
const (
	TaskToDo              = "To do"
	TaskInProgress        = "In progress"
	TaskPendingCompletion = "Pending completion"
	TaskCompleted         = "Completed"
)

// User account statuses.
const (
	Active   = "active"
	Disabled = "disabled"
)

// ProjectStatuses lists every project status in board-column order.
func ProjectStatuses() []string {
	return []string{
		ProjectNotStarted,
		ProjectInProgress,
		ProjectOnHold,
		ProjectPendingCompletion,
		ProjectCompleted,
	}
}

// TaskStatuses lists the canonical task statuses in board-column order.
func TaskStatuses() []string {
	return []string{TaskToDo, TaskInProgress, TaskCompleted}
}

// ValidProject reports whether s is a known project status.
func ValidProject(s string) bool {
	switch s {
	case ProjectNotStarted, ProjectInProgress, ProjectOnHold,
		ProjectPendingCompletion, ProjectCompleted:
		return true
	}
	return false
}

// ValidTask reports whether s is a known task status.
func ValidTask(s string) bool {
	switch s {
	case TaskToDo, TaskInProgress, TaskPendingCompletion, TaskCompleted:
		return true
	}
	return false
}
