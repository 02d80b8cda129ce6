// Package workflow holds the fixed status transition tables for
// projects and tasks. Legality is a pure, total function of the
// (from, to) pair: a transition is legal iff from != to and to appears
// in the adjacency set of from. Nothing here touches the database.
package workflow

import (
	"errors"
	"fmt"

	"github.com/dalemusser/taskhub/internal/app/system/status"
)

// ErrIllegalTransition is wrapped by every rejection so callers can
// discriminate with errors.Is.
var ErrIllegalTransition = errors.New("illegal status transition")

// projectTransitions is the adjacency list of legal project moves.
// Completed is terminal.
var projectTransitions = map[string][]string{
	status.ProjectNotStarted: {
		status.ProjectInProgress,
		status.ProjectOnHold,
	},
	status.ProjectInProgress: {
		status.ProjectOnHold,
		status.ProjectPendingCompletion,
		status.ProjectCompleted,
	},
	status.ProjectOnHold: {
		status.ProjectNotStarted,
		status.ProjectInProgress,
		status.ProjectPendingCompletion,
		status.ProjectCompleted,
	},
	status.ProjectPendingCompletion: {
		status.ProjectInProgress,
		status.ProjectCompleted,
	},
	status.ProjectCompleted: {},
}

// taskTransitions is the adjacency list of legal task moves. A
// completed task reopens only to In progress, never back to To do.
var taskTransitions = map[string][]string{
	status.TaskToDo: {
		status.TaskInProgress,
		status.TaskCompleted,
	},
	status.TaskInProgress: {
		status.TaskToDo,
		status.TaskCompleted,
	},
	status.TaskCompleted: {
		status.TaskInProgress,
	},
}

// CanProject reports whether a project may move from one status to
// another, returning a descriptive error naming both states otherwise.
func CanProject(from, to string) error {
	return check(projectTransitions, "project", from, to)
}

// CanTask reports whether a task may move from one status to another.
// The legacy stored status "Pending completion" is treated as
// "In progress" on both sides of the check.
func CanTask(from, to string) error {
	return check(taskTransitions, "task", NormalizeTask(from), NormalizeTask(to))
}

// NormalizeTask maps the legacy "Pending completion" task status onto
// its canonical equivalent, "In progress". All other values pass
// through unchanged.
func NormalizeTask(s string) string {
	if s == status.TaskPendingCompletion {
		return status.TaskInProgress
	}
	return s
}

func check(table map[string][]string, kind, from, to string) error {
	if from == to {
		return fmt.Errorf("%w: %s is already %q", ErrIllegalTransition, kind, from)
	}
	next, ok := table[from]
	if !ok {
		return fmt.Errorf("%w: unknown %s status %q", ErrIllegalTransition, kind, from)
	}
	for _, s := range next {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot move from %q to %q", ErrIllegalTransition, kind, from, to)
}
