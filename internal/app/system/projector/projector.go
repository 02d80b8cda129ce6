// Package projector computes the presentations the view layer renders:
// filtered and sorted list rows, Kanban columns with remembered manual
// ordering, timeline labels, and project progress. Everything here is
// a pure function of entity state plus parameters; nothing mutates the
// store. The one stateful type is Cache, an explicit snapshot of the
// remote collections that the mutation service invalidates after every
// successful write.
package projector

import (
	"time"
)

// dateOnly truncates a timestamp to its UTC calendar day. All day
// arithmetic in this package compares calendar days, not instants.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b (negative
// when b is before a).
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
