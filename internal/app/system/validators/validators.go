// Package validators holds the field and date-range checks the
// mutation service runs before any store call. All failures wrap
// ErrValidation so callers can discriminate them from permission and
// transition errors.
package validators

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/taskhub/internal/domain/models"
)

// ErrValidation is wrapped by every rejection in this package.
var ErrValidation = errors.New("validation failed")

// RequireName rejects blank names.
func RequireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

// DateRange rejects a range whose end precedes its start. Either side
// may be nil.
func DateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end date %s precedes start date %s",
			ErrValidation, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return nil
}

// TaskDates checks a task's prospective dates against its parent
// project:
//   - if the project defines neither date, the task may not define
//     either;
//   - a task date outside [project.start, project.end] is rejected
//     (open-ended project sides are unbounded);
//   - end before start is rejected.
func TaskDates(p models.Project, start, end *time.Time) error {
	if start == nil && end == nil {
		return nil
	}
	if !p.HasDates() {
		return fmt.Errorf("%w: project %s has no dates, so its tasks may not have dates", ErrValidation, p.Code)
	}
	if err := DateRange(start, end); err != nil {
		return err
	}
	for _, d := range []*time.Time{start, end} {
		if d == nil {
			continue
		}
		if p.StartDate != nil && d.Before(*p.StartDate) {
			return fmt.Errorf("%w: task date %s is before project start %s",
				ErrValidation, d.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
		}
		if p.EndDate != nil && d.After(*p.EndDate) {
			return fmt.Errorf("%w: task date %s is after project end %s",
				ErrValidation, d.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
		}
	}
	return nil
}

// Priority rejects unknown project priorities.
func Priority(p string) error {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return nil
	}
	return fmt.Errorf("%w: unknown priority %q", ErrValidation, p)
}

// AssigneesAreMembers rejects assignees that do not appear on the
// project's member list.
func AssigneesAreMembers(p models.Project, assignees []models.Assignee) error {
	for _, a := range assignees {
		if !p.HasMember(a.UserID) {
			return fmt.Errorf("%w: assignee %s is not a member of project %s",
				ErrValidation, a.UserID.Hex(), p.Code)
		}
	}
	return nil
}

// NoteBody rejects empty note bodies (after the caller has sanitized
// the raw input).
func NoteBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: note body is empty", ErrValidation)
	}
	return nil
}
