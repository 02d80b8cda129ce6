// Package service is the single write path for projects and tasks.
// Every mutation runs the same gauntlet before the store is touched:
// load current state, check transition legality, check the actor's
// authority, validate fields. Failures surface as one of four error
// kinds callers can discriminate with errors.Is:
//
//   - workflow.ErrIllegalTransition — the move is not in the table
//   - ErrForbidden                  — the actor lacks authority
//   - validators.ErrValidation      — a field or date check failed
//   - anything else                 — the store itself failed
//
// On success the service stamps completion times, appends an audit
// event, writes best-effort notifications, and invalidates the view
// cache. Notification failures are logged and swallowed; they never
// fail the mutation.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/taskhub/internal/app/policy/taskpolicy"
	"github.com/dalemusser/taskhub/internal/app/system/auditlog"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/projector"
	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/app/system/validators"
	"github.com/dalemusser/taskhub/internal/app/system/workflow"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrForbidden means the actor lacks the authority for the operation.
var ErrForbidden = errors.New("forbidden")

// ProjectStore is the slice of the projects store the service needs.
type ProjectStore interface {
	Create(ctx context.Context, p models.Project) (models.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error)
	GetByCode(ctx context.Context, code string) (models.Project, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, stat string) error
	UpdateDetails(ctx context.Context, id primitive.ObjectID, name, category string, tags []string, priority string, start, end *time.Time) error
	SetMembers(ctx context.Context, id primitive.ObjectID, members []models.Member) error
	SetArchived(ctx context.Context, id primitive.ObjectID, archived bool) error
	AddNote(ctx context.Context, id primitive.ObjectID, note models.Note) error
	AddFile(ctx context.Context, id primitive.ObjectID, file models.FileAttachment) error
}

// TaskStore is the slice of the tasks store the service needs.
type TaskStore interface {
	Create(ctx context.Context, t models.Task) (models.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, stat string, completedAt *time.Time) error
	UpdateDetails(ctx context.Context, id primitive.ObjectID, name, stat string, start, end *time.Time, assignees []models.Assignee) error
	AddNote(ctx context.Context, id primitive.ObjectID, note models.Note) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CodeAllocator hands out formatted project codes.
type CodeAllocator interface {
	NextProjectCode(ctx context.Context) (string, error)
}

// NotificationStore receives the best-effort inbox writes.
type NotificationStore interface {
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
}

// BoardOrderStore persists remembered board column orders.
type BoardOrderStore interface {
	Save(ctx context.Context, scope, stat string, taskIDs []primitive.ObjectID) error
}

// Deps collects the service's collaborators. Audit, notifications,
// cache, and logger may each be nil (tests usually leave most of them
// out); the stores and clock may not.
type Deps struct {
	Projects      ProjectStore
	Tasks         TaskStore
	Codes         CodeAllocator
	Notifications NotificationStore
	BoardOrders   BoardOrderStore
	Audit         *auditlog.Logger
	Cache         *projector.Cache
	Logger        *zap.Logger
	Now           func() time.Time
}

type Service struct {
	projects      ProjectStore
	tasks         TaskStore
	codes         CodeAllocator
	notifications NotificationStore
	boardOrders   BoardOrderStore
	audit         *auditlog.Logger
	cache         *projector.Cache
	log           *zap.Logger
	now           func() time.Time
}

func New(d Deps) *Service {
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Service{
		projects:      d.Projects,
		tasks:         d.Tasks,
		codes:         d.Codes,
		notifications: d.Notifications,
		boardOrders:   d.BoardOrders,
		audit:         d.Audit,
		cache:         d.Cache,
		log:           d.Logger,
		now:           d.Now,
	}
}

// opCtx bounds one mutation. The load, the legality and authority
// checks, the write, and the follow-up audit and notification writes
// all share a single Long-tier deadline.
func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeouts.Long())
}

func (s *Service) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

func (s *Service) notify(ctx context.Context, n models.Notification) {
	if s.notifications == nil {
		return
	}
	if _, err := s.notifications.Create(ctx, n); err != nil {
		s.log.Warn("notification write failed",
			zap.String("kind", n.Kind),
			zap.String("recipient_id", n.RecipientID.Hex()),
			zap.Error(err))
	}
}

/* ------------------------------- projects ------------------------------- */

// CreateProjectInput carries the caller-editable project fields.
type CreateProjectInput struct {
	Name      string
	Category  string
	Tags      []string
	Priority  string
	StartDate *time.Time
	EndDate   *time.Time
	Members   []models.Member
}

// CreateProject allocates a code and creates the project. Admins and
// superadmins only.
func (s *Service) CreateProject(ctx context.Context, actor models.Actor, in CreateProjectInput) (models.Project, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	if !projectpolicy.CanCreate(actor) {
		return models.Project{}, fmt.Errorf("%w: %s may not create projects", ErrForbidden, actor.Role)
	}
	if err := validators.RequireName(in.Name); err != nil {
		return models.Project{}, err
	}
	if err := validators.DateRange(in.StartDate, in.EndDate); err != nil {
		return models.Project{}, err
	}
	if in.Priority != "" {
		if err := validators.Priority(in.Priority); err != nil {
			return models.Project{}, err
		}
	}
	if err := validateMembers(in.Members); err != nil {
		return models.Project{}, err
	}

	code, err := s.codes.NextProjectCode(ctx)
	if err != nil {
		return models.Project{}, err
	}

	p, err := s.projects.Create(ctx, models.Project{
		Code:          code,
		Name:          in.Name,
		Category:      in.Category,
		Tags:          in.Tags,
		Priority:      in.Priority,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Members:       in.Members,
		CreatedByID:   actor.UserID,
		CreatedByName: actor.Name,
	})
	if err != nil {
		return models.Project{}, err
	}

	s.audit.ProjectCreated(ctx, actor, p.Code, p.Name)
	s.invalidate()
	return p, nil
}

// UpdateProjectInput carries a project's editable details.
type UpdateProjectInput struct {
	Name      string
	Category  string
	Tags      []string
	Priority  string
	StartDate *time.Time
	EndDate   *time.Time
}

// UpdateProject replaces the project's editable fields.
func (s *Service) UpdateProject(ctx context.Context, actor models.Actor, id primitive.ObjectID, in UpdateProjectInput) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !projectpolicy.Resolve(p, actor).CanEdit {
		return fmt.Errorf("%w: no edit rights on project %s", ErrForbidden, p.Code)
	}
	if err := validators.RequireName(in.Name); err != nil {
		return err
	}
	if err := validators.DateRange(in.StartDate, in.EndDate); err != nil {
		return err
	}
	if err := validators.Priority(in.Priority); err != nil {
		return err
	}

	if err := s.projects.UpdateDetails(ctx, id, in.Name, in.Category, in.Tags, in.Priority, in.StartDate, in.EndDate); err != nil {
		return err
	}
	s.audit.ProjectUpdated(ctx, actor, p.Code, "details")
	s.invalidate()
	return nil
}

// RequestProjectStatusChange moves a project to the target status.
// Legality is checked before authority, so an impossible move reports
// ErrIllegalTransition even to an admin.
func (s *Service) RequestProjectStatusChange(ctx context.Context, actor models.Actor, id primitive.ObjectID, target string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := workflow.CanProject(p.Status, target); err != nil {
		return err
	}
	if !projectpolicy.AllowsTransition(p, actor, target) {
		return fmt.Errorf("%w: %s may not move project %s to %q", ErrForbidden, actor.Role, p.Code, target)
	}

	if err := s.projects.UpdateStatus(ctx, id, target); err != nil {
		return err
	}

	s.audit.ProjectStatusChanged(ctx, actor, p.Code, p.Status, target)
	for _, m := range p.Members {
		if m.UserID == actor.UserID {
			continue
		}
		s.notify(ctx, models.Notification{
			RecipientID: m.UserID,
			Kind:        models.NotifyProjectStatus,
			ProjectCode: p.Code,
			Message:     fmt.Sprintf("%s moved project %s to %s", actor.Name, p.Name, target),
		})
	}
	s.invalidate()
	return nil
}

// SetProjectMembers replaces the project's member list. At most one
// member may carry the lead tag.
func (s *Service) SetProjectMembers(ctx context.Context, actor models.Actor, id primitive.ObjectID, members []models.Member) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !projectpolicy.Resolve(p, actor).CanEdit {
		return fmt.Errorf("%w: no edit rights on project %s", ErrForbidden, p.Code)
	}
	if err := validateMembers(members); err != nil {
		return err
	}

	if err := s.projects.SetMembers(ctx, id, members); err != nil {
		return err
	}
	s.audit.MembersChanged(ctx, actor, p.Code, len(members))
	s.invalidate()
	return nil
}

// ArchiveProject hides (or restores) a project from default listings.
// Admins and superadmins only; a lead cannot archive their own project.
func (s *Service) ArchiveProject(ctx context.Context, actor models.Actor, id primitive.ObjectID, archived bool) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.IsAdmin(actor) {
		return fmt.Errorf("%w: only admins may archive projects", ErrForbidden)
	}

	if err := s.projects.SetArchived(ctx, id, archived); err != nil {
		return err
	}
	s.audit.ProjectArchived(ctx, actor, p.Code, archived)
	s.invalidate()
	return nil
}

// AddProjectNote sanitizes and appends a note. Any member of the
// project (or an admin) may comment.
func (s *Service) AddProjectNote(ctx context.Context, actor models.Actor, id primitive.ObjectID, body string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !projectpolicy.Resolve(p, actor).CanEdit && !p.HasMember(actor.UserID) {
		return fmt.Errorf("%w: not a member of project %s", ErrForbidden, p.Code)
	}

	clean := htmlsanitize.Note(body)
	if err := validators.NoteBody(clean); err != nil {
		return err
	}

	note := models.Note{
		ID:         uuid.NewString(),
		AuthorID:   actor.UserID,
		AuthorName: actor.Name,
		Body:       clean,
		CreatedAt:  s.now(),
	}
	if err := s.projects.AddNote(ctx, id, note); err != nil {
		return err
	}
	s.audit.ProjectNoteAdded(ctx, actor, p.Code)
	s.invalidate()
	return nil
}

// AddProjectFile appends file metadata to a project. Any member of the
// project (or an admin) may attach; blob storage itself is handled
// outside this module.
func (s *Service) AddProjectFile(ctx context.Context, actor models.Actor, id primitive.ObjectID, name string, size int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !projectpolicy.Resolve(p, actor).CanEdit && !p.HasMember(actor.UserID) {
		return fmt.Errorf("%w: not a member of project %s", ErrForbidden, p.Code)
	}
	if err := validators.RequireName(name); err != nil {
		return err
	}

	file := models.FileAttachment{
		ID:         uuid.NewString(),
		Name:       name,
		Size:       size,
		UploadedBy: actor.UserID,
		UploadedAt: s.now(),
	}
	if err := s.projects.AddFile(ctx, id, file); err != nil {
		return err
	}
	s.audit.ProjectFileAdded(ctx, actor, p.Code, name)
	s.invalidate()
	return nil
}

/* -------------------------------- tasks --------------------------------- */

// CreateTaskInput carries the caller-editable task fields.
type CreateTaskInput struct {
	Name      string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Assignees []models.Assignee
}

// CreateTask creates a task under the project identified by code.
// Admins and the project's lead only. A task created with both dates
// set starts In progress rather than To do.
func (s *Service) CreateTask(ctx context.Context, actor models.Actor, projectCode string, in CreateTaskInput) (models.Task, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	p, err := s.projects.GetByCode(ctx, projectCode)
	if err != nil {
		return models.Task{}, err
	}
	if !taskpolicy.CanCreate(p, actor) {
		return models.Task{}, fmt.Errorf("%w: %s may not create tasks on project %s", ErrForbidden, actor.Role, p.Code)
	}
	if err := validators.RequireName(in.Name); err != nil {
		return models.Task{}, err
	}
	if err := validators.TaskDates(p, in.StartDate, in.EndDate); err != nil {
		return models.Task{}, err
	}
	if err := validators.AssigneesAreMembers(p, in.Assignees); err != nil {
		return models.Task{}, err
	}

	stat := in.Status
	if stat == "" {
		stat = status.TaskToDo
	}
	if !status.ValidTask(stat) {
		return models.Task{}, fmt.Errorf("%w: unknown task status %q", validators.ErrValidation, stat)
	}
	stat = normalizeForDates(stat, in.StartDate, in.EndDate)

	task := models.Task{
		ProjectCode:   p.Code,
		Name:          in.Name,
		Status:        stat,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Assignees:     in.Assignees,
		CreatedByID:   actor.UserID,
		CreatedByName: actor.Name,
	}
	if workflow.NormalizeTask(stat) == status.TaskCompleted {
		done := s.now()
		task.CompletedAt = &done
	}

	task, err = s.tasks.Create(ctx, task)
	if err != nil {
		return models.Task{}, err
	}

	s.audit.TaskCreated(ctx, actor, p.Code, task.ID, task.Name)
	for _, a := range in.Assignees {
		if a.UserID == actor.UserID {
			continue
		}
		s.notify(ctx, models.Notification{
			RecipientID: a.UserID,
			Kind:        models.NotifyTaskAssigned,
			ProjectCode: p.Code,
			TaskID:      task.ID,
			Message:     fmt.Sprintf("%s assigned you to %q in %s", actor.Name, task.Name, p.Name),
		})
	}
	s.invalidate()
	return task, nil
}

// UpdateTaskInput carries a task's editable details. Status changes
// routed through here (rather than RequestTaskStatusChange) are still
// checked against the transition table.
type UpdateTaskInput struct {
	Name      string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Assignees []models.Assignee
}

// UpdateTask replaces the task's editable fields. Requires edit
// authority on the parent project; the sole-assignee right does not
// extend to editing.
func (s *Service) UpdateTask(ctx context.Context, actor models.Actor, id primitive.ObjectID, in UpdateTaskInput) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.projects.GetByCode(ctx, task.ProjectCode)
	if err != nil {
		return err
	}
	if !taskpolicy.Resolve(p, task, actor).CanEdit {
		return fmt.Errorf("%w: no edit rights on task %q", ErrForbidden, task.Name)
	}
	if err := validators.RequireName(in.Name); err != nil {
		return err
	}
	if err := validators.TaskDates(p, in.StartDate, in.EndDate); err != nil {
		return err
	}
	if err := validators.AssigneesAreMembers(p, in.Assignees); err != nil {
		return err
	}

	stat := in.Status
	if stat == "" {
		stat = task.Status
	}
	if !status.ValidTask(stat) {
		return fmt.Errorf("%w: unknown task status %q", validators.ErrValidation, stat)
	}
	if workflow.NormalizeTask(stat) != workflow.NormalizeTask(task.Status) {
		if err := workflow.CanTask(task.Status, stat); err != nil {
			return err
		}
	}
	stat = normalizeForDates(stat, in.StartDate, in.EndDate)

	if err := s.tasks.UpdateDetails(ctx, id, in.Name, stat, in.StartDate, in.EndDate, in.Assignees); err != nil {
		return err
	}

	s.audit.TaskUpdated(ctx, actor, p.Code, id, "details")
	for _, a := range in.Assignees {
		if a.UserID == actor.UserID || task.IsAssigned(a.UserID) {
			continue
		}
		s.notify(ctx, models.Notification{
			RecipientID: a.UserID,
			Kind:        models.NotifyTaskAssigned,
			ProjectCode: p.Code,
			TaskID:      id,
			Message:     fmt.Sprintf("%s assigned you to %q in %s", actor.Name, in.Name, p.Name),
		})
	}
	s.invalidate()
	return nil
}

// RequestTaskStatusChange moves a task to the target status. Moving to
// Completed stamps CompletedAt; reopening leaves the old stamp in
// place.
func (s *Service) RequestTaskStatusChange(ctx context.Context, actor models.Actor, id primitive.ObjectID, target string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.projects.GetByCode(ctx, task.ProjectCode)
	if err != nil {
		return err
	}
	if err := workflow.CanTask(task.Status, target); err != nil {
		return err
	}
	if !taskpolicy.Resolve(p, task, actor).CanComplete {
		return fmt.Errorf("%w: %s may not move task %q", ErrForbidden, actor.Role, task.Name)
	}

	var completedAt *time.Time
	if workflow.NormalizeTask(target) == status.TaskCompleted {
		done := s.now()
		completedAt = &done
	}
	if err := s.tasks.UpdateStatus(ctx, id, target, completedAt); err != nil {
		return err
	}

	s.audit.TaskStatusChanged(ctx, actor, p.Code, id, task.Status, target)
	for _, a := range task.Assignees {
		if a.UserID == actor.UserID {
			continue
		}
		s.notify(ctx, models.Notification{
			RecipientID: a.UserID,
			Kind:        models.NotifyTaskStatus,
			ProjectCode: p.Code,
			TaskID:      id,
			Message:     fmt.Sprintf("%s moved %q to %s", actor.Name, task.Name, target),
		})
	}
	s.invalidate()
	return nil
}

// RemoveTask deletes a task. Requires remove authority on the parent
// project; the sole-assignee right does not extend to removal.
func (s *Service) RemoveTask(ctx context.Context, actor models.Actor, id primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.projects.GetByCode(ctx, task.ProjectCode)
	if err != nil {
		return err
	}
	if !taskpolicy.Resolve(p, task, actor).CanRemove {
		return fmt.Errorf("%w: no remove rights on task %q", ErrForbidden, task.Name)
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.TaskDeleted(ctx, actor, p.Code, id, task.Name)
	s.invalidate()
	return nil
}

// AddTaskNote sanitizes and appends a note to a task. Project members
// and admins may comment; assignees are members by construction.
func (s *Service) AddTaskNote(ctx context.Context, actor models.Actor, id primitive.ObjectID, body string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.projects.GetByCode(ctx, task.ProjectCode)
	if err != nil {
		return err
	}
	if !projectpolicy.Resolve(p, actor).CanEdit && !p.HasMember(actor.UserID) {
		return fmt.Errorf("%w: not a member of project %s", ErrForbidden, p.Code)
	}

	clean := htmlsanitize.Note(body)
	if err := validators.NoteBody(clean); err != nil {
		return err
	}

	note := models.Note{
		ID:         uuid.NewString(),
		AuthorID:   actor.UserID,
		AuthorName: actor.Name,
		Body:       clean,
		CreatedAt:  s.now(),
	}
	if err := s.tasks.AddNote(ctx, id, note); err != nil {
		return err
	}
	s.audit.TaskNoteAdded(ctx, actor, p.Code, id)
	s.invalidate()
	return nil
}

/* ----------------------------- board order ------------------------------ */

// SaveBoardOrder persists a rearranged board column. The incoming ids
// replace the remembered order wholesale; stale ids are dropped the
// next time the board is projected (see projector.MergeOrder).
func (s *Service) SaveBoardOrder(ctx context.Context, scope, stat string, taskIDs []primitive.ObjectID) error {
	if s.boardOrders == nil {
		return nil
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.boardOrders.Save(ctx, scope, workflow.NormalizeTask(stat), taskIDs)
}

/* -------------------------------- helpers ------------------------------- */

// normalizeForDates bumps a To do task to In progress once both of its
// dates are set. Scheduled work is considered underway.
func normalizeForDates(stat string, start, end *time.Time) string {
	if start != nil && end != nil && workflow.NormalizeTask(stat) == status.TaskToDo {
		return status.TaskInProgress
	}
	return stat
}

func validateMembers(members []models.Member) error {
	leads := 0
	for _, m := range members {
		switch m.Role {
		case models.MemberRoleLead:
			leads++
		case models.MemberRoleMember:
		default:
			return fmt.Errorf("%w: unknown member role %q", validators.ErrValidation, m.Role)
		}
	}
	if leads > 1 {
		return fmt.Errorf("%w: a project may have at most one lead", validators.ErrValidation)
	}
	return nil
}
