package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/taskhub/internal/app/service"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/codes"
	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/app/system/validators"
	"github.com/dalemusser/taskhub/internal/app/system/workflow"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/* ------------------------------ fake stores ------------------------------ */

type fakeProjects struct {
	projects  map[primitive.ObjectID]models.Project
	writes    int
	deadlines int // reads that arrived with a context deadline
}

func newFakeProjects(ps ...models.Project) *fakeProjects {
	f := &fakeProjects{projects: make(map[primitive.ObjectID]models.Project)}
	for _, p := range ps {
		f.projects[p.ID] = p
	}
	return f
}

func (f *fakeProjects) Create(_ context.Context, p models.Project) (models.Project, error) {
	f.writes++
	p.ID = primitive.NewObjectID()
	if p.Status == "" {
		p.Status = status.ProjectNotStarted
	}
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeProjects) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	if _, ok := ctx.Deadline(); ok {
		f.deadlines++
	}
	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, errors.New("project not found")
	}
	return p, nil
}

func (f *fakeProjects) GetByCode(_ context.Context, code string) (models.Project, error) {
	for _, p := range f.projects {
		if p.Code == code {
			return p, nil
		}
	}
	return models.Project{}, errors.New("project not found")
}

func (f *fakeProjects) UpdateStatus(_ context.Context, id primitive.ObjectID, stat string) error {
	f.writes++
	p := f.projects[id]
	p.Status = stat
	f.projects[id] = p
	return nil
}

func (f *fakeProjects) UpdateDetails(_ context.Context, id primitive.ObjectID, name, category string, tags []string, priority string, start, end *time.Time) error {
	f.writes++
	p := f.projects[id]
	p.Name, p.Category, p.Tags, p.Priority = name, category, tags, priority
	p.StartDate, p.EndDate = start, end
	f.projects[id] = p
	return nil
}

func (f *fakeProjects) SetMembers(_ context.Context, id primitive.ObjectID, members []models.Member) error {
	f.writes++
	p := f.projects[id]
	p.Members = members
	f.projects[id] = p
	return nil
}

func (f *fakeProjects) SetArchived(_ context.Context, id primitive.ObjectID, archived bool) error {
	f.writes++
	p := f.projects[id]
	p.Archived = archived
	f.projects[id] = p
	return nil
}

func (f *fakeProjects) AddNote(_ context.Context, id primitive.ObjectID, note models.Note) error {
	f.writes++
	p := f.projects[id]
	p.Notes = append(p.Notes, note)
	f.projects[id] = p
	return nil
}

func (f *fakeProjects) AddFile(_ context.Context, id primitive.ObjectID, file models.FileAttachment) error {
	f.writes++
	p := f.projects[id]
	p.Files = append(p.Files, file)
	f.projects[id] = p
	return nil
}

type fakeTasks struct {
	tasks  map[primitive.ObjectID]models.Task
	writes int
}

func newFakeTasks(ts ...models.Task) *fakeTasks {
	f := &fakeTasks{tasks: make(map[primitive.ObjectID]models.Task)}
	for _, t := range ts {
		f.tasks[t.ID] = t
	}
	return f
}

func (f *fakeTasks) Create(_ context.Context, t models.Task) (models.Task, error) {
	f.writes++
	t.ID = primitive.NewObjectID()
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTasks) GetByID(_ context.Context, id primitive.ObjectID) (models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return models.Task{}, errors.New("task not found")
	}
	return t, nil
}

func (f *fakeTasks) UpdateStatus(_ context.Context, id primitive.ObjectID, stat string, completedAt *time.Time) error {
	f.writes++
	t := f.tasks[id]
	t.Status = stat
	if completedAt != nil {
		t.CompletedAt = completedAt
	}
	f.tasks[id] = t
	return nil
}

func (f *fakeTasks) UpdateDetails(_ context.Context, id primitive.ObjectID, name, stat string, start, end *time.Time, assignees []models.Assignee) error {
	f.writes++
	t := f.tasks[id]
	t.Name, t.Status = name, stat
	t.StartDate, t.EndDate = start, end
	t.Assignees = assignees
	f.tasks[id] = t
	return nil
}

func (f *fakeTasks) AddNote(_ context.Context, id primitive.ObjectID, note models.Note) error {
	f.writes++
	t := f.tasks[id]
	t.Notes = append(t.Notes, note)
	f.tasks[id] = t
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id primitive.ObjectID) error {
	f.writes++
	delete(f.tasks, id)
	return nil
}

type fakeCodes struct{ next int64 }

func (f *fakeCodes) NextProjectCode(context.Context) (string, error) {
	f.next++
	return codes.FormatProject(f.next), nil
}

type fakeNotifications struct {
	sent []models.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n models.Notification) (models.Notification, error) {
	f.sent = append(f.sent, n)
	return n, nil
}

/* ------------------------------- fixtures -------------------------------- */

var fixedNow = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

func admin() models.Actor {
	return models.Actor{UserID: primitive.NewObjectID(), Name: "Ada Admin", Role: authz.RoleAdmin}
}

func member() models.Actor {
	return models.Actor{UserID: primitive.NewObjectID(), Name: "Milo Member", Role: authz.RoleMember}
}

func projectWithLead(lead models.Actor, extra ...models.Member) models.Project {
	members := append([]models.Member{
		{UserID: lead.UserID, Name: lead.Name, Role: models.MemberRoleLead},
	}, extra...)
	return models.Project{
		ID:      primitive.NewObjectID(),
		Code:    "PRJ0001",
		Name:    "Atlas Rollout",
		Status:  status.ProjectInProgress,
		Members: members,
	}
}

func newService(fp *fakeProjects, ft *fakeTasks, fn *fakeNotifications) *service.Service {
	deps := service.Deps{
		Projects: fp,
		Tasks:    ft,
		Codes:    &fakeCodes{},
		Now:      func() time.Time { return fixedNow },
	}
	if fn != nil {
		deps.Notifications = fn
	}
	return service.New(deps)
}

/* ----------------------------- project tests ----------------------------- */

func TestCreateProject_MemberForbidden(t *testing.T) {
	fp := newFakeProjects()
	svc := newService(fp, newFakeTasks(), nil)

	_, err := svc.CreateProject(context.Background(), member(), service.CreateProjectInput{Name: "Atlas"})
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if fp.writes != 0 {
		t.Fatal("store must not be written on a forbidden create")
	}
}

func TestCreateProject_AdminSucceeds(t *testing.T) {
	fp := newFakeProjects()
	svc := newService(fp, newFakeTasks(), nil)

	p, err := svc.CreateProject(context.Background(), admin(), service.CreateProjectInput{
		Name:     "Atlas",
		Priority: models.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.Code != "PRJ0001" {
		t.Fatalf("expected allocated code PRJ0001, got %q", p.Code)
	}
}

func TestCreateProject_BadDates(t *testing.T) {
	fp := newFakeProjects()
	svc := newService(fp, newFakeTasks(), nil)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateProject(context.Background(), admin(), service.CreateProjectInput{
		Name:      "Atlas",
		StartDate: &start,
		EndDate:   &end,
	})
	if !errors.Is(err, validators.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if fp.writes != 0 {
		t.Fatal("store must not be written on a validation failure")
	}
}

func TestCreateProject_TwoLeadsRejected(t *testing.T) {
	fp := newFakeProjects()
	svc := newService(fp, newFakeTasks(), nil)

	_, err := svc.CreateProject(context.Background(), admin(), service.CreateProjectInput{
		Name: "Atlas",
		Members: []models.Member{
			{UserID: primitive.NewObjectID(), Name: "A", Role: models.MemberRoleLead},
			{UserID: primitive.NewObjectID(), Name: "B", Role: models.MemberRoleLead},
		},
	})
	if !errors.Is(err, validators.ErrValidation) {
		t.Fatalf("expected ErrValidation for two leads, got %v", err)
	}
}

func TestRequestProjectStatusChange_IllegalTransition(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	p.Status = status.ProjectCompleted
	fp := newFakeProjects(p)
	svc := newService(fp, newFakeTasks(), nil)

	err := svc.RequestProjectStatusChange(context.Background(), admin(), p.ID, status.ProjectInProgress)
	if !errors.Is(err, workflow.ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if fp.writes != 0 {
		t.Fatal("store must not be written on an illegal transition")
	}
}

func TestRequestProjectStatusChange_PendingCompletionLeadOnly(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	svc := newService(fp, newFakeTasks(), nil)

	// The admin blanket does not cover requesting completion.
	err := svc.RequestProjectStatusChange(context.Background(), admin(), p.ID, status.ProjectPendingCompletion)
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}
	if fp.writes != 0 {
		t.Fatal("store must not be written on a forbidden transition")
	}

	// The project's own lead may request it.
	if err := svc.RequestProjectStatusChange(context.Background(), lead, p.ID, status.ProjectPendingCompletion); err != nil {
		t.Fatalf("lead request failed: %v", err)
	}
	got, _ := fp.GetByID(context.Background(), p.ID)
	if got.Status != status.ProjectPendingCompletion {
		t.Fatalf("expected status %q, got %q", status.ProjectPendingCompletion, got.Status)
	}
}

func TestRequestProjectStatusChange_NotifiesMembers(t *testing.T) {
	lead := member()
	other := models.Member{UserID: primitive.NewObjectID(), Name: "Omar Shah", Role: models.MemberRoleMember}
	p := projectWithLead(lead, other)
	fp := newFakeProjects(p)
	fn := &fakeNotifications{}
	svc := newService(fp, newFakeTasks(), fn)

	if err := svc.RequestProjectStatusChange(context.Background(), lead, p.ID, status.ProjectOnHold); err != nil {
		t.Fatalf("RequestProjectStatusChange failed: %v", err)
	}
	// The acting lead is not notified; the other member is.
	if len(fn.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(fn.sent))
	}
	if fn.sent[0].RecipientID != other.UserID {
		t.Fatal("expected the non-acting member to be notified")
	}
	if fn.sent[0].Kind != models.NotifyProjectStatus {
		t.Fatalf("unexpected notification kind %q", fn.sent[0].Kind)
	}
}

func TestArchiveProject_AdminOnly(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	svc := newService(fp, newFakeTasks(), nil)

	if err := svc.ArchiveProject(context.Background(), lead, p.ID, true); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for lead, got %v", err)
	}
	if err := svc.ArchiveProject(context.Background(), admin(), p.ID, true); err != nil {
		t.Fatalf("ArchiveProject failed: %v", err)
	}
	got, _ := fp.GetByID(context.Background(), p.ID)
	if !got.Archived {
		t.Fatal("expected project to be archived")
	}
}

func TestAddProjectNote_SanitizesBody(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	svc := newService(fp, newFakeTasks(), nil)

	err := svc.AddProjectNote(context.Background(), lead, p.ID, `<script>alert(1)</script><b>kickoff</b> set`)
	if err != nil {
		t.Fatalf("AddProjectNote failed: %v", err)
	}
	got, _ := fp.GetByID(context.Background(), p.ID)
	if len(got.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(got.Notes))
	}
	body := got.Notes[0].Body
	if body != "<b>kickoff</b> set" {
		t.Fatalf("expected sanitized body, got %q", body)
	}
}

func TestAddProjectNote_EmptyAfterSanitize(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	svc := newService(fp, newFakeTasks(), nil)

	err := svc.AddProjectNote(context.Background(), lead, p.ID, `<script>alert(1)</script>`)
	if !errors.Is(err, validators.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty note, got %v", err)
	}
	if fp.writes != 0 {
		t.Fatal("store must not be written for an empty note")
	}
}

func TestAddProjectFile_MemberSucceeds(t *testing.T) {
	lead := member()
	contributor := member()
	p := projectWithLead(lead, models.Member{
		UserID: contributor.UserID, Name: contributor.Name, Role: models.MemberRoleMember,
	})
	fp := newFakeProjects(p)
	svc := newService(fp, newFakeTasks(), nil)

	if err := svc.AddProjectFile(context.Background(), contributor, p.ID, "rollout-plan.pdf", 2048); err != nil {
		t.Fatalf("AddProjectFile failed: %v", err)
	}

	got := fp.projects[p.ID]
	if len(got.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(got.Files))
	}
	f := got.Files[0]
	if f.ID == "" {
		t.Fatal("expected file id to be assigned")
	}
	if f.Name != "rollout-plan.pdf" || f.Size != 2048 {
		t.Fatalf("expected file metadata to round-trip, got %+v", f)
	}
	if f.UploadedBy != contributor.UserID || !f.UploadedAt.Equal(fixedNow) {
		t.Fatalf("expected uploader and timestamp stamped, got %+v", f)
	}
}

func TestAddProjectFile_NonMemberForbidden(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	svc := newService(fp, newFakeTasks(), nil)

	err := svc.AddProjectFile(context.Background(), member(), p.ID, "rollout-plan.pdf", 2048)
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if fp.writes != 0 {
		t.Fatal("store must not be written on a forbidden attach")
	}
}

func TestMutations_CarryStoreDeadline(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	svc := newService(fp, newFakeTasks(), nil)

	if err := svc.RequestProjectStatusChange(context.Background(), admin(), p.ID, status.ProjectOnHold); err != nil {
		t.Fatalf("RequestProjectStatusChange failed: %v", err)
	}
	if fp.deadlines == 0 {
		t.Fatal("expected store calls to carry a context deadline")
	}
}

/* ------------------------------ task tests ------------------------------- */

func TestCreateTask_LeadSucceeds_BothDatesStartInProgress(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	pstart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pend := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	p.StartDate, p.EndDate = &pstart, &pend
	fp := newFakeProjects(p)
	ft := newFakeTasks()
	svc := newService(fp, ft, nil)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	task, err := svc.CreateTask(context.Background(), lead, p.Code, service.CreateTaskInput{
		Name:      "Draft schema",
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	// A fully scheduled task starts In progress, not To do.
	if task.Status != status.TaskInProgress {
		t.Fatalf("expected status %q, got %q", status.TaskInProgress, task.Status)
	}
}

func TestCreateTask_MemberForbidden(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	ft := newFakeTasks()
	svc := newService(fp, ft, nil)

	_, err := svc.CreateTask(context.Background(), member(), p.Code, service.CreateTaskInput{Name: "nope"})
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if ft.writes != 0 {
		t.Fatal("store must not be written on a forbidden create")
	}
}

func TestCreateTask_DatesOutsideProjectRejected(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	pstart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	pend := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	p.StartDate, p.EndDate = &pstart, &pend
	fp := newFakeProjects(p)
	ft := newFakeTasks()
	svc := newService(fp, ft, nil)

	late := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateTask(context.Background(), lead, p.Code, service.CreateTaskInput{
		Name:    "Too late",
		EndDate: &late,
	})
	if !errors.Is(err, validators.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if ft.writes != 0 {
		t.Fatal("store must not be written on a validation failure")
	}
}

func TestCreateTask_DatesOnUndatedProjectRejected(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	ft := newFakeTasks()
	svc := newService(fp, ft, nil)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateTask(context.Background(), lead, p.Code, service.CreateTaskInput{
		Name:      "Dated task",
		StartDate: &start,
	})
	if !errors.Is(err, validators.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateTask_AssigneeNotMemberRejected(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	fp := newFakeProjects(p)
	ft := newFakeTasks()
	svc := newService(fp, ft, nil)

	_, err := svc.CreateTask(context.Background(), lead, p.Code, service.CreateTaskInput{
		Name:      "Orphan assignee",
		Assignees: []models.Assignee{{UserID: primitive.NewObjectID(), Name: "Stranger"}},
	})
	if !errors.Is(err, validators.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRequestTaskStatusChange_SoleAssigneeCompletes(t *testing.T) {
	lead := member()
	me := member()
	p := projectWithLead(lead, models.Member{UserID: me.UserID, Name: me.Name, Role: models.MemberRoleMember})
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: p.Code,
		Name:        "My work",
		Status:      status.TaskToDo,
		Assignees:   []models.Assignee{{UserID: me.UserID, Name: me.Name}},
	}
	fp := newFakeProjects(p)
	ft := newFakeTasks(task)
	svc := newService(fp, ft, nil)

	if err := svc.RequestTaskStatusChange(context.Background(), me, task.ID, status.TaskCompleted); err != nil {
		t.Fatalf("sole assignee completion failed: %v", err)
	}
	got, _ := ft.GetByID(context.Background(), task.ID)
	if got.Status != status.TaskCompleted {
		t.Fatalf("expected status %q, got %q", status.TaskCompleted, got.Status)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(fixedNow) {
		t.Fatal("expected CompletedAt to be stamped with the service clock")
	}
}

func TestRequestTaskStatusChange_TwoAssigneesBlockSelfCompletion(t *testing.T) {
	lead := member()
	me := member()
	other := models.Member{UserID: primitive.NewObjectID(), Name: "Omar Shah", Role: models.MemberRoleMember}
	p := projectWithLead(lead,
		models.Member{UserID: me.UserID, Name: me.Name, Role: models.MemberRoleMember},
		other,
	)
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: p.Code,
		Name:        "Shared work",
		Status:      status.TaskInProgress,
		Assignees: []models.Assignee{
			{UserID: me.UserID, Name: me.Name},
			{UserID: other.UserID, Name: other.Name},
		},
	}
	fp := newFakeProjects(p)
	ft := newFakeTasks(task)
	svc := newService(fp, ft, nil)

	err := svc.RequestTaskStatusChange(context.Background(), me, task.ID, status.TaskCompleted)
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden with two assignees, got %v", err)
	}
	if ft.writes != 0 {
		t.Fatal("store must not be written on a forbidden transition")
	}
}

func TestRequestTaskStatusChange_ForeignLeadForbidden(t *testing.T) {
	leadA := member()
	leadB := member()
	pA := projectWithLead(leadA)
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: pA.Code,
		Name:        "A's work",
		Status:      status.TaskToDo,
	}
	fp := newFakeProjects(pA)
	ft := newFakeTasks(task)
	svc := newService(fp, ft, nil)

	// leadB leads some other project, not pA; no authority here.
	err := svc.RequestTaskStatusChange(context.Background(), leadB, task.ID, status.TaskInProgress)
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign lead, got %v", err)
	}
	if ft.writes != 0 {
		t.Fatal("store must not be written on a forbidden transition")
	}
}

func TestRequestTaskStatusChange_CompletedNeverBackToToDo(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	done := fixedNow.Add(-24 * time.Hour)
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: p.Code,
		Name:        "Finished",
		Status:      status.TaskCompleted,
		CompletedAt: &done,
	}
	fp := newFakeProjects(p)
	ft := newFakeTasks(task)
	svc := newService(fp, ft, nil)

	err := svc.RequestTaskStatusChange(context.Background(), admin(), task.ID, status.TaskToDo)
	if !errors.Is(err, workflow.ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if ft.writes != 0 {
		t.Fatal("store must not be written on an illegal transition")
	}
}

func TestRequestTaskStatusChange_ReopenPreservesStamp(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	done := fixedNow.Add(-24 * time.Hour)
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: p.Code,
		Name:        "Finished",
		Status:      status.TaskCompleted,
		CompletedAt: &done,
	}
	fp := newFakeProjects(p)
	ft := newFakeTasks(task)
	svc := newService(fp, ft, nil)

	if err := svc.RequestTaskStatusChange(context.Background(), admin(), task.ID, status.TaskInProgress); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, _ := ft.GetByID(context.Background(), task.ID)
	if got.Status != status.TaskInProgress {
		t.Fatalf("expected status %q, got %q", status.TaskInProgress, got.Status)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Fatal("expected the old completion stamp to survive reopening")
	}
}

func TestRequestTaskStatusChange_NotifiesOtherAssignees(t *testing.T) {
	lead := member()
	other := models.Member{UserID: primitive.NewObjectID(), Name: "Omar Shah", Role: models.MemberRoleMember}
	p := projectWithLead(lead, other)
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: p.Code,
		Name:        "Shared work",
		Status:      status.TaskToDo,
		Assignees: []models.Assignee{
			{UserID: other.UserID, Name: other.Name},
		},
	}
	fp := newFakeProjects(p)
	ft := newFakeTasks(task)
	fn := &fakeNotifications{}
	svc := newService(fp, ft, fn)

	if err := svc.RequestTaskStatusChange(context.Background(), lead, task.ID, status.TaskInProgress); err != nil {
		t.Fatalf("RequestTaskStatusChange failed: %v", err)
	}
	if len(fn.sent) != 1 || fn.sent[0].RecipientID != other.UserID {
		t.Fatal("expected the assignee to be notified")
	}
}

func TestUpdateTask_SoleAssigneeCannotEdit(t *testing.T) {
	lead := member()
	me := member()
	p := projectWithLead(lead, models.Member{UserID: me.UserID, Name: me.Name, Role: models.MemberRoleMember})
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: p.Code,
		Name:        "My work",
		Status:      status.TaskToDo,
		Assignees:   []models.Assignee{{UserID: me.UserID, Name: me.Name}},
	}
	fp := newFakeProjects(p)
	ft := newFakeTasks(task)
	svc := newService(fp, ft, nil)

	err := svc.UpdateTask(context.Background(), me, task.ID, service.UpdateTaskInput{Name: "Renamed"})
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden: sole assignee may transition, not edit; got %v", err)
	}
}

func TestUpdateTask_BothDatesBumpToDo(t *testing.T) {
	lead := member()
	p := projectWithLead(lead)
	pstart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pend := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	p.StartDate, p.EndDate = &pstart, &pend
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: p.Code,
		Name:        "Schedule me",
		Status:      status.TaskToDo,
	}
	fp := newFakeProjects(p)
	ft := newFakeTasks(task)
	svc := newService(fp, ft, nil)

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	err := svc.UpdateTask(context.Background(), lead, task.ID, service.UpdateTaskInput{
		Name:      "Schedule me",
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	got, _ := ft.GetByID(context.Background(), task.ID)
	if got.Status != status.TaskInProgress {
		t.Fatalf("expected scheduling to bump status to %q, got %q", status.TaskInProgress, got.Status)
	}
}

func TestRemoveTask_SoleAssigneeCannotRemove(t *testing.T) {
	lead := member()
	me := member()
	p := projectWithLead(lead, models.Member{UserID: me.UserID, Name: me.Name, Role: models.MemberRoleMember})
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ProjectCode: p.Code,
		Name:        "My work",
		Status:      status.TaskToDo,
		Assignees:   []models.Assignee{{UserID: me.UserID, Name: me.Name}},
	}
	fp := newFakeProjects(p)
	ft := newFakeTasks(task)
	svc := newService(fp, ft, nil)

	if err := svc.RemoveTask(context.Background(), me, task.ID); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := svc.RemoveTask(context.Background(), lead, task.ID); err != nil {
		t.Fatalf("lead removal failed: %v", err)
	}
	if _, err := ft.GetByID(context.Background(), task.ID); err == nil {
		t.Fatal("expected task to be gone")
	}
}
