package auditlog_test

import (
	"testing"

	"github.com/dalemusser/taskhub/internal/app/store/audit"
	"github.com/dalemusser/taskhub/internal/app/system/auditlog"
	"github.com/dalemusser/taskhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()

	actor := testutil.AdminActor()
	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.ProjectCreated(ctx, actor, "PRJ0001", "Atlas")
	logger.TaskDeleted(ctx, actor, "PRJ0001", primitive.NewObjectID(), "old task")
}

func TestLogger_Log_ConfigOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	zapLog := zap.NewNop()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zapLog, auditlog.Config{
		Project: "off",
		Task:    "off",
		Admin:   "off",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryProject,
		EventType: audit.EventProjectCreated,
		Success:   true,
	})

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no events when config is 'off'")
	}
}

func TestLogger_Log_ConfigDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	zapLog := zap.NewNop()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zapLog, auditlog.Config{
		Project: "db",
		Task:    "db",
		Admin:   "db",
	})

	actor := testutil.AdminActor()
	logger.ProjectStatusChanged(ctx, actor, "PRJ0001", "Not Started", "In Progress")

	events, err := store.GetByProject(ctx, "PRJ0001", 10)
	if err != nil {
		t.Fatalf("GetByProject failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EventType != audit.EventProjectStatusChanged {
		t.Fatalf("unexpected event type %q", events[0].EventType)
	}
	if events[0].Details["to"] != "In Progress" {
		t.Fatalf("expected target status in details, got %q", events[0].Details["to"])
	}
}

func TestLogger_Log_ConfigLogOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	zapLog := zap.NewNop()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zapLog, auditlog.Config{
		Project: "log",
		Task:    "log",
		Admin:   "log",
	})

	actor := testutil.AdminActor()
	logger.TaskCreated(ctx, actor, "PRJ0001", primitive.NewObjectID(), "new task")

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no stored events when config is 'log'")
	}
}
