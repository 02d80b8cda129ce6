// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"strconv"

	"github.com/dalemusser/taskhub/internal/app/store/audit"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Project controls logging for project events (create, update, status, archive).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Project string
	// Task controls logging for task events (create, update, status, delete).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Task string
	// Admin controls logging for admin events (user create/update).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}

	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.ProjectCode != "" {
		fields = append(fields, zap.String("project_code", event.ProjectCode))
	}
	if event.TaskID != nil {
		fields = append(fields, zap.String("task_id", event.TaskID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryProject:
		setting = l.config.Project
	case audit.CategoryTask:
		setting = l.config.Task
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all" // Default to logging everything for unknown categories
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Project Events ---

// ProjectCreated logs the creation of a project.
func (l *Logger) ProjectCreated(ctx context.Context, actor models.Actor, projectCode, projectName string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryProject,
		EventType:   audit.EventProjectCreated,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		Success:     true,
		Details: map[string]string{
			"actor_role":   actor.Role,
			"project_name": projectName,
		},
	})
}

// ProjectUpdated logs an edit to a project's details.
func (l *Logger) ProjectUpdated(ctx context.Context, actor models.Actor, projectCode, fieldsChanged string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryProject,
		EventType:   audit.EventProjectUpdated,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		Success:     true,
		Details: map[string]string{
			"actor_role":     actor.Role,
			"fields_changed": fieldsChanged,
		},
	})
}

// ProjectStatusChanged logs a project status transition.
func (l *Logger) ProjectStatusChanged(ctx context.Context, actor models.Actor, projectCode, from, to string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryProject,
		EventType:   audit.EventProjectStatusChanged,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		Success:     true,
		Details: map[string]string{
			"actor_role": actor.Role,
			"from":       from,
			"to":         to,
		},
	})
}

// ProjectArchived logs a project being archived or unarchived.
func (l *Logger) ProjectArchived(ctx context.Context, actor models.Actor, projectCode string, archived bool) {
	eventType := audit.EventProjectArchived
	if !archived {
		eventType = audit.EventProjectUnarchived
	}
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryProject,
		EventType:   eventType,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		Success:     true,
		Details: map[string]string{
			"actor_role": actor.Role,
		},
	})
}

// ProjectNoteAdded logs a note being added to a project.
func (l *Logger) ProjectNoteAdded(ctx context.Context, actor models.Actor, projectCode string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryProject,
		EventType:   audit.EventProjectNoteAdded,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		Success:     true,
		Details: map[string]string{
			"actor_role": actor.Role,
		},
	})
}

// ProjectFileAdded logs file metadata being attached to a project.
func (l *Logger) ProjectFileAdded(ctx context.Context, actor models.Actor, projectCode, fileName string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryProject,
		EventType:   audit.EventProjectFileAdded,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		Success:     true,
		Details: map[string]string{
			"actor_role": actor.Role,
			"file_name":  fileName,
		},
	})
}

// MembersChanged logs a change to a project's member list.
func (l *Logger) MembersChanged(ctx context.Context, actor models.Actor, projectCode string, memberCount int) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryProject,
		EventType:   audit.EventMembersChanged,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		Success:     true,
		Details: map[string]string{
			"actor_role":   actor.Role,
			"member_count": strconv.Itoa(memberCount),
		},
	})
}

// --- Task Events ---

// TaskCreated logs the creation of a task.
func (l *Logger) TaskCreated(ctx context.Context, actor models.Actor, projectCode string, taskID primitive.ObjectID, taskName string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryTask,
		EventType:   audit.EventTaskCreated,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		TaskID:      &taskID,
		Success:     true,
		Details: map[string]string{
			"actor_role": actor.Role,
			"task_name":  taskName,
		},
	})
}

// TaskUpdated logs an edit to a task's details.
func (l *Logger) TaskUpdated(ctx context.Context, actor models.Actor, projectCode string, taskID primitive.ObjectID, fieldsChanged string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryTask,
		EventType:   audit.EventTaskUpdated,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		TaskID:      &taskID,
		Success:     true,
		Details: map[string]string{
			"actor_role":     actor.Role,
			"fields_changed": fieldsChanged,
		},
	})
}

// TaskStatusChanged logs a task status transition.
func (l *Logger) TaskStatusChanged(ctx context.Context, actor models.Actor, projectCode string, taskID primitive.ObjectID, from, to string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryTask,
		EventType:   audit.EventTaskStatusChanged,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		TaskID:      &taskID,
		Success:     true,
		Details: map[string]string{
			"actor_role": actor.Role,
			"from":       from,
			"to":         to,
		},
	})
}

// TaskDeleted logs the removal of a task.
func (l *Logger) TaskDeleted(ctx context.Context, actor models.Actor, projectCode string, taskID primitive.ObjectID, taskName string) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryTask,
		EventType:   audit.EventTaskDeleted,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		TaskID:      &taskID,
		Success:     true,
		Details: map[string]string{
			"actor_role": actor.Role,
			"task_name":  taskName,
		},
	})
}

// TaskNoteAdded logs a note being added to a task.
func (l *Logger) TaskNoteAdded(ctx context.Context, actor models.Actor, projectCode string, taskID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:    audit.CategoryTask,
		EventType:   audit.EventTaskNoteAdded,
		ActorID:     &actor.UserID,
		ActorName:   actor.Name,
		ProjectCode: projectCode,
		TaskID:      &taskID,
		Success:     true,
		Details: map[string]string{
			"actor_role": actor.Role,
		},
	})
}

// --- Admin Events ---

// UserCreated logs when an admin creates a user.
func (l *Logger) UserCreated(ctx context.Context, actor models.Actor, targetUserID primitive.ObjectID, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserCreated,
		ActorID:   &actor.UserID,
		ActorName: actor.Name,
		Success:   true,
		Details: map[string]string{
			"actor_role": actor.Role,
			"user_id":    targetUserID.Hex(),
			"role":       role,
		},
	})
}

// UserUpdated logs when an admin updates a user.
func (l *Logger) UserUpdated(ctx context.Context, actor models.Actor, targetUserID primitive.ObjectID, fieldsChanged string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserUpdated,
		ActorID:   &actor.UserID,
		ActorName: actor.Name,
		Success:   true,
		Details: map[string]string{
			"actor_role":     actor.Role,
			"user_id":        targetUserID.Hex(),
			"fields_changed": fieldsChanged,
		},
	})
}

