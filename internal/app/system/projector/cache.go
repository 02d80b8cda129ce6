// internal/app/system/projector/cache.go
package projector

import (
	"context"
	"sync"

	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Cache is an explicit in-memory snapshot of the projects and tasks
// collections for the view layer. It is owned by whoever builds the
// projections, passed through the call chain (never package state),
// and invalidated by the mutation service after every successful
// write. Loads go through the injected loader funcs so tests can
// substitute a fake store.
type Cache struct {
	mu sync.Mutex

	loadProjects func(ctx context.Context) ([]models.Project, error)
	loadTasks    func(ctx context.Context) ([]models.Task, error)

	projects      []models.Project
	tasks         []models.Task
	projectsValid bool
	tasksValid    bool
}

// NewCache builds a cache over the given loaders.
func NewCache(
	loadProjects func(ctx context.Context) ([]models.Project, error),
	loadTasks func(ctx context.Context) ([]models.Task, error),
) *Cache {
	return &Cache{loadProjects: loadProjects, loadTasks: loadTasks}
}

// Projects returns the cached project snapshot, loading it if stale.
func (c *Cache) Projects(ctx context.Context) ([]models.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.projectsValid {
		loadCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
		defer cancel()
		rows, err := c.loadProjects(loadCtx)
		if err != nil {
			return nil, err
		}
		c.projects = rows
		c.projectsValid = true
	}
	return c.projects, nil
}

// Tasks returns the cached task snapshot, loading it if stale.
func (c *Cache) Tasks(ctx context.Context) ([]models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tasksValid {
		loadCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
		defer cancel()
		rows, err := c.loadTasks(loadCtx)
		if err != nil {
			return nil, err
		}
		c.tasks = rows
		c.tasksValid = true
	}
	return c.tasks, nil
}

// Invalidate drops both snapshots. The next read reloads from the
// store, so a view rendered after a confirmed mutation always reflects
// it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectsValid = false
	c.tasksValid = false
}
