// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/taskhub/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/taskhub/internal/app/features/heartbeat"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// TaskHub's core is a library consumed by its view layer; the only
// routes served here are the operational probes that load balancers
// and orchestrators rely on.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Readiness: verifies the database is reachable.
	healthHandler := healthfeature.NewHandler(deps.TaskHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Liveness: plain OK while the process is up.
	r.Mount("/heartbeat", heartbeatfeature.Routes(heartbeatfeature.NewHandler(logger)))

	return r, nil
}
