// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// TaskHub applies any TIMEOUT_* environment overrides and guarantees a
// superadmin account exists when one is configured, so a fresh
// deployment is never locked out.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied", zap.Int("count", n))
	}

	if appCfg.SuperAdminEmail != "" {
		users := userstore.New(deps.TaskHubMongoDatabase)
		opCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
		defer cancel()
		u, err := users.EnsureSuperAdmin(opCtx, appCfg.SuperAdminEmail, appCfg.SuperAdminName)
		if err != nil {
			logger.Error("superadmin bootstrap failed",
				zap.String("email", appCfg.SuperAdminEmail),
				zap.Error(err))
			return err
		}
		logger.Info("superadmin ensured",
			zap.String("email", appCfg.SuperAdminEmail),
			zap.String("user_id", u.ID.Hex()))
	}

	return nil
}
