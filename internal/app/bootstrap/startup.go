// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/mkovarik/kulturhub/internal/app/resources"
	userstore "github.com/mkovarik/kulturhub/internal/app/store/users"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}

	return nil
}

// ensureAdmin makes sure the configured admin email can sign in. A fresh
// deployment has no accounts at all, so the account is created without a
// password; the admin sets one through the reset flow or signs in with
// Google.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		logger.Info("admin account present", zap.String("email", existing.Email))
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		// Create below.
	default:
		return fmt.Errorf("looking up admin account: %w", err)
	}

	created, err := users.Create(ctx, models.User{
		FullName: "Administrator",
		Email:    email,
		Role:     "admin",
		Status:   "active",
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	logger.Info("admin account created", zap.String("email", created.Email))
	return nil
}
