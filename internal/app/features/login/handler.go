// internal/app/features/login/handler.go

// Package login is the back-office sign-in surface: email/password,
// Google OAuth for pre-provisioned admins, and password resets.
package login

import (
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	resetstore "github.com/mkovarik/kulturhub/internal/app/store/passwordresets"
	userstore "github.com/mkovarik/kulturhub/internal/app/store/users"
	"github.com/mkovarik/kulturhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Handler owns the sign-in pages.
type Handler struct {
	Users   *userstore.Store
	Resets  *resetstore.Store
	Mail    *mailer.Mailer
	BaseURL string

	// OAuth is nil when Google sign-in is not configured; the login page
	// hides the button in that case.
	OAuth *oauth2.Config

	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, mail *mailer.Mailer, baseURL string, oauth *oauth2.Config, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Resets:  resetstore.New(db),
		Mail:    mail,
		BaseURL: baseURL,
		OAuth:   oauth,
		Log:     logger,
		ErrLog:  errLog,
	}
}

// safeReturn keeps redirects on-site. Anything that is not a local path
// falls back to the dashboard.
func safeReturn(target string) string {
	if len(target) > 1 && target[0] == '/' && target[1] != '/' {
		return target
	}
	return "/dashboard"
}
