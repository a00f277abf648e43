// internal/app/features/registrations/handler.go
package registrations

import (
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	eventstore "github.com/mkovarik/kulturhub/internal/app/store/events"
	registrationstore "github.com/mkovarik/kulturhub/internal/app/store/registrations"
	"github.com/mkovarik/kulturhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns per-event attendee management and the public access-code
// pages.
type Handler struct {
	Events  *eventstore.Store
	Store   *registrationstore.Store
	Mail    *mailer.Mailer
	BaseURL string
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

// NewHandler constructs a registrations Handler. baseURL is used in the
// access-code email link.
func NewHandler(db *mongo.Database, mail *mailer.Mailer, baseURL string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Events:  eventstore.New(db),
		Store:   registrationstore.New(db),
		Mail:    mail,
		BaseURL: baseURL,
		Log:     logger,
		ErrLog:  errLog,
	}
}
