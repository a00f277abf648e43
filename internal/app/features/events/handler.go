// internal/app/features/events/handler.go
package events

import (
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	eventstore "github.com/mkovarik/kulturhub/internal/app/store/events"
	registrationstore "github.com/mkovarik/kulturhub/internal/app/store/registrations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all event handlers, public and admin.
type Handler struct {
	DB            *mongo.Database
	Store         *eventstore.Store
	Registrations *registrationstore.Store
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
}

// NewHandler constructs an events Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Store:         eventstore.New(db),
		Registrations: registrationstore.New(db),
		Log:           logger,
		ErrLog:        errLog,
	}
}
