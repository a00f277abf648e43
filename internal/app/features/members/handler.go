// internal/app/features/members/handler.go
package members

import (
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	requeststore "github.com/mkovarik/kulturhub/internal/app/store/memberrequests"
	memberstore "github.com/mkovarik/kulturhub/internal/app/store/members"
	"github.com/mkovarik/kulturhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the membership back-office: pending applications and the
// member register.
type Handler struct {
	Members  *memberstore.Store
	Requests *requeststore.Store
	Mail     *mailer.Mailer
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs a members Handler.
func NewHandler(db *mongo.Database, mail *mailer.Mailer, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Members:  memberstore.New(db),
		Requests: requeststore.New(db),
		Mail:     mail,
		Log:      logger,
		ErrLog:   errLog,
	}
}
