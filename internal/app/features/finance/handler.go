// internal/app/features/finance/handler.go

// Package finance is the treasurer's back-office: the transaction ledger,
// the income/expense summary, and CSV export/import.
package finance

import (
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	transactionstore "github.com/mkovarik/kulturhub/internal/app/store/transactions"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the finance pages.
type Handler struct {
	Store  *transactionstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a finance Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  transactionstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
