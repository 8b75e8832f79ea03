package gorm

import (
	"context"

	"github.com/pantryhq/pantry/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type txKey struct{}

// Transactor implements outbound.Transactor on top of a GORM connection
type Transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor
func NewTransactor(db *gorm.DB) outbound.Transactor {
	return &Transactor{db: db}
}

// WithinTransaction runs fn in a transaction carried by the context.
// Nested calls become savepoints of the outer transaction.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return conn(ctx, t.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction stored in ctx, or db bound to ctx
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// LogLevel maps a configured level name to a GORM log level
func LogLevel(name string) logger.LogLevel {
	switch name {
	case "debug", "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}
