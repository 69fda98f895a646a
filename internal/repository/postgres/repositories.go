package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository"
)

// NewRepositories creates a new set of repositories sharing one pool.
// queryTimeout bounds every statement, including the wait for a free connection.
func NewRepositories(db *sql.DB, queryTimeout time.Duration, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Category:    NewCategoryRepository(db, queryTimeout, logger),
		Merchandise: NewMerchandiseRepository(db, queryTimeout, logger),
		Order:       NewOrderRepository(db, queryTimeout, logger),
		AdminDevice: NewAdminDeviceRepository(db, queryTimeout, logger),
	}
}

type base struct {
	db      *sql.DB
	logger  *zap.Logger
	timeout time.Duration
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
