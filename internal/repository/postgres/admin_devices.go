package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

type adminDeviceRepository struct {
	base
}

// NewAdminDeviceRepository creates a new admin device allow-list repository
func NewAdminDeviceRepository(db *sql.DB, queryTimeout time.Duration, logger *zap.Logger) *adminDeviceRepository {
	return &adminDeviceRepository{base: base{db: db, logger: logger, timeout: queryTimeout}}
}

func (r *adminDeviceRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM usuarios_admin WHERE nombre_usuario = $1)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		r.logger.Error("Failed to check admin device", zap.Error(err))
		return false, errors.Persistence("check admin device", err)
	}
	return exists, nil
}

func (r *adminDeviceRepository) Create(ctx context.Context, username string) (*domain.AdminDevice, error) {
	query := `
		INSERT INTO usuarios_admin (nombre_usuario)
		VALUES ($1)
		ON CONFLICT (nombre_usuario) DO UPDATE SET nombre_usuario = EXCLUDED.nombre_usuario
		RETURNING id, nombre_usuario
	`

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &errors.ErrValidation{Message: "device name is required"}
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var d domain.AdminDevice
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&d.ID, &d.Username); err != nil {
		r.logger.Error("Failed to create admin device", zap.Error(err))
		return nil, errors.Persistence("create admin device", err)
	}
	return &d, nil
}

func (r *adminDeviceRepository) List(ctx context.Context) ([]*domain.AdminDevice, error) {
	query := `SELECT id, nombre_usuario FROM usuarios_admin ORDER BY nombre_usuario`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list admin devices", zap.Error(err))
		return nil, errors.Persistence("list admin devices", err)
	}
	defer rows.Close()

	var devices []*domain.AdminDevice
	for rows.Next() {
		var d domain.AdminDevice
		if err := rows.Scan(&d.ID, &d.Username); err != nil {
			return nil, errors.Persistence("list admin devices", err)
		}
		devices = append(devices, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("list admin devices", err)
	}
	return devices, nil
}
