package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

type orderRepository struct {
	base
}

// NewOrderRepository creates a new storefront order repository
func NewOrderRepository(db *sql.DB, queryTimeout time.Duration, logger *zap.Logger) *orderRepository {
	return &orderRepository{base: base{db: db, logger: logger, timeout: queryTimeout}}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (int64, error) {
	query := `
		INSERT INTO pedidostienda
			(fecha_pedido, cliente_tienda, nombre_cliente, array_pedido, contacto_cliente, mensaje_cliente)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		order.CreatedAt,
		order.ClientID,
		nullString(order.CustomerName),
		string(order.LineItems),
		nullString(order.Contact),
		nullString(order.Message),
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create order", zap.String("cliente_tienda", order.ClientID), zap.Error(err))
		return 0, errors.Persistence("create order", err)
	}

	order.ID = id
	return id, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, fecha_pedido, cliente_tienda, nombre_cliente, array_pedido, contacto_cliente, mensaje_cliente
		FROM pedidostienda
		WHERE id = $1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var order domain.Order
	var createdAt sql.NullTime
	var clientID, customerName, contact, message sql.NullString
	var lineItems []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&createdAt,
		&clientID,
		&customerName,
		&lineItems,
		&contact,
		&message,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.Persistence("get order", err)
	}

	if createdAt.Valid {
		order.CreatedAt = createdAt.Time
	}
	order.ClientID = clientID.String
	order.CustomerName = customerName.String
	order.LineItems = lineItems
	order.Contact = contact.String
	order.Message = message.String

	return &order, nil
}

func (r *orderRepository) GetLatestByClient(ctx context.Context, clientID string) (*domain.OrderRef, error) {
	query := `
		SELECT id, fecha_pedido
		FROM pedidostienda
		WHERE cliente_tienda = $1
		ORDER BY fecha_pedido DESC NULLS LAST, id DESC
		LIMIT 1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ref domain.OrderRef
	var createdAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&ref.ID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get latest order by client", zap.String("cliente_tienda", clientID), zap.Error(err))
		return nil, errors.Persistence("get latest order", err)
	}
	if createdAt.Valid {
		ref.CreatedAt = createdAt.Time
	}
	return &ref, nil
}

// Update overwrites only the fields present in patch
func (r *orderRepository) Update(ctx context.Context, id int64, patch domain.OrderPatch) (int64, error) {
	query := `
		UPDATE pedidostienda
		SET
			array_pedido = COALESCE($1::jsonb, array_pedido),
			mensaje_cliente = COALESCE($2, mensaje_cliente),
			contacto_cliente = COALESCE($3, contacto_cliente),
			nombre_cliente = COALESCE($4, nombre_cliente)
		WHERE id = $5
		RETURNING id
	`

	var lineItems sql.NullString
	if !domain.IsNullJSON(patch.LineItems) {
		lineItems = sql.NullString{String: string(patch.LineItems), Valid: true}
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var updated int64
	err := r.db.QueryRowContext(ctx, query,
		lineItems,
		nullStringPtr(patch.Message),
		nullStringPtr(patch.Contact),
		nullStringPtr(patch.CustomerName),
		id,
	).Scan(&updated)
	if err == sql.ErrNoRows {
		return 0, &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to update order", zap.Int64("id", id), zap.Error(err))
		return 0, errors.Persistence("update order", err)
	}
	return updated, nil
}
