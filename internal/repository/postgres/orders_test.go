package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func strPtr(s string) *string { return &s }

func TestOrderRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	items := `[{"codigo_int":"A1","cantidad":2}]`
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pedidostienda")).
		WithArgs(sqlmock.AnyArg(), "client-1", "Ana", items, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	order := &domain.Order{ClientID: "client-1", CustomerName: "Ana", LineItems: []byte(items)}
	id, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateStoreFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pedidostienda")).
		WillReturnError(stderrors.New("connection refused"))

	_, err := repo.Create(context.Background(), &domain.Order{ClientID: "c", LineItems: []byte(`[]`)})
	var perr *errors.ErrPersistence
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, "create order", perr.Op)
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "fecha_pedido", "cliente_tienda", "nombre_cliente", "array_pedido", "contacto_cliente", "mensaje_cliente"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM pedidostienda")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(7), created, "client-1", nil, []byte(`[{"codigo_int":"A1"}]`), "3875551234", nil))

	order, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, created, order.CreatedAt)
	assert.Equal(t, "client-1", order.ClientID)
	assert.Empty(t, order.CustomerName)
	assert.JSONEq(t, `[{"codigo_int":"A1"}]`, string(order.LineItems))
	assert.Equal(t, "3875551234", order.Contact)
}

func TestOrderRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM pedidostienda")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	order, err := repo.GetByID(context.Background(), 99)
	assert.Nil(t, order)
	var nf *errors.ErrNotFound
	require.True(t, stderrors.As(err, &nf))
	assert.Equal(t, "99", nf.ID)
}

func TestOrderRepository_GetLatestByClient(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	created := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY fecha_pedido DESC NULLS LAST, id DESC")).
		WithArgs("client-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_pedido"}).AddRow(int64(12), created))

	ref, err := repo.GetLatestByClient(context.Background(), "client-1")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, int64(12), ref.ID)
	assert.Equal(t, created, ref.CreatedAt)
}

func TestOrderRepository_GetLatestByClientNone(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM pedidostienda")).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_pedido"}))

	ref, err := repo.GetLatestByClient(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, ref)
}

func TestOrderRepository_UpdateSparse(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	// Applying the same patch twice issues the same statement and yields the same id.
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(regexp.QuoteMeta("COALESCE($1::jsonb, array_pedido)")).
			WithArgs(nil, "llamar a la tarde", nil, nil, int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	}

	patch := domain.OrderPatch{Message: strPtr("llamar a la tarde")}
	for i := 0; i < 2; i++ {
		id, err := repo.Update(context.Background(), 5, patch)
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateLineItems(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	items := `[{"codigo_int":"B2","cantidad":"3"}]`
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE pedidostienda")).
		WithArgs(items, nil, "3875550000", "Juan", int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

	_, err := repo.Update(context.Background(), 8, domain.OrderPatch{
		LineItems:    []byte(items),
		Contact:      strPtr("3875550000"),
		CustomerName: strPtr("Juan"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE pedidostienda")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Update(context.Background(), 404, domain.OrderPatch{Message: strPtr("x")})
	var nf *errors.ErrNotFound
	assert.True(t, stderrors.As(err, &nf))
}
