package postgres

import (
	"context"
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

var categoryCols = []string{"id", "grupo", "grcat", "imagen", "catcat", "visibilidad"}

var merchandiseCols = []string{"id", "codigo_int", "descripcion_corta", "imagen1", "imagearray",
	"costosiniva", "iva", "margen", "grupo", "fechaordengrupo"}

func TestCategoryRepository_ListVisible(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("LOWER(COALESCE(visibilidad, '')) IN ($1, $2)")).
		WithArgs("mostrar", "show").
		WillReturnRows(sqlmock.NewRows(categoryCols).
			AddRow(int64(1), "Bazar", "Vasos", nil, "Cat. 3", "MOSTRAR").
			AddRow(int64(2), "Camping", nil, "c.png", nil, "show"))

	cats, err := repo.ListVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Bazar", cats[0].Group)
	assert.Equal(t, "Cat. 3", cats[0].SortToken)
	assert.Empty(t, cats[1].Subcategory)
	assert.Equal(t, "c.png", cats[1].Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_SearchVisible(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("(COALESCE(grupo, '') ILIKE $3 OR COALESCE(grcat, '') ILIKE $3)")).
		WithArgs("mostrar", "show", "%termo%", "%acero%").
		WillReturnRows(sqlmock.NewRows(categoryCols))

	cats, err := repo.SearchVisible(context.Background(), "termo, acero")
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_QueryFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery("SELECT").WillReturnError(stderrors.New("timeout"))

	_, err := repo.ListVisible(context.Background())
	var perr *errors.ErrPersistence
	assert.True(t, stderrors.As(err, &perr))
}

func TestMerchandiseRepository_Search(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMerchandiseRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(m.palabrasclave2, '') ILIKE $3 OR COALESCE(m.descripcion_corta, '') ILIKE $3")).
		WithArgs("mostrar", "show", "%vaso%", "%vidrio%").
		WillReturnRows(sqlmock.NewRows(merchandiseCols).
			AddRow(int64(1), "V100", "Vaso vidrio", "v.jpg", nil, 1000.0, 21.0, 30.0, "Bazar", "2024-01-01").
			AddRow(int64(2), "V200", "Vaso vidrio alto", nil, nil, nil, nil, nil, nil, nil))

	items, err := repo.Search(context.Background(), domain.MerchandiseFilter{Search: " vaso  vidrio ", Category: "ignored"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "V100", items[0].Code)
	assert.Equal(t, 1000.0, items[0].CostExTax)
	assert.Equal(t, 21.0, items[0].TaxPercent)
	assert.Zero(t, items[1].CostExTax)
	assert.Empty(t, items[1].Group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchandiseRepository_SearchFallsBackToCategory(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMerchandiseRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 1000")).
		WithArgs("mostrar", "show", "%Termos%").
		WillReturnRows(sqlmock.NewRows(merchandiseCols))

	_, err := repo.Search(context.Background(), domain.MerchandiseFilter{Category: "Termos"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchandiseRepository_GetByCodes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMerchandiseRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.codigo_int = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(merchandiseCols).
			AddRow(int64(1), "A1", "Jarra", nil, nil, 500.0, 21.0, 50.0, "Bazar", nil))

	got, err := repo.GetByCodes(context.Background(), []string{"A1", "ZZ"})
	require.NoError(t, err)
	require.Contains(t, got, "A1")
	assert.NotContains(t, got, "ZZ")
	assert.Equal(t, "Jarra", got["A1"].ShortDescription)
}

func TestMerchandiseRepository_GetByCodesEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMerchandiseRepository(db, time.Second, zap.NewNop())

	got, err := repo.GetByCodes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminDeviceRepository_Exists(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{"registered device", true},
		{"unknown device", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewAdminDeviceRepository(db, time.Second, zap.NewNop())

			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
				WithArgs("tablet-caja").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			ok, err := repo.Exists(context.Background(), "tablet-caja")
			require.NoError(t, err)
			assert.Equal(t, tt.exists, ok)
		})
	}
}

func TestAdminDeviceRepository_CreateAndList(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminDeviceRepository(db, time.Second, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO usuarios_admin")).
		WithArgs("tablet-caja").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre_usuario"}).AddRow(int64(3), "tablet-caja"))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY nombre_usuario")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre_usuario"}).
			AddRow(int64(3), "tablet-caja").
			AddRow(int64(1), "telefono-guille"))

	d, err := repo.Create(context.Background(), "  tablet-caja ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.ID)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminDeviceRepository_CreateBlank(t *testing.T) {
	db, _ := newMock(t)
	repo := NewAdminDeviceRepository(db, time.Second, zap.NewNop())

	_, err := repo.Create(context.Background(), "   ")
	var verr *errors.ErrValidation
	assert.True(t, stderrors.As(err, &verr))
}
