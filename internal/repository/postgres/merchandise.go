package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/catalog"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

const merchandiseSelect = `
	SELECT m.id, m.codigo_int, m.descripcion_corta, m.imagen1, m.imagearray,
		m.costosiniva, m.iva, m.margen, m.grupo, m.fechaordengrupo
	FROM mercaderia m`

const merchandiseOrder = `
	ORDER BY
		NULLIF(TRIM(m.grupo), '') ASC NULLS LAST,
		NULLIF(TRIM(m.fechaordengrupo), '') DESC NULLS LAST,
		m.codigo_int ASC`

type merchandiseRepository struct {
	base
}

// NewMerchandiseRepository creates a new merchandise repository
func NewMerchandiseRepository(db *sql.DB, queryTimeout time.Duration, logger *zap.Logger) *merchandiseRepository {
	return &merchandiseRepository{base: base{db: db, logger: logger, timeout: queryTimeout}}
}

// Search lists visible merchandise. Every token of the search text (or of the category label when
// no text is given) must match the keyword field or the short description.
func (r *merchandiseRepository) Search(ctx context.Context, filter domain.MerchandiseFilter) ([]*domain.Merchandise, error) {
	text := catalog.SearchText(filter.Search, filter.Category)
	b := catalog.NewBuilder().
		Visible("m.visibilidad", domain.VisibilityShow, domain.VisibilityShowEN).
		MatchAllTokens(catalog.Tokenize(text), "m.palabrasclave2", "m.descripcion_corta")

	query := merchandiseSelect + "\n\t" + b.Where() + merchandiseOrder +
		"\n\tLIMIT " + strconv.Itoa(catalog.MaxMerchandiseRows)

	r.logger.Debug("Merchandise search",
		zap.String("text", text),
		zap.Int("conditions", len(b.Conditions())),
	)

	return r.query(ctx, "search merchandise", query, b.Params())
}

// GetByCodes returns the current catalog rows for codes, keyed by codigo_int. Visibility is ignored
// so hidden items already in a cart still price.
func (r *merchandiseRepository) GetByCodes(ctx context.Context, codes []string) (map[string]*domain.Merchandise, error) {
	out := make(map[string]*domain.Merchandise, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	items, err := r.query(ctx, "get merchandise by codes",
		merchandiseSelect+"\n\tWHERE m.codigo_int = ANY($1)", []interface{}{pq.Array(codes)})
	if err != nil {
		return nil, err
	}
	for _, m := range items {
		out[m.Code] = m
	}
	return out, nil
}

func (r *merchandiseRepository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Merchandise, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query merchandise", zap.String("op", op), zap.Error(err))
		return nil, errors.Persistence(op, err)
	}
	defer rows.Close()

	items := make([]*domain.Merchandise, 0)
	for rows.Next() {
		var m domain.Merchandise
		var code, desc, img1, imgArray, grupo, orden sql.NullString
		var cost, iva, margen sql.NullFloat64
		if err := rows.Scan(&m.ID, &code, &desc, &img1, &imgArray, &cost, &iva, &margen, &grupo, &orden); err != nil {
			r.logger.Error("Failed to scan merchandise", zap.Error(err))
			return nil, errors.Persistence(op, err)
		}
		m.Code = code.String
		m.ShortDescription = desc.String
		m.Image1 = img1.String
		m.ImageArray = imgArray.String
		m.CostExTax = cost.Float64
		m.TaxPercent = iva.Float64
		m.MarginPercent = margen.Float64
		m.Group = grupo.String
		m.GroupOrder = orden.String
		items = append(items, &m)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate merchandise", zap.Error(err))
		return nil, errors.Persistence(op, err)
	}
	return items, nil
}
