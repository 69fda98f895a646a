package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/catalog"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

const categorySelect = `SELECT id, grupo, grcat, imagen, catcat, visibilidad FROM categorias`

type categoryRepository struct {
	base
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, queryTimeout time.Duration, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{base: base{db: db, logger: logger, timeout: queryTimeout}}
}

func (r *categoryRepository) ListVisible(ctx context.Context) ([]*domain.Category, error) {
	b := catalog.NewBuilder().Visible("visibilidad", domain.VisibilityShow, domain.VisibilityShowEN)
	return r.query(ctx, "list categories", categorySelect+" "+b.Where(), b.Params())
}

// SearchVisible matches every token of text against the group name or the subcategory label
func (r *categoryRepository) SearchVisible(ctx context.Context, text string) ([]*domain.Category, error) {
	b := catalog.NewBuilder().
		Visible("visibilidad", domain.VisibilityShow, domain.VisibilityShowEN).
		MatchAllTokens(catalog.Tokenize(text), "grupo", "grcat")
	return r.query(ctx, "search categories", categorySelect+" "+b.Where(), b.Params())
}

func (r *categoryRepository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Category, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query categories", zap.String("op", op), zap.Error(err))
		return nil, errors.Persistence(op, err)
	}
	defer rows.Close()

	cats := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		var grupo, grcat, imagen, catcat, visibilidad sql.NullString
		if err := rows.Scan(&c.ID, &grupo, &grcat, &imagen, &catcat, &visibilidad); err != nil {
			r.logger.Error("Failed to scan category", zap.Error(err))
			return nil, errors.Persistence(op, err)
		}
		c.Group = grupo.String
		c.Subcategory = grcat.String
		c.Image = imagen.String
		c.SortToken = catcat.String
		c.Visibility = visibilidad.String
		cats = append(cats, &c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate categories", zap.Error(err))
		return nil, errors.Persistence(op, err)
	}
	return cats, nil
}
