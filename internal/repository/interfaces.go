package repository

import (
	"context"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
)

// CategoryRepository defines category data access methods. Results are visibility-filtered and unsorted.
type CategoryRepository interface {
	ListVisible(ctx context.Context) ([]*domain.Category, error)
	SearchVisible(ctx context.Context, text string) ([]*domain.Category, error)
}

// MerchandiseRepository defines merchandise data access methods
type MerchandiseRepository interface {
	Search(ctx context.Context, filter domain.MerchandiseFilter) ([]*domain.Merchandise, error)
	GetByCodes(ctx context.Context, codes []string) (map[string]*domain.Merchandise, error)
}

// OrderRepository defines storefront order data access methods
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetLatestByClient returns (nil, nil) when the client has no order
	GetLatestByClient(ctx context.Context, clientID string) (*domain.OrderRef, error)
	Update(ctx context.Context, id int64, patch domain.OrderPatch) (int64, error)
}

// AdminDeviceRepository defines admin device allow-list data access methods
type AdminDeviceRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, username string) (*domain.AdminDevice, error)
	List(ctx context.Context) ([]*domain.AdminDevice, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Category    CategoryRepository
	Merchandise MerchandiseRepository
	Order       OrderRepository
	AdminDevice AdminDeviceRepository
}
