package domain

import (
	"encoding/json"
	"time"
)

// Category is a storefront category row. Owned by the catalog-management process.
type Category struct {
	ID          int64
	Group       string // grupo
	Subcategory string // grcat
	Image       string
	SortToken   string // catcat, free text such as "Cat. 3 - Herramientas"
	Visibility  string
}

// Merchandise is a sellable catalog item. Price is derived, never stored.
type Merchandise struct {
	ID               int64
	Code             string // codigo_int
	ShortDescription string
	Image1           string
	ImageArray       string
	CostExTax        float64
	TaxPercent       float64
	MarginPercent    float64
	Group            string
	GroupOrder       string // fechaordengrupo
}

// MerchandiseFilter carries the raw query parameters of a merchandise listing
type MerchandiseFilter struct {
	Search   string // buscar
	Category string // grcat
}

// Order is a storefront order (pedidostienda)
type Order struct {
	ID           int64
	CreatedAt    time.Time
	ClientID     string          // cliente_tienda, the storefront session id
	CustomerName string          // nombre_cliente
	LineItems    json.RawMessage // array_pedido, stored as jsonb
	Contact      string          // contacto_cliente, phone-like
	Message      string          // mensaje_cliente
}

// OrderRef is the minimal view of the latest order of a client
type OrderRef struct {
	ID        int64
	CreatedAt time.Time
}

// OrderPatch is a sparse set of order fields. Nil fields are left untouched.
type OrderPatch struct {
	LineItems    json.RawMessage
	Message      *string
	Contact      *string
	CustomerName *string
}

// IsEmpty reports whether the patch carries no field at all
func (p OrderPatch) IsEmpty() bool {
	return len(p.LineItems) == 0 && p.Message == nil && p.Contact == nil && p.CustomerName == nil
}

// AdminDevice is an entry of the admin device allow-list (usuarios_admin)
type AdminDevice struct {
	ID       int64
	Username string
}
