package service

import (
	"encoding/json"
	"time"
)

// CreateOrderRequest is the checkout payload of the storefront
type CreateOrderRequest struct {
	FechaPedido     *time.Time      `json:"fecha_pedido"`
	ClienteTienda   string          `json:"cliente_tienda"`
	NombreCliente   string          `json:"nombre_cliente"`
	ArrayPedido     json.RawMessage `json:"array_pedido"`
	ContactoCliente string          `json:"contacto_cliente"`
	MensajeCliente  string          `json:"mensaje_cliente"`
}

// UpdateOrderRequest is a sparse order update. Absent or null fields are left untouched.
type UpdateOrderRequest struct {
	ArrayPedido     json.RawMessage `json:"array_pedido"`
	MensajeCliente  *string         `json:"mensaje_cliente"`
	ContactoCliente *string         `json:"contacto_cliente"`
	NombreCliente   *string         `json:"nombre_cliente"`
}

// VerifyDeviceRequest accepts the device name under either key
type VerifyDeviceRequest struct {
	DeviceID    string `json:"device_id"`
	DeviceIDAlt string `json:"deviceId"`
}

// CategoryResponse is one row of the category listing
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Grupo       string `json:"grupo"`
	Grcat       string `json:"grcat"`
	Imagen      string `json:"imagen"`
	Catcat      string `json:"catcat"`
	Visibilidad string `json:"visibilidad"`
}

// MerchandiseResponse is one row of the merchandise listing, with the computed retail price
type MerchandiseResponse struct {
	ID               int64   `json:"id"`
	CodigoInt        string  `json:"codigo_int"`
	DescripcionCorta string  `json:"descripcion_corta"`
	Imagen1          string  `json:"imagen1"`
	Imagearray       string  `json:"imagearray"`
	Costosiniva      float64 `json:"costosiniva"`
	Iva              float64 `json:"iva"`
	Margen           float64 `json:"margen"`
	Grupo            string  `json:"grupo"`
	Fechaordengrupo  string  `json:"fechaordengrupo"`
	Precio           int64   `json:"precio"`
}

// OrderResponse is the full stored order
type OrderResponse struct {
	ID              int64           `json:"id"`
	FechaPedido     *time.Time      `json:"fecha_pedido"`
	ClienteTienda   string          `json:"cliente_tienda"`
	NombreCliente   string          `json:"nombre_cliente"`
	ArrayPedido     json.RawMessage `json:"array_pedido"`
	ContactoCliente string          `json:"contacto_cliente"`
	MensajeCliente  string          `json:"mensaje_cliente"`
}

// LatestOrderResponse identifies the most recent order of a client
type LatestOrderResponse struct {
	ID          int64      `json:"id"`
	FechaPedido *time.Time `json:"fecha_pedido"`
}
