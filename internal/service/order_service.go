package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/catalog"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/notify"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

// Dispatcher hands a new-order alert to the background notification pipeline.
// build runs there, off the request path.
type Dispatcher interface {
	Dispatch(orderID int64, build notify.PayloadFunc)
}

type OrderService struct {
	repos         *repository.Repositories
	dispatcher    Dispatcher
	orderLinkBase string
	logger        *zap.Logger
}

// NewOrderService creates a new order service. orderLinkBase may be empty.
func NewOrderService(repos *repository.Repositories, dispatcher Dispatcher, orderLinkBase string, logger *zap.Logger) *OrderService {
	return &OrderService{
		repos:         repos,
		dispatcher:    dispatcher,
		orderLinkBase: strings.TrimSuffix(orderLinkBase, "/"),
		logger:        logger,
	}
}

// Create stores a new order and queues the staff alert. The alert never affects the result.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (int64, error) {
	clientID := strings.TrimSpace(req.ClienteTienda)
	fields := map[string]string{}
	if clientID == "" {
		fields["cliente_tienda"] = "required"
	}
	if domain.IsNullJSON(req.ArrayPedido) {
		fields["array_pedido"] = "required"
	}
	if len(fields) > 0 {
		return 0, &errors.ErrValidation{Message: "missing required fields", Fields: fields}
	}

	order := &domain.Order{
		ClientID:     clientID,
		CustomerName: strings.TrimSpace(req.NombreCliente),
		LineItems:    req.ArrayPedido,
		Contact:      strings.TrimSpace(req.ContactoCliente),
		Message:      req.MensajeCliente,
	}
	if req.FechaPedido != nil {
		order.CreatedAt = req.FechaPedido.UTC()
	}

	s.logger.Info("Creating storefront order", zap.String("cliente_tienda", clientID))
	id, err := s.repos.Order.Create(ctx, order)
	if err != nil {
		return 0, err
	}

	if s.dispatcher != nil {
		raw, contact, link := order.LineItems, order.Contact, s.orderLink(id)
		s.dispatcher.Dispatch(id, func(ctx context.Context) notify.Payload {
			lines, total := s.Summary(ctx, raw)
			return notify.Payload{
				OrderID:   id,
				Total:     total,
				Lines:     lines,
				Contact:   contact,
				OrderLink: link,
			}
		})
	}
	return id, nil
}

// Summary prices the line items of an order against the current catalog.
// Unreadable payloads and catalog lookup failures degrade to a zero or snapshot-based total.
func (s *OrderService) Summary(ctx context.Context, raw json.RawMessage) ([]catalog.PricedLine, decimal.Decimal) {
	items, err := domain.ParseLineItems(raw)
	if err != nil {
		s.logger.Warn("Unreadable line items, total is zero", zap.Error(err))
		return nil, decimal.Zero
	}
	if len(items) == 0 {
		return nil, decimal.Zero
	}

	current, err := s.repos.Merchandise.GetByCodes(ctx, catalog.Codes(items))
	if err != nil {
		s.logger.Warn("Catalog lookup failed, pricing from snapshots", zap.Error(err))
		current = nil
	}
	return catalog.PriceLines(items, current)
}

func (s *OrderService) orderLink(id int64) string {
	if s.orderLinkBase == "" {
		return ""
	}
	return s.orderLinkBase + "/" + strconv.FormatInt(id, 10)
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repos.Order.GetByID(ctx, id)
}

// LatestForClient returns the newest order of clientID, or ErrNotFound when there is none
func (s *OrderService) LatestForClient(ctx context.Context, clientID string) (*domain.OrderRef, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, &errors.ErrValidation{Message: "client id is required"}
	}
	ref, err := s.repos.Order.GetLatestByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, &errors.ErrNotFound{Resource: "order for client", ID: clientID}
	}
	return ref, nil
}

// Update applies a sparse update. Repeating the same request leaves the same stored state.
func (s *OrderService) Update(ctx context.Context, id int64, req UpdateOrderRequest) (int64, error) {
	patch := domain.OrderPatch{
		Message:      req.MensajeCliente,
		Contact:      req.ContactoCliente,
		CustomerName: req.NombreCliente,
	}
	if !domain.IsNullJSON(req.ArrayPedido) {
		patch.LineItems = req.ArrayPedido
	}
	if patch.IsEmpty() {
		return 0, &errors.ErrValidation{Message: "no fields to update"}
	}

	s.logger.Info("Updating storefront order", zap.Int64("id", id))
	return s.repos.Order.Update(ctx, id, patch)
}

// ToOrderResponse maps a stored order to its JSON shape
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		FechaPedido:     timePtr(o.CreatedAt),
		ClienteTienda:   o.ClientID,
		NombreCliente:   o.CustomerName,
		ArrayPedido:     rawOrNull(o.LineItems),
		ContactoCliente: o.Contact,
		MensajeCliente:  o.Message,
	}
}

func ToLatestOrderResponse(ref *domain.OrderRef) LatestOrderResponse {
	return LatestOrderResponse{ID: ref.ID, FechaPedido: timePtr(ref.CreatedAt)}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
