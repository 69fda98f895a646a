// Package notify alerts staff about new storefront orders by email or WhatsApp.
package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/catalog"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
)

// MaxSummaryLines caps the line items rendered into a notification
const MaxSummaryLines = 40

const noItems = "(sin ítems)"

// Notifier delivers one new-order alert over a single channel
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, p Payload) error
}

// PayloadFunc builds the alert for an order. It runs on the notification goroutine.
type PayloadFunc func(ctx context.Context) Payload

// ErrDeliveredByFallback is returned by Notify when the alert went out through the fallback message
var ErrDeliveredByFallback = stderrors.New("delivered by fallback message")

// Payload is everything a new-order alert shows
type Payload struct {
	OrderID   int64
	Total     decimal.Decimal
	Lines     []catalog.PricedLine
	Contact   string
	OrderLink string
}

func (p Payload) summaryLines() []catalog.PricedLine {
	if len(p.Lines) > MaxSummaryLines {
		return p.Lines[:MaxSummaryLines]
	}
	return p.Lines
}

// ItemsText renders the line items, one per line
func (p Payload) ItemsText() string {
	lines := p.summaryLines()
	if len(lines) == 0 {
		return noItems
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s x%s — %s — $%s — Subt $%s",
			l.Code, FormatQuantity(l.Quantity), l.Description, FormatAmount(l.Unit), FormatAmount(l.Subtotal))
	}
	return strings.Join(out, "\n")
}

func (p Payload) contactOrDash() string {
	if strings.TrimSpace(p.Contact) == "" {
		return "-"
	}
	return p.Contact
}

// New builds the notifier for the configured channel. Channel "none" yields nil.
func New(cfg *config.Config, logger *zap.Logger) (Notifier, error) {
	switch cfg.Notify.Channel {
	case domain.NotifyChannelEmail:
		return NewEmailNotifier(cfg.SMTP, logger)
	case domain.NotifyChannelWhatsApp:
		return NewWhatsAppNotifier(cfg.WhatsApp, logger), nil
	case domain.NotifyChannelNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown notification channel %q", cfg.Notify.Channel)
	}
}
