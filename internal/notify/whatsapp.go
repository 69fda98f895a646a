package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

const channelWhatsApp = "whatsapp"

// WhatsAppNotifier calls the WhatsApp Business Cloud API with a bearer token
type WhatsAppNotifier struct {
	baseURL       string
	apiVersion    string
	token         string
	phoneNumberID string
	to            string
	template      string
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewWhatsAppNotifier creates a WhatsApp Cloud API notifier
func NewWhatsAppNotifier(cfg config.WhatsAppConfig, logger *zap.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://graph.facebook.com"
	}
	version := cfg.APIVersion
	if version == "" {
		version = "v22.0"
	}
	return &WhatsAppNotifier{
		baseURL:       baseURL,
		apiVersion:    version,
		token:         cfg.Token,
		phoneNumberID: cfg.PhoneNumberID,
		to:            cfg.AlertTo,
		template:      cfg.Template,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
	}
}

type waMessage struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             *waText     `json:"text,omitempty"`
	Template         *waTemplate `json:"template,omitempty"`
}

type waText struct {
	Body string `json:"body"`
}

type waTemplate struct {
	Name       string        `json:"name"`
	Language   waLanguage    `json:"language"`
	Components []waComponent `json:"components"`
}

type waLanguage struct {
	Code string `json:"code"`
}

type waComponent struct {
	Type       string        `json:"type"`
	Parameters []waParameter `json:"parameters"`
}

type waParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (n *WhatsAppNotifier) Channel() string {
	return channelWhatsApp
}

// Notify sends the template message when one is configured and falls back once to free-form text.
// A delivery through the fallback returns ErrDeliveredByFallback.
func (n *WhatsAppNotifier) Notify(ctx context.Context, p Payload) error {
	if n.template == "" {
		return n.send(ctx, n.textMessage(p))
	}

	err := n.send(ctx, n.templateMessage(p))
	if err == nil {
		return nil
	}

	n.logger.Warn("WhatsApp template failed, retrying as text",
		zap.Int64("order_id", p.OrderID),
		zap.String("template", n.template),
		zap.Error(err),
	)
	if err := n.send(ctx, n.textMessage(p)); err != nil {
		return err
	}
	return ErrDeliveredByFallback
}

func (n *WhatsAppNotifier) templateMessage(p Payload) waMessage {
	params := []waParameter{
		{Type: "text", Text: strconv.FormatInt(p.OrderID, 10)},
		{Type: "text", Text: "$" + FormatAmount(p.Total)},
		{Type: "text", Text: p.ItemsText()},
		{Type: "text", Text: p.contactOrDash()},
	}
	return waMessage{
		MessagingProduct: "whatsapp",
		To:               n.to,
		Type:             "template",
		Template: &waTemplate{
			Name:       n.template,
			Language:   waLanguage{Code: "es"},
			Components: []waComponent{{Type: "body", Parameters: params}},
		},
	}
}

func (n *WhatsAppNotifier) textMessage(p Payload) waMessage {
	body := fmt.Sprintf("🚨 *NUEVO PEDIDO EN LA WEB*\n\n#%d — Total: $%s\nCliente: %s\n\n🛒 Detalle:\n%s",
		p.OrderID, FormatAmount(p.Total), p.contactOrDash(), p.ItemsText())
	return waMessage{
		MessagingProduct: "whatsapp",
		To:               n.to,
		Type:             "text",
		Text:             &waText{Body: body},
	}
}

func (n *WhatsAppNotifier) send(ctx context.Context, msg waMessage) error {
	if n.token == "" || n.phoneNumberID == "" || n.to == "" {
		return &errors.ErrUpstreamNotification{Channel: channelWhatsApp,
			Err: fmt.Errorf("client not configured: token, phone number ID and recipient required")}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/%s/messages", n.baseURL, n.apiVersion, n.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return &errors.ErrUpstreamNotification{Channel: channelWhatsApp, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &errors.ErrUpstreamNotification{
			Channel: channelWhatsApp,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("%s message rejected: %s", msg.Type, strings.TrimSpace(string(body))),
		}
	}
	return nil
}
