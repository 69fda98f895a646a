package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

const channelEmail = "email"

var emailTemplate = template.Must(template.New("order").Parse(`<h2>🚨 Nuevo pedido en la web</h2>
<p><strong>Pedido #{{.ID}}</strong><br>
Total: <strong>$ {{.Total}}</strong><br>
Cliente (WhatsApp): <strong>{{.Contact}}</strong></p>
{{if .Rows}}
<table border="0" cellpadding="6" cellspacing="0" style="border-collapse:collapse;width:100%;font-family:Arial">
  <thead>
    <tr><th align="left">Ítem</th><th align="right">Unit.</th><th align="right">Subt.</th></tr>
  </thead>
  <tbody>
  {{- range .Rows}}
    <tr>
      <td><strong>{{.Item}}</strong><br><span style="color:#555">{{.Description}}</span></td>
      <td align="right">$ {{.Unit}}</td>
      <td align="right">$ {{.Subtotal}}</td>
    </tr>
  {{- end}}
  </tbody>
</table>
{{else}}
<p>(sin ítems)</p>
{{end}}
<p><a href="{{.ChatLink}}" target="_blank">📲 Chatear con el cliente</a></p>
{{if .OrderLink}}<p>Ver pedido: <a href="{{.OrderLink}}" target="_blank">{{.OrderLink}}</a></p>{{end}}
`))

type emailRow struct {
	Item        string
	Description string
	Unit        string
	Subtotal    string
}

type emailView struct {
	ID        int64
	Total     string
	Contact   string
	Rows      []emailRow
	ChatLink  string
	OrderLink string
}

// RenderEmail builds the HTML body of a new-order email
func RenderEmail(p Payload) (string, error) {
	view := emailView{
		ID:        p.OrderID,
		Total:     FormatAmount(p.Total),
		Contact:   p.contactOrDash(),
		ChatLink:  ChatLink(p.Contact, p.OrderID),
		OrderLink: p.OrderLink,
	}
	for _, l := range p.summaryLines() {
		view.Rows = append(view.Rows, emailRow{
			Item:        l.Code + " x" + FormatQuantity(l.Quantity),
			Description: l.Description,
			Unit:        FormatAmount(l.Unit),
			Subtotal:    FormatAmount(l.Subtotal),
		})
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailNotifier sends new-order alerts through an SMTP relay
type EmailNotifier struct {
	sender   mailSender
	to       string
	from     string
	fromName string
	logger   *zap.Logger
}

// NewEmailNotifier creates an SMTP notifier using STARTTLS when the relay offers it
func NewEmailNotifier(cfg config.SMTPConfig, logger *zap.Logger) (*EmailNotifier, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return newEmailNotifier(client, cfg, logger), nil
}

func newEmailNotifier(sender mailSender, cfg config.SMTPConfig, logger *zap.Logger) *EmailNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	from := cfg.From
	if from == "" {
		from = cfg.To
	}
	return &EmailNotifier{
		sender:   sender,
		to:       cfg.To,
		from:     from,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

func (n *EmailNotifier) Channel() string {
	return channelEmail
}

func (n *EmailNotifier) Notify(ctx context.Context, p Payload) error {
	msg, err := n.message(p)
	if err != nil {
		return err
	}
	if err := n.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return &errors.ErrUpstreamNotification{Channel: channelEmail, Err: err}
	}
	n.logger.Info("Order email sent", zap.Int64("order_id", p.OrderID), zap.String("to", n.to))
	return nil
}

func (n *EmailNotifier) message(p Payload) (*mail.Msg, error) {
	body, err := RenderEmail(p)
	if err != nil {
		return nil, fmt.Errorf("failed to render email: %w", err)
	}

	msg := mail.NewMsg()
	if n.fromName != "" {
		err = msg.FromFormat(n.fromName, n.from)
	} else {
		err = msg.From(n.from)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("[TSB] Nuevo pedido #%d", p.OrderID))
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}
