package notify

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount the es-AR way: "." groups thousands, "," separates up to two decimals
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	whole := d.Truncate(0)
	out := groupThousands(whole.String())

	if frac := d.Sub(whole); !frac.IsZero() {
		digits := strings.TrimRight(frac.StringFixed(2)[2:], "0")
		out += "," + digits
	}
	if neg {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatQuantity renders a quantity without trailing zeros
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// NormalizePhone keeps digits and "+" only
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ChatLink builds the link staff use to open a WhatsApp chat with the customer about an order
func ChatLink(contact string, orderID int64) string {
	text := fmt.Sprintf("Hola, te escribo por tu Nota de Pedido #%d.", orderID)
	return "https://api.whatsapp.com/send?phone=" + url.QueryEscape(NormalizePhone(contact)) +
		"&text=" + queryComponent(text)
}

// queryComponent escapes s for a query value with spaces as %20
func queryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
