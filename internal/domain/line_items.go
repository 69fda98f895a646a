package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LineItem is one entry of an order's array_pedido payload
type LineItem struct {
	Code        string     `json:"codigo_int"`
	Description string     `json:"descripcion_corta"`
	Cantidad    FlexNumber `json:"cantidad"`
	Price       FlexNumber `json:"price"` // snapshot sent by the storefront, used when the catalog has no match
}

// Quantity returns the effective quantity: missing or zero means 1, negative means 0
func (li LineItem) Quantity() float64 {
	q := float64(li.Cantidad)
	switch {
	case q == 0:
		return 1
	case q < 0:
		return 0
	default:
		return q
	}
}

// FlexNumber decodes a JSON number or a numeric string such as "2" or "2,5"
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}

	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
		if s == "" {
			*n = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %q", s)
	}
	*n = FlexNumber(f)
	return nil
}

// ParseLineItems decodes an array_pedido payload. The payload may be a JSON array or a
// JSON string holding the array. Empty and null payloads yield no items.
func ParseLineItems(raw json.RawMessage) ([]LineItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("decode array_pedido string: %w", err)
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return nil, nil
		}
		raw = json.RawMessage(inner)
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode array_pedido: %w", err)
	}
	for i := range items {
		items[i].Code = strings.TrimSpace(items[i].Code)
		items[i].Description = strings.TrimSpace(items[i].Description)
	}
	return items, nil
}

// IsNullJSON reports whether raw is absent or the JSON literal null
func IsNullJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
