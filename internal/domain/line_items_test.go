package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineItems(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
		wantErr   bool
	}{
		{name: "array", raw: `[{"codigo_int":"A1","cantidad":2},{"codigo_int":"B2"}]`, wantCount: 2},
		{name: "string holding array", raw: `"[{\"codigo_int\":\"A1\",\"cantidad\":\"3\"}]"`, wantCount: 1},
		{name: "empty array", raw: `[]`, wantCount: 0},
		{name: "null", raw: `null`, wantCount: 0},
		{name: "empty", raw: ``, wantCount: 0},
		{name: "empty string", raw: `"  "`, wantCount: 0},
		{name: "object is not a list", raw: `{"codigo_int":"A1"}`, wantErr: true},
		{name: "garbage string", raw: `"not json"`, wantErr: true},
		{name: "bad quantity", raw: `[{"codigo_int":"A1","cantidad":"dos"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseLineItems(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantCount)
		})
	}
}

func TestLineItemQuantity(t *testing.T) {
	items, err := ParseLineItems(json.RawMessage(`[
		{"codigo_int":" A1 ","cantidad":2},
		{"codigo_int":"A2"},
		{"codigo_int":"A3","cantidad":-4},
		{"codigo_int":"A4","cantidad":"2,5"},
		{"codigo_int":"A5","cantidad":null}
	]`))
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "A1", items[0].Code)
	assert.Equal(t, 2.0, items[0].Quantity())
	assert.Equal(t, 1.0, items[1].Quantity())
	assert.Equal(t, 0.0, items[2].Quantity())
	assert.Equal(t, 2.5, items[3].Quantity())
	assert.Equal(t, 1.0, items[4].Quantity())
}

func TestIsNullJSON(t *testing.T) {
	assert.True(t, IsNullJSON(nil))
	assert.True(t, IsNullJSON(json.RawMessage(" null ")))
	assert.False(t, IsNullJSON(json.RawMessage("[]")))
}

func TestOrderPatchIsEmpty(t *testing.T) {
	assert.True(t, OrderPatch{}.IsEmpty())
	msg := ""
	assert.False(t, OrderPatch{Message: &msg}.IsEmpty())
	assert.False(t, OrderPatch{LineItems: json.RawMessage(`[]`)}.IsEmpty())
}
