package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "spaces", text: "rojo mesa", want: []string{"rojo", "mesa"}},
		{name: "commas and spaces", text: " rojo,, mesa ,silla\t", want: []string{"rojo", "mesa", "silla"}},
		{name: "single char", text: "a", want: []string{"a"}},
		{name: "blank", text: "   ", want: []string{}},
		{name: "only commas", text: ",,,", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestSearchText(t *testing.T) {
	assert.Equal(t, "mesa", SearchText("  mesa ", "Hogar"))
	assert.Equal(t, "Hogar", SearchText("   ", " Hogar "))
	assert.Equal(t, "", SearchText("", "  "))
}

func TestBuilderMatchAllTokens(t *testing.T) {
	b := NewBuilder().
		Visible("m.visibilidad", "mostrar", "show").
		MatchAllTokens(Tokenize("rojo mesa"), "m.palabrasclave2", "m.descripcion_corta")

	assert.Equal(t, []string{
		"LOWER(COALESCE(m.visibilidad, '')) IN ($1, $2)",
		"(COALESCE(m.palabrasclave2, '') ILIKE $3 OR COALESCE(m.descripcion_corta, '') ILIKE $3)",
		"(COALESCE(m.palabrasclave2, '') ILIKE $4 OR COALESCE(m.descripcion_corta, '') ILIKE $4)",
	}, b.Conditions())
	assert.Equal(t, []interface{}{"mostrar", "show", "%rojo%", "%mesa%"}, b.Params())
	assert.True(t, strings.HasPrefix(b.Where(), "WHERE LOWER("))
	assert.Equal(t, 2, strings.Count(b.Where(), " AND "))
}

func TestBuilderNoText(t *testing.T) {
	b := NewBuilder().
		Visible("visibilidad", "mostrar", "show").
		MatchAllTokens(Tokenize(""), "grupo", "grcat")

	assert.Len(t, b.Conditions(), 1)
	assert.Len(t, b.Params(), 2)
}

func TestBuilderEmpty(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, "", b.Where())
	assert.Empty(t, b.Params())
}

func TestBuilderEscapesLikeMetacharacters(t *testing.T) {
	b := NewBuilder().MatchAllTokens([]string{"50%", "a_b", `c\d`}, "descripcion_corta")
	assert.Equal(t, []interface{}{`%50\%%`, `%a\_b%`, `%c\\d%`}, b.Params())
}

func TestBuilderNeverInterpolatesTokens(t *testing.T) {
	evil := "x'); DROP TABLE mercaderia; --"
	b := NewBuilder().MatchAllTokens(Tokenize(evil), "descripcion_corta")
	assert.NotContains(t, b.Where(), "DROP")
	assert.Contains(t, b.Params(), "%DROP%")
}
