package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxMerchandiseRows caps every merchandise listing
const MaxMerchandiseRows = 1000

var tokenSeparator = regexp.MustCompile(`[,\s]+`)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Tokenize splits free text on runs of whitespace and/or commas, dropping empty tokens
func Tokenize(text string) []string {
	parts := tokenSeparator.Split(strings.TrimSpace(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// SearchText picks the text to search: buscar when present, else the category label
func SearchText(buscar, grcat string) string {
	if s := strings.TrimSpace(buscar); s != "" {
		return s
	}
	return strings.TrimSpace(grcat)
}

// Builder accumulates parameterized WHERE conditions with $n placeholders.
// Values are only ever passed as arguments, never formatted into the SQL text.
type Builder struct {
	conditions []string
	params     []interface{}
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) bind(value interface{}) string {
	b.params = append(b.params, value)
	return "$" + strconv.Itoa(len(b.params))
}

// Visible restricts rows to those whose visibility column equals one of values, ignoring case
func (b *Builder) Visible(column string, values ...string) *Builder {
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.bind(strings.ToLower(v))
	}
	b.conditions = append(b.conditions,
		fmt.Sprintf("LOWER(COALESCE(%s, '')) IN (%s)", column, strings.Join(placeholders, ", ")))
	return b
}

// MatchAllTokens requires every token to appear, case-insensitively, in at least one of columns
func (b *Builder) MatchAllTokens(tokens []string, columns ...string) *Builder {
	if len(columns) == 0 {
		return b
	}
	for _, tok := range tokens {
		ph := b.bind("%" + likeEscaper.Replace(tok) + "%")
		ors := make([]string, len(columns))
		for i, col := range columns {
			ors[i] = fmt.Sprintf("COALESCE(%s, '') ILIKE %s", col, ph)
		}
		b.conditions = append(b.conditions, "("+strings.Join(ors, " OR ")+")")
	}
	return b
}

// Where returns the WHERE clause, or "" when there are no conditions
func (b *Builder) Where() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conditions, " AND ")
}

// Conditions returns the individual conditions in insertion order
func (b *Builder) Conditions() []string {
	return b.conditions
}

// Params returns the positional arguments matching the placeholders
func (b *Builder) Params() []interface{} {
	return b.params
}
