package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
)

var leadingNumber = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

// ExtractSortKey returns the first signed integer or decimal found in token.
// Both "." and "," are accepted as decimal separator. ok is false when token has no number.
func ExtractSortKey(token string) (key float64, ok bool) {
	m := leadingNumber.FindString(token)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SortCategories orders categories by the numeric key in their sort token, keyless ones last,
// ties broken by group name (byte-wise)
func SortCategories(cats []*domain.Category) {
	type keyed struct {
		key float64
		ok  bool
	}
	keys := make(map[*domain.Category]keyed, len(cats))
	for _, c := range cats {
		k, ok := ExtractSortKey(c.SortToken)
		keys[c] = keyed{key: k, ok: ok}
	}

	sort.SliceStable(cats, func(i, j int) bool {
		a, b := keys[cats[i]], keys[cats[j]]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok && a.key != b.key {
			return a.key < b.key
		}
		return cats[i].Group < cats[j].Group
	})
}
