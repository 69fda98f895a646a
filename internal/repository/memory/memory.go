// Package memory implements the repository interfaces in process memory.
// It backs handler and service tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/catalog"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu          sync.RWMutex
	categories  []domain.Category
	merchandise []MerchandiseRow
	orders      map[int64]*domain.Order
	nextOrderID int64
	devices     map[string]int64
	now         func() time.Time

	// Err, when set, is returned by every operation
	Err error
}

// MerchandiseRow is a merchandise item plus the columns only the listing filters on
type MerchandiseRow struct {
	Item       domain.Merchandise
	Keywords   string
	Visibility string
}

func New() *Store {
	return &Store{
		orders:  make(map[int64]*domain.Order),
		devices: make(map[string]int64),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Category:    categories{s},
		Merchandise: merchandise{s},
		Order:       orders{s},
		AdminDevice: devices{s},
	}
}

func (s *Store) AddCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = int64(len(s.categories) + 1)
	}
	s.categories = append(s.categories, c)
}

func (s *Store) AddMerchandise(row MerchandiseRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row.Item.ID == 0 {
		row.Item.ID = int64(len(s.merchandise) + 1)
	}
	s.merchandise = append(s.merchandise, row)
}

func (s *Store) AddDevice(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.devices[username]; !ok {
		s.devices[username] = int64(len(s.devices) + 1)
	}
}

func visible(v string) bool {
	v = strings.ToLower(v)
	return v == domain.VisibilityShow || v == domain.VisibilityShowEN
}

// matchesAll mirrors the SQL predicate: every token is a case-insensitive substring of some field
func matchesAll(tokens []string, fields ...string) bool {
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		found := false
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type categories struct{ s *Store }

func (r categories) ListVisible(ctx context.Context) ([]*domain.Category, error) {
	return r.SearchVisible(ctx, "")
}

func (r categories) SearchVisible(_ context.Context, text string) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, errors.Persistence("search categories", r.s.Err)
	}

	tokens := catalog.Tokenize(text)
	out := make([]*domain.Category, 0)
	for i := range r.s.categories {
		c := r.s.categories[i]
		if visible(c.Visibility) && matchesAll(tokens, c.Group, c.Subcategory) {
			out = append(out, &c)
		}
	}
	return out, nil
}

type merchandise struct{ s *Store }

func (r merchandise) Search(_ context.Context, filter domain.MerchandiseFilter) ([]*domain.Merchandise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, errors.Persistence("search merchandise", r.s.Err)
	}

	tokens := catalog.Tokenize(catalog.SearchText(filter.Search, filter.Category))
	out := make([]*domain.Merchandise, 0)
	for i := range r.s.merchandise {
		row := r.s.merchandise[i]
		if visible(row.Visibility) && matchesAll(tokens, row.Keywords, row.Item.ShortDescription) {
			m := row.Item
			out = append(out, &m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := strings.TrimSpace(out[i].Group), strings.TrimSpace(out[j].Group)
		if gi != gj {
			if gi == "" || gj == "" {
				return gj == ""
			}
			return gi < gj
		}
		oi, oj := strings.TrimSpace(out[i].GroupOrder), strings.TrimSpace(out[j].GroupOrder)
		if oi != oj {
			if oi == "" || oj == "" {
				return oj == ""
			}
			return oi > oj
		}
		return out[i].Code < out[j].Code
	})
	if len(out) > catalog.MaxMerchandiseRows {
		out = out[:catalog.MaxMerchandiseRows]
	}
	return out, nil
}

func (r merchandise) GetByCodes(_ context.Context, codes []string) (map[string]*domain.Merchandise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, errors.Persistence("get merchandise by codes", r.s.Err)
	}

	want := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		want[c] = struct{}{}
	}
	out := make(map[string]*domain.Merchandise, len(codes))
	for i := range r.s.merchandise {
		m := r.s.merchandise[i].Item
		if _, ok := want[m.Code]; ok {
			out[m.Code] = &m
		}
	}
	return out, nil
}

type orders struct{ s *Store }

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.LineItems = append([]byte(nil), o.LineItems...)
	return &c
}

func (r orders) Create(_ context.Context, order *domain.Order) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, errors.Persistence("create order", r.s.Err)
	}

	r.s.nextOrderID++
	order.ID = r.s.nextOrderID
	if order.CreatedAt.IsZero() {
		order.CreatedAt = r.s.now()
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return order.ID, nil
}

func (r orders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, errors.Persistence("get order", r.s.Err)
	}

	o, ok := r.s.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	return cloneOrder(o), nil
}

func (r orders) GetLatestByClient(_ context.Context, clientID string) (*domain.OrderRef, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, errors.Persistence("get latest order", r.s.Err)
	}

	var latest *domain.Order
	for _, o := range r.s.orders {
		if o.ClientID != clientID {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) ||
			(o.CreatedAt.Equal(latest.CreatedAt) && o.ID > latest.ID) {
			latest = o
		}
	}
	if latest == nil {
		return nil, nil
	}
	return &domain.OrderRef{ID: latest.ID, CreatedAt: latest.CreatedAt}, nil
}

func (r orders) Update(_ context.Context, id int64, patch domain.OrderPatch) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, errors.Persistence("update order", r.s.Err)
	}

	o, ok := r.s.orders[id]
	if !ok {
		return 0, &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	if !domain.IsNullJSON(patch.LineItems) {
		o.LineItems = append([]byte(nil), patch.LineItems...)
	}
	if patch.Message != nil {
		o.Message = *patch.Message
	}
	if patch.Contact != nil {
		o.Contact = *patch.Contact
	}
	if patch.CustomerName != nil {
		o.CustomerName = *patch.CustomerName
	}
	return id, nil
}

type devices struct{ s *Store }

func (r devices) Exists(_ context.Context, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return false, errors.Persistence("check admin device", r.s.Err)
	}
	_, ok := r.s.devices[username]
	return ok, nil
}

func (r devices) Create(_ context.Context, username string) (*domain.AdminDevice, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &errors.ErrValidation{Message: "device name is required"}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, errors.Persistence("create admin device", r.s.Err)
	}
	id, ok := r.s.devices[username]
	if !ok {
		id = int64(len(r.s.devices) + 1)
		r.s.devices[username] = id
	}
	return &domain.AdminDevice{ID: id, Username: username}, nil
}

func (r devices) List(_ context.Context) ([]*domain.AdminDevice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, errors.Persistence("list admin devices", r.s.Err)
	}
	out := make([]*domain.AdminDevice, 0, len(r.s.devices))
	for name, id := range r.s.devices {
		out = append(out, &domain.AdminDevice{ID: id, Username: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
