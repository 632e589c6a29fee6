package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID      map[string]*domain.Product
	seq       int
	lastPatch ports.ProductPatch
	createErr error
}

func newStubProductRepo(seed ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{byID: make(map[string]*domain.Product)}
	for _, p := range seed {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func validID(id string) bool { return !strings.HasPrefix(id, "bad") }

func (r *stubProductRepo) List(_ context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for _, p := range r.byID {
		if f.Category != "" && !strings.Contains(strings.ToLower(p.Category), strings.ToLower(f.Category)) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("p%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	r.lastPatch = patch
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.IsFlashSale != nil {
		p.IsFlashSale = *patch.IsFlashSale
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if !validID(id) {
		return domain.ErrInvalidID
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubCategoryRepo struct {
	items []*domain.Category
}

func (r *stubCategoryRepo) List(context.Context) ([]*domain.Category, error) {
	return r.items, nil
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	clone := *c
	clone.ID = fmt.Sprintf("c%d", len(r.items)+1)
	r.items = append(r.items, &clone)
	return &clone, nil
}

type stubOrderRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Order
	seq       int
	createErr error
	// beforeUpdate runs inside UpdateStatus to simulate a concurrent writer.
	beforeUpdate func(o *domain.Order)
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *o
	clone.ID = fmt.Sprintf("o%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, email string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Order{}
	for _, o := range r.byID {
		if email != "" && o.UserEmail != email {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus, at time.Time) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if r.beforeUpdate != nil {
		r.beforeUpdate(o)
	}
	if o.Status != from {
		return nil, fmt.Errorf("%w: order is no longer %s", domain.ErrInvalidTransition, from)
	}
	o.Status = to
	o.UpdatedAt = at
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.byID, id)
	return nil
}

// stubIdem holds reserved keys; an empty value marks a reservation whose
// order is not stored yet.
type stubIdem struct {
	mu          sync.Mutex
	keys        map[string]string
	reserveErr  error
	completeErr error
}

func newStubIdem() *stubIdem { return &stubIdem{keys: make(map[string]string)} }

func (s *stubIdem) Reserve(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	if id, held := s.keys[key]; held {
		return id, false, nil
	}
	s.keys[key] = ""
	return "", true, nil
}

func (s *stubIdem) Complete(_ context.Context, key, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completeErr != nil {
		return s.completeErr
	}
	s.keys[key] = orderID
	return nil
}

func (s *stubIdem) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func (s *stubIdem) held(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[key]
	return id, ok
}

var errRedisDown = errors.New("redis down")
