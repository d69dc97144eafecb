package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

// In-memory fakes for the persistence ports. Reads hand out copies so a
// caller holding a result cannot mutate the store behind the repo's back.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.UserProfile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.UserProfile{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeMenuRepo struct {
	mu    sync.Mutex
	items map[string]*repository.MenuItemWithVendor
	// vendorRoles mirrors the users join the SQL repo performs for the
	// VendorRole filter.
	vendorRoles map[string]entity.Role
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{
		items:       map[string]*repository.MenuItemWithVendor{},
		vendorRoles: map[string]entity.Role{},
	}
}

func (r *fakeMenuRepo) setVendorRole(vendorID string, role entity.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vendorRoles[vendorID] = role
}

func (r *fakeMenuRepo) put(item *repository.MenuItemWithVendor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
}

func (r *fakeMenuRepo) Create(_ context.Context, item *entity.MenuItem) error {
	r.put(&repository.MenuItemWithVendor{MenuItem: *item})
	return nil
}

func (r *fakeMenuRepo) GetByID(_ context.Context, id string) (*repository.MenuItemWithVendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeMenuRepo) Update(_ context.Context, item *entity.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[item.ID]
	if !ok {
		return nil
	}
	stored.MenuItem = *item
	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeMenuRepo) List(_ context.Context, f repository.MenuItemFilter) ([]*repository.MenuItemWithVendor, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repository.MenuItemWithVendor
	for _, item := range r.items {
		if f.VendorID != "" && item.VendorID != f.VendorID {
			continue
		}
		if f.Available != nil && item.Available != *f.Available {
			continue
		}
		if f.VendorRole != "" && r.vendorRoles[item.VendorID] != f.VendorRole {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r *fakeMenuRepo) Stats(_ context.Context, vendorID string) (*repository.MenuStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &repository.MenuStats{AvgPrice: decimal.Zero}
	vendors := map[string]bool{}
	sum := decimal.Zero
	for _, item := range r.items {
		if vendorID != "" && item.VendorID != vendorID {
			continue
		}
		s.TotalItems++
		if item.Available {
			s.AvailableItems++
		} else {
			s.UnavailableItems++
		}
		vendors[item.VendorID] = true
		sum = sum.Add(item.Price)
	}
	s.TotalVendors = len(vendors)
	if s.TotalItems > 0 {
		s.AvgPrice = sum.Div(decimal.NewFromInt(int64(s.TotalItems)))
	}
	return s, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*repository.OrderDetail
	// beforeCAS runs at the top of UpdateStatus with the lock held, so a
	// test can emulate a concurrent writer slipping in first.
	beforeCAS func(orders map[string]*repository.OrderDetail)
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*repository.OrderDetail{}}
}

func (r *fakeOrderRepo) put(d *repository.OrderDetail) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.orders[d.ID] = &cp
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.put(&repository.OrderDetail{Order: *o})
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*repository.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*repository.OrderDetail, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repository.OrderDetail
	for _, d := range r.orders {
		if f.UserID != "" && d.UserID != f.UserID {
			continue
		}
		if f.VendorID != "" && d.VendorID != f.VendorID {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beforeCAS != nil {
		hook := r.beforeCAS
		r.beforeCAS = nil
		hook(r.orders)
	}
	d, ok := r.orders[id]
	if !ok || d.Status != from {
		return false, nil
	}
	d.Status = to
	d.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeOrderRepo) Stats(_ context.Context, userID, vendorID string) (*repository.OrderStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &repository.OrderStats{TotalRevenue: decimal.Zero, AvgOrderValue: decimal.Zero}
	revenueOrders := 0
	for _, d := range r.orders {
		if userID != "" && d.UserID != userID {
			continue
		}
		if vendorID != "" && d.VendorID != vendorID {
			continue
		}
		s.TotalOrders++
		switch d.Status {
		case entity.StatusPending:
			s.PendingOrders++
		case entity.StatusPreparing:
			s.PreparingOrders++
		case entity.StatusReady:
			s.ReadyOrders++
		case entity.StatusCompleted:
			s.CompletedOrders++
		case entity.StatusCancelled:
			s.CancelledOrders++
		}
		if d.Status == entity.StatusReady || d.Status == entity.StatusCompleted {
			s.TotalRevenue = s.TotalRevenue.Add(d.TotalPrice)
			revenueOrders++
		}
	}
	if revenueOrders > 0 {
		s.AvgOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(revenueOrders)))
	}
	return s, nil
}

func (r *fakeOrderRepo) Recent(_ context.Context, userID, vendorID string, since time.Time, limit int) ([]*repository.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repository.OrderDetail
	for _, d := range r.orders {
		if userID != "" && d.UserID != userID {
			continue
		}
		if vendorID != "" && d.VendorID != vendorID {
			continue
		}
		if d.CreatedAt.Before(since) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeTxRunner hands the same fakes to the callback; there is no real
// transaction to roll back.
type fakeTxRunner struct {
	items  *fakeMenuRepo
	orders *fakeOrderRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(items repository.MenuItemRepository, orders repository.OrderRepository) error) error {
	return fn(r.items, r.orders)
}

// fakeReceipts returns a fixed payload so the handler path can be asserted
// without rendering a real document.
type fakeReceipts struct{}

func (fakeReceipts) GenerateOrderReceipt(_ context.Context, _ *repository.OrderDetail) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}
