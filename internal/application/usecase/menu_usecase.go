package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
	"github.com/turbocafe/turbocafe-api/internal/domain"
	"github.com/turbocafe/turbocafe-api/internal/domain/authz"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

// Sort key allow-lists. A requested ordering outside the list falls back to
// the default instead of erroring.
var (
	menuOrderings = map[string]bool{
		"name": true, "price": true, "created_at": true,
	}
	vendorMenuOrderings = map[string]bool{
		"name": true, "price": true, "created_at": true, "available": true,
	}
)

const defaultMenuOrdering = "name"

// MenuUseCase implements the catalog operations: vendor-owned CRUD, the
// availability toggle, and the shared list/search/stats queries.
type MenuUseCase struct {
	items repository.MenuItemRepository
	users repository.UserRepository
}

// NewMenuUseCase builds the use case.
func NewMenuUseCase(items repository.MenuItemRepository, users repository.UserRepository) *MenuUseCase {
	return &MenuUseCase{items: items, users: users}
}

// Create adds a catalog entry owned by the acting vendor. Only vendors may
// create; name uniqueness is global and surfaces as ErrDuplicate.
func (uc *MenuUseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if !authz.CanManageMenu(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrValidation
	}
	if err := validateMenuFields(in.Price, in.WaitTimeLow, in.WaitTimeHigh); err != nil {
		return nil, err
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	now := time.Now()
	item := &entity.MenuItem{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		Available:    available,
		WaitTimeLow:  in.WaitTimeLow,
		WaitTimeHigh: in.WaitTimeHigh,
		VendorID:     actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	vendorName := ""
	if vendor, err := uc.users.GetByID(ctx, actor.ID); err == nil && vendor != nil {
		vendorName = vendor.VendorName
	}
	return toMenuItemResponse(&repository.MenuItemWithVendor{MenuItem: *item, VendorName: vendorName}), nil
}

// GetByID returns one catalog entry. Readable by any authenticated actor.
func (uc *MenuUseCase) GetByID(ctx context.Context, _ authz.Actor, id string) (*dto.MenuItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toMenuItemResponse(item), nil
}

// Update patches an item. A caller who does not own the item gets
// ErrNotFound, indistinguishable from an absent id.
func (uc *MenuUseCase) Update(ctx context.Context, actor authz.Actor, id string, in dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := uc.ownedItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrValidation
		}
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.WaitTimeLow != nil {
		item.WaitTimeLow = *in.WaitTimeLow
	}
	if in.WaitTimeHigh != nil {
		item.WaitTimeHigh = *in.WaitTimeHigh
	}
	if err := validateMenuFields(item.Price, item.WaitTimeLow, item.WaitTimeHigh); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.items.Update(ctx, &item.MenuItem); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// Delete removes an item; owner only, cascade removes its orders at the DB.
func (uc *MenuUseCase) Delete(ctx context.Context, actor authz.Actor, id string) error {
	item, err := uc.ownedItem(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.items.Delete(ctx, item.ID)
}

// ToggleAvailability flips the availability flag. Toggling twice is a no-op.
func (uc *MenuUseCase) ToggleAvailability(ctx context.Context, actor authz.Actor, id string) (*dto.MenuItemResponse, error) {
	item, err := uc.ownedItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	item.Available = !item.Available
	item.UpdatedAt = time.Now()
	if err := uc.items.Update(ctx, &item.MenuItem); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// List returns a filtered/ordered/paginated catalog page for any
// authenticated actor. The handler has already resolved the lenient query
// parsing; this applies the ordering allow-list. Unless the caller asks for
// a specific availability or sets ShowUnavailable, the listing only returns
// available items.
func (uc *MenuUseCase) List(ctx context.Context, _ authz.Actor, f repository.MenuItemFilter, page dto.PageRequest) (*dto.MenuItemListResponse, error) {
	page.Normalize()
	f.Page, f.PageSize = page.Page, page.PageSize
	if f.Available == nil && !f.ShowUnavailable {
		available := true
		f.Available = &available
	}
	f.OrderBy = sanitizeOrdering(f.OrderBy, menuOrderings, defaultMenuOrdering)
	return uc.list(ctx, f, page)
}

// VendorList returns the acting vendor's own catalog, unavailable items
// included.
func (uc *MenuUseCase) VendorList(ctx context.Context, actor authz.Actor, f repository.MenuItemFilter, page dto.PageRequest) (*dto.MenuItemListResponse, error) {
	if !authz.CanManageMenu(actor) {
		return nil, domain.ErrForbidden
	}
	page.Normalize()
	f.Page, f.PageSize = page.Page, page.PageSize
	f.VendorID = actor.ID
	f.Available = nil
	f.OrderBy = sanitizeOrdering(f.OrderBy, vendorMenuOrderings, defaultMenuOrdering)
	return uc.list(ctx, f, page)
}

// Stats returns catalog aggregates: vendors get their own availability
// split, everyone else the global view with a distinct vendor count.
func (uc *MenuUseCase) Stats(ctx context.Context, actor authz.Actor) (*dto.MenuStatsResponse, error) {
	vendorID := ""
	if actor.Role == entity.RoleVendor {
		vendorID = actor.ID
	}
	stats, err := uc.items.Stats(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := &dto.MenuStatsResponse{
		TotalItems:     stats.TotalItems,
		AvailableItems: stats.AvailableItems,
		AvgPrice:       stats.AvgPrice,
	}
	if vendorID != "" {
		unavailable := stats.UnavailableItems
		out.UnavailableItems = &unavailable
	} else {
		vendors := stats.TotalVendors
		out.TotalVendors = &vendors
	}
	return out, nil
}

func (uc *MenuUseCase) list(ctx context.Context, f repository.MenuItemFilter, page dto.PageRequest) (*dto.MenuItemListResponse, error) {
	items, count, err := uc.items.List(ctx, f)
	if err != nil {
		return nil, err
	}
	results := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		results = append(results, *toMenuItemResponse(item))
	}
	return &dto.MenuItemListResponse{
		PageMeta: dto.NewPageMeta(count, page.Page, page.PageSize),
		Results:  results,
	}, nil
}

// ownedItem loads an item scoped to the acting vendor. Absent and
// not-owned are both ErrNotFound so existence does not leak.
func (uc *MenuUseCase) ownedItem(ctx context.Context, actor authz.Actor, id string) (*repository.MenuItemWithVendor, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || !authz.OwnsMenuItem(actor, &item.MenuItem) {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func validateMenuFields(price decimal.Decimal, waitLow, waitHigh int) error {
	if !price.IsPositive() {
		return domain.ErrValidation
	}
	if waitLow < 0 || waitHigh < 0 || waitLow > waitHigh {
		return domain.ErrValidation
	}
	return nil
}

// sanitizeOrdering keeps a requested sort key only when allow-listed
// (ignoring a '-' descending prefix); anything else falls back to def.
func sanitizeOrdering(requested string, allowed map[string]bool, def string) string {
	if requested == "" {
		return def
	}
	key := requested
	if key[0] == '-' {
		key = key[1:]
	}
	if allowed[key] {
		return requested
	}
	return def
}

func toMenuItemResponse(m *repository.MenuItemWithVendor) *dto.MenuItemResponse {
	return &dto.MenuItemResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		ImageURL:     m.ImageURL,
		Available:    m.Available,
		WaitTimeLow:  m.WaitTimeLow,
		WaitTimeHigh: m.WaitTimeHigh,
		VendorID:     m.VendorID,
		VendorName:   m.VendorName,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
