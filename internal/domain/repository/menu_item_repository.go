package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
)

// MenuItemWithVendor is a menu item joined with its vendor's display name
// for read paths.
type MenuItemWithVendor struct {
	entity.MenuItem
	VendorName string
}

// MenuItemFilter drives list/search queries over the catalog. Zero values
// mean "no constraint". OrderBy must be one of the allow-listed sort keys
// (optionally '-'-prefixed for descending); callers validate it before it
// reaches SQL.
type MenuItemFilter struct {
	Available *bool
	// ShowUnavailable lifts the available-only default the shared listings
	// apply when Available is unset. Ignored when Available is explicit.
	ShowUnavailable bool
	VendorID        string
	VendorRole      entity.Role // restrict to items whose owner has this role
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	Search          string // ILIKE over name, description, vendor_name (OR'ed)
	OrderBy         string
	Page            int
	PageSize        int
}

// MenuStats aggregates the catalog. For a vendor scope UnavailableItems is
// populated; for the global scope TotalVendors is.
type MenuStats struct {
	TotalItems       int
	AvailableItems   int
	UnavailableItems int
	TotalVendors     int
	AvgPrice         decimal.Decimal
}

// MenuItemRepository is the persistence port for the catalog. GetByID
// returns (nil, nil) when absent. List returns the page plus the total
// count for the filter.
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id string) (*MenuItemWithVendor, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f MenuItemFilter) ([]*MenuItemWithVendor, int, error)
	Stats(ctx context.Context, vendorID string) (*MenuStats, error)
}
