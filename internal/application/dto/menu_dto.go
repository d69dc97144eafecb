package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMenuItemRequest is the vendor input for a new catalog entry.
// Available defaults to true when omitted.
type CreateMenuItemRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=100"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	Available    *bool           `json:"available"`
	WaitTimeLow  int             `json:"wait_time_low"`
	WaitTimeHigh int             `json:"wait_time_high"`
}

// UpdateMenuItemRequest is a partial update; nil fields are left untouched.
type UpdateMenuItemRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	ImageURL     *string          `json:"image_url"`
	Available    *bool            `json:"available"`
	WaitTimeLow  *int             `json:"wait_time_low"`
	WaitTimeHigh *int             `json:"wait_time_high"`
}

// MenuItemResponse is the read shape of a catalog entry.
type MenuItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url,omitempty"`
	Available    bool            `json:"available"`
	WaitTimeLow  int             `json:"wait_time_low"`
	WaitTimeHigh int             `json:"wait_time_high"`
	VendorID     string          `json:"vendor_id"`
	VendorName   string          `json:"vendor_name"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MenuItemListResponse is a paginated catalog page.
type MenuItemListResponse struct {
	PageMeta
	Results []MenuItemResponse `json:"results"`
}

// MenuStatsResponse mirrors the role-dependent catalog aggregates: vendors
// get their own availability split, everyone else gets the global view with
// the distinct vendor count.
type MenuStatsResponse struct {
	TotalItems       int             `json:"total_items"`
	AvailableItems   int             `json:"available_items"`
	UnavailableItems *int            `json:"unavailable_items,omitempty"`
	TotalVendors     *int            `json:"total_vendors,omitempty"`
	AvgPrice         decimal.Decimal `json:"avg_price"`
}
