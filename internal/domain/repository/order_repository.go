package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
)

// OrderDetail is an order joined with the customer, menu item and vendor
// columns the read paths render. MenuItemPrice is the item's *current*
// price — Order.TotalPrice stays the creation-time snapshot.
type OrderDetail struct {
	entity.Order
	Username         string
	UserEmail        string
	UserPhone        string
	MatricNumber     string
	MenuItemName     string
	MenuItemPrice    decimal.Decimal
	MenuItemImageURL string
	VendorName       string
	VendorPhone      string
}

// OrderFilter drives list/search queries. UserID/VendorID are the actor's
// visibility scope and are always applied inside the query. Date bounds are
// inclusive.
type OrderFilter struct {
	UserID   string // scope: only orders placed by this user
	VendorID string // scope: only orders placed against this vendor
	Status   entity.OrderStatus
	// FilterVendorID is an explicit ?vendor= filter, applied on top of the
	// scope (relevant for admins narrowing the full collection).
	FilterVendorID   string
	MinTotal         *decimal.Decimal
	MaxTotal         *decimal.Decimal
	StartDate        *time.Time
	EndDate          *time.Time
	Search           string // ILIKE over username, matric number, item name, vendor name
	VendorNameSearch string
	OrderBy          string
	Page             int
	PageSize         int
}

// OrderStats are the role-scoped order aggregates. Revenue figures only
// count orders in {ready, completed}.
type OrderStats struct {
	TotalOrders     int
	PendingOrders   int
	PreparingOrders int
	ReadyOrders     int
	CompletedOrders int
	CancelledOrders int
	TotalRevenue    decimal.Decimal
	AvgOrderValue   decimal.Decimal
}

// OrderRepository is the persistence port for orders.
//
// UpdateStatus performs the atomic compare-and-set transition: the row is
// updated only if its status still equals from. It reports false when a
// concurrent writer got there first, so the engine can re-validate against
// the fresh status and fail the loser.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*OrderDetail, error)
	List(ctx context.Context, f OrderFilter) ([]*OrderDetail, int, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error)
	Stats(ctx context.Context, userID, vendorID string) (*OrderStats, error)
	Recent(ctx context.Context, userID, vendorID string, since time.Time, limit int) ([]*OrderDetail, error)
}
