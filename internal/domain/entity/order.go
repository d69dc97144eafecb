package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// transitions is the full state machine. Terminal states map to an empty set.
//
//	pending → preparing | cancelled
//	preparing → ready | cancelled
//	ready → completed | cancelled
//	completed, cancelled → (terminal)
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether s → next is an allowed transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a student's purchase request for one menu item and a quantity.
//
// VendorID is a snapshot of the menu item's owning vendor taken at creation
// time — an intentional historical-accuracy denormalization, not a live
// reference. TotalPrice is item price × quantity at creation and is frozen:
// later price edits to the menu item never touch existing orders.
type Order struct {
	ID         string
	UserID     string // placing student
	MenuItemID string
	VendorID   string // vendor snapshot, immutable
	Quantity   int    // 1..50
	TotalPrice decimal.Decimal // frozen at creation
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Order quantity bounds per order.
const (
	MinOrderQuantity = 1
	MaxOrderQuantity = 50
)

// ValidQuantity reports whether q is inside the allowed per-order range.
func ValidQuantity(q int) bool {
	return q >= MinOrderQuantity && q <= MaxOrderQuantity
}
