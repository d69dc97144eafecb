package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents a purchasable catalog entry owned by exactly one
// vendor. Ownership is exclusive and non-transferable. Name is unique across
// the whole system. An unavailable item cannot be ordered.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // currency precision, must be > 0
	ImageURL    string          // media store handle, never the bytes
	Available   bool
	// Wait time bounds in minutes. Invariant: 0 <= WaitTimeLow <= WaitTimeHigh.
	WaitTimeLow  int
	WaitTimeHigh int
	VendorID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
