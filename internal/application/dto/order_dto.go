package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the student input for placing an order: one menu
// item and a quantity.
type CreateOrderRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=50"`
}

// UpdateOrderStatusRequest carries the requested next status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse is the full read shape of an order. TotalPrice is the frozen
// creation-time value; MenuItemPrice is the item's current unit price.
type OrderResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	MenuItemID    string          `json:"menu_item_id"`
	VendorID      string          `json:"vendor_id"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        string          `json:"status"`
	UserName      string          `json:"user_name"`
	UserEmail     string          `json:"user_email,omitempty"`
	UserPhone     string          `json:"user_phone,omitempty"`
	MatricNumber  string          `json:"matric_number,omitempty"`
	MenuItemName  string          `json:"menu_item_name"`
	MenuItemPrice decimal.Decimal `json:"menu_item_price"`
	MenuItemImage string          `json:"menu_item_image,omitempty"`
	VendorName    string          `json:"vendor_name"`
	VendorPhone   string          `json:"vendor_phone,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderListResponse is a paginated order page.
type OrderListResponse struct {
	PageMeta
	Results []OrderResponse `json:"results"`
}

// OrderStatsResponse are the role-scoped order aggregates. Revenue only
// counts orders in {ready, completed}.
type OrderStatsResponse struct {
	TotalOrders     int             `json:"total_orders"`
	PendingOrders   int             `json:"pending_orders"`
	PreparingOrders int             `json:"preparing_orders"`
	ReadyOrders     int             `json:"ready_orders"`
	CompletedOrders int             `json:"completed_orders"`
	CancelledOrders int             `json:"cancelled_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
}
