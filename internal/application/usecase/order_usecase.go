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

var orderOrderings = map[string]bool{
	"created_at": true, "total_price": true, "status": true, "quantity": true,
}

const defaultOrderOrdering = "-created_at"

// Recent-orders window and cap.
const (
	recentWindow = 7 * 24 * time.Hour
	recentLimit  = 10
)

// TxRunner runs a callback with repositories bound to one database
// transaction, so order creation can re-check item availability and insert
// atomically.
type TxRunner interface {
	Run(ctx context.Context, fn func(items repository.MenuItemRepository, orders repository.OrderRepository) error) error
}

// ReceiptGenerator renders an order receipt document.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *repository.OrderDetail) ([]byte, error)
}

// OrderUseCase is the order engine: creation against the catalog, the
// status state machine, owner cancellation, and the role-scoped queries and
// aggregates.
type OrderUseCase struct {
	orders   repository.OrderRepository
	items    repository.MenuItemRepository
	tx       TxRunner
	receipts ReceiptGenerator
}

// NewOrderUseCase builds the engine.
func NewOrderUseCase(orders repository.OrderRepository, items repository.MenuItemRepository, tx TxRunner, receipts ReceiptGenerator) *OrderUseCase {
	return &OrderUseCase{orders: orders, items: items, tx: tx, receipts: receipts}
}

// Create places an order: students only, quantity in [1,50], item must
// exist and be available. The total is price × quantity in exact decimal
// arithmetic, computed once and frozen. The availability re-check and the
// insert run in one transaction so a concurrent toggle cannot slip through.
// The menu item itself is never mutated (no stock decrement).
func (uc *OrderUseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !authz.CanPlaceOrder(actor) {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidQuantity(in.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}

	var orderID string
	err := uc.tx.Run(ctx, func(items repository.MenuItemRepository, orders repository.OrderRepository) error {
		item, err := items.GetByID(ctx, in.MenuItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.Available {
			return domain.ErrItemUnavailable
		}
		now := time.Now()
		order := &entity.Order{
			ID:         uuid.New().String(),
			UserID:     actor.ID,
			MenuItemID: item.ID,
			VendorID:   item.VendorID, // vendor snapshot, frozen from here on
			Quantity:   in.Quantity,
			TotalPrice: item.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Status:     entity.StatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(detail), nil
}

// GetByID returns one order for its owner, its vendor or an admin. Anyone
// else gets ErrNotFound, indistinguishable from an absent id.
func (uc *OrderUseCase) GetByID(ctx context.Context, actor authz.Actor, id string) (*dto.OrderResponse, error) {
	detail, err := uc.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(detail), nil
}

// UpdateStatus drives the vendor side of the state machine. The write is a
// compare-and-set against the status the validation saw; when a concurrent
// transition wins the race, the loser fails with a TransitionError built
// from the fresh status.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor authz.Actor, id, requested string) (*dto.OrderResponse, error) {
	next := entity.OrderStatus(requested)
	if !next.Valid() {
		return nil, domain.ErrValidation
	}
	detail, err := uc.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAdvanceOrder(actor, &detail.Order) {
		return nil, domain.ErrForbidden
	}
	if !detail.Status.CanTransitionTo(next) {
		return nil, &domain.TransitionError{From: string(detail.Status), To: string(next)}
	}
	updated, err := uc.orders.UpdateStatus(ctx, id, detail.Status, next)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race: report against the status the winner left behind.
		fresh, err := uc.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.TransitionError{From: string(fresh.Status), To: string(next)}
	}
	return uc.GetByID(ctx, actor, id)
}

// Cancel is the owner-driven transition to cancelled, allowed while the
// order is not terminal. A cancel that races a vendor transition retries
// once against the fresh status before giving up.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor authz.Actor, id string) (*dto.OrderResponse, error) {
	detail, err := uc.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanCancelOrder(actor, &detail.Order) {
		return nil, domain.ErrForbidden
	}
	current := detail.Status
	for attempt := 0; attempt < 2; attempt++ {
		if current.Terminal() {
			return nil, domain.ErrNotCancellable
		}
		updated, err := uc.orders.UpdateStatus(ctx, id, current, entity.StatusCancelled)
		if err != nil {
			return nil, err
		}
		if updated {
			return uc.GetByID(ctx, actor, id)
		}
		fresh, err := uc.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, domain.ErrNotFound
		}
		current = fresh.Status
	}
	return nil, domain.ErrNotCancellable
}

// List returns the actor-scoped order collection: admins see all, students
// their own, vendors the orders placed against them. The scope is part of
// the SQL predicate, never a post-filter.
func (uc *OrderUseCase) List(ctx context.Context, actor authz.Actor, f repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	f.UserID, f.VendorID = authz.ListScope(actor)
	return uc.list(ctx, f, page)
}

// StudentOrders lists the acting student's own orders.
func (uc *OrderUseCase) StudentOrders(ctx context.Context, actor authz.Actor, f repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if actor.Role != entity.RoleStudent {
		return nil, domain.ErrForbidden
	}
	f.UserID, f.VendorID = actor.ID, ""
	return uc.list(ctx, f, page)
}

// VendorOrders lists the orders placed against the acting vendor.
func (uc *OrderUseCase) VendorOrders(ctx context.Context, actor authz.Actor, f repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if actor.Role != entity.RoleVendor {
		return nil, domain.ErrForbidden
	}
	f.UserID, f.VendorID = "", actor.ID
	return uc.list(ctx, f, page)
}

// Stats returns the role-scoped aggregates. Revenue (sum and average of
// total_price) only counts orders in {ready, completed}; pending and
// cancelled orders never contribute.
func (uc *OrderUseCase) Stats(ctx context.Context, actor authz.Actor) (*dto.OrderStatsResponse, error) {
	userID, vendorID := authz.ListScope(actor)
	stats, err := uc.orders.Stats(ctx, userID, vendorID)
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatsResponse{
		TotalOrders:     stats.TotalOrders,
		PendingOrders:   stats.PendingOrders,
		PreparingOrders: stats.PreparingOrders,
		ReadyOrders:     stats.ReadyOrders,
		CompletedOrders: stats.CompletedOrders,
		CancelledOrders: stats.CancelledOrders,
		TotalRevenue:    stats.TotalRevenue,
		AvgOrderValue:   stats.AvgOrderValue,
	}, nil
}

// Recent returns the actor's orders from the last 7 days, newest first,
// capped at 10.
func (uc *OrderUseCase) Recent(ctx context.Context, actor authz.Actor) ([]dto.OrderResponse, error) {
	userID, vendorID := authz.ListScope(actor)
	since := time.Now().Add(-recentWindow)
	details, err := uc.orders.Recent(ctx, userID, vendorID, since, recentLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(details))
	for _, d := range details {
		out = append(out, *toOrderResponse(d))
	}
	return out, nil
}

// Receipt renders a PDF receipt for an order the actor can view.
func (uc *OrderUseCase) Receipt(ctx context.Context, actor authz.Actor, id string) ([]byte, error) {
	detail, err := uc.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return uc.receipts.GenerateOrderReceipt(ctx, detail)
}

func (uc *OrderUseCase) list(ctx context.Context, f repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.Normalize()
	f.Page, f.PageSize = page.Page, page.PageSize
	f.OrderBy = sanitizeOrdering(f.OrderBy, orderOrderings, defaultOrderOrdering)
	details, count, err := uc.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	results := make([]dto.OrderResponse, 0, len(details))
	for _, d := range details {
		results = append(results, *toOrderResponse(d))
	}
	return &dto.OrderListResponse{
		PageMeta: dto.NewPageMeta(count, page.Page, page.PageSize),
		Results:  results,
	}, nil
}

// visibleOrder loads an order the actor may read. Absent and invisible are
// both ErrNotFound so existence does not leak.
func (uc *OrderUseCase) visibleOrder(ctx context.Context, actor authz.Actor, id string) (*repository.OrderDetail, error) {
	detail, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil || !authz.CanViewOrder(actor, &detail.Order) {
		return nil, domain.ErrNotFound
	}
	return detail, nil
}

func toOrderResponse(d *repository.OrderDetail) *dto.OrderResponse {
	if d == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		MenuItemID:    d.MenuItemID,
		VendorID:      d.VendorID,
		Quantity:      d.Quantity,
		TotalPrice:    d.TotalPrice,
		Status:        string(d.Status),
		UserName:      d.Username,
		UserEmail:     d.UserEmail,
		UserPhone:     d.UserPhone,
		MatricNumber:  d.MatricNumber,
		MenuItemName:  d.MenuItemName,
		MenuItemPrice: d.MenuItemPrice,
		MenuItemImage: d.MenuItemImageURL,
		VendorName:    d.VendorName,
		VendorPhone:   d.VendorPhone,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
