package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
	"github.com/turbocafe/turbocafe-api/internal/application/usecase"
	"github.com/turbocafe/turbocafe-api/internal/domain"
	"github.com/turbocafe/turbocafe-api/internal/domain/authz"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

var (
	studentActor = authz.Actor{ID: "student-1", Role: entity.RoleStudent}
	vendorActor  = authz.Actor{ID: "vendor-1", Role: entity.RoleVendor}
	adminActor   = authz.Actor{ID: "admin-1", Role: entity.RoleAdmin}
)

type orderEnv struct {
	uc     *usecase.OrderUseCase
	items  *fakeMenuRepo
	orders *fakeOrderRepo
}

func newOrderEnv() *orderEnv {
	items := newFakeMenuRepo()
	orders := newFakeOrderRepo()
	tx := &fakeTxRunner{items: items, orders: orders}
	return &orderEnv{
		uc:     usecase.NewOrderUseCase(orders, items, tx, fakeReceipts{}),
		items:  items,
		orders: orders,
	}
}

func (e *orderEnv) seedItem(id string, price string, available bool) {
	e.items.put(&repository.MenuItemWithVendor{
		MenuItem: entity.MenuItem{
			ID:        id,
			Name:      "Jollof Rice " + id,
			Price:     decimal.RequireFromString(price),
			Available: available,
			VendorID:  vendorActor.ID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		VendorName: "Mama Put",
	})
}

func (e *orderEnv) seedOrder(id, userID, vendorID string, status entity.OrderStatus, total string, createdAt time.Time) {
	e.orders.put(&repository.OrderDetail{
		Order: entity.Order{
			ID:         id,
			UserID:     userID,
			MenuItemID: "item-1",
			VendorID:   vendorID,
			Quantity:   1,
			TotalPrice: decimal.RequireFromString(total),
			Status:     status,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		},
	})
}

func TestCreateOrderFreezesTotal(t *testing.T) {
	env := newOrderEnv()
	env.seedItem("item-1", "10.50", true)

	out, err := env.uc.Create(context.Background(), studentActor, dto.CreateOrderRequest{
		MenuItemID: "item-1",
		Quantity:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, "31.50", out.TotalPrice.StringFixed(2))
	assert.Equal(t, string(entity.StatusPending), out.Status)
	assert.Equal(t, studentActor.ID, out.UserID)
	assert.Equal(t, vendorActor.ID, out.VendorID, "vendor snapshot taken from the item")

	// A later price change must not move the stored total.
	item, _ := env.items.GetByID(context.Background(), "item-1")
	item.Price = decimal.RequireFromString("99.99")
	require.NoError(t, env.items.Update(context.Background(), &item.MenuItem))

	got, err := env.uc.GetByID(context.Background(), studentActor, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "31.50", got.TotalPrice.StringFixed(2))
}

func TestCreateOrderQuantityBounds(t *testing.T) {
	env := newOrderEnv()
	env.seedItem("item-1", "5.00", true)

	for _, q := range []int{0, -1, 51} {
		_, err := env.uc.Create(context.Background(), studentActor, dto.CreateOrderRequest{MenuItemID: "item-1", Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "quantity %d", q)
	}
	for _, q := range []int{1, 50} {
		out, err := env.uc.Create(context.Background(), studentActor, dto.CreateOrderRequest{MenuItemID: "item-1", Quantity: q})
		require.NoError(t, err, "quantity %d", q)
		assert.Equal(t, q, out.Quantity)
	}
}

func TestCreateOrderRejections(t *testing.T) {
	env := newOrderEnv()
	env.seedItem("item-1", "5.00", true)
	env.seedItem("item-2", "5.00", false)

	_, err := env.uc.Create(context.Background(), vendorActor, dto.CreateOrderRequest{MenuItemID: "item-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden, "vendors do not place orders")

	_, err = env.uc.Create(context.Background(), adminActor, dto.CreateOrderRequest{MenuItemID: "item-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden, "admins do not place orders")

	_, err = env.uc.Create(context.Background(), studentActor, dto.CreateOrderRequest{MenuItemID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.uc.Create(context.Background(), studentActor, dto.CreateOrderRequest{MenuItemID: "item-2", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestUpdateStatusFullLifecycle(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", time.Now())

	for _, next := range []entity.OrderStatus{entity.StatusPreparing, entity.StatusReady, entity.StatusCompleted} {
		out, err := env.uc.UpdateStatus(context.Background(), vendorActor, "o-1", string(next))
		require.NoError(t, err, "advance to %s", next)
		assert.Equal(t, string(next), out.Status)
	}

	// Terminal: nothing moves a completed order.
	_, err := env.uc.UpdateStatus(context.Background(), vendorActor, "o-1", string(entity.StatusCancelled))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, string(entity.StatusCompleted), te.From)
}

func TestUpdateStatusSkipRejected(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", time.Now())

	_, err := env.uc.UpdateStatus(context.Background(), vendorActor, "o-1", string(entity.StatusReady))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending cannot skip to ready")

	_, err = env.uc.UpdateStatus(context.Background(), vendorActor, "o-1", "delivered")
	assert.ErrorIs(t, err, domain.ErrValidation, "unknown status is a validation error")
}

func TestUpdateStatusAuthorization(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", time.Now())

	// The owner can see the order but not drive the vendor machine.
	_, err := env.uc.UpdateStatus(context.Background(), studentActor, "o-1", string(entity.StatusPreparing))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admins can see everything but do not run kitchens either.
	_, err = env.uc.UpdateStatus(context.Background(), adminActor, "o-1", string(entity.StatusPreparing))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Another vendor cannot even learn the order exists.
	otherVendor := authz.Actor{ID: "vendor-2", Role: entity.RoleVendor}
	_, err = env.uc.UpdateStatus(context.Background(), otherVendor, "o-1", string(entity.StatusPreparing))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatusLosesRace(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", time.Now())

	// A concurrent cancel lands between the read and the write.
	env.orders.beforeCAS = func(orders map[string]*repository.OrderDetail) {
		orders["o-1"].Status = entity.StatusCancelled
	}

	_, err := env.uc.UpdateStatus(context.Background(), vendorActor, "o-1", string(entity.StatusPreparing))
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, string(entity.StatusCancelled), te.From, "loser reports the winner's status")
	assert.Equal(t, string(entity.StatusPreparing), te.To)

	got, err := env.uc.GetByID(context.Background(), vendorActor, "o-1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusCancelled), got.Status, "winner's write survives")
}

func TestCancelByOwner(t *testing.T) {
	env := newOrderEnv()
	for i, status := range []entity.OrderStatus{entity.StatusPending, entity.StatusPreparing, entity.StatusReady} {
		id := fmt.Sprintf("o-%d", i)
		env.seedOrder(id, studentActor.ID, vendorActor.ID, status, "10.00", time.Now())
		out, err := env.uc.Cancel(context.Background(), studentActor, id)
		require.NoError(t, err, "cancel from %s", status)
		assert.Equal(t, string(entity.StatusCancelled), out.Status)
	}
}

func TestCancelRejections(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusCompleted, "10.00", time.Now())
	env.seedOrder("o-2", studentActor.ID, vendorActor.ID, entity.StatusCancelled, "10.00", time.Now())
	env.seedOrder("o-3", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", time.Now())

	_, err := env.uc.Cancel(context.Background(), studentActor, "o-1")
	assert.ErrorIs(t, err, domain.ErrNotCancellable)
	_, err = env.uc.Cancel(context.Background(), studentActor, "o-2")
	assert.ErrorIs(t, err, domain.ErrNotCancellable)

	// The vendor can view the order but cancellation belongs to the owner.
	_, err = env.uc.Cancel(context.Background(), vendorActor, "o-3")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// A stranger cannot learn the order exists.
	otherStudent := authz.Actor{ID: "student-2", Role: entity.RoleStudent}
	_, err = env.uc.Cancel(context.Background(), otherStudent, "o-3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelRetriesAfterLostRace(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", time.Now())

	// The vendor advances to preparing first; the cancel retries from there.
	env.orders.beforeCAS = func(orders map[string]*repository.OrderDetail) {
		orders["o-1"].Status = entity.StatusPreparing
	}
	out, err := env.uc.Cancel(context.Background(), studentActor, "o-1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusCancelled), out.Status)
}

func TestCancelLosesToCompletion(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusReady, "10.00", time.Now())

	env.orders.beforeCAS = func(orders map[string]*repository.OrderDetail) {
		orders["o-1"].Status = entity.StatusCompleted
	}
	_, err := env.uc.Cancel(context.Background(), studentActor, "o-1")
	assert.ErrorIs(t, err, domain.ErrNotCancellable)
}

func TestGetByIDVisibility(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", time.Now())

	for _, actor := range []authz.Actor{studentActor, vendorActor, adminActor} {
		out, err := env.uc.GetByID(context.Background(), actor, "o-1")
		require.NoError(t, err, "actor %s", actor.ID)
		assert.Equal(t, "o-1", out.ID)
	}

	stranger := authz.Actor{ID: "student-2", Role: entity.RoleStudent}
	_, err := env.uc.GetByID(context.Background(), stranger, "o-1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "invisible and absent look identical")
	_, err = env.uc.GetByID(context.Background(), studentActor, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListScoping(t *testing.T) {
	env := newOrderEnv()
	now := time.Now()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", now)
	env.seedOrder("o-2", "student-2", vendorActor.ID, entity.StatusPending, "10.00", now.Add(-time.Hour))
	env.seedOrder("o-3", studentActor.ID, "vendor-2", entity.StatusPending, "10.00", now.Add(-2*time.Hour))

	out, err := env.uc.List(context.Background(), studentActor, repository.OrderFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count, "student sees only own orders")

	out, err = env.uc.List(context.Background(), vendorActor, repository.OrderFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count, "vendor sees only orders placed against it")

	out, err = env.uc.List(context.Background(), adminActor, repository.OrderFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Count, "admin sees everything")
}

func TestRoleScopedListEndpoints(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", time.Now())

	_, err := env.uc.StudentOrders(context.Background(), vendorActor, repository.OrderFilter{}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = env.uc.VendorOrders(context.Background(), studentActor, repository.OrderFilter{}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mine, err := env.uc.StudentOrders(context.Background(), studentActor, repository.OrderFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Count)

	theirs, err := env.uc.VendorOrders(context.Background(), vendorActor, repository.OrderFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, theirs.Count)
}

func TestStatsRevenueOnlyReadyAndCompleted(t *testing.T) {
	env := newOrderEnv()
	now := time.Now()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", now)
	env.seedOrder("o-2", studentActor.ID, vendorActor.ID, entity.StatusPreparing, "15.00", now)
	env.seedOrder("o-3", studentActor.ID, vendorActor.ID, entity.StatusReady, "20.00", now)
	env.seedOrder("o-4", studentActor.ID, vendorActor.ID, entity.StatusCompleted, "30.00", now)
	env.seedOrder("o-5", studentActor.ID, vendorActor.ID, entity.StatusCancelled, "40.00", now)

	out, err := env.uc.Stats(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Equal(t, 5, out.TotalOrders)
	assert.Equal(t, 1, out.PendingOrders)
	assert.Equal(t, 1, out.PreparingOrders)
	assert.Equal(t, 1, out.ReadyOrders)
	assert.Equal(t, 1, out.CompletedOrders)
	assert.Equal(t, 1, out.CancelledOrders)
	assert.Equal(t, "50.00", out.TotalRevenue.StringFixed(2))
	assert.Equal(t, "25.00", out.AvgOrderValue.StringFixed(2))
}

func TestRecentWindowAndOrdering(t *testing.T) {
	env := newOrderEnv()
	now := time.Now()
	env.seedOrder("o-old", studentActor.ID, vendorActor.ID, entity.StatusCompleted, "10.00", now.Add(-8*24*time.Hour))
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", now.Add(-2*time.Hour))
	env.seedOrder("o-2", studentActor.ID, vendorActor.ID, entity.StatusPending, "10.00", now.Add(-time.Hour))

	out, err := env.uc.Recent(context.Background(), studentActor)
	require.NoError(t, err)
	require.Len(t, out, 2, "orders older than 7 days drop out")
	assert.Equal(t, "o-2", out[0].ID, "newest first")
	assert.Equal(t, "o-1", out[1].ID)
}

func TestReceiptVisibility(t *testing.T) {
	env := newOrderEnv()
	env.seedOrder("o-1", studentActor.ID, vendorActor.ID, entity.StatusCompleted, "10.00", time.Now())

	pdf, err := env.uc.Receipt(context.Background(), studentActor, "o-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	stranger := authz.Actor{ID: "student-2", Role: entity.RoleStudent}
	_, err = env.uc.Receipt(context.Background(), stranger, "o-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransitionErrorUnwraps(t *testing.T) {
	err := error(&domain.TransitionError{From: "pending", To: "ready"})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "ready")
}
