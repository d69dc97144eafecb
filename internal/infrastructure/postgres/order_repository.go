package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.user_id, o.menu_item_id, o.vendor_id, o.quantity, o.total_price,
	       o.status, o.created_at, o.updated_at,
	       s.username, s.email, s.phone_number, COALESCE(s.matric_number, ''),
	       m.name, m.price, m.image_url,
	       COALESCE(v.vendor_name, ''), v.phone_number
	FROM orders o
	JOIN users s      ON s.id = o.user_id
	JOIN menu_items m ON m.id = o.menu_item_id
	JOIN users v      ON v.id = o.vendor_id`

// OrderRepo implements OrderRepository over PostgreSQL (usable with pool or
// tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the adapter. Pass a pool or a tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persists a new order. total_price and vendor_id are written once
// here and never updated afterwards.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, menu_item_id, vendor_id, quantity, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.UserID, o.MenuItemID, o.VendorID, o.Quantity, o.TotalPrice, string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches one order with its customer, item and vendor columns.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.OrderDetail, error) {
	row := r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id)
	detail, err := scanOrderDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return detail, nil
}

// List returns one page plus the total count. The visibility scope
// (UserID/VendorID) is part of the WHERE clause, so counts never leak rows
// the actor cannot see.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*repository.OrderDetail, int, error) {
	where, args := buildOrderWhere(f)

	var count int
	countQuery := `SELECT COUNT(*)
	FROM orders o
	JOIN users s      ON s.id = o.user_id
	JOIN menu_items m ON m.id = o.menu_item_id
	JOIN users v      ON v.id = o.vendor_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := orderSelect + where + orderClause(f.OrderBy, "o") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*repository.OrderDetail
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, detail)
	}
	return list, count, rows.Err()
}

// UpdateStatus is the atomic compare-and-set transition: the row changes
// only if its status still equals from. A false return means a concurrent
// writer won the race (or the id is gone) — the caller re-validates.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Stats computes the scoped aggregates in one pass. Revenue figures are
// restricted to orders in {ready, completed}.
func (r *OrderRepo) Stats(ctx context.Context, userID, vendorID string) (*repository.OrderStats, error) {
	var conds []string
	var args []any
	if userID != "" {
		args = append(args, userID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if vendorID != "" {
		args = append(args, vendorID)
		conds = append(conds, fmt.Sprintf("vendor_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	query := `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status = 'pending'),
	       COUNT(*) FILTER (WHERE status = 'preparing'),
	       COUNT(*) FILTER (WHERE status = 'ready'),
	       COUNT(*) FILTER (WHERE status = 'completed'),
	       COUNT(*) FILTER (WHERE status = 'cancelled'),
	       COALESCE(SUM(total_price) FILTER (WHERE status IN ('ready', 'completed')), 0),
	       COALESCE(AVG(total_price) FILTER (WHERE status IN ('ready', 'completed')), 0)
	FROM orders` + where

	var s repository.OrderStats
	if err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.TotalOrders, &s.PendingOrders, &s.PreparingOrders, &s.ReadyOrders,
		&s.CompletedOrders, &s.CancelledOrders, &s.TotalRevenue, &s.AvgOrderValue,
	); err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	return &s, nil
}

// Recent returns the scoped orders created since the cutoff, newest first,
// capped at limit.
func (r *OrderRepo) Recent(ctx context.Context, userID, vendorID string, since time.Time, limit int) ([]*repository.OrderDetail, error) {
	args := []any{since}
	conds := []string{"o.created_at >= $1"}
	if userID != "" {
		args = append(args, userID)
		conds = append(conds, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if vendorID != "" {
		args = append(args, vendorID)
		conds = append(conds, fmt.Sprintf("o.vendor_id = $%d", len(args)))
	}
	args = append(args, limit)

	query := orderSelect + " WHERE " + strings.Join(conds, " AND ") +
		fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	defer rows.Close()

	var list []*repository.OrderDetail
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, detail)
	}
	return list, rows.Err()
}

func buildOrderWhere(f repository.OrderFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UserID != "" {
		add("o.user_id = $%d", f.UserID)
	}
	if f.VendorID != "" {
		add("o.vendor_id = $%d", f.VendorID)
	}
	if f.FilterVendorID != "" {
		add("o.vendor_id = $%d", f.FilterVendorID)
	}
	if f.Status != "" {
		add("o.status = $%d", string(f.Status))
	}
	if f.MinTotal != nil {
		add("o.total_price >= $%d", *f.MinTotal)
	}
	if f.MaxTotal != nil {
		add("o.total_price <= $%d", *f.MaxTotal)
	}
	if f.StartDate != nil {
		add("o.created_at::date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("o.created_at::date <= $%d", *f.EndDate)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(s.username ILIKE $%d OR COALESCE(s.matric_number, '') ILIKE $%d OR m.name ILIKE $%d OR COALESCE(v.vendor_name, '') ILIKE $%d)",
			n, n, n, n))
	}
	if f.VendorNameSearch != "" {
		add("COALESCE(v.vendor_name, '') ILIKE $%d", "%"+f.VendorNameSearch+"%")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanOrderDetail(row pgx.Row) (*repository.OrderDetail, error) {
	var d repository.OrderDetail
	var status string
	err := row.Scan(
		&d.ID, &d.UserID, &d.MenuItemID, &d.VendorID, &d.Quantity, &d.TotalPrice,
		&status, &d.CreatedAt, &d.UpdatedAt,
		&d.Username, &d.UserEmail, &d.UserPhone, &d.MatricNumber,
		&d.MenuItemName, &d.MenuItemPrice, &d.MenuItemImageURL,
		&d.VendorName, &d.VendorPhone,
	)
	if err != nil {
		return nil, err
	}
	d.Status = entity.OrderStatus(status)
	return &d, nil
}
