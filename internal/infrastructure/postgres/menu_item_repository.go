package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/turbocafe/turbocafe-api/internal/domain"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

const menuSelect = `
	SELECT m.id, m.name, m.description, m.price, m.image_url, m.available,
	       m.wait_time_low, m.wait_time_high, m.vendor_id, m.created_at, m.updated_at,
	       COALESCE(u.vendor_name, '')
	FROM menu_items m
	JOIN users u ON u.id = m.vendor_id`

// MenuItemRepo implements MenuItemRepository over PostgreSQL (usable with
// pool or tx).
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository builds the adapter. Pass a pool or a tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

// Create persists a new catalog entry. The global name uniqueness surfaces
// as ErrDuplicate.
func (r *MenuItemRepo) Create(ctx context.Context, item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, description, price, image_url, available,
			wait_time_low, wait_time_high, vendor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Price, item.ImageURL, item.Available,
		item.WaitTimeLow, item.WaitTimeHigh, item.VendorID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

// GetByID fetches one item with its vendor's display name.
func (r *MenuItemRepo) GetByID(ctx context.Context, id string) (*repository.MenuItemWithVendor, error) {
	row := r.q.QueryRow(ctx, menuSelect+` WHERE m.id = $1`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

// Update persists the mutable item fields. The owning vendor never changes.
func (r *MenuItemRepo) Update(ctx context.Context, item *entity.MenuItem) error {
	query := `
		UPDATE menu_items SET name = $2, description = $3, price = $4, image_url = $5,
			available = $6, wait_time_low = $7, wait_time_high = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Price, item.ImageURL,
		item.Available, item.WaitTimeLow, item.WaitTimeHigh, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

// Delete removes an item; its orders go with it (FK cascade).
func (r *MenuItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

// List returns one page plus the total count for the filter. The ORDER BY
// key has already been validated against the allow-list upstream.
func (r *MenuItemRepo) List(ctx context.Context, f repository.MenuItemFilter) ([]*repository.MenuItemWithVendor, int, error) {
	where, args := buildMenuWhere(f)

	var count int
	countQuery := `SELECT COUNT(*) FROM menu_items m JOIN users u ON u.id = m.vendor_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count menu items: %w", err)
	}

	query := menuSelect + where + orderClause(f.OrderBy, "m") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var list []*repository.MenuItemWithVendor
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, item)
	}
	return list, count, rows.Err()
}

// Stats aggregates the catalog: the vendor scope splits availability, the
// global scope (vendorID == "") counts distinct vendors instead.
func (r *MenuItemRepo) Stats(ctx context.Context, vendorID string) (*repository.MenuStats, error) {
	var s repository.MenuStats
	if vendorID != "" {
		const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE available),
		       COUNT(*) FILTER (WHERE NOT available),
		       COALESCE(AVG(price), 0)
		FROM menu_items WHERE vendor_id = $1`
		if err := r.q.QueryRow(ctx, query, vendorID).Scan(
			&s.TotalItems, &s.AvailableItems, &s.UnavailableItems, &s.AvgPrice,
		); err != nil {
			return nil, fmt.Errorf("menu stats: %w", err)
		}
		return &s, nil
	}
	const query = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE available),
	       COUNT(DISTINCT vendor_id),
	       COALESCE(AVG(price), 0)
	FROM menu_items`
	if err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalItems, &s.AvailableItems, &s.TotalVendors, &s.AvgPrice,
	); err != nil {
		return nil, fmt.Errorf("menu stats: %w", err)
	}
	return &s, nil
}

func buildMenuWhere(f repository.MenuItemFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Available != nil {
		add("m.available = $%d", *f.Available)
	}
	if f.VendorID != "" {
		add("m.vendor_id = $%d", f.VendorID)
	}
	if f.VendorRole != "" {
		add("u.role = $%d", string(f.VendorRole))
	}
	if f.MinPrice != nil {
		add("m.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("m.price <= $%d", *f.MaxPrice)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(m.name ILIKE $%d OR m.description ILIKE $%d OR u.vendor_name ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause maps an allow-listed sort key ('-' prefix = descending) onto
// an ORDER BY clause for the given table alias.
func orderClause(orderBy, alias string) string {
	key, dir := orderBy, "ASC"
	if strings.HasPrefix(key, "-") {
		key, dir = key[1:], "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s.%s %s", alias, key, dir)
}

func scanMenuItem(row pgx.Row) (*repository.MenuItemWithVendor, error) {
	var m repository.MenuItemWithVendor
	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.ImageURL, &m.Available,
		&m.WaitTimeLow, &m.WaitTimeHigh, &m.VendorID, &m.CreatedAt, &m.UpdatedAt,
		&m.VendorName,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
