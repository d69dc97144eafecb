package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turbocafe/turbocafe-api/internal/application/usecase"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside one PostgreSQL transaction. The order
// engine uses it so the availability re-check and the order insert commit
// or roll back together.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to it, and
// commits — or rolls back when fn errors.
func (r *TxRunner) Run(ctx context.Context, fn func(items repository.MenuItemRepository, orders repository.OrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	items := NewMenuItemRepository(tx)
	orders := NewOrderRepository(tx)

	if err := fn(items, orders); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
