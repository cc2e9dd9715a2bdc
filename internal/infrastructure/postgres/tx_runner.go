package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/logbook-api/internal/application/logbook"
	"github.com/jhoicas/logbook-api/internal/domain/repository"
)

var _ logbook.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// savepoint abre una subtransacción (SAVEPOINT) para aislar el fallo de un artículo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	logRepo repository.LogEntryRepository,
	itemRepo repository.InventoryItemRepository,
	savepoint logbook.SavepointFunc,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	logRepo := NewLogEntryRepository(tx)
	itemRepo := NewInventoryItemRepository(tx)

	if err := fn(logRepo, itemRepo, savepointOn(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func savepointOn(tx pgx.Tx) logbook.SavepointFunc {
	return func(ctx context.Context, fn func(itemRepo repository.InventoryItemRepository) error) error {
		sp, err := tx.Begin(ctx)
		if err != nil {
			return fmt.Errorf("savepoint: %w", err)
		}
		defer func() { _ = sp.Rollback(ctx) }()

		if err := fn(NewInventoryItemRepository(sp)); err != nil {
			return err
		}
		if err := sp.Commit(ctx); err != nil {
			return fmt.Errorf("release savepoint: %w", err)
		}
		return nil
	}
}
