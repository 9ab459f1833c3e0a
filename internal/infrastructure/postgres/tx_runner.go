package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budoverein/dojokasse/internal/application/billing"
	appsepa "github.com/budoverein/dojokasse/internal/application/sepa"
	"github.com/budoverein/dojokasse/internal/domain/repository"
)

var (
	_ billing.BillingTxRunner = (*TxRunner)(nil)
	_ appsepa.SepaTxRunner    = (*TxRunner)(nil)
)

// TxRunner führt Use-Case-Callbacks in einer PostgreSQL-Transaktion aus.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner baut den Runner mit dem Pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling: Transaktion für Nummernvergabe + Rechnungsanlage.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSepa: Transaktion für Lauf + eingefrorene Posten.
func (r *TxRunner) RunSepa(ctx context.Context, fn func(batchRepo repository.BatchRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBatchRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
