package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/budoverein/dojokasse/internal/domain"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo: Persistenz-Adapter für Lastschriftläufe (Pool oder Tx).
// Create gehört in den Tx-Runner: Lauf und Posten entstehen atomar.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository baut den Adapter.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `
	id, dojo_id, referenz, erstellt, einzugsdatum, anzahl_posten, gesamtbetrag,
	status, created_at, updated_at`

func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch, txs []entity.BatchTransaction) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.DojoID, b.Referenz, b.Erstellt, b.Einzugsdatum, b.AnzahlPosten,
		b.Gesamtbetrag, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}

	// pos hält die Einfügereihenfolge fest; der pain.008-Export liest die
	// Posten in genau dieser Reihenfolge (byte-stabile Regeneration).
	txQuery := `
		INSERT INTO batch_transactions (id, batch_id, pos, member_id, zahlername, iban,
			betrag, mandats_referenz, mandats_datum, verwendungszweck)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, t := range txs {
		if _, err := r.q.Exec(ctx, txQuery,
			t.ID, t.BatchID, i, t.MemberID, t.Zahlername, t.IBAN,
			t.Betrag, t.MandatsReferenz, t.MandatsDatum, t.Verwendungszweck,
		); err != nil {
			return fmt.Errorf("insert batch transaction: %w", err)
		}
	}
	return nil
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.DojoID, &b.Referenz, &b.Erstellt, &b.Einzugsdatum, &b.AnzahlPosten,
		&b.Gesamtbetrag, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

func (r *BatchRepo) ListByDojo(ctx context.Context, dojoID string, limit, offset int) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches WHERE dojo_id = $1 ORDER BY erstellt DESC, referenz DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, dojoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.DojoID, &b.Referenz, &b.Erstellt, &b.Einzugsdatum,
			&b.AnzahlPosten, &b.Gesamtbetrag, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BatchRepo) GetTransactions(ctx context.Context, batchID string) ([]entity.BatchTransaction, error) {
	query := `
		SELECT id, batch_id, member_id, zahlername, iban, betrag,
		       mandats_referenz, mandats_datum, verwendungszweck
		FROM batch_transactions WHERE batch_id = $1 ORDER BY pos`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch transactions: %w", err)
	}
	defer rows.Close()
	var list []entity.BatchTransaction
	for rows.Next() {
		var t entity.BatchTransaction
		if err := rows.Scan(&t.ID, &t.BatchID, &t.MemberID, &t.Zahlername, &t.IBAN,
			&t.Betrag, &t.MandatsReferenz, &t.MandatsDatum, &t.Verwendungszweck); err != nil {
			return nil, fmt.Errorf("scan batch transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *BatchRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE batches SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
