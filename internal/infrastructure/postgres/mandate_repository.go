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

var _ repository.MandateRepository = (*MandateRepo)(nil)

// MandateRepo: Persistenz-Adapter für SEPA-Mandate (Pool oder Tx).
type MandateRepo struct {
	q Querier
}

// NewMandateRepository baut den Adapter.
func NewMandateRepository(q Querier) *MandateRepo {
	return &MandateRepo{q: q}
}

const mandateColumns = `
	id, dojo_id, member_id, kontoinhaber, iban, bic, referenz, unterschrieben,
	status, created_at, updated_at`

func (r *MandateRepo) Create(ctx context.Context, m *entity.Mandate) error {
	query := `
		INSERT INTO mandates (` + mandateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.DojoID, m.MemberID, m.Kontoinhaber, m.IBAN, m.BIC, m.Referenz,
		m.Unterschrieben, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert mandate: %w", err)
	}
	return nil
}

func (r *MandateRepo) GetByID(ctx context.Context, id string) (*entity.Mandate, error) {
	query := `SELECT ` + mandateColumns + ` FROM mandates WHERE id = $1`
	var m entity.Mandate
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.DojoID, &m.MemberID, &m.Kontoinhaber, &m.IBAN, &m.BIC, &m.Referenz,
		&m.Unterschrieben, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mandate: %w", err)
	}
	return &m, nil
}

func (r *MandateRepo) ListByDojo(ctx context.Context, dojoID string) ([]*entity.Mandate, error) {
	return r.list(ctx, `dojo_id = $1`, dojoID)
}

func (r *MandateRepo) ListAktivByDojo(ctx context.Context, dojoID string) ([]*entity.Mandate, error) {
	return r.list(ctx, `dojo_id = $1 AND status = 'aktiv'`, dojoID)
}

func (r *MandateRepo) list(ctx context.Context, where string, arg any) ([]*entity.Mandate, error) {
	query := `SELECT ` + mandateColumns + ` FROM mandates WHERE ` + where + ` ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list mandates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Mandate
	for rows.Next() {
		var m entity.Mandate
		if err := rows.Scan(&m.ID, &m.DojoID, &m.MemberID, &m.Kontoinhaber, &m.IBAN, &m.BIC,
			&m.Referenz, &m.Unterschrieben, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mandate: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MandateRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE mandates SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update mandate status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
