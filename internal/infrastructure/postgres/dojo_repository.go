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

var _ repository.DojoRepository = (*DojoRepo)(nil)

// DojoRepo: Persistenz-Adapter für Dojos (Pool oder Tx).
type DojoRepo struct {
	q Querier
}

// NewDojoRepository baut den Adapter.
func NewDojoRepository(q Querier) *DojoRepo {
	return &DojoRepo{q: q}
}

func (r *DojoRepo) Create(ctx context.Context, d *entity.Dojo) error {
	query := `
		INSERT INTO dojos (id, name, iban, bic, kontoinhaber, glaeubiger_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Name, d.IBAN, d.BIC, d.Kontoinhaber, d.GlaeubigerID, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert dojo: %w", err)
	}
	return nil
}

func (r *DojoRepo) GetByID(ctx context.Context, id string) (*entity.Dojo, error) {
	query := `
		SELECT id, name, iban, bic, kontoinhaber, glaeubiger_id, created_at, updated_at
		FROM dojos WHERE id = $1`
	var d entity.Dojo
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.IBAN, &d.BIC, &d.Kontoinhaber, &d.GlaeubigerID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dojo: %w", err)
	}
	return &d, nil
}

func (r *DojoRepo) Update(ctx context.Context, d *entity.Dojo) error {
	query := `
		UPDATE dojos SET name = $2, iban = $3, bic = $4, kontoinhaber = $5, glaeubiger_id = $6, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, d.ID, d.Name, d.IBAN, d.BIC, d.Kontoinhaber, d.GlaeubigerID)
	if err != nil {
		return fmt.Errorf("update dojo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
