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

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo: Persistenz-Adapter für Mitglieder (Pool oder Tx).
type MemberRepo struct {
	q Querier
}

// NewMemberRepository baut den Adapter.
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

func (r *MemberRepo) Create(ctx context.Context, m *entity.Member) error {
	query := `
		INSERT INTO members (id, dojo_id, vorname, nachname, email, eintritt, austritt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.DojoID, m.Vorname, m.Nachname, m.Email, m.Eintritt, m.Austritt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *MemberRepo) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	query := `
		SELECT id, dojo_id, vorname, nachname, email, eintritt, austritt, created_at, updated_at
		FROM members WHERE id = $1`
	var m entity.Member
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.DojoID, &m.Vorname, &m.Nachname, &m.Email, &m.Eintritt, &m.Austritt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

func (r *MemberRepo) ListByDojo(ctx context.Context, dojoID string, limit, offset int) ([]*entity.Member, error) {
	query := `
		SELECT id, dojo_id, vorname, nachname, email, eintritt, austritt, created_at, updated_at
		FROM members WHERE dojo_id = $1 ORDER BY nachname, vorname LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, dojoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()
	var list []*entity.Member
	for rows.Next() {
		var m entity.Member
		if err := rows.Scan(&m.ID, &m.DojoID, &m.Vorname, &m.Nachname, &m.Email, &m.Eintritt, &m.Austritt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MemberRepo) Update(ctx context.Context, m *entity.Member) error {
	query := `
		UPDATE members SET vorname = $2, nachname = $3, email = $4, eintritt = $5, austritt = $6, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.Vorname, m.Nachname, m.Email, m.Eintritt, m.Austritt)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
