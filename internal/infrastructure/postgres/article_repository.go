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

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo: Persistenz-Adapter für Artikel (Pool oder Tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository baut den Adapter.
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articles (id, dojo_id, name, preis, vat_rate, rabattfaehig, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.DojoID, a.Name, a.Preis, a.VATRate, a.Rabattfaehig, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	query := `
		SELECT id, dojo_id, name, preis, vat_rate, rabattfaehig, created_at, updated_at
		FROM articles WHERE id = $1`
	var a entity.Article
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.DojoID, &a.Name, &a.Preis, &a.VATRate, &a.Rabattfaehig, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

func (r *ArticleRepo) ListByDojo(ctx context.Context, dojoID string, limit, offset int) ([]*entity.Article, error) {
	query := `
		SELECT id, dojo_id, name, preis, vat_rate, rabattfaehig, created_at, updated_at
		FROM articles WHERE dojo_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, dojoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.DojoID, &a.Name, &a.Preis, &a.VATRate, &a.Rabattfaehig, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
