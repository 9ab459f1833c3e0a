package repository

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// ArticleRepository definiert den Persistenz-Port für Artikel (Beiträge,
// Prüfungsgebühren, Ausrüstung).
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	ListByDojo(ctx context.Context, dojoID string, limit, offset int) ([]*entity.Article, error)
}
