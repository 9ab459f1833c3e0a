package repository

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// MemberRepository definiert den Persistenz-Port für Mitglieder (DIP).
type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	GetByID(ctx context.Context, id string) (*entity.Member, error)
	ListByDojo(ctx context.Context, dojoID string, limit, offset int) ([]*entity.Member, error)
	Update(ctx context.Context, member *entity.Member) error
}
