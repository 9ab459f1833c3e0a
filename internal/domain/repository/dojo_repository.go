package repository

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// DojoRepository definiert den Persistenz-Port für Dojo (DIP).
// Die Implementierung lebt in infrastructure.
type DojoRepository interface {
	Create(ctx context.Context, dojo *entity.Dojo) error
	GetByID(ctx context.Context, id string) (*entity.Dojo, error)
	Update(ctx context.Context, dojo *entity.Dojo) error
}
