package repository

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// UserRepository definiert den Persistenz-Port für User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail liefert domain.ErrUserNotFound, wenn die E-Mail unbekannt ist.
	// Der Login-Use-Case unterscheidet diesen Fall bewusst nicht nach außen.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
