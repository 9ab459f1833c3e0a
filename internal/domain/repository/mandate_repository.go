package repository

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// MandateRepository definiert den Persistenz-Port für SEPA-Mandate.
type MandateRepository interface {
	Create(ctx context.Context, mandate *entity.Mandate) error
	GetByID(ctx context.Context, id string) (*entity.Mandate, error)
	ListByDojo(ctx context.Context, dojoID string) ([]*entity.Mandate, error)

	// ListAktivByDojo liefert nur Mandate im Status aktiv; Basis der
	// Mandatsauflösung in der Einzugsvorschau.
	ListAktivByDojo(ctx context.Context, dojoID string) ([]*entity.Mandate, error)

	// UpdateStatus persistiert einen bereits validierten Statusübergang.
	UpdateStatus(ctx context.Context, id, status string) error
}
