package repository

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/forecast"
)

// RevenueRepository liefert die monatliche Umsatzreihe eines Dojos für die
// Prognose. Read-only; die Reihe kommt chronologisch aufsteigend zurück.
type RevenueRepository interface {
	MonthlySeries(ctx context.Context, dojoID string, months int) ([]forecast.RevenuePoint, error)
}
