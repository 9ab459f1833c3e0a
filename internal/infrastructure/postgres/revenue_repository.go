package postgres

import (
	"context"
	"fmt"

	"github.com/budoverein/dojokasse/internal/domain/forecast"
	"github.com/budoverein/dojokasse/internal/domain/repository"
)

var _ repository.RevenueRepository = (*RevenueRepo)(nil)

// RevenueRepo liest die monatliche Umsatzreihe aus monthly_revenue.
// Die Tabelle wird von der Fakturierung fortgeschrieben (eine Zeile je Dojo und
// Monat); hier nur Lesezugriff für die Prognose.
type RevenueRepo struct {
	q Querier
}

// NewRevenueRepository baut den Adapter.
func NewRevenueRepository(q Querier) *RevenueRepo {
	return &RevenueRepo{q: q}
}

// MonthlySeries liefert die letzten months Monate chronologisch aufsteigend.
// Der Umsatz wird für die Statistik nach float64 gewandelt; Buchgeld bleibt
// überall sonst decimal.
func (r *RevenueRepo) MonthlySeries(ctx context.Context, dojoID string, months int) ([]forecast.RevenuePoint, error) {
	query := `
		SELECT periode, umsatz::float8
		FROM (
			SELECT periode, umsatz
			FROM monthly_revenue
			WHERE dojo_id = $1
			ORDER BY periode DESC
			LIMIT $2
		) letzte
		ORDER BY periode`
	rows, err := r.q.Query(ctx, query, dojoID, months)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue series: %w", err)
	}
	defer rows.Close()
	var series []forecast.RevenuePoint
	for rows.Next() {
		var p forecast.RevenuePoint
		if err := rows.Scan(&p.Periode, &p.Umsatz); err != nil {
			return nil, fmt.Errorf("scan revenue point: %w", err)
		}
		series = append(series, p)
	}
	return series, rows.Err()
}
