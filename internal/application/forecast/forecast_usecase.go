package forecast

import (
	"context"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/domain/forecast"
	"github.com/budoverein/dojokasse/internal/domain/repository"
)

// DefaultMonths: Standardfenster der historischen Reihe.
const DefaultMonths = 12

// ForecastUseCase liest die Umsatzreihe des Dojos und annotiert sie mit Trend
// und Prognose. Die ganze Rechenarbeit liegt im Schätzer; hier nur I/O.
type ForecastUseCase struct {
	revenueRepo repository.RevenueRepository
}

// NewForecastUseCase baut den Use Case.
func NewForecastUseCase(revenueRepo repository.RevenueRepository) *ForecastUseCase {
	return &ForecastUseCase{revenueRepo: revenueRepo}
}

// Forecast liefert die annotierte Reihe. months <= 0 fällt auf DefaultMonths
// zurück; bei weniger als 3 vorhandenen Punkten kommt die Reihe unverändert
// zurück (Passthrough des Schätzers).
func (uc *ForecastUseCase) Forecast(ctx context.Context, dojoID string, months int) (*dto.ForecastResponse, error) {
	if months <= 0 {
		months = DefaultMonths
	}
	series, err := uc.revenueRepo.MonthlySeries(ctx, dojoID, months)
	if err != nil {
		return nil, err
	}
	return &dto.ForecastResponse{
		DojoID: dojoID,
		Months: months,
		Points: forecast.Estimate(series),
	}, nil
}
