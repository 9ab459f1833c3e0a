package dto

import "github.com/budoverein/dojokasse/internal/domain/forecast"

// ForecastResponse: annotierte Umsatzreihe inklusive Prognoseperioden.
// Die Punkte kommen unverändert aus dem Schätzer; das DTO ergänzt nur Metadaten.
type ForecastResponse struct {
	DojoID string                   `json:"dojo_id"`
	Months int                      `json:"months"`
	Points []forecast.ForecastPoint `json:"points"`
}
