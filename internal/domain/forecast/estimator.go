// Package forecast: Umsatztrend und Szenario-Projektion über eine monatliche
// Umsatzreihe. Gewöhnliche lineare Regression (OLS) in geschlossener Form;
// reine Funktion ohne I/O — identische Reihe, identisches Ergebnis.
package forecast

import (
	"strconv"
	"time"
)

// Horizon ist die Anzahl projizierter Zukunftsperioden.
const Horizon = 6

// Unsicherheitsband der Projektion: ±15 % um den Trendwert.
const (
	boundLower = 0.85
	boundUpper = 1.15
)

// minPoints: unter 3 Punkten ist eine Regression nicht aussagekräftig;
// die Reihe wird dann unverändert zurückgegeben statt einen irreführenden
// Trend zu erfinden.
const minPoints = 3

// RevenuePoint ist ein historischer Monatsumsatz (Index = Monatsreihenfolge).
type RevenuePoint struct {
	Periode string  // Periodenlabel, z.B. "2025-03"
	Umsatz  float64 // Umsätze sind Statistik, kein Buchgeld: float64 statt decimal
}

// ForecastPoint ist ein annotierter Punkt der Ergebnisreihe.
type ForecastPoint struct {
	Periode     string   `json:"periode"`
	Umsatz      *float64 `json:"umsatz"` // nil für Zukunftsperioden
	Trend       *float64 `json:"trend,omitempty"`
	Prognose    float64  `json:"prognose,omitempty"`
	PrognoseMin float64  `json:"prognoseMin,omitempty"`
	PrognoseMax float64  `json:"prognoseMax,omitempty"`
	IsPrognose  bool     `json:"isPrognose"`
}

var deutscheMonate = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// Estimate legt eine OLS-Trendgerade über die Reihe und verlängert sie um
// Horizon Perioden. Bei n < 3 oder degenerierter Regression (Nenner 0) wird die
// Eingabereihe unverändert — ohne Trend, ohne Prognose — zurückgegeben.
// Trend- und Prognosewerte werden bei 0 gedeckelt (negative Umsätze sind
// als Projektion sinnlos).
func Estimate(series []RevenuePoint) []ForecastPoint {
	out := make([]ForecastPoint, 0, len(series)+Horizon)
	for _, p := range series {
		u := p.Umsatz
		out = append(out, ForecastPoint{Periode: p.Periode, Umsatz: &u})
	}

	n := len(series)
	if n < minPoints {
		return out
	}

	// OLS in geschlossener Form: slope = (n·Σxy − Σx·Σy) / (n·Σx² − (Σx)²)
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range series {
		x := float64(i)
		sumX += x
		sumY += p.Umsatz
		sumXY += x * p.Umsatz
		sumXX += x * x
	}
	nf := float64(n)
	denom := nf*sumXX - sumX*sumX
	if denom == 0 {
		return out
	}
	slope := (nf*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / nf

	for i := range out {
		trend := clampZero(slope*float64(i) + intercept)
		out[i].Trend = &trend
	}

	for i := 1; i <= Horizon; i++ {
		prognose := clampZero(slope*float64(n+i-1) + intercept)
		out = append(out, ForecastPoint{
			Periode:     futureLabel(series[n-1].Periode, i),
			Prognose:    prognose,
			PrognoseMin: prognose * boundLower,
			PrognoseMax: prognose * boundUpper,
			IsPrognose:  true,
		})
	}
	return out
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// futureLabel liefert "Monatsname Jahr" der i-ten Folgeperiode; das Jahr hält
// die Labels eindeutig, wenn die Prognose über einen Jahreswechsel oder in
// Monate reicht, die in der Historie schon vorkommen. Ist das letzte
// Periodenlabel nicht als "2006-01" parsebar, wird neutral durchnummeriert
// ("Prognose +i").
func futureLabel(lastPeriode string, i int) string {
	t, err := time.Parse("2006-01", lastPeriode)
	if err != nil {
		return "Prognose +" + strconv.Itoa(i)
	}
	f := t.AddDate(0, i, 0)
	return deutscheMonate[int(f.Month())-1] + " " + strconv.Itoa(f.Year())
}
