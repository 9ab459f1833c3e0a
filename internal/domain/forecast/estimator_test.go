package forecast_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budoverein/dojokasse/internal/domain/forecast"
)

// lineareReihe liefert 12 Monatsumsätze exakt auf einer Geraden
// y = 100 + 10x, beginnend mit 2024-07. Auf exakt linearen Daten muss die
// Regression Steigung und Achsenabschnitt ohne Residuum treffen.
func lineareReihe() []forecast.RevenuePoint {
	series := make([]forecast.RevenuePoint, 0, 12)
	for i := 0; i < 12; i++ {
		jahr, monat := 2024, 7+i
		if monat > 12 {
			jahr, monat = 2025, monat-12
		}
		series = append(series, forecast.RevenuePoint{
			Periode: fmt.Sprintf("%d-%02d", jahr, monat),
			Umsatz:  100 + 10*float64(i),
		})
	}
	return series
}

func TestEstimate_LineareReiheExakt(t *testing.T) {
	out := forecast.Estimate(lineareReihe())

	require.Len(t, out, 18, "12 historische Punkte plus 6 Prognoseperioden")

	// Historische Punkte: Umsatz erhalten, Trend auf der Geraden.
	for i := 0; i < 12; i++ {
		p := out[i]
		require.NotNil(t, p.Umsatz)
		require.NotNil(t, p.Trend)
		assert.False(t, p.IsPrognose)
		assert.InDelta(t, 100+10*float64(i), *p.Trend, 1e-9,
			"Trendwert von Punkt %d liegt auf der Regressionsgeraden", i)
	}

	// Prognosepunkte: Gerade verlängert, Band ±15 %.
	for i := 0; i < 6; i++ {
		p := out[12+i]
		erwartet := 100 + 10*float64(12+i)
		assert.Nil(t, p.Umsatz, "Zukunftsperioden haben keinen Ist-Umsatz")
		assert.True(t, p.IsPrognose)
		assert.InDelta(t, erwartet, p.Prognose, 1e-9)
		assert.InDelta(t, erwartet*0.85, p.PrognoseMin, 1e-9)
		assert.InDelta(t, erwartet*1.15, p.PrognoseMax, 1e-9)
	}
}

// Die Prognoseperioden werden mit deutschem Monatsnamen und Jahr nach der
// letzten historischen Periode beschriftet; das Jahr hält die Labels auch über
// Jahreswechsel hinweg eindeutig.
func TestEstimate_DeutscheMonatslabels(t *testing.T) {
	out := forecast.Estimate(lineareReihe()) // endet 2025-06

	labels := make([]string, 0, 6)
	for _, p := range out[12:] {
		labels = append(labels, p.Periode)
	}
	assert.Equal(t, []string{"Juli 2025", "August 2025", "September 2025",
		"Oktober 2025", "November 2025", "Dezember 2025"}, labels)
}

// Reicht die Prognose über den Jahreswechsel, trägt das Label das Folgejahr
// und kollidiert nicht mit dem gleichnamigen Monat der Historie.
func TestEstimate_JahreswechselImLabel(t *testing.T) {
	series := []forecast.RevenuePoint{
		{Periode: "2025-08", Umsatz: 100},
		{Periode: "2025-09", Umsatz: 110},
		{Periode: "2025-10", Umsatz: 120},
	}

	out := forecast.Estimate(series)

	require.Len(t, out, 9)
	assert.Equal(t, "November 2025", out[3].Periode)
	assert.Equal(t, "Januar 2026", out[5].Periode)
	assert.Equal(t, "April 2026", out[8].Periode)
}

// Unter 3 Punkten wird die Reihe unverändert durchgereicht: kein Trend,
// keine Prognoseperioden.
func TestEstimate_ZuWenigPunkte(t *testing.T) {
	series := []forecast.RevenuePoint{
		{Periode: "2025-01", Umsatz: 100},
		{Periode: "2025-02", Umsatz: 120},
	}

	out := forecast.Estimate(series)

	require.Len(t, out, 2)
	for i, p := range out {
		assert.Equal(t, series[i].Periode, p.Periode)
		require.NotNil(t, p.Umsatz)
		assert.Equal(t, series[i].Umsatz, *p.Umsatz)
		assert.Nil(t, p.Trend)
		assert.False(t, p.IsPrognose)
	}
}

func TestEstimate_LeereReihe(t *testing.T) {
	assert.Empty(t, forecast.Estimate(nil))
}

// Ein fallender Trend wird nicht unter 0 projiziert: negative Umsatzprognosen
// sind betriebswirtschaftlich sinnlos.
func TestEstimate_KlemmtNegativePrognoseAufNull(t *testing.T) {
	series := []forecast.RevenuePoint{
		{Periode: "2025-01", Umsatz: 60},
		{Periode: "2025-02", Umsatz: 30},
		{Periode: "2025-03", Umsatz: 0},
	}

	out := forecast.Estimate(series)

	require.Len(t, out, 9)
	letzte := out[8]
	assert.True(t, letzte.IsPrognose)
	assert.Zero(t, letzte.Prognose)
	assert.Zero(t, letzte.PrognoseMin)
	assert.Zero(t, letzte.PrognoseMax)
}

// Konstante Umsätze ergeben eine waagerechte Gerade, keinen Sonderfall.
func TestEstimate_KonstanteReihe(t *testing.T) {
	series := []forecast.RevenuePoint{
		{Periode: "2025-01", Umsatz: 250},
		{Periode: "2025-02", Umsatz: 250},
		{Periode: "2025-03", Umsatz: 250},
	}

	out := forecast.Estimate(series)

	require.Len(t, out, 9)
	assert.InDelta(t, 250, out[5].Prognose, 1e-9)
	assert.Equal(t, "April 2025", out[3].Periode)
}
