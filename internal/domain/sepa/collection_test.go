package sepa_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/sepa"
)

func due(memberID, name, periode string, betrag float64) sepa.OutstandingDue {
	d, _ := time.Parse("2006-01", periode)
	return sepa.OutstandingDue{
		MemberID:   memberID,
		Zahlername: name,
		Periode:    periode,
		Datum:      d,
		Betrag:     decimal.NewFromFloat(betrag),
	}
}

func aktivesMandat(memberID, referenz string) *entity.Mandate {
	return &entity.Mandate{
		MemberID:       memberID,
		Referenz:       referenz,
		IBAN:           "DE89370400440532013000",
		Unterschrieben: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:         entity.MandateStatusAktiv,
	}
}

// Mehrere offene Perioden eines Zahlers werden zu einer Zeile mit
// Periodenaufschlüsselung aufsummiert.
func TestBuildPreview_SummiertPeriodenJeZahler(t *testing.T) {
	dues := []sepa.OutstandingDue{
		due("m1", "Aiko Tanaka", "2025-01", 30),
		due("m2", "Ben Vogel", "2025-02", 25),
		due("m1", "Aiko Tanaka", "2025-02", 30),
		due("m1", "Aiko Tanaka", "2025-03", 30),
	}
	mandates := map[string]*entity.Mandate{
		"m1": aktivesMandat("m1", "DOJO-M1-2024"),
		"m2": aktivesMandat("m2", "DOJO-M2-2024"),
	}

	p := sepa.BuildPreview(dues, mandates)

	require.Len(t, p.Rows, 2)
	assert.Equal(t, "Aiko Tanaka", p.Rows[0].Zahlername, "Zeilenreihenfolge folgt dem ersten Auftreten")
	assert.True(t, p.Rows[0].Gesamtbetrag.Equal(decimal.NewFromInt(90)))
	assert.Len(t, p.Rows[0].Posten, 3)
	assert.Equal(t, "2025-01", p.Rows[0].Posten[0].Periode)
	assert.Equal(t, "DOJO-M1-2024", p.Rows[0].MandatsReferenz)
	assert.True(t, p.EinzugsfaehigSumme.Equal(decimal.NewFromInt(115)))
	assert.Equal(t, 0, p.OhneMandat)
}

// Ohne aktives Mandat trägt die Zeile den Sentinel, bleibt in der Vorschau
// sichtbar und zählt nicht zum einzugsfähigen Betrag.
func TestBuildPreview_SentinelOhneMandat(t *testing.T) {
	dues := []sepa.OutstandingDue{
		due("m1", "Aiko Tanaka", "2025-03", 30),
		due("m2", "Ben Vogel", "2025-03", 25),
	}
	mandates := map[string]*entity.Mandate{
		"m1": aktivesMandat("m1", "DOJO-M1-2024"),
		// m2 hat kein Mandat
	}

	p := sepa.BuildPreview(dues, mandates)

	require.Len(t, p.Rows, 2, "die Zeile ohne Mandat bleibt zur Nachverfolgung erhalten")
	assert.Equal(t, sepa.KeinMandat, p.Rows[1].MandatsReferenz)
	assert.False(t, p.Rows[1].Einzugsfaehig)
	assert.Empty(t, p.Rows[1].IBAN)
	assert.True(t, p.EinzugsfaehigSumme.Equal(decimal.NewFromInt(30)),
		"Zahler ohne Mandat fließen nicht in die einzugsfähige Summe ein")
	assert.Equal(t, 1, p.OhneMandat)
}

// Pausierte und widerrufene Mandate sind nicht einzugsfähig.
func TestBuildPreview_PausiertesMandatZaehltNicht(t *testing.T) {
	m := aktivesMandat("m1", "DOJO-M1-2024")
	m.Status = entity.MandateStatusPausiert

	p := sepa.BuildPreview(
		[]sepa.OutstandingDue{due("m1", "Aiko Tanaka", "2025-03", 30)},
		map[string]*entity.Mandate{"m1": m},
	)

	require.Len(t, p.Rows, 1)
	assert.Equal(t, sepa.KeinMandat, p.Rows[0].MandatsReferenz)
	assert.True(t, p.EinzugsfaehigSumme.IsZero())
}

func TestBuildPreview_LeereEingabe(t *testing.T) {
	p := sepa.BuildPreview(nil, nil)
	assert.Empty(t, p.Rows)
	assert.True(t, p.EinzugsfaehigSumme.IsZero())
}

// Determinismus: gleiche Eingabe, gleiche Vorschau.
func TestBuildPreview_Deterministisch(t *testing.T) {
	dues := []sepa.OutstandingDue{
		due("m1", "Aiko Tanaka", "2025-01", 30),
		due("m2", "Ben Vogel", "2025-01", 25),
	}
	mandates := map[string]*entity.Mandate{"m1": aktivesMandat("m1", "DOJO-M1-2024")}

	p1 := sepa.BuildPreview(dues, mandates)
	p2 := sepa.BuildPreview(dues, mandates)

	assert.Equal(t, p1, p2)
}
