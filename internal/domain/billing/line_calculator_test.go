package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/budoverein/dojokasse/internal/domain/billing"
)

func TestLineNet_OhneRabatt(t *testing.T) {
	l := billing.DraftLine{
		Beschreibung: "Monatsbeitrag Erwachsene",
		Menge:        10,
		Einzelpreis:  decimal.NewFromFloat(25.00),
	}
	assert.True(t, billing.LineNet(l).Equal(decimal.NewFromInt(250)),
		"ohne Rabatt gilt Menge × Einzelpreis")
}

func TestLineNet_MitZeilenrabatt(t *testing.T) {
	l := billing.DraftLine{
		Beschreibung:  "Anzug Gr. 170",
		Menge:         10,
		Einzelpreis:   decimal.NewFromFloat(25.00),
		Rabattfaehig:  true,
		RabattProzent: decimal.NewFromInt(20),
	}
	assert.True(t, billing.LineNet(l).Equal(decimal.NewFromInt(200)),
		"20 Prozent Zeilenrabatt auf 250 ergibt 200")
}

// Rabatt nur bei rabattfähigen Zeilen: das Flag gewinnt über den Prozentwert.
func TestLineNet_RabattNurWennRabattfaehig(t *testing.T) {
	l := billing.DraftLine{
		Beschreibung:  "Prüfungsgebühr",
		Menge:         1,
		Einzelpreis:   decimal.NewFromInt(40),
		Rabattfaehig:  false,
		RabattProzent: decimal.NewFromInt(50),
	}
	assert.True(t, billing.LineNet(l).Equal(decimal.NewFromInt(40)))
}

// Eingabe-Gate: Menge <= 0 oder leere Beschreibung sind laufende Benutzereingaben,
// keine Fehler. Solche Zeilen werden still verworfen.
func TestAcceptedLines_VerwirftUnfertigeZeilen(t *testing.T) {
	lines := []billing.DraftLine{
		{Beschreibung: "Monatsbeitrag", Menge: 1, Einzelpreis: decimal.NewFromInt(30)},
		{Beschreibung: "", Menge: 2, Einzelpreis: decimal.NewFromInt(10)},
		{Beschreibung: "   ", Menge: 2, Einzelpreis: decimal.NewFromInt(10)},
		{Beschreibung: "Gürtel", Menge: 0, Einzelpreis: decimal.NewFromInt(8)},
		{Beschreibung: "Gürtel", Menge: -3, Einzelpreis: decimal.NewFromInt(8)},
		{Beschreibung: "Jahresmarke", Menge: 1, Einzelpreis: decimal.NewFromInt(12)},
	}

	accepted := billing.AcceptedLines(lines)

	assert.Len(t, accepted, 2, "nur vollständige Zeilen mit positiver Menge werden übernommen")
	assert.Equal(t, "Monatsbeitrag", accepted[0].Beschreibung)
	assert.Equal(t, "Jahresmarke", accepted[1].Beschreibung)
}
