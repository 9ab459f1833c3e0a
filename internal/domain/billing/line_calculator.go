package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundert = decimal.NewFromInt(100)

// LineAccepted ist das Eingabe-Gate für Rechnungszeilen: Zeilen mit Menge <= 0
// oder leerer Beschreibung stammen aus einer laufenden Benutzereingabe und werden
// stillschweigend nicht übernommen. Das ist kein Fehlerfall.
func LineAccepted(l DraftLine) bool {
	return l.Menge > 0 && strings.TrimSpace(l.Beschreibung) != ""
}

// AcceptedLines filtert einen Entwurf auf die übernahmefähigen Zeilen,
// unter Beibehaltung der Reihenfolge.
func AcceptedLines(lines []DraftLine) []DraftLine {
	out := make([]DraftLine, 0, len(lines))
	for _, l := range lines {
		if LineAccepted(l) {
			out = append(out, l)
		}
	}
	return out
}

// LineNet berechnet den Nettobetrag einer Zeile:
//
//	netto = Menge × Einzelpreis × (1 − RabattProzent/100)  falls rabattfähig
//	netto = Menge × Einzelpreis                            sonst
func LineNet(l DraftLine) decimal.Decimal {
	net := decimal.NewFromInt(l.Menge).Mul(l.Einzelpreis)
	if l.Rabattfaehig && l.RabattProzent.IsPositive() {
		net = net.Mul(hundert.Sub(l.RabattProzent)).Div(hundert)
	}
	return net
}
