// Package billing ist der reine Rechenkern der Fakturierung: Zeilenbeträge,
// Rechnungssummen, Rabatt-, Steuer- und Skontologik. Alle Funktionen sind pur
// und synchron; identische Eingabe liefert bit-identische Ergebnisse. I/O und
// Persistenz liegen ausschließlich bei den Aufrufern.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// DefaultVATRate ist der Standardsteuersatz in Prozent, falls der Entwurf keinen nennt.
var DefaultVATRate = decimal.NewFromInt(19)

// DraftLine ist eine Zeile eines Rechnungsentwurfs, noch ohne Persistenz.
// RabattProzent ist vom Aufrufer bereits auf [0,100] geklemmt; der Rechenkern
// validiert den Bereich nicht erneut.
type DraftLine struct {
	ArticleID     string
	Beschreibung  string
	Menge         int64
	Einzelpreis   decimal.Decimal
	VATRate       decimal.Decimal
	Rabattfaehig  bool
	RabattProzent decimal.Decimal
}

// InvoiceDraft ist der unveränderliche Eingabe-Schnappschuss einer Summenberechnung.
// Jede Neuberechnung nach einer Eingabeänderung arbeitet auf einem frischen Draft;
// es gibt keinen geteilten veränderlichen Zustand zwischen Aufrufen.
type InvoiceDraft struct {
	Lines          []DraftLine
	GlobalDiscount entity.Discount
	RabattBasis    decimal.Decimal // explizite Bemessungsbasis; Zero => Zwischensumme
	VATRate        decimal.Decimal // effektiver Steuersatz in Prozent
	SkontoProzent  decimal.Decimal
	SkontoTage     int
	Rechnungsdatum time.Time
	Faelligkeit    time.Time
}

// Totals ist das Ergebnis der Summenberechnung.
type Totals struct {
	Zwischensumme    decimal.Decimal
	RabattBetrag     decimal.Decimal
	NettoSumme       decimal.Decimal
	VATBetrag        decimal.Decimal
	BruttoSumme      decimal.Decimal
	SkontoBetrag     decimal.Decimal
	SkontoZahlbetrag decimal.Decimal // Zahlbetrag bei Zahlung innerhalb der Skontofrist
	SkontoFrist      *time.Time      // Rechnungsdatum + SkontoTage; nil ohne Skonto
}

// HasSkonto meldet, ob Skonto-Konditionen berechnet wurden.
func (t Totals) HasSkonto() bool {
	return t.SkontoFrist != nil
}
