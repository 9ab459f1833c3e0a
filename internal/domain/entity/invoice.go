package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rechnungsstatus. Übergänge: offen -> bezahlt | ueberfaellig | storniert,
// ueberfaellig -> bezahlt | storniert. bezahlt und storniert sind terminal.
const (
	InvoiceStatusOffen        = "offen"
	InvoiceStatusBezahlt      = "bezahlt"
	InvoiceStatusUeberfaellig = "ueberfaellig"
	InvoiceStatusStorniert    = "storniert"
)

// Invoice ist der Rechnungskopf. Die Nummer wird einmalig beim Anlegen aus der
// Jahressequenz vergeben und ist danach unveränderlich; nach dem Anlegen sind nur
// Statusübergänge und die Buchhaltungsverknüpfung zulässig.
type Invoice struct {
	ID             string
	DojoID         string
	MemberID       string
	Nummer         string // z.B. R-2025-001 (an die Periode gebundenes Format)
	Rechnungsdatum time.Time
	Leistungsdatum time.Time
	Faelligkeit    time.Time // Zahlungsziel (volle Zahlung)
	GlobalDiscount Discount
	RabattBasis    decimal.Decimal // explizite Bemessungsbasis; Zero => Zwischensumme
	VATRate        decimal.Decimal // effektiver Steuersatz in Prozent (Default 19)
	SkontoProzent  decimal.Decimal
	SkontoTage     int

	// Berechnete Summen (TotalsEngine); für identische Eingabe stets identisch.
	Zwischensumme    decimal.Decimal
	RabattBetrag     decimal.Decimal
	NettoSumme       decimal.Decimal
	VATBetrag        decimal.Decimal
	BruttoSumme      decimal.Decimal
	SkontoBetrag     decimal.Decimal
	SkontoZahlbetrag decimal.Decimal // BruttoSumme - SkontoBetrag
	SkontoFrist      *time.Time      // Rechnungsdatum + SkontoTage

	Status    string
	BuchungID string // optionale Verknüpfung zum EÜR-Buchungssatz, einmalig gesetzt
	CreatedAt time.Time
	UpdatedAt time.Time
}

// invoiceTransitions: erlaubte Statusübergänge.
var invoiceTransitions = map[string][]string{
	InvoiceStatusOffen:        {InvoiceStatusBezahlt, InvoiceStatusUeberfaellig, InvoiceStatusStorniert},
	InvoiceStatusUeberfaellig: {InvoiceStatusBezahlt, InvoiceStatusStorniert},
	InvoiceStatusBezahlt:      {},
	InvoiceStatusStorniert:    {},
}

// CanTransitionTo meldet, ob der Übergang zum Zielstatus erlaubt ist.
func (i *Invoice) CanTransitionTo(status string) bool {
	for _, s := range invoiceTransitions[i.Status] {
		if s == status {
			return true
		}
	}
	return false
}

// HasSkonto meldet, ob Skonto-Konditionen wirksam sind (Prozent und Tage > 0).
func (i *Invoice) HasSkonto() bool {
	return i.SkontoProzent.IsPositive() && i.SkontoTage > 0
}
