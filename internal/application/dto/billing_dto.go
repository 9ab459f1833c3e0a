package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest: Body für POST /api/invoices. Der Entwurf wird im Use
// Case durch die TotalsEngine geschickt; die Summen im Response sind berechnet,
// nie vom Client übernommen.
type CreateInvoiceRequest struct {
	MemberID       string               `json:"member_id" validate:"required,uuid"`
	Rechnungsdatum string               `json:"rechnungsdatum" validate:"required"` // YYYY-MM-DD
	Leistungsdatum string               `json:"leistungsdatum,omitempty"`
	Faelligkeit    string               `json:"faelligkeit,omitempty"`
	Lines          []InvoiceLineRequest `json:"lines" validate:"required,min=1"`

	// Globaler Rabatt: genau eine der beiden Varianten, null = kein Rabatt.
	RabattProzent *decimal.Decimal `json:"rabatt_prozent,omitempty"`
	RabattBetrag  *decimal.Decimal `json:"rabatt_betrag,omitempty"`
	RabattBasis   *decimal.Decimal `json:"rabatt_basis,omitempty"` // explizite Bemessungsbasis

	VATRate       *decimal.Decimal `json:"vat_rate,omitempty"` // null = 19
	SkontoProzent *decimal.Decimal `json:"skonto_prozent,omitempty"`
	SkontoTage    *int             `json:"skonto_tage,omitempty"` // null + Faelligkeit gesetzt = abgeleitet
}

// InvoiceLineRequest: eine Rechnungszeile im Entwurf.
type InvoiceLineRequest struct {
	ArticleID     string          `json:"article_id,omitempty"`
	Beschreibung  string          `json:"beschreibung"`
	Menge         int64           `json:"menge"`
	Einzelpreis   decimal.Decimal `json:"einzelpreis"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	Rabattfaehig  bool            `json:"rabattfaehig"`
	RabattProzent decimal.Decimal `json:"rabatt_prozent"`
}

// InvoiceResponse: vollständige Rechnung mit Summenblock und Zahlcodes.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	DojoID         string                `json:"dojo_id"`
	MemberID       string                `json:"member_id"`
	Nummer         string                `json:"nummer"`
	Rechnungsdatum string                `json:"rechnungsdatum"`
	Leistungsdatum string                `json:"leistungsdatum,omitempty"`
	Faelligkeit    string                `json:"faelligkeit,omitempty"`
	Status         string                `json:"status"`
	Lines          []InvoiceLineResponse `json:"lines"`

	Zwischensumme    decimal.Decimal `json:"zwischensumme"`
	RabattBetrag     decimal.Decimal `json:"rabatt_betrag"`
	NettoSumme       decimal.Decimal `json:"netto_summe"`
	VATBetrag        decimal.Decimal `json:"vat_betrag"`
	BruttoSumme      decimal.Decimal `json:"brutto_summe"`
	SkontoBetrag     decimal.Decimal `json:"skonto_betrag,omitempty"`
	SkontoZahlbetrag decimal.Decimal `json:"skonto_zahlbetrag,omitempty"`
	SkontoFrist      *time.Time      `json:"skonto_frist,omitempty"`

	// EPC-Payloads für die QR-Anzeige; leer, wenn dem Dojo Bankdaten fehlen.
	ZahlcodeVoll   string `json:"zahlcode_voll,omitempty"`
	ZahlcodeSkonto string `json:"zahlcode_skonto,omitempty"`

	BuchungID string `json:"buchung_id,omitempty"`
}

// InvoiceLineResponse: berechnete Zeile in der Antwort.
type InvoiceLineResponse struct {
	ID            string          `json:"id"`
	ArticleID     string          `json:"article_id,omitempty"`
	Beschreibung  string          `json:"beschreibung"`
	Menge         int64           `json:"menge"`
	Einzelpreis   decimal.Decimal `json:"einzelpreis"`
	RabattProzent decimal.Decimal `json:"rabatt_prozent"`
	NetAmount     decimal.Decimal `json:"netto"`
}

// UpdateInvoiceStatusRequest: Body für PATCH /api/invoices/:id/status.
// BuchungID wird beim Übergang nach bezahlt einmalig mitgegeben.
type UpdateInvoiceStatusRequest struct {
	Status    string `json:"status" validate:"required,oneof=offen bezahlt ueberfaellig storniert"`
	BuchungID string `json:"buchung_id,omitempty"`
}
