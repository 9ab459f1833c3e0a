package entity

import "github.com/shopspring/decimal"

// LineItem ist eine Rechnungszeile. Zeilen gehören genau einer Rechnung.
// NetAmount ist der berechnete Nettobetrag nach Zeilenrabatt (nie negativ,
// solange der Aufrufer den Rabatt auf [0,100] klemmt).
type LineItem struct {
	ID            string
	InvoiceID     string
	ArticleID     string
	Beschreibung  string
	Menge         int64           // positive Stückzahl; Zeilen mit Menge <= 0 werden nicht übernommen
	Einzelpreis   decimal.Decimal // Nettopreis pro Einheit
	VATRate       decimal.Decimal // nomineller Steuersatz der Zeile in Prozent (informativ, s. TotalsEngine)
	Rabattfaehig  bool
	RabattProzent decimal.Decimal // Zeilenrabatt in Prozent, vom Aufrufer auf [0,100] geklemmt
	NetAmount     decimal.Decimal
}
