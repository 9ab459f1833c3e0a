package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article ist eine fakturierbare Position aus dem Artikelkatalog
// (Monatsbeitrag, Prüfungsgebühr, Ausrüstung usw.).
type Article struct {
	ID           string
	DojoID       string
	Name         string
	Preis        decimal.Decimal // Nettopreis pro Einheit
	VATRate      decimal.Decimal // Steuersatz in Prozent (z.B. 19)
	Rabattfaehig bool            // darf ein Zeilenrabatt angewandt werden
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
