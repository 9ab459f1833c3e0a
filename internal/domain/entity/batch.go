package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budoverein/dojokasse/internal/domain"
)

// Lauf-Status, strikt vorwärts: erstellt -> exportiert -> eingereicht -> ausgefuehrt.
// In "exportiert" darf das XML-Artefakt idempotent neu erzeugt werden, ohne den
// Status weiterzuschalten.
const (
	BatchStatusErstellt    = "erstellt"
	BatchStatusExportiert  = "exportiert"
	BatchStatusEingereicht = "eingereicht"
	BatchStatusAusgefuehrt = "ausgefuehrt"
)

// Batch ist ein SEPA-Lastschriftlauf. Die Transaktionsmenge wird beim Anlegen
// aus den aktiven Mandaten mit offenen Posten eingefroren und danach nie verändert.
type Batch struct {
	ID           string
	DojoID       string
	Referenz     string    // Lauf-Referenz (MsgId im pain.008)
	Erstellt     time.Time // Anlagedatum
	Einzugsdatum time.Time // gewünschtes Ausführungsdatum (ReqdColltnDt)
	AnzahlPosten int
	Gesamtbetrag decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BatchTransaction ist ein eingefrorener Einzugsposten eines Laufs.
type BatchTransaction struct {
	ID               string
	BatchID          string
	MemberID         string
	Zahlername       string
	IBAN             string
	Betrag           decimal.Decimal
	MandatsReferenz  string
	MandatsDatum     time.Time // Unterschriftsdatum des Mandats
	Verwendungszweck string
}

// batchOrder bildet die strikte Vorwärtsreihenfolge ab.
var batchOrder = map[string]int{
	BatchStatusErstellt:    0,
	BatchStatusExportiert:  1,
	BatchStatusEingereicht: 2,
	BatchStatusAusgefuehrt: 3,
}

// TransitionTo schaltet genau einen Schritt vorwärts oder liefert ErrStatusUebergang.
// Sprünge und Rückwärtsübergänge sind nicht erlaubt.
func (b *Batch) TransitionTo(status string) error {
	from, okFrom := batchOrder[b.Status]
	to, okTo := batchOrder[status]
	if !okFrom || !okTo || to != from+1 {
		return domain.ErrStatusUebergang
	}
	b.Status = status
	return nil
}

// CanExport meldet, ob das pain.008-Artefakt erzeugt werden darf:
// beim ersten Export (erstellt) und bei idempotenter Regeneration (exportiert).
func (b *Batch) CanExport() bool {
	return b.Status == BatchStatusErstellt || b.Status == BatchStatusExportiert
}
