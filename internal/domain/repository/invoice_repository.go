package repository

import (
	"context"
	"time"

	"github.com/budoverein/dojokasse/internal/domain/entity"
	domainsepa "github.com/budoverein/dojokasse/internal/domain/sepa"
)

// InvoiceRepository definiert den Persistenz-Port für Rechnungen.
// Create und NextNumber laufen innerhalb derselben Transaktion des Tx-Runners:
// eine vergebene Rechnungsnummer ohne gespeicherte Rechnung wäre ein Loch in der
// fortlaufenden Nummerierung.
type InvoiceRepository interface {
	// Create persistiert Kopf und Zeilen atomar.
	Create(ctx context.Context, invoice *entity.Invoice, lines []entity.LineItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetLines(ctx context.Context, invoiceID string) ([]entity.LineItem, error)
	ListByDojo(ctx context.Context, dojoID string, limit, offset int) ([]*entity.Invoice, error)

	// NextNumber reserviert die nächste laufende Nummer der Jahressequenz des
	// Dojos (invoice_numbers: INSERT … ON CONFLICT … RETURNING). Einmal vergeben,
	// wird eine Nummer nie wiederverwendet.
	NextNumber(ctx context.Context, dojoID string, year int) (int, error)

	// UpdateStatus persistiert einen bereits validierten Statusübergang.
	UpdateStatus(ctx context.Context, id, status string) error

	// SetBuchungID verknüpft die Rechnung einmalig mit ihrer Buchung.
	// Liefert domain.ErrConflict, wenn bereits eine Verknüpfung existiert.
	SetBuchungID(ctx context.Context, id, buchungID string) error

	// ListOutstandingDues liefert die offenen Beitragsposten aller Mitglieder
	// des Dojos bis einschließlich der Periode (Rechnungen im Status "offen"
	// oder "ueberfaellig"). Rohdaten für die Einzugsvorschau.
	ListOutstandingDues(ctx context.Context, dojoID string, until time.Time) ([]domainsepa.OutstandingDue, error)
}
