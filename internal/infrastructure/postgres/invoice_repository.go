package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/budoverein/dojokasse/internal/domain"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
	domainsepa "github.com/budoverein/dojokasse/internal/domain/sepa"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo: Persistenz-Adapter für Rechnungen (Pool oder Tx).
// Innerhalb des Tx-Runners laufen NextNumber und Create auf derselben
// Transaktion; vergebene Nummern ohne Rechnung kann es so nicht geben.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository baut den Adapter.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, dojo_id, member_id, nummer, rechnungsdatum, leistungsdatum, faelligkeit,
	rabatt_art, rabatt_wert, rabatt_basis, vat_rate, skonto_prozent, skonto_tage,
	zwischensumme, rabatt_betrag, netto_summe, vat_betrag, brutto_summe,
	skonto_betrag, skonto_zahlbetrag, skonto_frist, status, buchung_id,
	created_at, updated_at`

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice, lines []entity.LineItem) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.DojoID, inv.MemberID, inv.Nummer,
		inv.Rechnungsdatum, nullableTime(inv.Leistungsdatum), nullableTime(inv.Faelligkeit),
		string(inv.GlobalDiscount.Kind), inv.GlobalDiscount.Value, inv.RabattBasis,
		inv.VATRate, inv.SkontoProzent, inv.SkontoTage,
		inv.Zwischensumme, inv.RabattBetrag, inv.NettoSumme, inv.VATBetrag, inv.BruttoSumme,
		inv.SkontoBetrag, inv.SkontoZahlbetrag, inv.SkontoFrist,
		inv.Status, nullableString(inv.BuchungID), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	lineQuery := `
		INSERT INTO invoice_lines (id, invoice_id, article_id, beschreibung, menge,
			einzelpreis, vat_rate, rabattfaehig, rabatt_prozent, netto)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, l.InvoiceID, nullableString(l.ArticleID), l.Beschreibung, l.Menge,
			l.Einzelpreis, l.VATRate, l.Rabattfaehig, l.RabattProzent, l.NetAmount,
		); err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, COALESCE(article_id, ''), beschreibung, menge,
		       einzelpreis, vat_rate, rabattfaehig, rabatt_prozent, netto
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []entity.LineItem
	for rows.Next() {
		var l entity.LineItem
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ArticleID, &l.Beschreibung, &l.Menge,
			&l.Einzelpreis, &l.VATRate, &l.Rabattfaehig, &l.RabattProzent, &l.NetAmount); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) ListByDojo(ctx context.Context, dojoID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE dojo_id = $1 ORDER BY rechnungsdatum DESC, nummer DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, dojoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// NextNumber reserviert die nächste laufende Nummer der Jahressequenz.
// INSERT … ON CONFLICT … RETURNING ist atomar; parallele Aufrufer serialisiert
// die Zeilensperre auf (dojo_id, year).
func (r *InvoiceRepo) NextNumber(ctx context.Context, dojoID string, year int) (int, error) {
	query := `
		INSERT INTO invoice_numbers (dojo_id, year, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (dojo_id, year)
		DO UPDATE SET last_seq = invoice_numbers.last_seq + 1
		RETURNING last_seq`
	var seq int
	if err := r.q.QueryRow(ctx, query, dojoID, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return seq, nil
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) SetBuchungID(ctx context.Context, id, buchungID string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET buchung_id = $2, updated_at = NOW()
		WHERE id = $1 AND buchung_id IS NULL`, id, buchungID)
	if err != nil {
		return fmt.Errorf("set buchung_id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		inv, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		return domain.ErrConflict // Verknüpfung existiert bereits
	}
	return nil
}

// ListOutstandingDues liefert die offenen Posten (offen/ueberfaellig) bis
// einschließlich der Periode, sortiert nach Rechnungsdatum und Nummer: die
// Vorschau gruppiert nach erstem Auftreten, die Reihenfolge muss stabil sein.
func (r *InvoiceRepo) ListOutstandingDues(ctx context.Context, dojoID string, until time.Time) ([]domainsepa.OutstandingDue, error) {
	query := `
		SELECT i.member_id, m.vorname || ' ' || m.nachname,
		       to_char(i.rechnungsdatum, 'YYYY-MM'), i.rechnungsdatum, i.brutto_summe
		FROM invoices i
		JOIN members m ON m.id = i.member_id
		WHERE i.dojo_id = $1
		  AND i.status IN ('offen', 'ueberfaellig')
		  AND i.rechnungsdatum <= $2
		ORDER BY i.rechnungsdatum, i.nummer`
	rows, err := r.q.Query(ctx, query, dojoID, until)
	if err != nil {
		return nil, fmt.Errorf("list outstanding dues: %w", err)
	}
	defer rows.Close()
	var dues []domainsepa.OutstandingDue
	for rows.Next() {
		var d domainsepa.OutstandingDue
		if err := rows.Scan(&d.MemberID, &d.Zahlername, &d.Periode, &d.Datum, &d.Betrag); err != nil {
			return nil, fmt.Errorf("scan due: %w", err)
		}
		dues = append(dues, d)
	}
	return dues, rows.Err()
}

// scanInvoice liest eine Rechnungszeile; NULL-Spalten (Daten, Buchung) werden
// auf die Nullwerte der Entität abgebildet.
func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var rabattArt string
	var leistungsdatum, faelligkeit *time.Time
	var buchungID *string
	err := row.Scan(
		&inv.ID, &inv.DojoID, &inv.MemberID, &inv.Nummer,
		&inv.Rechnungsdatum, &leistungsdatum, &faelligkeit,
		&rabattArt, &inv.GlobalDiscount.Value, &inv.RabattBasis,
		&inv.VATRate, &inv.SkontoProzent, &inv.SkontoTage,
		&inv.Zwischensumme, &inv.RabattBetrag, &inv.NettoSumme, &inv.VATBetrag, &inv.BruttoSumme,
		&inv.SkontoBetrag, &inv.SkontoZahlbetrag, &inv.SkontoFrist,
		&inv.Status, &buchungID, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.GlobalDiscount.Kind = entity.DiscountKind(rabattArt)
	if leistungsdatum != nil {
		inv.Leistungsdatum = *leistungsdatum
	}
	if faelligkeit != nil {
		inv.Faelligkeit = *faelligkeit
	}
	if buchungID != nil {
		inv.BuchungID = *buchungID
	}
	return &inv, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
