package sepa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/domain"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
	domainsepa "github.com/budoverein/dojokasse/internal/domain/sepa"
)

// BatchUseCase: Einzugsvorschau und Lebenszyklus der Lastschriftläufe.
// Die Transaktionsmenge eines Laufs wird beim Anlegen aus der Vorschau
// eingefroren und danach nie verändert; der pain.008-Export arbeitet
// ausschließlich auf den eingefrorenen Posten.
type BatchUseCase struct {
	txRunner    SepaTxRunner
	batchRepo   repository.BatchRepository
	invoiceRepo repository.InvoiceRepository
	mandateRepo repository.MandateRepository
	dojoRepo    repository.DojoRepository
	builder     Pain008Builder
	minLeadDays int

	now func() time.Time // injizierbar für Tests
}

// NewBatchUseCase baut den Use Case. minLeadDays ist der Mindestvorlauf des
// Einzugsdatums in Kalendertagen (Konfiguration, Default 5).
func NewBatchUseCase(
	txRunner SepaTxRunner,
	batchRepo repository.BatchRepository,
	invoiceRepo repository.InvoiceRepository,
	mandateRepo repository.MandateRepository,
	dojoRepo repository.DojoRepository,
	builder Pain008Builder,
	minLeadDays int,
) *BatchUseCase {
	return &BatchUseCase{
		txRunner:    txRunner,
		batchRepo:   batchRepo,
		invoiceRepo: invoiceRepo,
		mandateRepo: mandateRepo,
		dojoRepo:    dojoRepo,
		builder:     builder,
		minLeadDays: minLeadDays,
		now:         time.Now,
	}
}

// Preview baut die Einzugsvorschau der Abrechnungsperiode: offene Posten bis
// einschließlich der Periode, gruppiert je Zahler, mit aufgelöstem Mandat oder
// dem Sentinel "KEIN MANDAT". Reine Leseoperation.
func (uc *BatchUseCase) Preview(ctx context.Context, dojoID, periode string) (*dto.PreviewResponse, error) {
	until, err := periodEnd(periode)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.buildPreview(ctx, dojoID, until)
	if err != nil {
		return nil, err
	}

	resp := &dto.PreviewResponse{
		Periode:            periode,
		Rows:               make([]dto.PreviewRowResponse, 0, len(p.Rows)),
		EinzugsfaehigSumme: p.EinzugsfaehigSumme,
		OhneMandat:         p.OhneMandat,
	}
	for _, row := range p.Rows {
		r := dto.PreviewRowResponse{
			MemberID:        row.MemberID,
			Zahlername:      row.Zahlername,
			Gesamtbetrag:    row.Gesamtbetrag,
			MandatsReferenz: row.MandatsReferenz,
			Einzugsfaehig:   row.Einzugsfaehig,
		}
		for _, po := range row.Posten {
			r.Posten = append(r.Posten, dto.PreviewPostenResponse{Periode: po.Periode, Betrag: po.Betrag})
		}
		resp.Rows = append(resp.Rows, r)
	}
	return resp, nil
}

// CreateBatch legt einen Lauf an. Das Einzugsdatum muss mindestens minLeadDays
// Kalendertage in der Zukunft liegen; andernfalls wird mit ErrVorlaufzeit
// abgelehnt, bevor irgendetwas persistiert wird. Ohne einzugsfähige Posten
// entsteht kein Lauf (ErrKeineTransaktionen).
func (uc *BatchUseCase) CreateBatch(ctx context.Context, dojoID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	until, err := periodEnd(in.Periode)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	einzugsdatum, err := time.Parse("2006-01-02", in.Einzugsdatum)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	heute := truncateDay(uc.now())
	if einzugsdatum.Before(heute.AddDate(0, 0, uc.minLeadDays)) {
		return nil, domain.ErrVorlaufzeit
	}

	p, err := uc.buildPreview(ctx, dojoID, until)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	txs := make([]entity.BatchTransaction, 0, len(p.Rows))
	for _, row := range p.Rows {
		if !row.Einzugsfaehig {
			continue
		}
		txs = append(txs, entity.BatchTransaction{
			ID:               uuid.New().String(),
			BatchID:          batchID,
			MemberID:         row.MemberID,
			Zahlername:       row.Zahlername,
			IBAN:             row.IBAN,
			Betrag:           row.Gesamtbetrag,
			MandatsReferenz:  row.MandatsReferenz,
			MandatsDatum:     row.MandatsDatum,
			Verwendungszweck: verwendungszweck(in.Periode, row),
		})
	}
	if len(txs) == 0 {
		return nil, domain.ErrKeineTransaktionen
	}

	now := uc.now()
	batch := &entity.Batch{
		ID:           batchID,
		DojoID:       dojoID,
		Referenz:     batchReferenz(in.Periode, batchID),
		Erstellt:     truncateDay(now),
		Einzugsdatum: einzugsdatum,
		AnzahlPosten: len(txs),
		Gesamtbetrag: p.EinzugsfaehigSumme,
		Status:       entity.BatchStatusErstellt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunSepa(ctx, func(batchRepo repository.BatchRepository) error {
		return batchRepo.Create(ctx, batch, txs)
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// ExportXML erzeugt das pain.008-Dokument des Laufs. Beim ersten Export wird
// der Status von erstellt auf exportiert geschaltet; in exportiert darf das
// Artefakt beliebig oft byte-identisch regeneriert werden. Ab eingereicht ist
// der Export gesperrt.
func (uc *BatchUseCase) ExportXML(ctx context.Context, dojoID, id string) ([]byte, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil || batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}
	if !batch.CanExport() {
		return nil, domain.ErrStatusUebergang
	}

	dojo, err := uc.dojoRepo.GetByID(ctx, dojoID)
	if err != nil || dojo == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.batchRepo.GetTransactions(ctx, id)
	if err != nil {
		return nil, err
	}
	xml, err := uc.builder.Build(dojo, batch, txs)
	if err != nil {
		return nil, err
	}

	if batch.Status == entity.BatchStatusErstellt {
		if err := uc.batchRepo.UpdateStatus(ctx, id, entity.BatchStatusExportiert); err != nil {
			return nil, err
		}
	}
	return xml, nil
}

// UpdateStatus schaltet den Lauf vorwärts (eingereicht, ausgefuehrt).
// Der Schritt nach exportiert läuft ausschließlich über ExportXML.
func (uc *BatchUseCase) UpdateStatus(ctx context.Context, dojoID, id string, in dto.UpdateBatchStatusRequest) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil || batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}
	if err := batch.TransitionTo(in.Status); err != nil {
		return nil, err
	}
	if err := uc.batchRepo.UpdateStatus(ctx, id, batch.Status); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// GetBatch liefert einen Lauf des Dojos.
func (uc *BatchUseCase) GetBatch(ctx context.Context, dojoID, id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil || batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}
	return toBatchResponse(batch), nil
}

// ListBatches liefert die Läufe des Dojos.
func (uc *BatchUseCase) ListBatches(ctx context.Context, dojoID string, page dto.PageRequest) ([]*dto.BatchResponse, error) {
	page.DefaultPage()
	batches, err := uc.batchRepo.ListByDojo(ctx, dojoID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

func (uc *BatchUseCase) buildPreview(ctx context.Context, dojoID string, until time.Time) (*domainsepa.Preview, error) {
	dues, err := uc.invoiceRepo.ListOutstandingDues(ctx, dojoID, until)
	if err != nil {
		return nil, err
	}
	aktive, err := uc.mandateRepo.ListAktivByDojo(ctx, dojoID)
	if err != nil {
		return nil, err
	}
	mandates := make(map[string]*entity.Mandate, len(aktive))
	for _, m := range aktive {
		mandates[m.MemberID] = m
	}
	p := domainsepa.BuildPreview(dues, mandates)
	return &p, nil
}

// periodEnd liefert den letzten Tag der Abrechnungsperiode "YYYY-MM".
func periodEnd(periode string) (time.Time, error) {
	t, err := time.Parse("2006-01", periode)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 1, -1), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// verwendungszweck baut den Buchungstext eines Postens aus Periode und
// Postenzahl; Bankzeilen sind auf 140 Zeichen begrenzt, der Text bleibt knapp.
func verwendungszweck(periode string, row domainsepa.CollectionRow) string {
	if len(row.Posten) == 1 {
		return fmt.Sprintf("Mitgliedsbeitrag %s", row.Posten[0].Periode)
	}
	return fmt.Sprintf("Mitgliedsbeitraege bis %s (%d Posten)", periode, len(row.Posten))
}

// batchReferenz baut die Lauf-Referenz (zugleich MsgId im pain.008).
func batchReferenz(periode, id string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("SDD-%s-%s", strings.ReplaceAll(periode, "-", ""), suffix)
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:           b.ID,
		DojoID:       b.DojoID,
		Referenz:     b.Referenz,
		Erstellt:     b.Erstellt.Format("2006-01-02"),
		Einzugsdatum: b.Einzugsdatum.Format("2006-01-02"),
		AnzahlPosten: b.AnzahlPosten,
		Gesamtbetrag: b.Gesamtbetrag,
		Status:       b.Status,
	}
}
