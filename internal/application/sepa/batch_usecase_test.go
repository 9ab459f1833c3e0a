package sepa

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/domain"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
	domainsepa "github.com/budoverein/dojokasse/internal/domain/sepa"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-Memory-Fakes für die Batch-Ports. Die Uhr des Use Case wird in den Tests
// fest verdrahtet: Vorlauf-Regeln sind ohne deterministisches "heute" nicht
// sinnvoll prüfbar.
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
	txs     map[string][]entity.BatchTransaction
	creates int
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: map[string]*entity.Batch{}, txs: map[string][]entity.BatchTransaction{}}
}

func (f *fakeBatchRepo) Create(_ context.Context, b *entity.Batch, txs []entity.BatchTransaction) error {
	cp := *b
	f.batches[b.ID] = &cp
	f.txs[b.ID] = txs
	f.creates++
	return nil
}

func (f *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBatchRepo) ListByDojo(_ context.Context, _ string, _, _ int) ([]*entity.Batch, error) {
	return nil, nil
}

func (f *fakeBatchRepo) GetTransactions(_ context.Context, batchID string) ([]entity.BatchTransaction, error) {
	return f.txs[batchID], nil
}

func (f *fakeBatchRepo) UpdateStatus(_ context.Context, id, status string) error {
	b, ok := f.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

type fakeDuesRepo struct {
	repository.InvoiceRepository // nur ListOutstandingDues wird hier gebraucht
	dues                         []domainsepa.OutstandingDue
}

func (f *fakeDuesRepo) ListOutstandingDues(_ context.Context, _ string, _ time.Time) ([]domainsepa.OutstandingDue, error) {
	return f.dues, nil
}

type fakeMandateRepo struct {
	repository.MandateRepository
	aktive []*entity.Mandate
}

func (f *fakeMandateRepo) ListAktivByDojo(_ context.Context, _ string) ([]*entity.Mandate, error) {
	return f.aktive, nil
}

type fakeDojoRepo struct{ dojo *entity.Dojo }

func (f *fakeDojoRepo) Create(_ context.Context, _ *entity.Dojo) error { return nil }
func (f *fakeDojoRepo) Update(_ context.Context, _ *entity.Dojo) error { return nil }

func (f *fakeDojoRepo) GetByID(_ context.Context, id string) (*entity.Dojo, error) {
	if f.dojo != nil && f.dojo.ID == id {
		return f.dojo, nil
	}
	return nil, domain.ErrNotFound
}

type fakeSepaTxRunner struct{ repo repository.BatchRepository }

func (f *fakeSepaTxRunner) RunSepa(ctx context.Context, fn func(repository.BatchRepository) error) error {
	return fn(f.repo)
}

// fakeBuilder serialisiert deterministisch: Referenz plus Postenzahl.
type fakeBuilder struct{ calls int }

func (f *fakeBuilder) Build(_ *entity.Dojo, b *entity.Batch, txs []entity.BatchTransaction) ([]byte, error) {
	f.calls++
	return []byte(fmt.Sprintf("<pain008 ref=%q txs=%d>", b.Referenz, len(txs))), nil
}

const testDojoID = "dojo-1"

// heute ist ein Montag; der Mindestvorlauf von 5 Kalendertagen endet am Samstag.
var heute = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestBatchUseCase(dues []domainsepa.OutstandingDue, aktive []*entity.Mandate) (*BatchUseCase, *fakeBatchRepo, *fakeBuilder) {
	batchRepo := newFakeBatchRepo()
	builder := &fakeBuilder{}
	uc := NewBatchUseCase(
		&fakeSepaTxRunner{repo: batchRepo},
		batchRepo,
		&fakeDuesRepo{dues: dues},
		&fakeMandateRepo{aktive: aktive},
		&fakeDojoRepo{dojo: &entity.Dojo{
			ID:           testDojoID,
			Name:         "Budoverein Musterstadt e.V.",
			IBAN:         "DE89370400440532013000",
			BIC:          "COBADEFFXXX",
			GlaeubigerID: "DE98ZZZ09999999999",
		}},
		builder,
		5,
	)
	uc.now = func() time.Time { return heute }
	return uc, batchRepo, builder
}

func testDues() []domainsepa.OutstandingDue {
	datum := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []domainsepa.OutstandingDue{
		{MemberID: "m1", Zahlername: "Aiko Tanaka", Periode: "2025-03", Datum: datum, Betrag: decimal.NewFromInt(30)},
		{MemberID: "m2", Zahlername: "Ben Vogel", Periode: "2025-03", Datum: datum, Betrag: decimal.NewFromInt(25)},
	}
}

func testMandate(memberID string) *entity.Mandate {
	return &entity.Mandate{
		ID:             "mandat-" + memberID,
		DojoID:         testDojoID,
		MemberID:       memberID,
		Referenz:       "M-2024-" + memberID,
		IBAN:           "DE89370400440532013000",
		Unterschrieben: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:         entity.MandateStatusAktiv,
	}
}

// ── Vorlaufzeit ───────────────────────────────────────────────────────────────

// Die Oberfläche spricht von "5 Werktagen", gezählt werden aber Kalendertage:
// vom Montag (10.03.) aus ist Samstag, der 15.03., das früheste zulässige
// Einzugsdatum, obwohl dazwischen nur 4 Werktage liegen. Dieser Test pinnt das
// beobachtete Verhalten fest.
func TestCreateBatch_VorlaufKalendertageNichtWerktage(t *testing.T) {
	uc, repo, _ := newTestBatchUseCase(testDues(), []*entity.Mandate{testMandate("m1")})

	_, err := uc.CreateBatch(context.Background(), testDojoID, dto.CreateBatchRequest{
		Periode:      "2025-03",
		Einzugsdatum: "2025-03-14", // 4 Kalendertage: zu früh
	})
	assert.ErrorIs(t, err, domain.ErrVorlaufzeit)
	assert.Zero(t, repo.creates, "ein abgelehnter Lauf darf nichts persistieren")

	resp, err := uc.CreateBatch(context.Background(), testDojoID, dto.CreateBatchRequest{
		Periode:      "2025-03",
		Einzugsdatum: "2025-03-15", // genau 5 Kalendertage: zulässig
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusErstellt, resp.Status)
}

// ── Einfrieren der Posten ─────────────────────────────────────────────────────

func TestCreateBatch_FriertNurEinzugsfaehigePostenEin(t *testing.T) {
	// m2 hat kein Mandat und bleibt draußen.
	uc, repo, _ := newTestBatchUseCase(testDues(), []*entity.Mandate{testMandate("m1")})

	resp, err := uc.CreateBatch(context.Background(), testDojoID, dto.CreateBatchRequest{
		Periode:      "2025-03",
		Einzugsdatum: "2025-03-20",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AnzahlPosten)
	assert.True(t, resp.Gesamtbetrag.Equal(decimal.NewFromInt(30)))

	txs, err := repo.GetTransactions(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Aiko Tanaka", txs[0].Zahlername)
	assert.Equal(t, "M-2024-m1", txs[0].MandatsReferenz)
	assert.Equal(t, "Mitgliedsbeitrag 2025-03", txs[0].Verwendungszweck)
}

func TestCreateBatch_OhneEinzugsfaehigePosten(t *testing.T) {
	uc, repo, _ := newTestBatchUseCase(testDues(), nil) // niemand hat ein Mandat

	_, err := uc.CreateBatch(context.Background(), testDojoID, dto.CreateBatchRequest{
		Periode:      "2025-03",
		Einzugsdatum: "2025-03-20",
	})
	assert.ErrorIs(t, err, domain.ErrKeineTransaktionen)
	assert.Zero(t, repo.creates)
}

// ── Export und Statusmaschine ─────────────────────────────────────────────────

func TestExportXML_IdempotenteRegeneration(t *testing.T) {
	uc, _, builder := newTestBatchUseCase(testDues(), []*entity.Mandate{testMandate("m1")})
	resp, err := uc.CreateBatch(context.Background(), testDojoID, dto.CreateBatchRequest{
		Periode:      "2025-03",
		Einzugsdatum: "2025-03-20",
	})
	require.NoError(t, err)

	xml1, err := uc.ExportXML(context.Background(), testDojoID, resp.ID)
	require.NoError(t, err)

	b, err := uc.batchRepo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusExportiert, b.Status, "erster Export schaltet auf exportiert")

	xml2, err := uc.ExportXML(context.Background(), testDojoID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, xml1, xml2, "Regeneration liefert das identische Artefakt")

	b, err = uc.batchRepo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusExportiert, b.Status, "Regeneration schaltet den Status nicht weiter")
	assert.Equal(t, 2, builder.calls)
}

func TestExportXML_GesperrtNachEinreichung(t *testing.T) {
	uc, _, _ := newTestBatchUseCase(testDues(), []*entity.Mandate{testMandate("m1")})
	resp, err := uc.CreateBatch(context.Background(), testDojoID, dto.CreateBatchRequest{
		Periode:      "2025-03",
		Einzugsdatum: "2025-03-20",
	})
	require.NoError(t, err)

	_, err = uc.ExportXML(context.Background(), testDojoID, resp.ID)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), testDojoID, resp.ID,
		dto.UpdateBatchStatusRequest{Status: entity.BatchStatusEingereicht})
	require.NoError(t, err)

	_, err = uc.ExportXML(context.Background(), testDojoID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrStatusUebergang, "nach der Einreichung ist der Export gesperrt")
}

func TestUpdateStatus_KeinSprungUeberExport(t *testing.T) {
	uc, _, _ := newTestBatchUseCase(testDues(), []*entity.Mandate{testMandate("m1")})
	resp, err := uc.CreateBatch(context.Background(), testDojoID, dto.CreateBatchRequest{
		Periode:      "2025-03",
		Einzugsdatum: "2025-03-20",
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), testDojoID, resp.ID,
		dto.UpdateBatchStatusRequest{Status: entity.BatchStatusEingereicht})
	assert.ErrorIs(t, err, domain.ErrStatusUebergang,
		"erstellt -> eingereicht überspringt den Export und ist verboten")
}

// ── Vorschau ──────────────────────────────────────────────────────────────────

func TestPreview_SentinelUndSumme(t *testing.T) {
	uc, _, _ := newTestBatchUseCase(testDues(), []*entity.Mandate{testMandate("m1")})

	p, err := uc.Preview(context.Background(), testDojoID, "2025-03")
	require.NoError(t, err)

	require.Len(t, p.Rows, 2)
	assert.Equal(t, domainsepa.KeinMandat, p.Rows[1].MandatsReferenz)
	assert.True(t, p.EinzugsfaehigSumme.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 1, p.OhneMandat)
}
