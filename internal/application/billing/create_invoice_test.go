package billing

import (
	"context"
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
// In-Memory-Fakes: der Use Case wird gegen die Ports getestet, ohne Datenbank.
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string][]entity.LineItem
	lastSeq  map[int]int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		lines:    map[string][]entity.LineItem{},
		lastSeq:  map[int]int{},
	}
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice, lines []entity.LineItem) error {
	cp := *inv
	f.invoices[inv.ID] = &cp
	f.lines[inv.ID] = lines
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) GetLines(_ context.Context, invoiceID string) ([]entity.LineItem, error) {
	return f.lines[invoiceID], nil
}

func (f *fakeInvoiceRepo) ListByDojo(_ context.Context, dojoID string, _, _ int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.DojoID == dojoID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) NextNumber(_ context.Context, _ string, year int) (int, error) {
	f.lastSeq[year]++
	return f.lastSeq[year], nil
}

func (f *fakeInvoiceRepo) UpdateStatus(_ context.Context, id, status string) error {
	inv, ok := f.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (f *fakeInvoiceRepo) SetBuchungID(_ context.Context, id, buchungID string) error {
	inv, ok := f.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.BuchungID != "" {
		return domain.ErrConflict
	}
	inv.BuchungID = buchungID
	return nil
}

func (f *fakeInvoiceRepo) ListOutstandingDues(_ context.Context, _ string, _ time.Time) ([]domainsepa.OutstandingDue, error) {
	return nil, nil
}

type fakeTxRunner struct{ repo repository.InvoiceRepository }

func (f *fakeTxRunner) RunBilling(ctx context.Context, fn func(repository.InvoiceRepository) error) error {
	return fn(f.repo)
}

type fakeMemberRepo struct{ members map[string]*entity.Member }

func (f *fakeMemberRepo) Create(_ context.Context, m *entity.Member) error {
	f.members[m.ID] = m
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id string) (*entity.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (f *fakeMemberRepo) ListByDojo(_ context.Context, _ string, _, _ int) ([]*entity.Member, error) {
	return nil, nil
}

func (f *fakeMemberRepo) Update(_ context.Context, _ *entity.Member) error { return nil }

type fakeDojoRepo struct{ dojo *entity.Dojo }

func (f *fakeDojoRepo) Create(_ context.Context, _ *entity.Dojo) error { return nil }
func (f *fakeDojoRepo) Update(_ context.Context, _ *entity.Dojo) error { return nil }

func (f *fakeDojoRepo) GetByID(_ context.Context, id string) (*entity.Dojo, error) {
	if f.dojo != nil && f.dojo.ID == id {
		return f.dojo, nil
	}
	return nil, domain.ErrNotFound
}

const (
	testDojoID   = "dojo-1"
	testMemberID = "member-1"
)

func newTestUseCase() (*InvoiceUseCase, *fakeInvoiceRepo) {
	invoiceRepo := newFakeInvoiceRepo()
	memberRepo := &fakeMemberRepo{members: map[string]*entity.Member{
		testMemberID: {ID: testMemberID, DojoID: testDojoID, Vorname: "Aiko", Nachname: "Tanaka"},
	}}
	dojoRepo := &fakeDojoRepo{dojo: &entity.Dojo{
		ID:   testDojoID,
		Name: "Budoverein Musterstadt e.V.",
		IBAN: "DE89370400440532013000",
		BIC:  "COBADEFFXXX",
	}}
	uc := NewInvoiceUseCase(
		&fakeTxRunner{repo: invoiceRepo},
		invoiceRepo, memberRepo, dojoRepo,
		domainsepa.NewEPCEncoder(),
		nil, // PDF wird hier nicht gerendert
	)
	return uc, invoiceRepo
}

func buildCreateRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		MemberID:       testMemberID,
		Rechnungsdatum: "2025-01-01",
		Lines: []dto.InvoiceLineRequest{
			{Beschreibung: "Monatsbeitrag Januar", Menge: 1, Einzelpreis: decimal.NewFromInt(100)},
		},
	}
}

func TestCreateInvoice_SummenUndNummer(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.CreateInvoice(context.Background(), testDojoID, buildCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "R-2025-001", resp.Nummer, "erste Nummer der Jahressequenz")
	assert.Equal(t, entity.InvoiceStatusOffen, resp.Status)
	assert.True(t, resp.Zwischensumme.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.BruttoSumme.Equal(decimal.NewFromFloat(119)), "19 Prozent Standardsteuersatz")
	assert.NotEmpty(t, resp.ZahlcodeVoll, "mit Bankdaten des Dojos entsteht der EPC-Payload")
	assert.Empty(t, resp.ZahlcodeSkonto, "ohne Skonto-Konditionen kein zweiter Code")
	require.Len(t, resp.Lines, 1)
}

func TestCreateInvoice_FortlaufendeNummern(t *testing.T) {
	uc, _ := newTestUseCase()

	r1, err := uc.CreateInvoice(context.Background(), testDojoID, buildCreateRequest())
	require.NoError(t, err)
	r2, err := uc.CreateInvoice(context.Background(), testDojoID, buildCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "R-2025-001", r1.Nummer)
	assert.Equal(t, "R-2025-002", r2.Nummer)
}

// Das Leistungsdatum ist optional, muss aber aus dem Request auf der
// persistierten Rechnung und im Response landen.
func TestCreateInvoice_LeistungsdatumWirdUebernommen(t *testing.T) {
	uc, repo := newTestUseCase()
	in := buildCreateRequest()
	in.Leistungsdatum = "2025-01-15"

	resp, err := uc.CreateInvoice(context.Background(), testDojoID, in)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", resp.Leistungsdatum)

	gespeichert := repo.invoices[resp.ID]
	require.NotNil(t, gespeichert)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), gespeichert.Leistungsdatum,
		"Leistungsdatum aus dem Request muss auf der Rechnung landen")
}

func TestCreateInvoice_LeistungsdatumUngueltigesFormat(t *testing.T) {
	uc, _ := newTestUseCase()
	in := buildCreateRequest()
	in.Leistungsdatum = "15.01.2025"

	_, err := uc.CreateInvoice(context.Background(), testDojoID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_SkontoErzeugtZweitenZahlcode(t *testing.T) {
	uc, _ := newTestUseCase()
	in := buildCreateRequest()
	skonto := decimal.NewFromInt(3)
	tage := 7
	in.SkontoProzent = &skonto
	in.SkontoTage = &tage

	resp, err := uc.CreateInvoice(context.Background(), testDojoID, in)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ZahlcodeVoll)
	assert.NotEmpty(t, resp.ZahlcodeSkonto)
	assert.NotEqual(t, resp.ZahlcodeVoll, resp.ZahlcodeSkonto)
	assert.True(t, resp.SkontoZahlbetrag.LessThan(resp.BruttoSumme))
	require.NotNil(t, resp.SkontoFrist)
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), *resp.SkontoFrist)
}

// Ohne expliziten Tageswert wird die Skontofrist aus der Fälligkeit abgeleitet.
func TestCreateInvoice_SkontoTageAusFaelligkeit(t *testing.T) {
	uc, _ := newTestUseCase()
	in := buildCreateRequest()
	skonto := decimal.NewFromInt(2)
	in.SkontoProzent = &skonto
	in.Faelligkeit = "2025-01-08"

	resp, err := uc.CreateInvoice(context.Background(), testDojoID, in)
	require.NoError(t, err)

	require.NotNil(t, resp.SkontoFrist)
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), *resp.SkontoFrist,
		"7 Kalendertage aus 2025-01-01 bis 2025-01-08")
}

func TestCreateInvoice_NurUngueltigeZeilen(t *testing.T) {
	uc, _ := newTestUseCase()
	in := buildCreateRequest()
	in.Lines = []dto.InvoiceLineRequest{
		{Beschreibung: "", Menge: 1, Einzelpreis: decimal.NewFromInt(50)},
		{Beschreibung: "Noch nicht ausgefüllt", Menge: 0, Einzelpreis: decimal.NewFromInt(50)},
	}

	_, err := uc.CreateInvoice(context.Background(), testDojoID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"werden alle Zeilen vom Eingabe-Gate verworfen, ist der Entwurf ungültig")
}

func TestCreateInvoice_BeideRabattVarianten(t *testing.T) {
	uc, _ := newTestUseCase()
	in := buildCreateRequest()
	p := decimal.NewFromInt(10)
	b := decimal.NewFromInt(5)
	in.RabattProzent = &p
	in.RabattBetrag = &b

	_, err := uc.CreateInvoice(context.Background(), testDojoID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_FremdesMitglied(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.CreateInvoice(context.Background(), "anderes-dojo", buildCreateRequest())
	assert.Error(t, err)
}

// ── Statusübergänge ───────────────────────────────────────────────────────────

func TestUpdateStatus_OffenNachBezahltMitBuchung(t *testing.T) {
	uc, repo := newTestUseCase()
	resp, err := uc.CreateInvoice(context.Background(), testDojoID, buildCreateRequest())
	require.NoError(t, err)

	err = uc.UpdateStatus(context.Background(), testDojoID, resp.ID, dto.UpdateInvoiceStatusRequest{
		Status:    entity.InvoiceStatusBezahlt,
		BuchungID: "B-2025-042",
	})
	require.NoError(t, err)

	inv, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusBezahlt, inv.Status)
	assert.Equal(t, "B-2025-042", inv.BuchungID)
}

func TestUpdateStatus_TerminalerStatus(t *testing.T) {
	uc, _ := newTestUseCase()
	resp, err := uc.CreateInvoice(context.Background(), testDojoID, buildCreateRequest())
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(context.Background(), testDojoID, resp.ID,
		dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusStorniert}))

	err = uc.UpdateStatus(context.Background(), testDojoID, resp.ID,
		dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusBezahlt})
	assert.ErrorIs(t, err, domain.ErrStatusUebergang, "storniert ist terminal")
}
