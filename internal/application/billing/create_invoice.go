package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/domain"
	domainbilling "github.com/budoverein/dojokasse/internal/domain/billing"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
	domainsepa "github.com/budoverein/dojokasse/internal/domain/sepa"
)

const dateLayout = "2006-01-02"

// InvoiceUseCase erstellt Rechnungen aus Entwürfen und liest sie wieder aus.
// Die Summen kommen ausschließlich aus dem Rechenkern; der Use Case validiert
// Eingaben, vergibt die Nummer und persistiert.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	memberRepo  repository.MemberRepository
	dojoRepo    repository.DojoRepository
	encoder     *domainsepa.EPCEncoder
	pdf         PDFRenderer
}

// NewInvoiceUseCase baut den Use Case.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	memberRepo repository.MemberRepository,
	dojoRepo repository.DojoRepository,
	encoder *domainsepa.EPCEncoder,
	pdf PDFRenderer,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		memberRepo:  memberRepo,
		dojoRepo:    dojoRepo,
		encoder:     encoder,
		pdf:         pdf,
	}
}

// CreateInvoice validiert den Entwurf, rechnet die Summen, vergibt die nächste
// Nummer der Jahressequenz und persistiert Kopf und Zeilen in einer Transaktion.
// Zeilen mit Menge <= 0 oder leerer Beschreibung werden still verworfen; bleibt
// danach keine Zeile übrig, ist der Entwurf ungültig.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, dojoID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.MemberID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	rechnungsdatum, err := time.Parse(dateLayout, in.Rechnungsdatum)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var leistungsdatum time.Time
	if in.Leistungsdatum != "" {
		if leistungsdatum, err = time.Parse(dateLayout, in.Leistungsdatum); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	var faelligkeit time.Time
	if in.Faelligkeit != "" {
		if faelligkeit, err = time.Parse(dateLayout, in.Faelligkeit); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	member, err := uc.memberRepo.GetByID(ctx, in.MemberID)
	if err != nil || member == nil {
		return nil, domain.ErrNotFound
	}
	if member.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}
	dojo, err := uc.dojoRepo.GetByID(ctx, dojoID)
	if err != nil || dojo == nil {
		return nil, domain.ErrNotFound
	}

	draft, err := buildDraft(in, rechnungsdatum, faelligkeit)
	if err != nil {
		return nil, err
	}
	if len(domainbilling.AcceptedLines(draft.Lines)) == 0 {
		return nil, domain.ErrInvalidInput
	}
	totals := domainbilling.Compute(draft)

	now := time.Now()
	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		DojoID:         dojoID,
		MemberID:       in.MemberID,
		Rechnungsdatum: rechnungsdatum,
		Leistungsdatum: leistungsdatum,
		Faelligkeit:    faelligkeit,
		GlobalDiscount: draft.GlobalDiscount,
		RabattBasis:    draft.RabattBasis,
		VATRate:        draft.VATRate,
		SkontoProzent:  draft.SkontoProzent,
		SkontoTage:     draft.SkontoTage,

		Zwischensumme:    totals.Zwischensumme,
		RabattBetrag:     totals.RabattBetrag,
		NettoSumme:       totals.NettoSumme,
		VATBetrag:        totals.VATBetrag,
		BruttoSumme:      totals.BruttoSumme,
		SkontoBetrag:     totals.SkontoBetrag,
		SkontoZahlbetrag: totals.SkontoZahlbetrag,
		SkontoFrist:      totals.SkontoFrist,

		Status:    entity.InvoiceStatusOffen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	lines := make([]entity.LineItem, 0, len(draft.Lines))
	for _, l := range domainbilling.AcceptedLines(draft.Lines) {
		lines = append(lines, entity.LineItem{
			ID:            uuid.New().String(),
			InvoiceID:     inv.ID,
			ArticleID:     l.ArticleID,
			Beschreibung:  l.Beschreibung,
			Menge:         l.Menge,
			Einzelpreis:   l.Einzelpreis,
			VATRate:       l.VATRate,
			Rabattfaehig:  l.Rabattfaehig,
			RabattProzent: l.RabattProzent,
			NetAmount:     domainbilling.LineNet(l),
		})
	}

	// Nummernvergabe und Anlage in einer Transaktion: keine verbrannten Nummern.
	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		seq, err := invoiceRepo.NextNumber(ctx, dojoID, rechnungsdatum.Year())
		if err != nil {
			return err
		}
		inv.Nummer = fmt.Sprintf("R-%d-%03d", rechnungsdatum.Year(), seq)
		return invoiceRepo.Create(ctx, inv, lines)
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(inv, lines, dojo), nil
}

// buildDraft übersetzt den Request in den unveränderlichen Rechenkern-Entwurf.
func buildDraft(in dto.CreateInvoiceRequest, rechnungsdatum, faelligkeit time.Time) (domainbilling.InvoiceDraft, error) {
	var zero domainbilling.InvoiceDraft

	if in.RabattProzent != nil && in.RabattBetrag != nil {
		return zero, domain.ErrInvalidInput // genau eine Rabattvariante
	}
	discount := entity.NoDiscount()
	switch {
	case in.RabattProzent != nil:
		if in.RabattProzent.IsNegative() || in.RabattProzent.GreaterThan(decimal.NewFromInt(100)) {
			return zero, domain.ErrInvalidInput
		}
		discount = entity.PercentDiscount(*in.RabattProzent)
	case in.RabattBetrag != nil:
		if in.RabattBetrag.IsNegative() {
			return zero, domain.ErrInvalidInput
		}
		discount = entity.FixedDiscount(*in.RabattBetrag)
	}

	vatRate := domainbilling.DefaultVATRate
	if in.VATRate != nil {
		if in.VATRate.IsNegative() {
			return zero, domain.ErrInvalidInput
		}
		vatRate = *in.VATRate
	}

	var skontoProzent decimal.Decimal
	if in.SkontoProzent != nil {
		skontoProzent = *in.SkontoProzent
	}
	skontoTage := 0
	switch {
	case in.SkontoTage != nil:
		skontoTage = *in.SkontoTage
	case skontoProzent.IsPositive() && !faelligkeit.IsZero():
		// Ohne expliziten Tageswert wird die Frist aus der Fälligkeit abgeleitet.
		skontoTage = domainbilling.DeriveSkontoTage(rechnungsdatum, faelligkeit)
	}

	var rabattBasis decimal.Decimal
	if in.RabattBasis != nil {
		rabattBasis = *in.RabattBasis
	}

	lines := make([]domainbilling.DraftLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.RabattProzent.IsNegative() || l.RabattProzent.GreaterThan(decimal.NewFromInt(100)) {
			return zero, domain.ErrInvalidInput
		}
		lines = append(lines, domainbilling.DraftLine{
			ArticleID:     l.ArticleID,
			Beschreibung:  l.Beschreibung,
			Menge:         l.Menge,
			Einzelpreis:   l.Einzelpreis,
			VATRate:       l.VATRate,
			Rabattfaehig:  l.Rabattfaehig,
			RabattProzent: l.RabattProzent,
		})
	}

	return domainbilling.InvoiceDraft{
		Lines:          lines,
		GlobalDiscount: discount,
		RabattBasis:    rabattBasis,
		VATRate:        vatRate,
		SkontoProzent:  skontoProzent,
		SkontoTage:     skontoTage,
		Rechnungsdatum: rechnungsdatum,
		Faelligkeit:    faelligkeit,
	}, nil
}

// zahlcodes kodiert die EPC-Payloads der Rechnung: den vollen Betrag und — bei
// Skonto — zusätzlich den reduzierten Zahlbetrag. Fehlen dem Dojo Bankdaten,
// sind beide leer; die Rechnung bleibt gültig.
func (uc *InvoiceUseCase) zahlcodes(dojo *entity.Dojo, inv *entity.Invoice) (voll, skonto string) {
	voll = uc.encoder.Encode(domainsepa.EPCParams{
		IBAN:            dojo.IBAN,
		BIC:             dojo.BIC,
		Kontoinhaber:    dojo.AccountHolder(),
		Betrag:          inv.BruttoSumme,
		Rechnungsnummer: inv.Nummer,
	})
	if inv.HasSkonto() && inv.SkontoFrist != nil {
		skonto = uc.encoder.Encode(domainsepa.EPCParams{
			IBAN:             dojo.IBAN,
			BIC:              dojo.BIC,
			Kontoinhaber:     dojo.AccountHolder(),
			Betrag:           inv.SkontoZahlbetrag,
			Rechnungsnummer:  inv.Nummer,
			Verwendungszweck: fmt.Sprintf("Rechnung %s Skonto bis %s", inv.Nummer, inv.SkontoFrist.Format("02.01.2006")),
		})
	}
	return voll, skonto
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, lines []entity.LineItem, dojo *entity.Dojo) *dto.InvoiceResponse {
	voll, skonto := uc.zahlcodes(dojo, inv)

	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		DojoID:         inv.DojoID,
		MemberID:       inv.MemberID,
		Nummer:         inv.Nummer,
		Rechnungsdatum: inv.Rechnungsdatum.Format(dateLayout),
		Status:         inv.Status,

		Zwischensumme:    inv.Zwischensumme,
		RabattBetrag:     inv.RabattBetrag,
		NettoSumme:       inv.NettoSumme,
		VATBetrag:        inv.VATBetrag,
		BruttoSumme:      inv.BruttoSumme,
		SkontoBetrag:     inv.SkontoBetrag,
		SkontoZahlbetrag: inv.SkontoZahlbetrag,
		SkontoFrist:      inv.SkontoFrist,

		ZahlcodeVoll:   voll,
		ZahlcodeSkonto: skonto,
		BuchungID:      inv.BuchungID,
	}
	if !inv.Leistungsdatum.IsZero() {
		resp.Leistungsdatum = inv.Leistungsdatum.Format(dateLayout)
	}
	if !inv.Faelligkeit.IsZero() {
		resp.Faelligkeit = inv.Faelligkeit.Format(dateLayout)
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:            l.ID,
			ArticleID:     l.ArticleID,
			Beschreibung:  l.Beschreibung,
			Menge:         l.Menge,
			Einzelpreis:   l.Einzelpreis,
			RabattProzent: l.RabattProzent,
			NetAmount:     l.NetAmount,
		})
	}
	return resp
}
