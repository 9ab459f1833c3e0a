package billing

import (
	"context"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/domain"
	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// GetInvoice liefert die Rechnung mit Zeilen, Summenblock und Zahlcodes.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, dojoID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.invoiceRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	dojo, err := uc.dojoRepo.GetByID(ctx, inv.DojoID)
	if err != nil || dojo == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(inv, lines, dojo), nil
}

// ListInvoices liefert die Rechnungsköpfe des Dojos (ohne Zeilen und Codes).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, dojoID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	invs, err := uc.invoiceRepo.ListByDojo(ctx, dojoID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, &dto.InvoiceResponse{
			ID:             inv.ID,
			DojoID:         inv.DojoID,
			MemberID:       inv.MemberID,
			Nummer:         inv.Nummer,
			Rechnungsdatum: inv.Rechnungsdatum.Format(dateLayout),
			Status:         inv.Status,
			BruttoSumme:    inv.BruttoSumme,
			NettoSumme:     inv.NettoSumme,
		})
	}
	return out, nil
}

// UpdateStatus führt einen Statusübergang aus. Nach dem Anlegen sind nur noch
// Übergänge und die einmalige Buchhaltungsverknüpfung zulässig; alles andere an
// der Rechnung ist unveränderlich.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, dojoID, id string, in dto.UpdateInvoiceStatusRequest) error {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil || inv == nil {
		return domain.ErrNotFound
	}
	if inv.DojoID != dojoID {
		return domain.ErrForbidden
	}
	if !inv.CanTransitionTo(in.Status) {
		return domain.ErrStatusUebergang
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, in.Status); err != nil {
		return err
	}
	if in.Status == entity.InvoiceStatusBezahlt && in.BuchungID != "" {
		// Einmalige Verknüpfung; das Repository meldet ErrConflict bei Doppelung.
		return uc.invoiceRepo.SetBuchungID(ctx, id, in.BuchungID)
	}
	return nil
}

// RenderPDF erzeugt das Rechnungs-PDF inklusive EPC-QR-Code(s).
func (uc *InvoiceUseCase) RenderPDF(ctx context.Context, dojoID, id string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.invoiceRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	dojo, err := uc.dojoRepo.GetByID(ctx, inv.DojoID)
	if err != nil || dojo == nil {
		return nil, domain.ErrNotFound
	}
	member, err := uc.memberRepo.GetByID(ctx, inv.MemberID)
	if err != nil || member == nil {
		return nil, domain.ErrNotFound
	}
	voll, skonto := uc.zahlcodes(dojo, inv)
	return uc.pdf.RenderInvoice(PDFInvoiceData{
		Dojo:           dojo,
		Member:         member,
		Invoice:        inv,
		Lines:          lines,
		ZahlcodeVoll:   voll,
		ZahlcodeSkonto: skonto,
	})
}
