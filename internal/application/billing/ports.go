package billing

import (
	"context"

	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
)

// BillingTxRunner führt fn innerhalb einer DB-Transaktion aus. Das übergebene
// Repository arbeitet auf derselben Transaktion wie der Runner: Nummernvergabe
// und Rechnungsanlage committen oder scheitern gemeinsam.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// PDFRenderer erzeugt das Rechnungs-PDF. Die Implementierung lebt in
// infrastructure/pdf; der Use Case reicht nur fertige Daten hinein.
type PDFRenderer interface {
	RenderInvoice(in PDFInvoiceData) ([]byte, error)
}

// PDFInvoiceData bündelt alles, was das PDF braucht; die Zahlcodes sind bereits
// kodierte EPC-Payloads (leer, wenn dem Dojo Bankdaten fehlen).
type PDFInvoiceData struct {
	Dojo           *entity.Dojo
	Member         *entity.Member
	Invoice        *entity.Invoice
	Lines          []entity.LineItem
	ZahlcodeVoll   string
	ZahlcodeSkonto string
}
