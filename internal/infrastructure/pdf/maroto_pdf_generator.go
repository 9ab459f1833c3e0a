// Package pdf erzeugt die Rechnung als A4-Dokument mit Girocode.
//
// Seitenaufbau:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Vereinsname            │  Rechnungsnr. + Datum     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPFÄNGER: Mitglied                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELLE: Menge | Beschreibung | Einzelpreis | Rab. | Netto │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUMMEN: Zwischensumme / Rabatt / Netto / USt / Brutto      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GIROCODE: QR(s) + Skonto-Hinweis                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/budoverein/dojokasse/internal/application/billing"
	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// ── Farbpalette ───────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// deutsch formatiert Beträge mit deutschen Tausender- und Dezimaltrennzeichen.
var deutsch = message.NewPrinter(language.German)

var _ appbilling.PDFRenderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementiert billing.PDFRenderer mit Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator baut den Generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderInvoice erzeugt das PDF und liefert die Bytes.
func (g *MarotoPDFGenerator) RenderInvoice(in appbilling.PDFInvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rechnung "+in.Invoice.Nummer, true).
		WithAuthor(in.Dojo.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in.Invoice, in.Dojo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(empfaengerRow(in.Member))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(in.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(in.Invoice)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range girocodeRows(in) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: dokument erzeugen: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Abschnitte ────────────────────────────────────────────────────────────────

func headerRow(inv *entity.Invoice, dojo *entity.Dojo) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(dojo.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RECHNUNG", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Nummer, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Datum: "+inv.Rechnungsdatum.Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func empfaengerRow(member *entity.Member) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECHNUNGSEMPFÄNGER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(member.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Menge", 1, align.Center),
		h("Beschreibung", 5, align.Left),
		h("Einzelpreis", 2, align.Right),
		h("Rabatt", 1, align.Center),
		h("Netto", 3, align.Right),
	)
}

func tableLineRows(lines []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rabatt := "—"
		if l.Rabattfaehig && l.RabattProzent.IsPositive() {
			rabatt = l.RabattProzent.StringFixed(0) + " %"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Menge),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.Beschreibung,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				euro(l.Einzelpreis),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				rabatt,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				euro(l.NetAmount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRows(inv *entity.Invoice) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	pair := func(l, v string) core.Row {
		return row.New(5).Add(
			col.New(6),
			col.New(3).Add(label(l)),
			col.New(3).Add(value(v)),
		)
	}

	rows := []core.Row{
		pair("Zwischensumme:", euro(inv.Zwischensumme)),
	}
	if inv.RabattBetrag.IsPositive() {
		rows = append(rows, pair("Rabatt:", "− "+euro(inv.RabattBetrag)))
	}
	rows = append(rows,
		pair("Nettosumme:", euro(inv.NettoSumme)),
		pair(fmt.Sprintf("USt (%s %%):", inv.VATRate.StringFixed(0)), euro(inv.VATBetrag)),
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New("GESAMTBETRAG:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			})),
			col.New(3).Add(text.New(euro(inv.BruttoSumme), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			})),
		),
	)
	return rows
}

// girocodeRows: Girocode(s) zum Scannen; bei Skonto stehen beide Codes mit
// ihren Beträgen und Fristen nebeneinander.
func girocodeRows(in appbilling.PDFInvoiceData) []core.Row {
	inv := in.Invoice
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ZAHLUNG PER GIROCODE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if in.ZahlcodeVoll == "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Bitte überweisen Sie den Gesamtbetrag unter Angabe der Rechnungsnummer.",
				props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
		return rows
	}

	if in.ZahlcodeSkonto != "" && inv.SkontoFrist != nil {
		skontoHinweis := fmt.Sprintf("Bei Zahlung bis %s: %s (%s %% Skonto)",
			inv.SkontoFrist.Format("02.01.2006"), euro(inv.SkontoZahlbetrag), inv.SkontoProzent.StringFixed(0))
		rows = append(rows, row.New(50).Add(
			col.New(3).Add(code.NewQr(in.ZahlcodeSkonto, props.Rect{Percent: 90, Center: true})),
			col.New(3).Add(
				text.New(skontoHinweis, props.Text{Size: 8, Top: 4, Left: 2}),
			),
			col.New(3).Add(code.NewQr(in.ZahlcodeVoll, props.Rect{Percent: 90, Center: true})),
			col.New(3).Add(
				text.New("Voller Betrag: "+euro(inv.BruttoSumme), props.Text{Size: 8, Top: 4, Left: 2}),
			),
		))
		return rows
	}

	rows = append(rows, row.New(50).Add(
		col.New(4).Add(code.NewQr(in.ZahlcodeVoll, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Scannen Sie den Girocode mit Ihrer Banking-App,\num den Betrag direkt zu überweisen.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Zu zahlen: "+euro(inv.BruttoSumme), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 22, Left: 3, Color: colorPrimary,
			}),
		),
	))
	return rows
}

// ── Helfer ────────────────────────────────────────────────────────────────────

// euro formatiert einen Betrag deutsch ("1.234,56 €"). Nur Darstellung;
// gerechnet wird ausschließlich mit decimal.
func euro(d decimal.Decimal) string {
	return deutsch.Sprintf("%.2f €", d.InexactFloat64())
}
