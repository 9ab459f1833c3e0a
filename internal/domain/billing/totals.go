package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compute berechnet alle Rechnungssummen in fester Reihenfolge:
//
//	1. Zwischensumme = Σ Zeilennetto über alle übernahmefähigen Zeilen
//	2. Bemessungsbasis = explizite RabattBasis, sonst Zwischensumme
//	3. Rabattbetrag  = GlobalDiscount auf die Bemessungsbasis
//	4. Nettosumme    = Zwischensumme − Rabattbetrag
//	5. Steuerbetrag  = Nettosumme × Steuersatz (ein effektiver Satz auf die
//	   Gesamtsumme; die nominellen Zeilensätze werden nicht erneut herangezogen)
//	6. Bruttosumme   = Nettosumme + Steuerbetrag
//	7. Skonto        = Bruttosumme × SkontoProzent/100, falls Prozent und Tage > 0
//
// Compute wirft nie einen Fehler. Eine leere oder fehlende Bemessungsbasis fällt
// auf die Zwischensumme zurück. Negative Ergebnisse (Rabatt über 100 %) werden
// nicht geklemmt; sie sind stromaufwärts per Eingabevalidierung abzuweisen.
//
// Das Skonto wird auf den Bruttobetrag (inkl. Steuer) gerechnet und mindert die
// Steuerbasis nicht vorab. TODO(kassenwart): mit dem Steuerberater klären, ob das
// Skonto stattdessen die Bemessungsgrundlage mindern muss; bis dahin bleibt das
// beobachtete Verhalten maßgeblich.
func Compute(d InvoiceDraft) Totals {
	var subtotal decimal.Decimal
	for _, l := range AcceptedLines(d.Lines) {
		subtotal = subtotal.Add(LineNet(l))
	}

	base := d.RabattBasis
	if !base.IsPositive() {
		base = subtotal
	}
	rabatt := d.GlobalDiscount.AmountOn(base)

	netto := subtotal.Sub(rabatt)
	vat := netto.Mul(d.VATRate).Div(hundert)
	brutto := netto.Add(vat)

	t := Totals{
		Zwischensumme: subtotal,
		RabattBetrag:  rabatt,
		NettoSumme:    netto,
		VATBetrag:     vat,
		BruttoSumme:   brutto,
	}

	if d.SkontoProzent.IsPositive() && d.SkontoTage > 0 {
		t.SkontoBetrag = brutto.Mul(d.SkontoProzent).Div(hundert)
		t.SkontoZahlbetrag = brutto.Sub(t.SkontoBetrag)
		frist := d.Rechnungsdatum.AddDate(0, 0, d.SkontoTage)
		t.SkontoFrist = &frist
	}

	return t
}

// DeriveSkontoTage leitet die Skontofrist in Tagen aus Rechnungs- und
// Fälligkeitsdatum ab (Kalendertage, Uhrzeiten werden ignoriert).
// Liegt die Fälligkeit nicht nach dem Rechnungsdatum, ist das Ergebnis 0.
func DeriveSkontoTage(rechnungsdatum, faelligkeit time.Time) int {
	r := truncateDay(rechnungsdatum)
	f := truncateDay(faelligkeit)
	if !f.After(r) {
		return 0
	}
	return int(f.Sub(r).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
