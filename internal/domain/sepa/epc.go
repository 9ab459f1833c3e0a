// Package sepa: reiner Rechenkern der SEPA-Zahlartefakte — EPC/SCT-Zahlcode
// (Girocode) und Einzugsvorschau für Lastschriftläufe. Das EPC-Format ist eine
// bit-genaue Textgrammatik; Kamera-Scanner von Banking-Apps lehnen jede
// Abweichung in Feldreihenfolge, Zeichenlimits oder Betragsformat ab.
package sepa

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgsepa "github.com/budoverein/dojokasse/pkg/sepa"
)

// Feste Kopfzeilen des EPC-QR-Payloads (Version 002, UTF-8, SEPA Credit Transfer).
const (
	epcServiceTag = "BCD"
	epcVersion    = "002"
	epcEncoding   = "1"
	epcSCT        = "SCT"
)

// Zeichenlimits laut EPC-QR-Spezifikation.
const (
	maxBICLen        = 11
	maxNameLen       = 70
	maxIBANLen       = 34
	maxRemittanceLen = 140
	maxReferenceLen  = 35
)

// EPCParams sind die Eingaben eines Zahlcodes. Bei Skonto ruft der Aufrufer den
// Encoder zweimal auf: einmal mit dem Skonto-Zahlbetrag, einmal mit der
// Bruttosumme; beide Codes werden nebeneinander angezeigt.
type EPCParams struct {
	IBAN             string
	BIC              string
	Kontoinhaber     string
	Betrag           decimal.Decimal
	Rechnungsnummer  string // strukturierte Referenz; zugleich Basis des Default-Verwendungszwecks
	Verwendungszweck string // optional; leer => "Rechnung <Rechnungsnummer>"
}

// EPCEncoder serialisiert Zahlungsdaten in den EPC/SCT-QR-Payload.
type EPCEncoder struct{}

// NewEPCEncoder erzeugt den Encoder.
func NewEPCEncoder() *EPCEncoder {
	return &EPCEncoder{}
}

// Encode erzeugt den 13-zeiligen EPC-Payload oder einen leeren String, wenn die
// Vorbedingungen verletzt sind (IBAN, BIC oder Kontoinhaber leer nach Trimmen,
// Betrag <= 0). Es wird nie ein Fehler geworfen: fehlende Bankdaten sind ein
// erwarteter Zustand — die Rechnung bleibt gültig, nur der Zahlcode entfällt.
func (e *EPCEncoder) Encode(p EPCParams) string {
	iban := pkgsepa.NormalizeIBAN(p.IBAN)
	bic := strings.TrimSpace(p.BIC)
	name := strings.TrimSpace(p.Kontoinhaber)
	if iban == "" || bic == "" || name == "" || !p.Betrag.IsPositive() {
		return ""
	}

	zweck := strings.TrimSpace(p.Verwendungszweck)
	if zweck == "" {
		zweck = "Rechnung " + strings.TrimSpace(p.Rechnungsnummer)
	}

	// Feste Reihenfolge laut EPC-Spezifikation; die beiden Leerzeilen am Ende
	// (Purpose-Code nach dem Betrag, Hinweistext am Schluss) gehören zum Format.
	lines := []string{
		epcServiceTag,
		epcVersion,
		epcEncoding,
		epcSCT,
		truncate(bic, maxBICLen),
		truncate(name, maxNameLen),
		truncate(iban, maxIBANLen),
		"EUR" + pkgsepa.FormatAmount(p.Betrag),
		"", // Purpose (leer)
		truncate(zweck, maxRemittanceLen),
		truncate(strings.TrimSpace(p.Rechnungsnummer), maxReferenceLen),
		"",
		"",
	}
	return strings.Join(lines, "\n")
}

// truncate kürzt auf die maximale Zeichenzahl (Runen, nicht Bytes — Umlaute
// zählen als ein Zeichen).
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
