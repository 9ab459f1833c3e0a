package sepa

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budoverein/dojokasse/internal/domain/entity"
)

// KeinMandat ist der Sentinel für Zahler ohne aktives Mandat. Solche Zeilen
// bleiben in der Vorschau sichtbar (der Kassenwart soll nachfassen), zählen aber
// nicht zum einzugsfähigen Betrag.
const KeinMandat = "KEIN MANDAT"

// OutstandingDue ist ein offener Beitragsposten eines Mitglieds für eine Periode.
type OutstandingDue struct {
	MemberID   string
	Zahlername string
	Periode    string    // Periodenlabel, z.B. "2025-03"
	Datum      time.Time // Fälligkeitsdatum der Periode
	Betrag     decimal.Decimal
}

// DuePeriod ist die Periodenaufschlüsselung innerhalb einer Vorschauzeile.
type DuePeriod struct {
	Periode string
	Datum   time.Time
	Betrag  decimal.Decimal
}

// CollectionRow ist eine Zeile der Einzugsvorschau: ein Zahler, über beliebig
// viele offene Perioden aufsummiert, mit aufgelöster Mandatsreferenz.
type CollectionRow struct {
	MemberID        string
	Zahlername      string
	Gesamtbetrag    decimal.Decimal
	Posten          []DuePeriod
	MandatsReferenz string // Mandatsreferenz oder der Sentinel KeinMandat
	IBAN            string // leer ohne aktives Mandat
	MandatsDatum    time.Time
	Einzugsfaehig   bool
}

// Preview ist das Ergebnis der Vorschau für eine Abrechnungsperiode.
type Preview struct {
	Rows               []CollectionRow
	EinzugsfaehigSumme decimal.Decimal // Summe nur über Zeilen mit aktivem Mandat
	OhneMandat         int             // Anzahl Zeilen mit Sentinel
}

// BuildPreview gruppiert offene Posten je Zahler zu Vorschauzeilen und löst das
// aktive Mandat des Zahlers auf. Die Funktion ist pur: gleiche Eingabe liefert
// stets dieselbe Vorschau; die Zeilenreihenfolge folgt dem ersten Auftreten des
// Zahlers in der Eingabe.
func BuildPreview(dues []OutstandingDue, mandates map[string]*entity.Mandate) Preview {
	index := make(map[string]int)
	rows := make([]CollectionRow, 0, len(dues))

	for _, d := range dues {
		i, ok := index[d.MemberID]
		if !ok {
			i = len(rows)
			index[d.MemberID] = i
			rows = append(rows, CollectionRow{
				MemberID:        d.MemberID,
				Zahlername:      d.Zahlername,
				MandatsReferenz: KeinMandat,
			})
		}
		rows[i].Posten = append(rows[i].Posten, DuePeriod{Periode: d.Periode, Datum: d.Datum, Betrag: d.Betrag})
		rows[i].Gesamtbetrag = rows[i].Gesamtbetrag.Add(d.Betrag)
	}

	p := Preview{Rows: rows}
	for i := range p.Rows {
		m := mandates[p.Rows[i].MemberID]
		if m != nil && m.IsAktiv() {
			p.Rows[i].MandatsReferenz = m.Referenz
			p.Rows[i].IBAN = m.IBAN
			p.Rows[i].MandatsDatum = m.Unterschrieben
			p.Rows[i].Einzugsfaehig = true
			p.EinzugsfaehigSumme = p.EinzugsfaehigSumme.Add(p.Rows[i].Gesamtbetrag)
		} else {
			p.OhneMandat++
		}
	}
	return p
}
