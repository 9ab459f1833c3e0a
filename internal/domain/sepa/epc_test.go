package sepa_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budoverein/dojokasse/internal/domain/sepa"
)

// ──────────────────────────────────────────────────────────────────────────────
// Der EPC-Payload ist der Kanarienvogel der Zahlungsintegration: ändert jemand
// versehentlich Feldreihenfolge, Limits oder das EUR-Betragsformat, lehnen
// Banking-Apps den Code beim Scannen ab. Der Vektor hier ist die erwartete
// Ausgabe Zeile für Zeile.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testIBAN   = "DE89370400440532013000"
	testBIC    = "COBADEFFXXX"
	testHolder = "Test GmbH"
	testNummer = "R-2025-001"
)

func buildTestParams() sepa.EPCParams {
	return sepa.EPCParams{
		IBAN:            testIBAN,
		BIC:             testBIC,
		Kontoinhaber:    testHolder,
		Betrag:          decimal.NewFromFloat(19.99),
		Rechnungsnummer: testNummer,
	}
}

func TestEncode_VektorExakt(t *testing.T) {
	enc := sepa.NewEPCEncoder()

	payload := enc.Encode(buildTestParams())
	require.NotEmpty(t, payload)

	expected := strings.Join([]string{
		"BCD",
		"002",
		"1",
		"SCT",
		"COBADEFFXXX",
		"Test GmbH",
		"DE89370400440532013000",
		"EUR19.99",
		"",
		"Rechnung R-2025-001",
		"R-2025-001",
		"",
		"",
	}, "\n")
	assert.Equal(t, expected, payload, "der Payload muss Zeile für Zeile dem EPC-Vektor entsprechen")

	lines := strings.Split(payload, "\n")
	assert.Len(t, lines, 13, "EPC-Payload hat genau 13 Zeilen")
	assert.True(t, strings.HasPrefix(payload, "BCD\n002\n1\nSCT\n"))
	assert.Contains(t, payload, "EUR19.99")
}

func TestEncode_Deterministisch(t *testing.T) {
	enc := sepa.NewEPCEncoder()
	p := buildTestParams()

	assert.Equal(t, enc.Encode(p), enc.Encode(p),
		"gleiche Eingabe muss denselben Payload liefern (Codes werden auditiert)")
}

// IBAN wird normalisiert: Papierform mit Leerzeichen und Kleinbuchstaben.
func TestEncode_NormalisiertIBAN(t *testing.T) {
	enc := sepa.NewEPCEncoder()
	p := buildTestParams()
	p.IBAN = "de89 3704 0044 0532 0130 00"

	payload := enc.Encode(p)
	assert.Contains(t, payload, "\nDE89370400440532013000\n")
}

// Expliziter Verwendungszweck gewinnt über den Default "Rechnung <Nummer>".
func TestEncode_ExpliziterVerwendungszweck(t *testing.T) {
	enc := sepa.NewEPCEncoder()
	p := buildTestParams()
	p.Verwendungszweck = "Beitrag 2025-03 Skonto"

	lines := strings.Split(enc.Encode(p), "\n")
	assert.Equal(t, "Beitrag 2025-03 Skonto", lines[9])
}

// ── Vorbedingungen: leeres Ergebnis statt Fehler ──────────────────────────────

func TestEncode_LeereIBANLiefertLeerenString(t *testing.T) {
	enc := sepa.NewEPCEncoder()
	p := buildTestParams()
	p.IBAN = ""

	assert.Empty(t, enc.Encode(p),
		"fehlende Bankdaten sind kein Fehler: die Rechnung bleibt gültig, der Code entfällt")
}

func TestEncode_NurLeerzeichenImKontoinhaber(t *testing.T) {
	enc := sepa.NewEPCEncoder()
	p := buildTestParams()
	p.Kontoinhaber = "   "

	assert.Empty(t, enc.Encode(p))
}

func TestEncode_BetragNullOderNegativ(t *testing.T) {
	enc := sepa.NewEPCEncoder()

	p := buildTestParams()
	p.Betrag = decimal.Zero
	assert.Empty(t, enc.Encode(p))

	p.Betrag = decimal.NewFromFloat(-5)
	assert.Empty(t, enc.Encode(p))
}

// Zeichenlimits: BIC 11, Name 70, Verwendungszweck 140 (Runen, nicht Bytes).
func TestEncode_KuerztUeberlangeFelder(t *testing.T) {
	enc := sepa.NewEPCEncoder()
	p := buildTestParams()
	p.Kontoinhaber = strings.Repeat("Ä", 80)

	lines := strings.Split(enc.Encode(p), "\n")
	assert.Equal(t, 70, len([]rune(lines[5])), "Kontoinhaber wird auf 70 Zeichen gekürzt")
}
