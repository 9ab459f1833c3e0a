package sepa_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/budoverein/dojokasse/pkg/sepa"
)

func TestNormalizeIBAN_EntferntLeerzeichenUndGrossschreibung(t *testing.T) {
	assert.Equal(t, "DE89370400440532013000", sepa.NormalizeIBAN(" de89 3704 0044 0532 0130 00 "))
}

// MOD-97-Vektoren: gültige Beispiel-IBANs aus der EPC-Dokumentation.
func TestValidIBAN_GueltigeIBANs(t *testing.T) {
	cases := []string{
		"DE89370400440532013000",
		"DE89 3704 0044 0532 0130 00", // Papierform wird normalisiert
		"AT611904300234573201",
		"CH9300762011623852957",
	}
	for _, iban := range cases {
		assert.True(t, sepa.ValidIBAN(iban), "IBAN %q muss gültig sein", iban)
	}
}

func TestValidIBAN_UngueltigeIBANs(t *testing.T) {
	cases := []string{
		"",
		"DE89370400440532013001", // Prüfsumme verletzt
		"DE8937040044",           // zu kurz
		"XX00!!INVALID",
	}
	for _, iban := range cases {
		assert.False(t, sepa.ValidIBAN(iban), "IBAN %q muss ungültig sein", iban)
	}
}

func TestValidBIC(t *testing.T) {
	assert.True(t, sepa.ValidBIC("COBADEFFXXX"))
	assert.True(t, sepa.ValidBIC("COBADEFF")) // 8-stellige Form
	assert.False(t, sepa.ValidBIC("COBA"))
	assert.False(t, sepa.ValidBIC("COBADEFFXXXX"))
}

func TestFormatAmount_ZweiNachkommastellen(t *testing.T) {
	assert.Equal(t, "19.99", sepa.FormatAmount(decimal.NewFromFloat(19.99)))
	assert.Equal(t, "1500.00", sepa.FormatAmount(decimal.NewFromInt(1500)))
	assert.Equal(t, "0.10", sepa.FormatAmount(decimal.NewFromFloat(0.095))) // Rundung
}
