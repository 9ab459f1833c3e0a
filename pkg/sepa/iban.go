// Package sepa: Hilfsfunktionen für SEPA-Bankdaten (IBAN, BIC, Betragsformat).
// Die Prüfsummenvalidierung folgt ISO 13616 (MOD-97-10).
package sepa

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ibanCharsRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)
	bicRe       = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	mod97       = big.NewInt(97)
)

// NormalizeIBAN entfernt Leerzeichen und wandelt in Großbuchstaben.
// Die übliche Papierform "DE89 3704 0044 0532 0130 00" wird zur Maschinenform.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
}

// ValidIBAN prüft Struktur und MOD-97-Prüfsumme einer IBAN.
// Erwartet die normalisierte Form; NormalizeIBAN wird zur Sicherheit angewandt.
func ValidIBAN(iban string) bool {
	s := NormalizeIBAN(iban)
	if len(s) < 15 || len(s) > 34 || !ibanCharsRe.MatchString(s) {
		return false
	}
	// Ländercode + Prüfziffern ans Ende, Buchstaben als Zahlen (A=10 ... Z=35)
	rearranged := s[4:] + s[:4]
	var sb strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteString(big.NewInt(int64(r-'A') + 10).String())
		default:
			return false
		}
	}
	n, ok := new(big.Int).SetString(sb.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, mod97).Int64() == 1
}

// ValidBIC prüft das BIC/SWIFT-Format (8 oder 11 Stellen).
func ValidBIC(bic string) bool {
	return bicRe.MatchString(strings.ToUpper(strings.TrimSpace(bic)))
}

// FormatAmount formatiert Beträge für Bankformate: Punkt als Dezimaltrenner,
// keine Tausendertrenner, genau 2 Nachkommastellen (z.B. 1500.00).
func FormatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
