package entity

import "github.com/shopspring/decimal"

// DiscountKind unterscheidet die beiden Rabattformen.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "prozent" // prozentual auf die Bemessungsbasis
	DiscountFixed   DiscountKind = "betrag"  // fester Betrag in Euro
)

// Discount ist die getaggte Variante eines Rabatts: Prozentwert oder Festbetrag.
// Überall, wo ein Rabatt angewandt wird, wird über Kind erschöpfend verzweigt.
type Discount struct {
	Kind  DiscountKind
	Value decimal.Decimal // Prozentwert bei "prozent", Euro-Betrag bei "betrag"
}

// NoDiscount ist der neutrale Rabatt (0 Prozent).
func NoDiscount() Discount {
	return Discount{Kind: DiscountPercent, Value: decimal.Zero}
}

// PercentDiscount baut einen prozentualen Rabatt.
func PercentDiscount(value decimal.Decimal) Discount {
	return Discount{Kind: DiscountPercent, Value: value}
}

// FixedDiscount baut einen Festbetragsrabatt.
func FixedDiscount(amount decimal.Decimal) Discount {
	return Discount{Kind: DiscountFixed, Value: amount}
}

// AmountOn liefert den Rabattbetrag für die gegebene Bemessungsbasis.
// Prozentrabatte rechnen value × base / 100; Festbeträge sind basisunabhängig.
// Es wird bewusst nicht geklemmt: über 100 % läuft in einen negativen Gesamtwert,
// den die Eingabevalidierung des Aufrufers abfangen muss.
func (d Discount) AmountOn(base decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case DiscountFixed:
		return d.Value
	case DiscountPercent:
		return d.Value.Mul(base).Div(decimal.NewFromInt(100))
	default:
		return decimal.Zero
	}
}

// IsZero meldet, ob der Rabatt keine Wirkung hat.
func (d Discount) IsZero() bool {
	return d.Value.IsZero()
}
