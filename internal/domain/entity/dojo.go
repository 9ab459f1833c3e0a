package entity

import "time"

// Dojo ist der Mandant der Anwendung (Verein bzw. Trainingsstätte).
// Die Bankdaten des Dojos sind die Gläubiger-Seite aller Zahlungsartefakte;
// sie werden den Engines explizit als Eingabe übergeben, nie ambient gelesen.
type Dojo struct {
	ID           string
	Name         string
	IBAN         string
	BIC          string
	Kontoinhaber string // Kontoinhaber laut Bank; fällt auf Name zurück, wenn leer
	GlaeubigerID string // SEPA Gläubiger-Identifikationsnummer (für Lastschriften)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountHolder liefert den Kontoinhaber für Zahlungsartefakte.
func (d *Dojo) AccountHolder() string {
	if d.Kontoinhaber != "" {
		return d.Kontoinhaber
	}
	return d.Name
}
