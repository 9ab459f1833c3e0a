package entity

import "time"

// Member ist ein beitragspflichtiges Vereinsmitglied (Zahler).
// Mandate gehören dem Mitglied; Rechnungen und Einzugsposten referenzieren es.
type Member struct {
	ID        string
	DojoID    string
	Vorname   string
	Nachname  string
	Email     string
	Eintritt  time.Time // Vereinseintritt
	Austritt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName liefert "Vorname Nachname" für Zahlungsartefakte.
func (m *Member) FullName() string {
	if m.Vorname == "" {
		return m.Nachname
	}
	return m.Vorname + " " + m.Nachname
}
