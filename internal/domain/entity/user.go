package entity

import "time"

// Rollen der Anwendung.
const (
	RoleAdmin      = "admin"
	RoleKassenwart = "kassenwart" // darf Mandate und SEPA-Läufe verwalten
	RoleTrainer    = "trainer"
)

// User ist ein Anwendungsbenutzer (Vereinsverwaltung, nicht Mitglied).
type User struct {
	ID           string
	DojoID       string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
