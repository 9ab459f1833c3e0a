package entity

import (
	"time"

	"github.com/budoverein/dojokasse/internal/domain"
)

// Mandatsstatus. aktiv <-> pausiert ist reversibel (Admin-Aktion);
// widerrufen ist terminal und unumkehrbar.
const (
	MandateStatusAktiv      = "aktiv"
	MandateStatusPausiert   = "pausiert"
	MandateStatusWiderrufen = "widerrufen"
)

// Mandate ist ein SEPA-Lastschriftmandat. Es gehört dem Mitglied (Zahler);
// Läufe und Einzugsvorschau referenzieren es nur.
type Mandate struct {
	ID             string
	DojoID         string
	MemberID       string
	Kontoinhaber   string
	IBAN           string
	BIC            string
	Referenz       string    // Mandatsreferenz (eindeutig je Gläubiger)
	Unterschrieben time.Time // Datum der Mandatsunterschrift
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// mandateTransitions: erlaubte Statusübergänge.
var mandateTransitions = map[string][]string{
	MandateStatusAktiv:      {MandateStatusPausiert, MandateStatusWiderrufen},
	MandateStatusPausiert:   {MandateStatusAktiv, MandateStatusWiderrufen},
	MandateStatusWiderrufen: {},
}

// TransitionTo führt den Statusübergang aus oder liefert ErrStatusUebergang.
// widerrufen ist terminal; von dort führt kein Übergang mehr weg.
func (m *Mandate) TransitionTo(status string) error {
	for _, s := range mandateTransitions[m.Status] {
		if s == status {
			m.Status = status
			return nil
		}
	}
	return domain.ErrStatusUebergang
}

// IsAktiv meldet, ob über das Mandat eingezogen werden darf.
func (m *Mandate) IsAktiv() bool {
	return m.Status == MandateStatusAktiv
}
