package domain

import "errors"

// Domänenfehler (ohne externe Abhängigkeiten).
var (
	ErrNotFound           = errors.New("ressource nicht gefunden")
	ErrUserNotFound       = errors.New("benutzer nicht gefunden")
	ErrEmailAlreadyExists = errors.New("die e-mail ist bereits registriert")
	ErrInvalidInput       = errors.New("ungültige eingabe")
	ErrDuplicate          = errors.New("ressource bereits vorhanden")
	ErrUnauthorized       = errors.New("nicht autorisiert")
	ErrForbidden          = errors.New("zugriff verweigert")
	ErrConflict           = errors.New("konflikt mit dem aktuellen zustand")

	// ErrStatusUebergang: der angeforderte Statusübergang ist im Zustandsautomaten nicht erlaubt.
	ErrStatusUebergang = errors.New("statusübergang nicht erlaubt")
	// ErrVorlaufzeit: das Einzugsdatum eines SEPA-Laufs unterschreitet den Mindestvorlauf.
	ErrVorlaufzeit = errors.New("einzugsdatum unterschreitet den mindestvorlauf")
	// ErrKeineTransaktionen: ein Lauf ohne einzugsfähige Posten wird nicht angelegt.
	ErrKeineTransaktionen = errors.New("keine einzugsfähigen posten für den lauf")
)
