package dto

import "time"

// RegisterRequest: Eingabe für die Registrierung (Passwort im Klartext,
// gehasht wird im Use Case).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	DojoID   string `json:"dojo_id" validate:"required,uuid"`
	Role     string `json:"role" validate:"omitempty,oneof=admin kassenwart trainer"`
}

// LoginRequest: Eingabe für den Login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse: Benutzer ohne Passwort-Hash.
type UserResponse struct {
	ID        string    `json:"id"`
	DojoID    string    `json:"dojo_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse: JWT plus Benutzer.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
