package dto

import "github.com/shopspring/decimal"

// CreateMemberRequest: Body für POST /api/members.
type CreateMemberRequest struct {
	Vorname  string `json:"vorname" validate:"required,min=1,max=100"`
	Nachname string `json:"nachname" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Eintritt string `json:"eintritt,omitempty"` // YYYY-MM-DD
}

// MemberResponse: Mitglied in Antworten.
type MemberResponse struct {
	ID       string `json:"id"`
	DojoID   string `json:"dojo_id"`
	Vorname  string `json:"vorname"`
	Nachname string `json:"nachname"`
	Email    string `json:"email,omitempty"`
	Eintritt string `json:"eintritt,omitempty"`
	Austritt string `json:"austritt,omitempty"`
}

// CreateArticleRequest: Body für POST /api/articles.
type CreateArticleRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Preis        decimal.Decimal `json:"preis" validate:"required"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	Rabattfaehig bool            `json:"rabattfaehig"`
}

// ArticleResponse: Artikel in Antworten.
type ArticleResponse struct {
	ID           string          `json:"id"`
	DojoID       string          `json:"dojo_id"`
	Name         string          `json:"name"`
	Preis        decimal.Decimal `json:"preis"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	Rabattfaehig bool            `json:"rabattfaehig"`
}
