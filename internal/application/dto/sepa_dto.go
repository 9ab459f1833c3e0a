package dto

import "github.com/shopspring/decimal"

// CreateMandateRequest: Body für POST /api/mandates. Das Mandat entsteht im
// Status aktiv; Unterschrieben ist das Datum auf dem Papiermandat.
type CreateMandateRequest struct {
	MemberID       string `json:"member_id" validate:"required,uuid"`
	Kontoinhaber   string `json:"kontoinhaber" validate:"required,min=1,max=70"`
	IBAN           string `json:"iban" validate:"required"`
	BIC            string `json:"bic" validate:"required"`
	Unterschrieben string `json:"unterschrieben" validate:"required"` // YYYY-MM-DD
}

// MandateResponse: Mandat in Antworten.
type MandateResponse struct {
	ID             string `json:"id"`
	DojoID         string `json:"dojo_id"`
	MemberID       string `json:"member_id"`
	Kontoinhaber   string `json:"kontoinhaber"`
	IBAN           string `json:"iban"`
	BIC            string `json:"bic"`
	Referenz       string `json:"referenz"`
	Unterschrieben string `json:"unterschrieben"`
	Status         string `json:"status"`
}

// UpdateMandateStatusRequest: Body für PATCH /api/mandates/:id/status.
type UpdateMandateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=aktiv pausiert widerrufen"`
}

// PreviewResponse: Einzugsvorschau einer Abrechnungsperiode.
type PreviewResponse struct {
	Periode            string               `json:"periode"`
	Rows               []PreviewRowResponse `json:"rows"`
	EinzugsfaehigSumme decimal.Decimal      `json:"einzugsfaehig_summe"`
	OhneMandat         int                  `json:"ohne_mandat"`
}

// PreviewRowResponse: eine Zeile der Vorschau. MandatsReferenz trägt den
// Sentinel "KEIN MANDAT", wenn kein aktives Mandat existiert.
type PreviewRowResponse struct {
	MemberID        string                  `json:"member_id"`
	Zahlername      string                  `json:"zahlername"`
	Gesamtbetrag    decimal.Decimal         `json:"gesamtbetrag"`
	Posten          []PreviewPostenResponse `json:"posten"`
	MandatsReferenz string                  `json:"mandats_referenz"`
	Einzugsfaehig   bool                    `json:"einzugsfaehig"`
}

// PreviewPostenResponse: Periodenaufschlüsselung innerhalb einer Zeile.
type PreviewPostenResponse struct {
	Periode string          `json:"periode"`
	Betrag  decimal.Decimal `json:"betrag"`
}

// CreateBatchRequest: Body für POST /api/sepa/batches.
type CreateBatchRequest struct {
	Periode      string `json:"periode" validate:"required"`      // YYYY-MM
	Einzugsdatum string `json:"einzugsdatum" validate:"required"` // YYYY-MM-DD
}

// BatchResponse: Lastschriftlauf in Antworten.
type BatchResponse struct {
	ID           string          `json:"id"`
	DojoID       string          `json:"dojo_id"`
	Referenz     string          `json:"referenz"`
	Erstellt     string          `json:"erstellt"`
	Einzugsdatum string          `json:"einzugsdatum"`
	AnzahlPosten int             `json:"anzahl_posten"`
	Gesamtbetrag decimal.Decimal `json:"gesamtbetrag"`
	Status       string          `json:"status"`
}

// UpdateBatchStatusRequest: Body für PATCH /api/sepa/batches/:id/status.
// Erlaubt nur die Vorwärtsschritte eingereicht und ausgefuehrt; exportiert
// wird über den XML-Endpunkt geschaltet.
type UpdateBatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=eingereicht ausgefuehrt"`
}
