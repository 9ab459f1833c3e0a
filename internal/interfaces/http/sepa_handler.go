package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/budoverein/dojokasse/internal/application/dto"
	appsepa "github.com/budoverein/dojokasse/internal/application/sepa"
	"github.com/budoverein/dojokasse/internal/domain"
)

// SepaHandler bedient Mandate, Einzugsvorschau und Lastschriftläufe (geschützt,
// Rollen admin und kassenwart).
type SepaHandler struct {
	mandateUC *appsepa.MandateUseCase
	batchUC   *appsepa.BatchUseCase
}

// NewSepaHandler baut den Handler.
func NewSepaHandler(mandateUC *appsepa.MandateUseCase, batchUC *appsepa.BatchUseCase) *SepaHandler {
	return &SepaHandler{mandateUC: mandateUC, batchUC: batchUC}
}

// ── Mandate ───────────────────────────────────────────────────────────────────

// CreateMandate legt ein Lastschriftmandat an (Status aktiv).
// POST /api/mandates
func (h *SepaHandler) CreateMandate(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	var in dto.CreateMandateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "ungültiger Request-Body"})
	}
	mandate, err := h.mandateUC.CreateMandate(c.Context(), dojoID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "IBAN, BIC oder Unterschriftsdatum ungültig"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Mitglied nicht gefunden"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Mitglied gehört nicht zu diesem Dojo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(mandate)
}

// ListMandates listet die Mandate des Dojos.
// GET /api/mandates
func (h *SepaHandler) ListMandates(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	list, err := h.mandateUC.ListMandates(c.Context(), dojoID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// UpdateMandateStatus schaltet ein Mandat (pausieren, reaktivieren, widerrufen).
// PATCH /api/mandates/:id/status
func (h *SepaHandler) UpdateMandateStatus(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	id := c.Params("id")
	var in dto.UpdateMandateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "ungültiger Request-Body"})
	}
	mandate, err := h.mandateUC.UpdateStatus(c.Context(), dojoID, id, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Mandat nicht gefunden"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Zugriff verweigert"})
		}
		if err == domain.ErrStatusUebergang {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATUS_TRANSITION", Message: "widerrufene Mandate sind endgültig; erlaubt sind aktiv ↔ pausiert und → widerrufen"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ungültiger Status"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(mandate)
}

// ── Einzugsvorschau und Läufe ─────────────────────────────────────────────────

// Preview zeigt die Einzugsvorschau einer Abrechnungsperiode: je Zahler die
// offenen Posten, die Mandatslage und ob die Zeile einzugsfähig ist.
// GET /api/sepa/preview?period=YYYY-MM
func (h *SepaHandler) Preview(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	periode := c.Query("period")
	if periode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Query-Parameter period=YYYY-MM erforderlich"})
	}
	preview, err := h.batchUC.Preview(c.Context(), dojoID, periode)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period muss das Format YYYY-MM haben"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(preview)
}

// CreateBatch friert die einzugsfähigen Posten einer Periode zu einem
// Lastschriftlauf ein. Das Einzugsdatum muss den Mindestvorlauf einhalten.
// POST /api/sepa/batches
func (h *SepaHandler) CreateBatch(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "ungültiger Request-Body"})
	}
	batch, err := h.batchUC.CreateBatch(c.Context(), dojoID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "periode (YYYY-MM) und einzugsdatum (YYYY-MM-DD) erforderlich"})
		}
		if err == domain.ErrVorlaufzeit {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "LEAD_TIME", Message: "das Einzugsdatum unterschreitet den Mindestvorlauf"})
		}
		if err == domain.ErrKeineTransaktionen {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_TRANSACTIONS", Message: "keine einzugsfähigen Posten in dieser Periode"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(batch)
}

// ListBatches listet die Lastschriftläufe des Dojos.
// GET /api/sepa/batches
func (h *SepaHandler) ListBatches(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ungültige Paginierung"})
	}
	list, err := h.batchUC.ListBatches(c.Context(), dojoID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetBatchByID liefert einen Lauf.
// GET /api/sepa/batches/:id
func (h *SepaHandler) GetBatchByID(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	batch, err := h.batchUC.GetBatch(c.Context(), dojoID, c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Lauf nicht gefunden"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Zugriff verweigert"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(batch)
}

// ExportXML liefert die pain.008-Datei des Laufs. Der erste Export schaltet
// erstellt → exportiert; weitere Exporte regenerieren byte-identisch, bis der
// Lauf eingereicht wurde.
// GET /api/sepa/batches/:id/xml
func (h *SepaHandler) ExportXML(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	id := c.Params("id")
	xmlBytes, err := h.batchUC.ExportXML(c.Context(), dojoID, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Lauf nicht gefunden"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Zugriff verweigert"})
		}
		if err == domain.ErrStatusUebergang {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATUS_TRANSITION", Message: "eingereichte oder ausgeführte Läufe werden nicht mehr exportiert"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pain008.xml"`)
	return c.Send(xmlBytes)
}

// UpdateBatchStatus schaltet einen Lauf weiter (eingereicht, ausgefuehrt).
// PATCH /api/sepa/batches/:id/status
func (h *SepaHandler) UpdateBatchStatus(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	id := c.Params("id")
	var in dto.UpdateBatchStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "ungültiger Request-Body"})
	}
	batch, err := h.batchUC.UpdateStatus(c.Context(), dojoID, id, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Lauf nicht gefunden"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Zugriff verweigert"})
		}
		if err == domain.ErrStatusUebergang {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATUS_TRANSITION", Message: "Läufe bewegen sich nur vorwärts und nur einen Schritt"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ungültiger Status"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(batch)
}
