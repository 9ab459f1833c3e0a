package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/application/members"
	"github.com/budoverein/dojokasse/internal/domain"
)

// MemberHandler bedient die Mitgliederverwaltung (geschützt).
type MemberHandler struct {
	uc *members.MemberUseCase
}

// NewMemberHandler baut den Handler.
func NewMemberHandler(uc *members.MemberUseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// Create legt ein Mitglied an.
// POST /api/members
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	var in dto.CreateMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "ungültiger Request-Body"})
	}
	member, err := h.uc.CreateMember(c.Context(), dojoID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nachname ist erforderlich, eintritt muss YYYY-MM-DD sein"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "das Mitglied existiert bereits"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// List listet die Mitglieder des Dojos.
// GET /api/members
func (h *MemberHandler) List(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ungültige Paginierung"})
	}
	list, err := h.uc.ListMembers(c.Context(), dojoID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID liefert ein Mitglied.
// GET /api/members/:id
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	id := c.Params("id")
	member, err := h.uc.GetMember(c.Context(), dojoID, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Mitglied nicht gefunden"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Zugriff verweigert"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(member)
}
