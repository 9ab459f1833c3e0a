package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/application/members"
	"github.com/budoverein/dojokasse/internal/domain"
)

// ArticleHandler bedient den Artikelkatalog (geschützt).
type ArticleHandler struct {
	uc *members.ArticleUseCase
}

// NewArticleHandler baut den Handler.
func NewArticleHandler(uc *members.ArticleUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// Create legt einen Katalogartikel an.
// POST /api/articles
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	var in dto.CreateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "ungültiger Request-Body"})
	}
	article, err := h.uc.CreateArticle(c.Context(), dojoID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name erforderlich, preis und vat_rate müssen gültig sein"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// List listet den Artikelkatalog des Dojos.
// GET /api/articles
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ungültige Paginierung"})
	}
	list, err := h.uc.ListArticles(c.Context(), dojoID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
