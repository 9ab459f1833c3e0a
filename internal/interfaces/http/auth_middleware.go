package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/pkg/jwt"
)

// Locals-Keys für die aus dem JWT extrahierten Claims.
const (
	LocalUserID = "user_id"
	LocalDojoID = "dojo_id"
	LocalRole   = "role"
)

// AuthMiddleware validiert das Bearer-Token und legt UserID, DojoID und Role
// in c.Locals ab.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization-Header erforderlich"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Token ist leer"})
		}
		userID, dojoID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Token ungültig oder abgelaufen"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalDojoID, dojoID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole lässt die Anfrage nur durch, wenn die Rolle aus dem Token in
// allowedRoles enthalten ist. Muss NACH AuthMiddleware laufen.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "keine Rolle im Token",
			})
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "die Rolle '" + role + "' darf diese Aktion nicht ausführen",
		})
	}
}

// GetUserID liefert die UserID aus dem Kontext (nach AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetDojoID liefert die DojoID aus dem Kontext (nach AuthMiddleware).
func GetDojoID(c *fiber.Ctx) string {
	v := c.Locals(LocalDojoID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole liefert die Rolle aus dem Kontext (nach AuthMiddleware).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
