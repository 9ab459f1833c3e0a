package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/budoverein/dojokasse/internal/application/auth"
	"github.com/budoverein/dojokasse/internal/application/billing"
	"github.com/budoverein/dojokasse/internal/application/forecast"
	"github.com/budoverein/dojokasse/internal/application/members"
	appsepa "github.com/budoverein/dojokasse/internal/application/sepa"
)

// RouterDeps bündelt die Abhängigkeiten des Routers.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	InvoiceUC  *billing.InvoiceUseCase
	MemberUC   *members.MemberUseCase
	ArticleUC  *members.ArticleUseCase
	MandateUC  *appsepa.MandateUseCase
	BatchUC    *appsepa.BatchUseCase
	ForecastUC *forecast.ForecastUseCase
	JWTSecret  string
}

// Router registriert die API-Routen.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (öffentlich)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Geschützte Routen (Bearer-Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Mitglieder
	membersGroup := protected.Group("/members")
	memberHandler := NewMemberHandler(deps.MemberUC)
	membersGroup.Post("/", memberHandler.Create)
	membersGroup.Get("/", memberHandler.List)
	membersGroup.Get("/:id", memberHandler.GetByID)

	// Artikelkatalog
	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Post("/", articleHandler.Create)
	articles.Get("/", articleHandler.List)

	// Fakturierung
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)

	// SEPA: Mandate und Lastschriftläufe sind Kassengeschäft,
	// deshalb zusätzlich RBAC auf admin und kassenwart.
	sepaHandler := NewSepaHandler(deps.MandateUC, deps.BatchUC)
	kasse := RequireRole("admin", "kassenwart")

	mandates := protected.Group("/mandates", kasse)
	mandates.Post("/", sepaHandler.CreateMandate)
	mandates.Get("/", sepaHandler.ListMandates)
	mandates.Patch("/:id/status", sepaHandler.UpdateMandateStatus)

	sepaGroup := protected.Group("/sepa", kasse)
	sepaGroup.Get("/preview", sepaHandler.Preview)
	sepaGroup.Post("/batches", sepaHandler.CreateBatch)
	sepaGroup.Get("/batches", sepaHandler.ListBatches)
	sepaGroup.Get("/batches/:id", sepaHandler.GetBatchByID)
	sepaGroup.Get("/batches/:id/xml", sepaHandler.ExportXML)
	sepaGroup.Patch("/batches/:id/status", sepaHandler.UpdateBatchStatus)

	// Prognose
	forecastHandler := NewForecastHandler(deps.ForecastUC)
	protected.Get("/forecast", forecastHandler.Get)
}
