package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/budoverein/dojokasse/internal/application/auth"
	"github.com/budoverein/dojokasse/internal/application/billing"
	appforecast "github.com/budoverein/dojokasse/internal/application/forecast"
	"github.com/budoverein/dojokasse/internal/application/members"
	appsepa "github.com/budoverein/dojokasse/internal/application/sepa"
	domainsepa "github.com/budoverein/dojokasse/internal/domain/sepa"
	infrapdf "github.com/budoverein/dojokasse/internal/infrastructure/pdf"
	"github.com/budoverein/dojokasse/internal/infrastructure/postgres"
	infrasepa "github.com/budoverein/dojokasse/internal/infrastructure/sepa"
	httpRouter "github.com/budoverein/dojokasse/internal/interfaces/http"
	"github.com/budoverein/dojokasse/pkg/config"
	"github.com/budoverein/dojokasse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("konfiguration laden: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("anwendung startet")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("verbindung zu PostgreSQL")
	}
	defer pool.Close()

	dojoRepo := postgres.NewDojoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	mandateRepo := postgres.NewMandateRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	revenueRepo := postgres.NewRevenueRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, dojoRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	memberUC := members.NewMemberUseCase(memberRepo)
	articleUC := members.NewArticleUseCase(articleRepo)

	// Fakturierung: Summenblock, Jahressequenz, EPC-Zahlcodes, PDF mit Girocode.
	epcEncoder := domainsepa.NewEPCEncoder()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, memberRepo, dojoRepo, epcEncoder, pdfGenerator,
	)

	// SEPA: Mandate, Einzugsvorschau, Lastschriftläufe mit pain.008-Export.
	mandateUC := appsepa.NewMandateUseCase(mandateRepo, memberRepo)
	pain008Builder := infrasepa.NewPain008Builder()
	batchUC := appsepa.NewBatchUseCase(
		txRunner, batchRepo, invoiceRepo, mandateRepo, dojoRepo,
		pain008Builder, cfg.SEPA.MinLeadDays,
	)

	forecastUC := appforecast.NewForecastUseCase(revenueRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger-UI lokal: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dojokasse API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		InvoiceUC:  invoiceUC,
		MemberUC:   memberUC,
		ArticleUC:  articleUC,
		MandateUC:  mandateUC,
		BatchUC:    batchUC,
		ForecastUC: forecastUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http-server beendet")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown-signal empfangen, server wird beendet...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server-shutdown")
	}

	log.Info().Msg("anwendung gestoppt")
}
