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

	"github.com/contaestoque/contagem-api/internal/application/auth"
	"github.com/contaestoque/contagem-api/internal/application/billing"
	appcounting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/application/usecase"
	"github.com/contaestoque/contagem-api/internal/infrastructure/export"
	"github.com/contaestoque/contagem-api/internal/infrastructure/notify"
	infrapdf "github.com/contaestoque/contagem-api/internal/infrastructure/pdf"
	"github.com/contaestoque/contagem-api/internal/infrastructure/postgres"
	httpRouter "github.com/contaestoque/contagem-api/internal/interfaces/http"
	"github.com/contaestoque/contagem-api/pkg/config"
	"github.com/contaestoque/contagem-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sectorRepo := postgres.NewSectorRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	countingRepo := postgres.NewCountingRepository(pool)
	itemRepo := postgres.NewCountedItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	links := notify.NewLinkBuilder(cfg.Link.PublicBaseURL)
	var mailer appcounting.DispatchMailer
	if cfg.SMTP.Enabled() {
		mailer = notify.NewMailer(cfg.SMTP)
	}

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	sectorUC := usecase.NewSectorUseCase(sectorRepo)
	productUC := usecase.NewProductUseCase(productRepo, sectorRepo)
	movementUC := usecase.NewMovementUseCase(movementRepo, productRepo)
	notificationUC := usecase.NewNotificationUseCase(notifRepo)

	dispatchUC := appcounting.NewDispatchUseCase(txRunner, sectorRepo, links, mailer)
	lifecycleUC := appcounting.NewLifecycleUseCase(countingRepo, notifRepo)
	approveUC := appcounting.NewApproveUseCase(countingRepo, itemRepo, productRepo, movementRepo, notifRepo)
	publicUC := appcounting.NewPublicUseCase(countingRepo, itemRepo, productRepo, notifRepo)
	reportUC := appcounting.NewReportUseCase(
		countingRepo, itemRepo, productRepo, sectorRepo, companyRepo,
		infrapdf.NewCountingReportGenerator(), export.NewExcelExporter(),
	)
	sweepUC := appcounting.NewSweepUseCase(countingRepo, notifRepo)

	subscriptionUC := billing.NewSubscriptionUseCase(planRepo, subRepo)
	invoiceUC := billing.NewInvoiceUseCase(planRepo, subRepo, invoiceRepo, companyRepo, notifRepo, infrapdf.NewInvoiceGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ContaEstoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		SectorUC:       sectorUC,
		ProductUC:      productUC,
		MovementUC:     movementUC,
		NotificationUC: notificationUC,
		DispatchUC:     dispatchUC,
		LifecycleUC:    lifecycleUC,
		ApproveUC:      approveUC,
		ReportUC:       reportUC,
		PublicUC:       publicUC,
		SubscriptionUC: subscriptionUC,
		InvoiceUC:      invoiceUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	// Varredura periódica: expira contagens vencidas e marca faturas atrasadas.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(cfg.Sweep.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n, err := sweepUC.Sweep(sweepCtx); err != nil {
					log.Error().Err(err).Msg("varredura de expiração")
				} else if n > 0 {
					log.Info().Int("expiradas", n).Msg("contagens expiradas pela varredura")
				}
				if n, err := invoiceUC.SweepOverdue(); err != nil {
					log.Error().Err(err).Msg("varredura de faturas atrasadas")
				} else if n > 0 {
					log.Info().Int64("atrasadas", n).Msg("faturas marcadas como atrasadas")
				}
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
