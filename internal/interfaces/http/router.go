package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contaestoque/contagem-api/internal/application/auth"
	"github.com/contaestoque/contagem-api/internal/application/billing"
	appcounting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/application/usecase"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	SectorUC       *usecase.SectorUseCase
	ProductUC      *usecase.ProductUseCase
	MovementUC     *usecase.MovementUseCase
	NotificationUC *usecase.NotificationUseCase
	DispatchUC     *appcounting.DispatchUseCase
	LifecycleUC    *appcounting.LifecycleUseCase
	ApproveUC      *appcounting.ApproveUseCase
	ReportUC       *appcounting.ReportUseCase
	PublicUC       *appcounting.PublicUseCase
	SubscriptionUC *billing.SubscriptionUseCase
	InvoiceUC      *billing.InvoiceUseCase
	JWTSecret      string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (onboarding público; consulta protegida a critério do deploy)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Superfície pública de contagem: o token do link é a credencial.
	public := app.Group("/public/countings")
	publicHandler := NewPublicHandler(deps.PublicUC)
	public.Get("/:token", publicHandler.GetSheet)
	public.Post("/:token/start", publicHandler.Start)
	public.Post("/:token/items", publicHandler.SubmitItem)
	public.Post("/:token/finish", publicHandler.Finish)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuários
	protected.Get("/users", RequireRole(entity.RoleAdmin, entity.RoleGestor), authHandler.ListUsers)

	// Setores
	sectors := protected.Group("/sectors")
	sectorHandler := NewSectorHandler(deps.SectorUC)
	sectors.Post("/", sectorHandler.Create)
	sectors.Get("/", sectorHandler.List)
	sectors.Get("/:id", sectorHandler.GetByID)
	sectors.Put("/:id", sectorHandler.Update)
	sectors.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleGestor), sectorHandler.Delete)

	// Produtos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleGestor), productHandler.Delete)
	products.Get("/:id/movements", productHandler.ListMovements)

	// Contagens
	countings := protected.Group("/countings")
	countingHandler := NewCountingHandler(deps.DispatchUC, deps.LifecycleUC, deps.ApproveUC, deps.ReportUC)
	countings.Post("/", countingHandler.Create)
	countings.Get("/", countingHandler.List)
	countings.Get("/:id", countingHandler.GetByID)
	countings.Post("/:id/start", countingHandler.Start)
	countings.Post("/:id/complete", countingHandler.Complete)
	countings.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleGestor), countingHandler.Approve)
	countings.Post("/:id/reopen", RequireRole(entity.RoleAdmin, entity.RoleGestor), countingHandler.Reopen)
	countings.Post("/:id/extend", countingHandler.Extend)
	countings.Post("/:id/force-stop", RequireRole(entity.RoleAdmin, entity.RoleGestor), countingHandler.ForceStop)
	countings.Delete("/:id", RequireRole(entity.RoleAdmin), countingHandler.Delete)
	countings.Get("/:id/report/pdf", countingHandler.ReportPDF)
	countings.Get("/:id/report/excel", countingHandler.ReportExcel)

	// Notificações
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Billing (somente admin)
	billingGroup := protected.Group("/billing", RequireRole(entity.RoleAdmin))
	billingHandler := NewBillingHandler(deps.SubscriptionUC, deps.InvoiceUC)
	billingGroup.Get("/plans", billingHandler.ListPlans)
	billingGroup.Post("/subscription", billingHandler.Subscribe)
	billingGroup.Delete("/subscription", billingHandler.CancelSubscription)
	billingGroup.Post("/invoices", billingHandler.GenerateInvoice)
	billingGroup.Get("/invoices", billingHandler.ListInvoices)
	billingGroup.Post("/invoices/:id/pay", billingHandler.PayInvoice)
	billingGroup.Get("/invoices/:id/pdf", billingHandler.InvoicePDF)
}
