package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contaestoque/contagem-api/internal/application/billing"
	"github.com/contaestoque/contagem-api/internal/application/dto"
)

// BillingHandler trata planos, assinatura e faturas (somente admin).
type BillingHandler struct {
	subscriptions *billing.SubscriptionUseCase
	invoices      *billing.InvoiceUseCase
}

func NewBillingHandler(subscriptions *billing.SubscriptionUseCase, invoices *billing.InvoiceUseCase) *BillingHandler {
	return &BillingHandler{subscriptions: subscriptions, invoices: invoices}
}

// ListPlans godoc
// @Summary      Listar planos disponíveis
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Plan
// @Router       /api/billing/plans [get]
func (h *BillingHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.subscriptions.ListPlans()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subscribe godoc
// @Summary      Assinar um plano
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubscribeRequest  true  "Plano"
// @Success      201   {object}  entity.Subscription
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billing/subscription [post]
func (h *BillingHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.SubscribeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.subscriptions.Subscribe(GetCompanyID(c), in.PlanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CancelSubscription godoc
// @Summary      Cancelar a assinatura ativa
// @Tags         billing
// @Security     Bearer
// @Success      204  "Sem conteúdo"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/subscription [delete]
func (h *BillingHandler) CancelSubscription(c *fiber.Ctx) error {
	if err := h.subscriptions.Cancel(GetCompanyID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateInvoice godoc
// @Summary      Gerar a fatura mensal da assinatura ativa
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/invoices [post]
func (h *BillingHandler) GenerateInvoice(c *fiber.Ctx) error {
	inv, err := h.invoices.GenerateMonthly(GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToInvoiceResponse(inv))
}

// ListInvoices godoc
// @Summary      Listar faturas
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro de status (open|paid|overdue)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.InvoiceResponse
// @Router       /api/billing/invoices [get]
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.invoices.List(GetCompanyID(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.ToInvoiceResponse(inv))
	}
	return c.JSON(out)
}

// InvoicePDF godoc
// @Summary      Baixar a fatura em PDF
// @Tags         billing
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da fatura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/invoices/{id}/pdf [get]
func (h *BillingHandler) InvoicePDF(c *fiber.Ctx) error {
	out, filename, err := h.invoices.PDF(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

// PayInvoice godoc
// @Summary      Registrar pagamento de fatura
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da fatura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billing/invoices/{id}/pay [post]
func (h *BillingHandler) PayInvoice(c *fiber.Ctx) error {
	inv, err := h.invoices.MarkPaid(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToInvoiceResponse(inv))
}
