package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	appcounting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/application/dto"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// CountingHandler trata o ciclo de vida de contagens no back-office.
type CountingHandler struct {
	dispatch  *appcounting.DispatchUseCase
	lifecycle *appcounting.LifecycleUseCase
	approve   *appcounting.ApproveUseCase
	report    *appcounting.ReportUseCase
}

func NewCountingHandler(
	dispatch *appcounting.DispatchUseCase,
	lifecycle *appcounting.LifecycleUseCase,
	approve *appcounting.ApproveUseCase,
	report *appcounting.ReportUseCase,
) *CountingHandler {
	return &CountingHandler{dispatch: dispatch, lifecycle: lifecycle, approve: approve, report: report}
}

// Create godoc
// @Summary      Criar e despachar contagem
// @Tags         countings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCountingRequest  true  "Dados da contagem"
// @Success      201   {object}  dto.DispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/countings [post]
func (h *CountingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCountingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.dispatch.Dispatch(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar contagens
// @Tags         countings
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro de status"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.CountingResponse
// @Router       /api/countings [get]
func (h *CountingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.lifecycle.List(c.UserContext(), GetCompanyID(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	now := time.Now()
	out := make([]dto.CountingResponse, 0, len(list))
	for _, counting := range list {
		out = append(out, dto.ToCountingResponse(counting, now))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter contagem por ID
// @Tags         countings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da contagem"
// @Success      200  {object}  dto.CountingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/countings/{id} [get]
func (h *CountingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.lifecycle.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCountingResponse(out, time.Now()))
}

// Start godoc
// @Summary      Iniciar contagem (pending → in_progress)
// @Tags         countings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da contagem"
// @Success      200  {object}  dto.CountingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/countings/{id}/start [post]
func (h *CountingHandler) Start(c *fiber.Ctx) error {
	return h.transition(c, h.lifecycle.Start)
}

// Complete godoc
// @Summary      Concluir contagem (in_progress → completed)
// @Tags         countings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da contagem"
// @Success      200  {object}  dto.CountingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/countings/{id}/complete [post]
func (h *CountingHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.lifecycle.Complete)
}

// Reopen godoc
// @Summary      Reabrir contagem concluída (janela de 24h)
// @Tags         countings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da contagem"
// @Success      200  {object}  dto.CountingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/countings/{id}/reopen [post]
func (h *CountingHandler) Reopen(c *fiber.Ctx) error {
	return h.transition(c, h.lifecycle.Reopen)
}

// ForceStop godoc
// @Summary      Encerrar contagem em andamento (in_progress → expired)
// @Tags         countings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da contagem"
// @Success      200  {object}  dto.CountingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/countings/{id}/force-stop [post]
func (h *CountingHandler) ForceStop(c *fiber.Ctx) error {
	return h.transition(c, h.lifecycle.ForceStop)
}

// Extend godoc
// @Summary      Estender prazo (ou reativar contagem expirada)
// @Tags         countings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da contagem"
// @Param        body  body  dto.ExtendCountingRequest  true  "Horas adicionais"
// @Success      200   {object}  dto.CountingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/countings/{id}/extend [post]
func (h *CountingHandler) Extend(c *fiber.Ctx) error {
	var in dto.ExtendCountingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.lifecycle.Extend(c.UserContext(), GetCompanyID(c), c.Params("id"), in.Hours)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCountingResponse(out, time.Now()))
}

// Approve godoc
// @Summary      Aprovar contagem e reconciliar estoque
// @Tags         countings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da contagem"
// @Success      200  {object}  dto.ApprovalResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/countings/{id}/approve [post]
func (h *CountingHandler) Approve(c *fiber.Ctx) error {
	summary, err := h.approve.Approve(c.UserContext(), GetCompanyID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ApprovalResponse{MovementsCreated: summary.MovementsCreated})
}

// Delete godoc
// @Summary      Excluir contagem
// @Tags         countings
// @Security     Bearer
// @Param        id   path  string  true  "ID da contagem"
// @Success      204  "Sem conteúdo"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/countings/{id} [delete]
func (h *CountingHandler) Delete(c *fiber.Ctx) error {
	if err := h.lifecycle.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReportPDF godoc
// @Summary      Relatório da contagem em PDF
// @Tags         countings
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da contagem"
// @Success      200  {file}  binary
// @Router       /api/countings/{id}/report/pdf [get]
func (h *CountingHandler) ReportPDF(c *fiber.Ctx) error {
	b, filename, err := h.report.PDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// ReportExcel godoc
// @Summary      Relatório da contagem em planilha xlsx
// @Tags         countings
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID da contagem"
// @Success      200  {file}  binary
// @Router       /api/countings/{id}/report/excel [get]
func (h *CountingHandler) ReportExcel(c *fiber.Ctx) error {
	b, filename, err := h.report.Excel(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// transition aplica uma operação de ciclo de vida e serializa a contagem.
func (h *CountingHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, companyID, id string) (*entity.Counting, error)) error {
	out, err := fn(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCountingResponse(out, time.Now()))
}
