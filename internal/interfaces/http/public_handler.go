package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appcounting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/application/dto"
)

// PublicHandler trata a superfície pública de contagem acessada pelo
// colaborador via link com token. Sem autenticação JWT: o token é a credencial.
type PublicHandler struct {
	uc *appcounting.PublicUseCase
}

func NewPublicHandler(uc *appcounting.PublicUseCase) *PublicHandler {
	return &PublicHandler{uc: uc}
}

// GetSheet godoc
// @Summary      Folha de contagem pelo link público
// @Tags         public
// @Produce      json
// @Param        token  path  string  true  "Token da contagem"
// @Success      200    {object}  dto.CountingSheetResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /public/countings/{token} [get]
func (h *PublicHandler) GetSheet(c *fiber.Ctx) error {
	sheet, err := h.uc.GetByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	now := time.Now()
	out := dto.CountingSheetResponse{
		Counting: dto.ToCountingResponse(sheet.Counting, now),
		Products: make([]dto.ProductResponse, 0, len(sheet.Products)),
		Items:    make([]dto.CountedItemResponse, 0, len(sheet.Items)),
	}
	for _, p := range sheet.Products {
		out.Products = append(out.Products, dto.ToProductResponse(p))
	}
	for _, it := range sheet.Items {
		out.Items = append(out.Items, dto.ToCountedItemResponse(it))
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar a contagem pelo link público
// @Tags         public
// @Produce      json
// @Param        token  path  string  true  "Token da contagem"
// @Success      200    {object}  dto.CountingResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /public/countings/{token}/start [post]
func (h *PublicHandler) Start(c *fiber.Ctx) error {
	out, err := h.uc.StartByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCountingResponse(out, time.Now()))
}

// SubmitItem godoc
// @Summary      Registrar quantidade contada de um produto
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        token  path  string  true  "Token da contagem"
// @Param        body   body  dto.SubmitItemRequest  true  "Item contado"
// @Success      200    {object}  dto.CountedItemResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /public/countings/{token}/items [post]
func (h *PublicHandler) SubmitItem(c *fiber.Ctx) error {
	var in dto.SubmitItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.SubmitItem(c.UserContext(), c.Params("token"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCountedItemResponse(item))
}

// Finish godoc
// @Summary      Concluir a contagem pelo link público
// @Tags         public
// @Produce      json
// @Param        token  path  string  true  "Token da contagem"
// @Success      200    {object}  dto.CountingResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /public/countings/{token}/finish [post]
func (h *PublicHandler) Finish(c *fiber.Ctx) error {
	out, err := h.uc.FinishByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCountingResponse(out, time.Now()))
}
