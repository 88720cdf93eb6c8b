package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wagnermocelin/pedidosIHS/internal/application/dto"
	"github.com/wagnermocelin/pedidosIHS/internal/application/purchase"
	"github.com/wagnermocelin/pedidosIHS/internal/domain"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// PurchaseHandler ciclo de vida dos pedidos de compra: criação, listagem e as
// transições order/purchase/receive/cancel.
type PurchaseHandler struct {
	uc *purchase.LifecycleUseCase
}

// NewPurchaseHandler constrói o handler de pedidos.
func NewPurchaseHandler(uc *purchase.LifecycleUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

func actor(c *fiber.Ctx) purchase.Actor {
	return purchase.Actor{UserID: GetUserID(c), Role: GetRole(c)}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         purchase-requests
// @Produce      json
// @Param        status      query  string  false  "PENDING|ORDERED|PURCHASED|RECEIVED|CANCELLED"
// @Param        itemId      query  int     false  "filtrar por item"
// @Param        supplierId  query  int     false  "filtrar por fornecedor da ordem"
// @Success      200  {array}  entity.PurchaseRequest
// @Router       /api/purchase-requests [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var filter repository.RequestFilter
	if s := c.Query("status"); s != "" {
		status := entity.Status(s)
		if !status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status desconhecido: " + s})
		}
		filter.Status = &status
	}
	if s := c.Query("itemId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "itemId inválido"})
		}
		filter.ItemID = &id
	}
	if s := c.Query("supplierId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplierId inválido"})
		}
		filter.SupplierID = &id
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		out = []*entity.PurchaseRequest{}
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter pedido
// @Tags         purchase-requests
// @Produce      json
// @Param        id   path      int  true  "ID do pedido"
// @Success      200  {object}  entity.PurchaseRequest
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.uc.Get(c.Context(), int64(id))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar pedido de compra
// @Tags         purchase-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "itemId, quantity, unitPrice, notes"
// @Success      201   {object}  entity.PurchaseRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), actor(c), purchase.CreateInput{
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Notes:     in.Notes,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Order godoc
// @Summary      Enviar pedido ao fornecedor (PENDING→ORDERED)
// @Tags         purchase-requests
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID do pedido"
// @Param        body  body  dto.OrderRequest  true  "supplierId, totalPrice, notes"
// @Success      200   {object}  entity.PurchaseRequest
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/order [post]
func (h *PurchaseHandler) Order(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Order(c.Context(), actor(c), int64(id), purchase.OrderInput{
		SupplierID: in.SupplierID,
		TotalPrice: in.TotalPrice,
		Notes:      in.Notes,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Purchase godoc
// @Summary      Registrar compra (ORDERED→PURCHASED)
// @Tags         purchase-requests
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID do pedido"
// @Param        body  body  dto.TransitionRequest  false  "notes"
// @Success      200   {object}  entity.PurchaseRequest
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/purchase [post]
func (h *PurchaseHandler) Purchase(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Purchase)
}

// Receive godoc
// @Summary      Registrar recebimento (PURCHASED→RECEIVED)
// @Tags         purchase-requests
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID do pedido"
// @Param        body  body  dto.TransitionRequest  false  "notes"
// @Success      200   {object}  entity.PurchaseRequest
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Receive)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Tags         purchase-requests
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID do pedido"
// @Param        body  body  dto.TransitionRequest  false  "notes"
// @Success      200   {object}  entity.PurchaseRequest
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

// transition fatoração comum das transições que só levam notes no corpo.
func (h *PurchaseHandler) transition(c *fiber.Ctx,
	fn func(ctx context.Context, a purchase.Actor, id int64, notes string) (*entity.PurchaseRequest, error),
) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.TransitionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	out, err := fn(c.Context(), actor(c), int64(id), in.Notes)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover pedido PENDING
// @Tags         purchase-requests
// @Produce      json
// @Param        id   path      int  true  "ID do pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), actor(c), int64(id)); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido removido"})
}

// Stats godoc
// @Summary      Contagem de pedidos por status
// @Tags         purchase-requests
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/purchase-requests/stats [get]
func (h *PurchaseHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.uc.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.StatsResponse{ByStatus: make(map[string]int64, len(entity.Statuses))}
	for _, status := range entity.Statuses {
		out.ByStatus[string(status)] = counts[status]
		out.Total += counts[status]
	}
	return c.JSON(out)
}

// mapError traduz os erros de domínio do ciclo de vida em status HTTP.
func (h *PurchaseHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido não encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "papel sem permissão para esta ação"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "status do pedido não permite esta transição"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
