package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wagnermocelin/pedidosIHS/internal/application/dto"
	"github.com/wagnermocelin/pedidosIHS/internal/application/usecase"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// HistoryHandler consultas sobre o histórico de pedidos.
type HistoryHandler struct {
	uc *usecase.HistoryUseCase
}

// NewHistoryHandler constrói o handler de histórico.
func NewHistoryHandler(uc *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List godoc
// @Summary      Feed global de histórico
// @Tags         history
// @Produce      json
// @Param        from    query  string  false  "data inicial (RFC 3339 ou YYYY-MM-DD)"
// @Param        to      query  string  false  "data final (RFC 3339 ou YYYY-MM-DD)"
// @Param        userId  query  int     false  "filtrar por usuário"
// @Param        itemId  query  int     false  "filtrar por item"
// @Success      200  {array}  entity.HistoryEntry
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	var filter repository.HistoryFilter
	if s := c.Query("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
		}
		filter.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
		}
		filter.To = &t
	}
	if s := c.Query("userId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "userId inválido"})
		}
		filter.UserID = &id
	}
	if s := c.Query("itemId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "itemId inválido"})
		}
		filter.ItemID = &id
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		out = []*entity.HistoryEntry{}
	}
	return c.JSON(out)
}

// ListByRequest godoc
// @Summary      Histórico de um pedido
// @Tags         history
// @Produce      json
// @Param        id   path     int  true  "ID do pedido"
// @Success      200  {array}  entity.HistoryEntry
// @Router       /api/purchase-requests/{id}/history [get]
func (h *HistoryHandler) ListByRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.uc.ListByRequest(c.Context(), int64(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		out = []*entity.HistoryEntry{}
	}
	return c.JSON(out)
}

// parseDate aceita RFC 3339 completo ou só a data.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
