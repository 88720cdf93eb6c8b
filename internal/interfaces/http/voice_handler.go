package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wagnermocelin/pedidosIHS/internal/application/dto"
	"github.com/wagnermocelin/pedidosIHS/internal/application/voice"
	"github.com/wagnermocelin/pedidosIHS/internal/domain"
)

// VoiceHandler converte texto de comandos de voz em sugestões de pedido.
type VoiceHandler struct {
	parser *voice.Parser
}

// NewVoiceHandler constrói o handler de voz.
func NewVoiceHandler(parser *voice.Parser) *VoiceHandler {
	return &VoiceHandler{parser: parser}
}

type parseVoiceRequest struct {
	Text string `json:"text"`
}

// ParseVoice godoc
// @Summary      Interpretar comando de voz
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  parseVoiceRequest  true  "texto transcrito"
// @Success      200   {object}  voice.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/parse-voice [post]
func (h *VoiceHandler) ParseVoice(c *fiber.Ctx) error {
	var in parseVoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.parser.Parse(c.Context(), in.Text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "text é obrigatório"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
