package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/wagnermocelin/pedidosIHS/internal/interfaces/http"
	"github.com/wagnermocelin/pedidosIHS/pkg/logger"
)

func buildLoggingApp() *fiber.App {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	app := fiber.New()
	app.Use(apphttp.LoggingMiddleware(log))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"pong": true})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"boom": true})
	})
	return app
}

// Sem X-Request-Id do cliente, o middleware gera um UUID e o devolve na resposta.
func TestLoggingMiddleware_GeraRequestID(t *testing.T) {
	app := buildLoggingApp()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	id := resp.Header.Get(apphttp.HeaderRequestID)
	require.NotEmpty(t, id, "a resposta deve carregar X-Request-Id")
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "o request id gerado deve ser um UUID válido")
}

// Com X-Request-Id do cliente, o middleware propaga o mesmo valor (correlação).
func TestLoggingMiddleware_ReaproveitaRequestIDDoCliente(t *testing.T) {
	app := buildLoggingApp()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(apphttp.HeaderRequestID, "corr-abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "corr-abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}

// Respostas 5xx passam pelo caminho de log de erro sem afetar a resposta.
func TestLoggingMiddleware_RespostaDeErroPreservada(t *testing.T) {
	app := buildLoggingApp()

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}
