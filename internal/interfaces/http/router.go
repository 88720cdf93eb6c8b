package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wagnermocelin/pedidosIHS/internal/application/auth"
	"github.com/wagnermocelin/pedidosIHS/internal/application/purchase"
	"github.com/wagnermocelin/pedidosIHS/internal/application/usecase"
	"github.com/wagnermocelin/pedidosIHS/internal/application/voice"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ItemUC      *usecase.ItemUseCase
	SupplierUC  *usecase.SupplierUseCase
	LifecycleUC *purchase.LifecycleUseCase
	HistoryUC   *usecase.HistoryUseCase
	VoiceParser *voice.Parser
	JWTSecret   string
}

// Router registra as rotas da API. As permissões por rota seguem o papel do
// token; as permissões de transição de status ficam na tabela de transições,
// dentro do caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; demais exigem token)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users (apenas ADMIN)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Items (leitura para todos; mutações apenas ADMIN)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", adminOnly, itemHandler.Create)
	items.Put("/:id", adminOnly, itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)

	// Suppliers (leitura para todos; criação/edição ADMIN+COMPRADOR; remoção ADMIN)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", RequireRole(entity.RoleAdmin, entity.RoleComprador), supplierHandler.Create)
	suppliers.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleComprador), supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Purchase requests (quem pode cada transição é decidido no caso de uso)
	requests := protected.Group("/purchase-requests")
	purchaseHandler := NewPurchaseHandler(deps.LifecycleUC)
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	requests.Get("/", purchaseHandler.List)
	requests.Get("/stats", purchaseHandler.Stats)
	requests.Post("/", purchaseHandler.Create)
	requests.Get("/:id", purchaseHandler.GetByID)
	requests.Delete("/:id", purchaseHandler.Delete)
	requests.Post("/:id/order", purchaseHandler.Order)
	requests.Post("/:id/purchase", purchaseHandler.Purchase)
	requests.Post("/:id/receive", purchaseHandler.Receive)
	requests.Post("/:id/cancel", purchaseHandler.Cancel)
	requests.Get("/:id/history", historyHandler.ListByRequest)

	// History (feed global)
	protected.Get("/history", historyHandler.List)

	// AI (parser de comandos de voz)
	ai := protected.Group("/ai")
	voiceHandler := NewVoiceHandler(deps.VoiceParser)
	ai.Post("/parse-voice", voiceHandler.ParseVoice)
}
