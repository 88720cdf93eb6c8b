package usecase

import (
	"context"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// historyFeedLimit teto do feed global de histórico.
const historyFeedLimit = 100

// HistoryUseCase consultas sobre o histórico append-only de pedidos.
type HistoryUseCase struct {
	historyRepo repository.HistoryRepository
}

// NewHistoryUseCase constrói o caso de uso.
func NewHistoryUseCase(historyRepo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{historyRepo: historyRepo}
}

// List devolve o feed global (mais recente primeiro), limitado a 100 registros.
func (uc *HistoryUseCase) List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	return uc.historyRepo.List(ctx, filter, historyFeedLimit)
}

// ListByRequest devolve o histórico de um pedido em ordem cronológica.
func (uc *HistoryUseCase) ListByRequest(ctx context.Context, requestID int64) ([]*entity.HistoryEntry, error) {
	return uc.historyRepo.ListByRequest(ctx, requestID)
}
