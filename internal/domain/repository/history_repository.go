package repository

import (
	"context"
	"time"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
)

// HistoryFilter filtros do feed global de histórico.
type HistoryFilter struct {
	From   *time.Time
	To     *time.Time
	UserID *int64
	ItemID *int64
}

// HistoryRepository define a porta de persistência para o histórico (DIP).
// Append-only: não há Update nem Delete.
type HistoryRepository interface {
	Create(ctx context.Context, entry *entity.HistoryEntry) error
	// ListByRequest devolve o histórico de um pedido em ordem cronológica.
	ListByRequest(ctx context.Context, requestID int64) ([]*entity.HistoryEntry, error)
	// List devolve o feed global (mais recente primeiro), limitado pelo caller.
	List(ctx context.Context, filter HistoryFilter, limit int) ([]*entity.HistoryEntry, error)
}
