package purchase

import (
	"context"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados àquela transação. Garante que a mutação de status, a
// ordem de compra vinculada e o registro de histórico sejam aplicados juntos
// ou nenhum deles (Commit/Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		requestRepo repository.PurchaseRequestRepository,
		orderRepo repository.PurchaseOrderRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}
