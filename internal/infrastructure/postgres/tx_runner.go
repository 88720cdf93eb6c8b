package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wagnermocelin/pedidosIHS/internal/application/purchase"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// Ensure TxRunner implements purchase.TxRunner.
var _ purchase.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL. É o que
// garante que a mutação de status, a ordem vinculada e o histórico sejam
// aplicados juntos ou nenhum deles.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	requestRepo repository.PurchaseRequestRepository,
	orderRepo repository.PurchaseOrderRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	requestRepo := NewPurchaseRequestRepository(tx)
	orderRepo := NewPurchaseOrderRepository(tx)
	historyRepo := NewHistoryRepository(tx)

	if err := fn(requestRepo, orderRepo, historyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
