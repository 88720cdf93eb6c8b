package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementação da porta sobre PostgreSQL (usável com pool ou tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste a ordem e preenche o ID gerado. A unique em
// purchase_request_id garante no banco a relação um-para-um.
func (r *PurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (purchase_request_id, supplier_id, ordered_by, total_price, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		order.PurchaseRequestID, order.SupplierID, order.OrderedBy, order.TotalPrice,
		nullIfEmpty(order.Notes), order.Status, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("purchase order já existe para o pedido %d: %w", order.PurchaseRequestID, err)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByRequestID obtém a ordem do pedido. Retorna (nil, nil) se não existir.
func (r *PurchaseOrderRepo) GetByRequestID(ctx context.Context, requestID int64) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, purchase_request_id, supplier_id, ordered_by, total_price, notes, status, created_at
		FROM purchase_orders WHERE purchase_request_id = $1`
	var o entity.PurchaseOrder
	var notes *string
	err := r.q.QueryRow(ctx, query, requestID).Scan(
		&o.ID, &o.PurchaseRequestID, &o.SupplierID, &o.OrderedBy, &o.TotalPrice, &notes, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	o.Notes = deref(notes)
	return &o, nil
}

// UpdateStatusByRequestID espelha PURCHASED/CANCELLED do pedido na ordem.
// Sem efeito se o pedido não tem ordem.
func (r *PurchaseOrderRepo) UpdateStatusByRequestID(ctx context.Context, requestID int64, status entity.OrderStatus) error {
	_, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $1 WHERE purchase_request_id = $2`,
		status, requestID,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}
