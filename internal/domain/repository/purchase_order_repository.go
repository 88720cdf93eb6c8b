package repository

import (
	"context"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
)

// PurchaseOrderRepository define a porta de persistência para PurchaseOrder (DIP).
// Ordens são criadas apenas pela transição PENDING→ORDERED e atualizadas apenas
// pelas transições PURCHASED/CANCELLED do pedido dono.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByRequestID(ctx context.Context, requestID int64) (*entity.PurchaseOrder, error)
	UpdateStatusByRequestID(ctx context.Context, requestID int64, status entity.OrderStatus) error
}
