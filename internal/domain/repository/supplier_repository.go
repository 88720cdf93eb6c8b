package repository

import (
	"context"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
)

// SupplierRepository define a porta de persistência para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id int64) error
}
