package repository

import (
	"context"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
)

// RequestFilter filtros de listagem de pedidos de compra.
type RequestFilter struct {
	Status     *entity.Status
	ItemID     *int64
	SupplierID *int64
}

// PurchaseRequestRepository define a porta de persistência para PurchaseRequest (DIP).
type PurchaseRequestRepository interface {
	Create(ctx context.Context, pr *entity.PurchaseRequest) error
	// GetByID carrega o pedido com a ordem de compra vinculada (se existir).
	// Retorna (nil, nil) quando não encontrado.
	GetByID(ctx context.Context, id int64) (*entity.PurchaseRequest, error)
	// GetDetail carrega o pedido com item, solicitante e ordem+fornecedor,
	// para exibição. A junção fica no caminho de leitura, fora da mutação.
	GetDetail(ctx context.Context, id int64) (*entity.PurchaseRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]*entity.PurchaseRequest, error)
	// UpdateStatusIf aplica o status novo somente se o status persistido ainda
	// for o esperado (update condicional). Retorna false quando outra transição
	// concorrente venceu a corrida; o chamador deve tratar como estado inválido.
	UpdateStatusIf(ctx context.Context, id int64, expected, next entity.Status) (bool, error)
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[entity.Status]int64, error)
}
