package repository

import (
	"context"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
)

// ItemRepository define a porta de persistência para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// List devolve os itens em ordem alfabética com o fornecedor preferido.
	List(ctx context.Context) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id int64) error
}
