package usecase

import (
	"context"
	"time"

	"github.com/wagnermocelin/pedidosIHS/internal/application/dto"
	"github.com/wagnermocelin/pedidosIHS/internal/domain"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// ItemUseCase CRUD de itens do catálogo.
type ItemUseCase struct {
	itemRepo     repository.ItemRepository
	supplierRepo repository.SupplierRepository
}

// NewItemUseCase constrói o caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, supplierRepo repository.SupplierRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, supplierRepo: supplierRepo}
}

// List devolve os itens em ordem alfabética com o fornecedor preferido.
func (uc *ItemUseCase) List(ctx context.Context) ([]*entity.Item, error) {
	return uc.itemRepo.List(ctx)
}

// Create cria um item. Nome e unidade são obrigatórios; o fornecedor
// preferido, quando informado, precisa existir.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*entity.Item, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkSupplier(ctx, in.PreferredSupplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		Name:                in.Name,
		Unit:                in.Unit,
		PreferredSupplierID: in.PreferredSupplierID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return uc.itemRepo.GetByID(ctx, item.ID)
}

// Update atualiza um item existente.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.ItemRequest) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkSupplier(ctx, in.PreferredSupplierID); err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.Unit = in.Unit
	item.PreferredSupplierID = in.PreferredSupplierID
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.itemRepo.GetByID(ctx, id)
}

// Delete remove um item sem pedidos vinculados.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(ctx, id)
}

func (uc *ItemUseCase) checkSupplier(ctx context.Context, supplierID *int64) error {
	if supplierID == nil {
		return nil
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, *supplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrInvalidInput
	}
	return nil
}
