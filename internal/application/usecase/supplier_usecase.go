package usecase

import (
	"context"
	"time"

	"github.com/wagnermocelin/pedidosIHS/internal/application/dto"
	"github.com/wagnermocelin/pedidosIHS/internal/domain"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// SupplierUseCase CRUD de fornecedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase constrói o caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// List devolve os fornecedores em ordem alfabética.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(ctx)
}

// Create cria um fornecedor. Nome é obrigatório.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update atualiza um fornecedor existente.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.SupplierRequest) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier.Name = in.Name
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.Notes = in.Notes
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete remove um fornecedor sem ordens ou itens vinculados.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Delete(ctx, id)
}
