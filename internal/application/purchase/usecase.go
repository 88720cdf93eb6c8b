package purchase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagnermocelin/pedidosIHS/internal/domain"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	domainpurchase "github.com/wagnermocelin/pedidosIHS/internal/domain/purchase"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// Actor identifica quem chama o serviço (vem do token JWT).
type Actor struct {
	UserID int64
	Role   entity.Role
}

// LifecycleUseCase orquestra o ciclo de vida de pedidos de compra: criação e
// transições PENDING→ORDERED→PURCHASED→RECEIVED, com cancelamento.
//
// Cada transição segue o mesmo roteiro: carrega o pedido, confere a
// precondição de status contra o valor persistido, consulta a tabela de
// transições com o papel do ator, e só então aplica a mutação + histórico
// dentro de uma transação. O update de status é condicional ao status
// esperado, então duas chamadas concorrentes sobre o mesmo pedido nunca
// vencem as duas: a perdedora recebe ErrInvalidState.
type LifecycleUseCase struct {
	txRunner     TxRunner
	requestRepo  repository.PurchaseRequestRepository
	itemRepo     repository.ItemRepository
	supplierRepo repository.SupplierRepository
}

// NewLifecycleUseCase constrói o caso de uso.
func NewLifecycleUseCase(
	txRunner TxRunner,
	requestRepo repository.PurchaseRequestRepository,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:     txRunner,
		requestRepo:  requestRepo,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateInput entrada para criar um pedido de compra.
type CreateInput struct {
	ItemID    int64
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
	Notes     string
}

// OrderInput entrada para a transição PENDING→ORDERED.
type OrderInput struct {
	SupplierID int64
	TotalPrice *decimal.Decimal
	Notes      string
}

// Create cria um pedido com status PENDING e registra a entrada CREATED no
// histórico, na mesma transação. Quantidade deve ser estritamente positiva e
// o item precisa existir.
func (uc *LifecycleUseCase) Create(ctx context.Context, actor Actor, in CreateInput) (*entity.PurchaseRequest, error) {
	if actor.Role != entity.RoleColaborador && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	pr := &entity.PurchaseRequest{
		ItemID:      in.ItemID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		RequestedBy: actor.UserID,
		Status:      entity.StatusPending,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(
		requestRepo repository.PurchaseRequestRepository,
		orderRepo repository.PurchaseOrderRepository,
		historyRepo repository.HistoryRepository,
	) error {
		if err := requestRepo.Create(ctx, pr); err != nil {
			return err
		}
		return historyRepo.Create(ctx, &entity.HistoryEntry{
			RequestID: pr.ID,
			Action:    entity.ActionCreated,
			UserID:    actor.UserID,
			Notes:     "Pedido criado",
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.requestRepo.GetDetail(ctx, pr.ID)
}

// Order aplica PENDING→ORDERED e cria a ordem de compra para o fornecedor
// informado. Fornecedor é obrigatório e precisa existir.
func (uc *LifecycleUseCase) Order(ctx context.Context, actor Actor, id int64, in OrderInput) (*entity.PurchaseRequest, error) {
	if in.SupplierID == 0 {
		return nil, domain.ErrInvalidInput
	}
	pr, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr.Status != entity.StatusPending {
		return nil, domain.ErrInvalidState
	}
	if !domainpurchase.CanTransition(pr.Status, entity.StatusOrdered, actor.Role) {
		return nil, domain.ErrForbidden
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	notes := in.Notes
	if notes == "" {
		notes = "Pedido enviado ao fornecedor " + supplier.Name
	}
	err = uc.txRunner.Run(ctx, func(
		requestRepo repository.PurchaseRequestRepository,
		orderRepo repository.PurchaseOrderRepository,
		historyRepo repository.HistoryRepository,
	) error {
		ok, err := requestRepo.UpdateStatusIf(ctx, id, entity.StatusPending, entity.StatusOrdered)
		if err != nil {
			return err
		}
		if !ok {
			// Outra transição concorrente venceu entre a leitura e o update.
			return domain.ErrInvalidState
		}
		order := &entity.PurchaseOrder{
			PurchaseRequestID: id,
			SupplierID:        in.SupplierID,
			OrderedBy:         actor.UserID,
			TotalPrice:        in.TotalPrice,
			Notes:             in.Notes,
			Status:            entity.OrderStatusOrdered,
			CreatedAt:         now,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		return historyRepo.Create(ctx, &entity.HistoryEntry{
			RequestID: id,
			Action:    entity.ActionOrdered,
			UserID:    actor.UserID,
			Notes:     notes,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.requestRepo.GetDetail(ctx, id)
}

// Purchase aplica ORDERED→PURCHASED e marca a ordem vinculada como FINISHED.
func (uc *LifecycleUseCase) Purchase(ctx context.Context, actor Actor, id int64, notes string) (*entity.PurchaseRequest, error) {
	pr, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr.Status != entity.StatusOrdered {
		return nil, domain.ErrInvalidState
	}
	if !domainpurchase.CanTransition(pr.Status, entity.StatusPurchased, actor.Role) {
		return nil, domain.ErrForbidden
	}
	if notes == "" {
		notes = "Compra realizada"
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		requestRepo repository.PurchaseRequestRepository,
		orderRepo repository.PurchaseOrderRepository,
		historyRepo repository.HistoryRepository,
	) error {
		ok, err := requestRepo.UpdateStatusIf(ctx, id, entity.StatusOrdered, entity.StatusPurchased)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}
		if pr.Order != nil {
			if err := orderRepo.UpdateStatusByRequestID(ctx, id, entity.OrderStatusFinished); err != nil {
				return err
			}
		}
		return historyRepo.Create(ctx, &entity.HistoryEntry{
			RequestID: id,
			Action:    entity.ActionPurchased,
			UserID:    actor.UserID,
			Notes:     notes,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.requestRepo.GetDetail(ctx, id)
}

// Receive aplica PURCHASED→RECEIVED.
func (uc *LifecycleUseCase) Receive(ctx context.Context, actor Actor, id int64, notes string) (*entity.PurchaseRequest, error) {
	pr, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr.Status != entity.StatusPurchased {
		return nil, domain.ErrInvalidState
	}
	if !domainpurchase.CanTransition(pr.Status, entity.StatusReceived, actor.Role) {
		return nil, domain.ErrForbidden
	}
	if notes == "" {
		notes = "Mercadoria recebida"
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		requestRepo repository.PurchaseRequestRepository,
		orderRepo repository.PurchaseOrderRepository,
		historyRepo repository.HistoryRepository,
	) error {
		ok, err := requestRepo.UpdateStatusIf(ctx, id, entity.StatusPurchased, entity.StatusReceived)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}
		return historyRepo.Create(ctx, &entity.HistoryEntry{
			RequestID: id,
			Action:    entity.ActionReceived,
			UserID:    actor.UserID,
			Notes:     notes,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.requestRepo.GetDetail(ctx, id)
}

// Cancel aplica <status atual>→CANCELLED. Quem pode cancelar depende do status
// atual (ver tabela de transições); a ordem vinculada, se existir, é cancelada
// na mesma transação. Pedidos RECEIVED ou já CANCELLED não podem ser cancelados.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, actor Actor, id int64, notes string) (*entity.PurchaseRequest, error) {
	pr, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr.Status.Terminal() {
		return nil, domain.ErrInvalidState
	}
	if !domainpurchase.CanTransition(pr.Status, entity.StatusCancelled, actor.Role) {
		return nil, domain.ErrForbidden
	}
	if notes == "" {
		notes = "Pedido cancelado"
	}

	now := time.Now()
	from := pr.Status
	err = uc.txRunner.Run(ctx, func(
		requestRepo repository.PurchaseRequestRepository,
		orderRepo repository.PurchaseOrderRepository,
		historyRepo repository.HistoryRepository,
	) error {
		ok, err := requestRepo.UpdateStatusIf(ctx, id, from, entity.StatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}
		if pr.Order != nil {
			if err := orderRepo.UpdateStatusByRequestID(ctx, id, entity.OrderStatusCancelled); err != nil {
				return err
			}
		}
		return historyRepo.Create(ctx, &entity.HistoryEntry{
			RequestID: id,
			Action:    entity.ActionCancelled,
			UserID:    actor.UserID,
			Notes:     notes,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.requestRepo.GetDetail(ctx, id)
}

// Delete remove um pedido ainda PENDING. Permitido apenas ao criador ou a um
// ADMIN; pedidos que já saíram de PENDING nunca são removidos.
func (uc *LifecycleUseCase) Delete(ctx context.Context, actor Actor, id int64) error {
	pr, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if pr.Status != entity.StatusPending {
		return domain.ErrInvalidState
	}
	if actor.Role != entity.RoleAdmin && pr.RequestedBy != actor.UserID {
		return domain.ErrForbidden
	}
	return uc.requestRepo.Delete(ctx, id)
}

// Get devolve o pedido com item, solicitante e ordem+fornecedor.
func (uc *LifecycleUseCase) Get(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
	pr, err := uc.requestRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrNotFound
	}
	return pr, nil
}

// List devolve os pedidos filtrados (mais recentes primeiro).
func (uc *LifecycleUseCase) List(ctx context.Context, filter repository.RequestFilter) ([]*entity.PurchaseRequest, error) {
	return uc.requestRepo.List(ctx, filter)
}

// Stats devolve a contagem de pedidos por status.
func (uc *LifecycleUseCase) Stats(ctx context.Context) (map[entity.Status]int64, error) {
	return uc.requestRepo.CountByStatus(ctx)
}

// load carrega o pedido (com ordem vinculada) e traduz ausência em ErrNotFound.
func (uc *LifecycleUseCase) load(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
	pr, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrNotFound
	}
	return pr, nil
}
