package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

var _ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)

// PurchaseRequestRepo implementação da porta sobre PostgreSQL (usável com pool ou tx).
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

// Create persiste um pedido novo e preenche o ID gerado.
func (r *PurchaseRequestRepo) Create(ctx context.Context, pr *entity.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (item_id, quantity, unit_price, requested_by, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		pr.ItemID, pr.Quantity, pr.UnitPrice, pr.RequestedBy, pr.Status, nullIfEmpty(pr.Notes),
		pr.CreatedAt, pr.UpdatedAt,
	).Scan(&pr.ID)
	if err != nil {
		return fmt.Errorf("insert purchase request: %w", err)
	}
	return nil
}

// GetByID carrega o pedido com a ordem vinculada (se existir), sem demais junções.
func (r *PurchaseRequestRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
	query := `
		SELECT pr.id, pr.item_id, pr.quantity, pr.unit_price, pr.requested_by, pr.status, pr.notes, pr.created_at, pr.updated_at,
		       po.id, po.supplier_id, po.ordered_by, po.total_price, po.notes, po.status, po.created_at
		FROM purchase_requests pr
		LEFT JOIN purchase_orders po ON po.purchase_request_id = pr.id
		WHERE pr.id = $1`
	var pr entity.PurchaseRequest
	var notes *string
	var oID, oSupplierID, oOrderedBy *int64
	var oTotalPrice *decimal.Decimal
	var oNotes, oStatus *string
	var oCreatedAt *time.Time
	err := r.q.QueryRow(ctx, query, id).Scan(
		&pr.ID, &pr.ItemID, &pr.Quantity, &pr.UnitPrice, &pr.RequestedBy, &pr.Status, &notes,
		&pr.CreatedAt, &pr.UpdatedAt,
		&oID, &oSupplierID, &oOrderedBy, &oTotalPrice, &oNotes, &oStatus, &oCreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request: %w", err)
	}
	pr.Notes = deref(notes)
	if oID != nil {
		pr.Order = &entity.PurchaseOrder{
			ID:                *oID,
			PurchaseRequestID: pr.ID,
			SupplierID:        *oSupplierID,
			OrderedBy:         *oOrderedBy,
			TotalPrice:        oTotalPrice,
			Notes:             deref(oNotes),
			Status:            entity.OrderStatus(deref(oStatus)),
		}
		if oCreatedAt != nil {
			pr.Order.CreatedAt = *oCreatedAt
		}
	}
	return &pr, nil
}

// GetDetail carrega o pedido com item (+fornecedor preferido), solicitante e
// ordem (+fornecedor, +comprador). Caminho de leitura para exibição.
func (r *PurchaseRequestRepo) GetDetail(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
	pr, err := r.GetByID(ctx, id)
	if err != nil || pr == nil {
		return pr, err
	}
	if err := r.loadRelations(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

// List devolve os pedidos filtrados, mais recentes primeiro, com junções de exibição.
func (r *PurchaseRequestRepo) List(ctx context.Context, filter repository.RequestFilter) ([]*entity.PurchaseRequest, error) {
	query := `
		SELECT pr.id, pr.item_id, pr.quantity, pr.unit_price, pr.requested_by, pr.status, pr.notes, pr.created_at, pr.updated_at
		FROM purchase_requests pr`
	var args []any
	pos := 1
	where := ""
	and := func(cond string, arg any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, pos)
		args = append(args, arg)
		pos++
	}
	if filter.Status != nil {
		and("pr.status = $%d", *filter.Status)
	}
	if filter.ItemID != nil {
		and("pr.item_id = $%d", *filter.ItemID)
	}
	if filter.SupplierID != nil {
		and("pr.id IN (SELECT purchase_request_id FROM purchase_orders WHERE supplier_id = $%d)", *filter.SupplierID)
	}
	query += where + " ORDER BY pr.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseRequest
	for rows.Next() {
		var pr entity.PurchaseRequest
		var notes *string
		if err := rows.Scan(&pr.ID, &pr.ItemID, &pr.Quantity, &pr.UnitPrice, &pr.RequestedBy,
			&pr.Status, &notes, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		pr.Notes = deref(notes)
		list = append(list, &pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, pr := range list {
		if full, err := r.GetByID(ctx, pr.ID); err == nil && full != nil {
			pr.Order = full.Order
		}
		if err := r.loadRelations(ctx, pr); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateStatusIf aplica o status novo apenas se o persistido ainda for o
// esperado. O WHERE com o status anterior é o que serializa transições
// concorrentes: a perdedora não afeta nenhuma linha e recebe false.
func (r *PurchaseRequestRepo) UpdateStatusIf(ctx context.Context, id int64, expected, next entity.Status) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE purchase_requests SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		next, id, expected,
	)
	if err != nil {
		return false, fmt.Errorf("update purchase request status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete remove um pedido (o histórico cai em cascata; ver migrations).
func (r *PurchaseRequestRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM purchase_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase request: %w", err)
	}
	return nil
}

// CountByStatus conta os pedidos agrupados por status.
func (r *PurchaseRequestRepo) CountByStatus(ctx context.Context) (map[entity.Status]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM purchase_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.Status]int64, len(entity.Statuses))
	for rows.Next() {
		var status entity.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = count
	}
	return out, rows.Err()
}

// loadRelations preenche item, solicitante e, na ordem, fornecedor e comprador.
func (r *PurchaseRequestRepo) loadRelations(ctx context.Context, pr *entity.PurchaseRequest) error {
	item, err := NewItemRepository(r.q).GetByID(ctx, pr.ItemID)
	if err != nil {
		return err
	}
	pr.Item = item

	requester, err := NewUserRepository(r.q).GetByID(ctx, pr.RequestedBy)
	if err != nil {
		return err
	}
	pr.Requester = requester

	if pr.Order != nil {
		supplier, err := NewSupplierRepository(r.q).GetByID(ctx, pr.Order.SupplierID)
		if err != nil {
			return err
		}
		pr.Order.Supplier = supplier

		orderer, err := NewUserRepository(r.q).GetByID(ctx, pr.Order.OrderedBy)
		if err != nil {
			return err
		}
		pr.Order.Orderer = orderer
	}
	return nil
}
