package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wagnermocelin/pedidosIHS/internal/domain"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementação da porta sobre PostgreSQL (usável com pool ou tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste um item novo e preenche o ID gerado.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (name, unit, preferred_supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.Name, item.Unit, item.PreferredSupplierID, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtém um item com o fornecedor preferido. Retorna (nil, nil) se não existir.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	query := itemSelect + ` WHERE i.id = $1`
	row := r.q.QueryRow(ctx, query, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List devolve todos os itens em ordem alfabética, com o fornecedor preferido.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, itemSelect+` ORDER BY i.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update grava nome, unidade e fornecedor preferido.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	_, err := r.q.Exec(ctx,
		`UPDATE items SET name = $1, unit = $2, preferred_supplier_id = $3, updated_at = $4 WHERE id = $5`,
		item.Name, item.Unit, item.PreferredSupplierID, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete remove um item. Itens referenciados por pedidos não podem ser
// removidos (FK RESTRICT).
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

const itemSelect = `
	SELECT i.id, i.name, i.unit, i.preferred_supplier_id, i.created_at, i.updated_at,
	       s.name, s.phone, s.email
	FROM items i
	LEFT JOIN suppliers s ON s.id = i.preferred_supplier_id`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var item entity.Item
	var sName, sPhone, sEmail *string
	err := row.Scan(&item.ID, &item.Name, &item.Unit, &item.PreferredSupplierID,
		&item.CreatedAt, &item.UpdatedAt, &sName, &sPhone, &sEmail)
	if err != nil {
		return nil, err
	}
	if item.PreferredSupplierID != nil && sName != nil {
		item.PreferredSupplier = &entity.Supplier{
			ID:    *item.PreferredSupplierID,
			Name:  *sName,
			Phone: deref(sPhone),
			Email: deref(sEmail),
		}
	}
	return &item, nil
}
