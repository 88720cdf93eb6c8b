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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementação da porta sobre PostgreSQL (usável com pool ou tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste um fornecedor novo e preenche o ID gerado.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (name, phone, email, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		supplier.Name, nullIfEmpty(supplier.Phone), nullIfEmpty(supplier.Email),
		nullIfEmpty(supplier.Notes), supplier.CreatedAt, supplier.UpdatedAt,
	).Scan(&supplier.ID)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtém um fornecedor. Retorna (nil, nil) se não existir.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	query := `
		SELECT id, name, phone, email, notes, created_at, updated_at
		FROM suppliers WHERE id = $1`
	supplier, err := scanSupplier(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return supplier, nil
}

// List devolve todos os fornecedores em ordem alfabética.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, phone, email, notes, created_at, updated_at FROM suppliers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, supplier)
	}
	return list, rows.Err()
}

// Update grava nome e dados de contato.
func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	_, err := r.q.Exec(ctx,
		`UPDATE suppliers SET name = $1, phone = $2, email = $3, notes = $4, updated_at = $5 WHERE id = $6`,
		supplier.Name, nullIfEmpty(supplier.Phone), nullIfEmpty(supplier.Email),
		nullIfEmpty(supplier.Notes), supplier.UpdatedAt, supplier.ID,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Delete remove um fornecedor sem ordens nem itens vinculados (FK RESTRICT).
func (r *SupplierRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	var phone, email, notes *string
	err := row.Scan(&s.ID, &s.Name, &phone, &email, &notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Phone = deref(phone)
	s.Email = deref(email)
	s.Notes = deref(notes)
	return &s, nil
}
