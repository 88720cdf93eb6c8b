package postgres

import (
	"context"
	"fmt"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementação da porta sobre PostgreSQL (usável com pool ou tx).
// Append-only: só INSERT e SELECT.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create persiste uma entrada de histórico e preenche o ID gerado.
func (r *HistoryRepo) Create(ctx context.Context, e *entity.HistoryEntry) error {
	query := `
		INSERT INTO purchase_history (request_id, action, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.RequestID, e.Action, e.UserID, nullIfEmpty(e.Notes), e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListByRequest devolve o histórico de um pedido em ordem cronológica, com o usuário.
func (r *HistoryRepo) ListByRequest(ctx context.Context, requestID int64) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT h.id, h.request_id, h.action, h.user_id, h.notes, h.created_at,
		       u.name, u.email, u.role
		FROM purchase_history h
		JOIN users u ON u.id = h.user_id
		WHERE h.request_id = $1
		ORDER BY h.created_at ASC, h.id ASC`
	rows, err := r.q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list history by request: %w", err)
	}
	defer rows.Close()

	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		var notes *string
		var user entity.User
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Action, &e.UserID, &notes, &e.CreatedAt,
			&user.Name, &user.Email, &user.Role); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Notes = deref(notes)
		user.ID = e.UserID
		e.User = &user
		list = append(list, &e)
	}
	return list, rows.Err()
}

// List devolve o feed global (mais recente primeiro), com usuário e pedido+item.
func (r *HistoryRepo) List(ctx context.Context, filter repository.HistoryFilter, limit int) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT h.id, h.request_id, h.action, h.user_id, h.notes, h.created_at,
		       u.name, u.email, u.role,
		       pr.item_id, pr.status, i.name, i.unit
		FROM purchase_history h
		JOIN users u ON u.id = h.user_id
		JOIN purchase_requests pr ON pr.id = h.request_id
		JOIN items i ON i.id = pr.item_id`
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
	if filter.From != nil {
		and("h.created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		and("h.created_at <= $%d", *filter.To)
	}
	if filter.UserID != nil {
		and("h.user_id = $%d", *filter.UserID)
	}
	if filter.ItemID != nil {
		and("pr.item_id = $%d", *filter.ItemID)
	}
	query += where + fmt.Sprintf(" ORDER BY h.created_at DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		var notes *string
		var user entity.User
		var pr entity.PurchaseRequest
		var item entity.Item
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Action, &e.UserID, &notes, &e.CreatedAt,
			&user.Name, &user.Email, &user.Role,
			&pr.ItemID, &pr.Status, &item.Name, &item.Unit); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Notes = deref(notes)
		user.ID = e.UserID
		e.User = &user
		pr.ID = e.RequestID
		item.ID = pr.ItemID
		pr.Item = &item
		e.Request = &pr
		list = append(list, &e)
	}
	return list, rows.Err()
}
