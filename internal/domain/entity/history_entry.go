package entity

import "time"

// HistoryAction identifica o evento registrado no histórico de um pedido.
type HistoryAction string

const (
	ActionCreated   HistoryAction = "CREATED"
	ActionOrdered   HistoryAction = "ORDERED"
	ActionPurchased HistoryAction = "PURCHASED"
	ActionReceived  HistoryAction = "RECEIVED"
	ActionCancelled HistoryAction = "CANCELLED"
)

// HistoryEntry é um registro imutável de auditoria: exatamente uma entrada
// CREATED por pedido e uma entrada por transição aceita. Nunca é alterada
// nem removida depois de criada.
type HistoryEntry struct {
	ID        int64            `json:"id"`
	RequestID int64            `json:"requestId"`
	Action    HistoryAction    `json:"action"`
	UserID    int64            `json:"userId"`
	User      *User            `json:"user,omitempty"`
	Request   *PurchaseRequest `json:"request,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
