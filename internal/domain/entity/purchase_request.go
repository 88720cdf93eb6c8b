package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status é o estado de um pedido de compra no ciclo de vida
// PENDING → ORDERED → PURCHASED → RECEIVED, com cancelamento.
// Enumeração fechada; RECEIVED e CANCELLED são terminais.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusOrdered   Status = "ORDERED"
	StatusPurchased Status = "PURCHASED"
	StatusReceived  Status = "RECEIVED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lista todos os status válidos.
var Statuses = []Status{StatusPending, StatusOrdered, StatusPurchased, StatusReceived, StatusCancelled}

// Valid informa se o status pertence à enumeração.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOrdered, StatusPurchased, StatusReceived, StatusCancelled:
		return true
	}
	return false
}

// Terminal informa se o status não admite mais nenhuma transição.
func (s Status) Terminal() bool {
	return s == StatusReceived || s == StatusCancelled
}

// PurchaseRequest é um pedido de compra: a solicitação de um colaborador para
// comprar uma quantidade de um item, acompanhada durante todo o ciclo de vida.
type PurchaseRequest struct {
	ID          int64            `json:"id"`
	ItemID      int64            `json:"itemId"`
	Item        *Item            `json:"item,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	RequestedBy int64            `json:"requestedBy"`
	Requester   *User            `json:"requester,omitempty"`
	Status      Status           `json:"status"`
	Notes       string           `json:"notes,omitempty"`
	Order       *PurchaseOrder   `json:"order,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}
