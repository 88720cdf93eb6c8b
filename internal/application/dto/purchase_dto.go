package dto

import "github.com/shopspring/decimal"

// CreatePurchaseRequest criação de pedido de compra.
type CreatePurchaseRequest struct {
	ItemID    int64            `json:"itemId"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// OrderRequest transição PENDING→ORDERED (cria a ordem de compra).
type OrderRequest struct {
	SupplierID int64            `json:"supplierId"`
	TotalPrice *decimal.Decimal `json:"totalPrice,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// TransitionRequest corpo das transições purchase/receive/cancel.
type TransitionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// StatsResponse contagem de pedidos por status.
type StatsResponse struct {
	ByStatus map[string]int64 `json:"byStatus"`
	Total    int64            `json:"total"`
}
