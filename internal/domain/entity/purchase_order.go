package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus é o estado de uma ordem de compra, espelhado das transições
// PURCHASED/CANCELLED do pedido que a originou.
type OrderStatus string

const (
	OrderStatusOrdered   OrderStatus = "ORDERED"
	OrderStatusFinished  OrderStatus = "FINISHED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PurchaseOrder registra o envio de um pedido a um fornecedor. É criada
// exatamente uma vez, na transição PENDING→ORDERED, e pertence ao pedido
// que a originou (relação um-para-um).
type PurchaseOrder struct {
	ID                int64            `json:"id"`
	PurchaseRequestID int64            `json:"purchaseRequestId"`
	SupplierID        int64            `json:"supplierId"`
	Supplier          *Supplier        `json:"supplier,omitempty"`
	OrderedBy         int64            `json:"orderedBy"`
	Orderer           *User            `json:"orderer,omitempty"`
	TotalPrice        *decimal.Decimal `json:"totalPrice,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	Status            OrderStatus      `json:"status"`
	CreatedAt         time.Time        `json:"createdAt"`
}
