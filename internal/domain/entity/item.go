package entity

import "time"

// Item é um produto do catálogo que pode ser pedido. A unidade de medida
// (kg, litro, caixa...) é texto livre; a interface sugere valores comuns.
type Item struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Unit                string    `json:"unit"`
	PreferredSupplierID *int64    `json:"preferredSupplierId,omitempty"`
	PreferredSupplier   *Supplier `json:"preferredSupplier,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
