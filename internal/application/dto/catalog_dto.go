package dto

// ItemRequest criação/atualização de item do catálogo.
type ItemRequest struct {
	Name                string `json:"name"`
	Unit                string `json:"unit"`
	PreferredSupplierID *int64 `json:"preferredSupplierId,omitempty"`
}

// SupplierRequest criação/atualização de fornecedor.
type SupplierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`
}
