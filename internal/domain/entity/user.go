package entity

import "time"

// Role é o papel de um usuário no fluxo de compras. Enumeração fechada:
// qualquer outro valor é inválido.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleColaborador Role = "COLABORADOR" // solicitante
	RoleComprador   Role = "COMPRADOR"
	RoleEstoquista  Role = "ESTOQUISTA"
)

// Roles lista todos os papéis válidos (útil para validação e testes).
var Roles = []Role{RoleAdmin, RoleColaborador, RoleComprador, RoleEstoquista}

// Valid informa se o papel pertence à enumeração.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleColaborador, RoleComprador, RoleEstoquista:
		return true
	}
	return false
}

// User representa um usuário do sistema. Cada usuário tem exatamente um papel.
type User struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"` // bcrypt, nunca exposto
	Role               Role      `json:"role"`
	MustChangePassword bool      `json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
