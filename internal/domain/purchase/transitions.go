package purchase

import "github.com/wagnermocelin/pedidosIHS/internal/domain/entity"

// transitions é a matriz completa de autorização do ciclo de vida:
// para cada (status atual → status destino) os papéis autorizados.
// ADMIN aparece explicitamente em cada aresta; não há hierarquia de papéis.
// Pares ausentes são negados, inclusive auto-transições, saltos de estado
// e qualquer saída de RECEIVED ou CANCELLED (terminais).
// A tabela é fixa: política do negócio, não dado configurável.
var transitions = map[entity.Status]map[entity.Status][]entity.Role{
	entity.StatusPending: {
		entity.StatusOrdered:   {entity.RoleComprador, entity.RoleAdmin},
		entity.StatusCancelled: {entity.RoleColaborador, entity.RoleAdmin},
	},
	entity.StatusOrdered: {
		entity.StatusPurchased: {entity.RoleComprador, entity.RoleAdmin},
		entity.StatusCancelled: {entity.RoleComprador, entity.RoleAdmin},
	},
	entity.StatusPurchased: {
		entity.StatusReceived:  {entity.RoleEstoquista, entity.RoleAdmin},
		entity.StatusCancelled: {entity.RoleAdmin},
	},
	// RECEIVED e CANCELLED: terminais, sem arestas de saída.
	entity.StatusReceived:  {},
	entity.StatusCancelled: {},
}

// CanTransition decide se o papel pode mover um pedido do status atual para o
// destino. Função pura, determinística e total: qualquer combinação fora da
// tabela retorna false.
func CanTransition(from, to entity.Status, role entity.Role) bool {
	targets, ok := transitions[from]
	if !ok {
		return false
	}
	allowed, ok := targets[to]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles devolve os papéis autorizados para uma transição (cópia).
// Vazio quando a transição não existe.
func AllowedRoles(from, to entity.Status) []entity.Role {
	targets, ok := transitions[from]
	if !ok {
		return nil
	}
	allowed, ok := targets[to]
	if !ok {
		return nil
	}
	out := make([]entity.Role, len(allowed))
	copy(out, allowed)
	return out
}
