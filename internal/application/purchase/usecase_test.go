package purchase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagnermocelin/pedidosIHS/internal/application/purchase"
	"github.com/wagnermocelin/pedidosIHS/internal/domain"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
//
// memStore implementa as portas de persistência do ciclo de vida sobre mapas
// protegidos por mutex. UpdateStatusIf reproduz a semântica do update
// condicional do Postgres: compara e troca sob o lock, então no máximo uma
// transição concorrente vence.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	nextID    int64
	requests  map[int64]*entity.PurchaseRequest
	orders    map[int64]*entity.PurchaseOrder // por requestID
	history   []*entity.HistoryEntry
	items     map[int64]*entity.Item
	suppliers map[int64]*entity.Supplier
}

func newMemStore() *memStore {
	return &memStore{
		nextID:    1,
		requests:  make(map[int64]*entity.PurchaseRequest),
		orders:    make(map[int64]*entity.PurchaseOrder),
		items:     make(map[int64]*entity.Item),
		suppliers: make(map[int64]*entity.Supplier),
	}
}

func (s *memStore) Run(ctx context.Context, fn func(
	requestRepo repository.PurchaseRequestRepository,
	orderRepo repository.PurchaseOrderRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	// Sem transação real: os repos fazem cada operação de forma atômica sob o
	// mutex, o que basta para validar a orquestração e o CAS de status.
	return fn(&requestRepo{s}, &orderRepo{s}, &historyRepo{s})
}

type requestRepo struct{ s *memStore }

func (r *requestRepo) Create(ctx context.Context, pr *entity.PurchaseRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pr.ID = r.s.nextID
	r.s.nextID++
	cp := *pr
	r.s.requests[pr.ID] = &cp
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pr, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *pr
	if o, ok := r.s.orders[id]; ok {
		oc := *o
		cp.Order = &oc
	}
	return &cp, nil
}

func (r *requestRepo) GetDetail(ctx context.Context, id int64) (*entity.PurchaseRequest, error) {
	pr, err := r.GetByID(ctx, id)
	if err != nil || pr == nil {
		return pr, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.items[pr.ItemID]; ok {
		ic := *it
		pr.Item = &ic
	}
	if pr.Order != nil {
		if sp, ok := r.s.suppliers[pr.Order.SupplierID]; ok {
			sc := *sp
			pr.Order.Supplier = &sc
		}
	}
	return pr, nil
}

func (r *requestRepo) List(ctx context.Context, filter repository.RequestFilter) ([]*entity.PurchaseRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PurchaseRequest
	for _, pr := range r.s.requests {
		if filter.Status != nil && pr.Status != *filter.Status {
			continue
		}
		if filter.ItemID != nil && pr.ItemID != *filter.ItemID {
			continue
		}
		cp := *pr
		out = append(out, &cp)
	}
	return out, nil
}

func (r *requestRepo) UpdateStatusIf(ctx context.Context, id int64, expected, next entity.Status) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pr, ok := r.s.requests[id]
	if !ok || pr.Status != expected {
		return false, nil
	}
	pr.Status = next
	pr.UpdatedAt = time.Now()
	return true, nil
}

func (r *requestRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.requests, id)
	return nil
}

func (r *requestRepo) CountByStatus(ctx context.Context) (map[entity.Status]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[entity.Status]int64)
	for _, pr := range r.s.requests {
		out[pr.Status]++
	}
	return out, nil
}

type orderRepo struct{ s *memStore }

func (r *orderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.nextID
	r.s.nextID++
	cp := *o
	r.s.orders[o.PurchaseRequestID] = &cp
	return nil
}

func (r *orderRepo) GetByRequestID(ctx context.Context, requestID int64) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[requestID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *orderRepo) UpdateStatusByRequestID(ctx context.Context, requestID int64, status entity.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[requestID]; ok {
		o.Status = status
	}
	return nil
}

type historyRepo struct{ s *memStore }

func (r *historyRepo) Create(ctx context.Context, e *entity.HistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.nextID
	r.s.nextID++
	cp := *e
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r *historyRepo) ListByRequest(ctx context.Context, requestID int64) ([]*entity.HistoryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.HistoryEntry
	for _, e := range r.s.history {
		if e.RequestID == requestID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *historyRepo) List(ctx context.Context, filter repository.HistoryFilter, limit int) ([]*entity.HistoryEntry, error) {
	return r.ListByRequest(ctx, 0)
}

type itemRepo struct{ s *memStore }

func (r *itemRepo) Create(ctx context.Context, it *entity.Item) error      { return nil }
func (r *itemRepo) Update(ctx context.Context, it *entity.Item) error      { return nil }
func (r *itemRepo) Delete(ctx context.Context, id int64) error             { return nil }
func (r *itemRepo) List(ctx context.Context) ([]*entity.Item, error)       { return nil, nil }
func (r *itemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

type supplierRepo struct{ s *memStore }

func (r *supplierRepo) Create(ctx context.Context, sp *entity.Supplier) error { return nil }
func (r *supplierRepo) Update(ctx context.Context, sp *entity.Supplier) error { return nil }
func (r *supplierRepo) Delete(ctx context.Context, id int64) error            { return nil }
func (r *supplierRepo) List(ctx context.Context) ([]*entity.Supplier, error)  { return nil, nil }
func (r *supplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	colaborador = purchase.Actor{UserID: 10, Role: entity.RoleColaborador}
	comprador   = purchase.Actor{UserID: 20, Role: entity.RoleComprador}
	estoquista  = purchase.Actor{UserID: 30, Role: entity.RoleEstoquista}
	admin       = purchase.Actor{UserID: 40, Role: entity.RoleAdmin}
)

func newFixture(t *testing.T) (*purchase.LifecycleUseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	store.items[1] = &entity.Item{ID: 1, Name: "Tomate", Unit: "kg"}
	store.suppliers[7] = &entity.Supplier{ID: 7, Name: "Hortifruti Central"}
	uc := purchase.NewLifecycleUseCase(store, &requestRepo{store}, &itemRepo{store}, &supplierRepo{store})
	return uc, store
}

func createPending(t *testing.T, uc *purchase.LifecycleUseCase) *entity.PurchaseRequest {
	t.Helper()
	pr, err := uc.Create(context.Background(), colaborador, purchase.CreateInput{
		ItemID:   1,
		Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.NotNil(t, pr)
	return pr
}

func historyActions(s *memStore, requestID int64) []entity.HistoryAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.HistoryAction
	for _, e := range s.history {
		if e.RequestID == requestID {
			out = append(out, e.Action)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PedidoNascePendingComHistoricoCreated(t *testing.T) {
	uc, store := newFixture(t)
	pr := createPending(t, uc)

	assert.Equal(t, entity.StatusPending, pr.Status)
	assert.Equal(t, []entity.HistoryAction{entity.ActionCreated}, historyActions(store, pr.ID),
		"deve existir exatamente uma entrada CREATED")
}

func TestCreate_QuantidadeNaoPositivaFalha(t *testing.T) {
	uc, store := newFixture(t)

	for _, q := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
		_, err := uc.Create(context.Background(), colaborador, purchase.CreateInput{ItemID: 1, Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, store.history, "criação rejeitada não pode gerar histórico")
}

func TestCreate_ItemInexistenteFalha(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.Create(context.Background(), colaborador, purchase.CreateInput{
		ItemID: 999, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CompradorNaoCria(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.Create(context.Background(), comprador, purchase.CreateInput{
		ItemID: 1, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transições
// ──────────────────────────────────────────────────────────────────────────────

func TestOrder_CriaOrdemEHistorico(t *testing.T) {
	uc, store := newFixture(t)
	pr := createPending(t, uc)

	updated, err := uc.Order(context.Background(), comprador, pr.ID, purchase.OrderInput{SupplierID: 7})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusOrdered, updated.Status)
	require.NotNil(t, updated.Order)
	assert.Equal(t, pr.ID, updated.Order.PurchaseRequestID)
	assert.Equal(t, int64(7), updated.Order.SupplierID)
	assert.Equal(t, entity.OrderStatusOrdered, updated.Order.Status)
	assert.Equal(t, []entity.HistoryAction{entity.ActionCreated, entity.ActionOrdered},
		historyActions(store, pr.ID))
}

func TestOrder_SemFornecedorFalha(t *testing.T) {
	uc, _ := newFixture(t)
	pr := createPending(t, uc)

	_, err := uc.Order(context.Background(), comprador, pr.ID, purchase.OrderInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrder_ColaboradorNegadoIndependenteDoStatus(t *testing.T) {
	uc, _ := newFixture(t)
	pr := createPending(t, uc)

	_, err := uc.Order(context.Background(), colaborador, pr.ID, purchase.OrderInput{SupplierID: 7})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrder_PedidoInexistenteFalha(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.Order(context.Background(), comprador, 404, purchase.OrderInput{SupplierID: 7})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchase_PedidoAindaPendingFalhaSemMutacao(t *testing.T) {
	uc, store := newFixture(t)
	pr := createPending(t, uc)

	_, err := uc.Purchase(context.Background(), comprador, pr.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	reloaded, err := uc.Get(context.Background(), pr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, reloaded.Status, "status não pode mudar")
	assert.Equal(t, []entity.HistoryAction{entity.ActionCreated}, historyActions(store, pr.ID),
		"falha de precondição não gera histórico")
}

func TestCancel_OrderedCancelaOrdemJunto(t *testing.T) {
	uc, store := newFixture(t)
	pr := createPending(t, uc)
	_, err := uc.Order(context.Background(), comprador, pr.ID, purchase.OrderInput{SupplierID: 7})
	require.NoError(t, err)

	updated, err := uc.Cancel(context.Background(), comprador, pr.ID, "")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCancelled, updated.Status)
	require.NotNil(t, updated.Order)
	assert.Equal(t, entity.OrderStatusCancelled, updated.Order.Status,
		"a ordem vinculada é cancelada na mesma transação")
	assert.Equal(t, []entity.HistoryAction{entity.ActionCreated, entity.ActionOrdered, entity.ActionCancelled},
		historyActions(store, pr.ID))
}

func TestCancel_PurchasedSomenteAdmin(t *testing.T) {
	uc, _ := newFixture(t)
	pr := createPending(t, uc)
	_, err := uc.Order(context.Background(), comprador, pr.ID, purchase.OrderInput{SupplierID: 7})
	require.NoError(t, err)
	_, err = uc.Purchase(context.Background(), comprador, pr.ID, "")
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), comprador, pr.ID, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := uc.Cancel(context.Background(), admin, pr.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, updated.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário ponta a ponta (ciclo completo)
// ──────────────────────────────────────────────────────────────────────────────

func TestCicloCompleto(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	pr := createPending(t, uc)

	// PENDING → ORDERED pelo comprador, fornecedor 7
	ordered, err := uc.Order(ctx, comprador, pr.ID, purchase.OrderInput{SupplierID: 7})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOrdered, ordered.Status)
	require.NotNil(t, ordered.Order)
	assert.Equal(t, int64(7), ordered.Order.SupplierID)
	assert.Len(t, historyActions(store, pr.ID), 2)

	// Receber antes da compra: precondição falha
	_, err = uc.Receive(ctx, estoquista, pr.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// ORDERED → PURCHASED; ordem vira FINISHED
	purchased, err := uc.Purchase(ctx, comprador, pr.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPurchased, purchased.Status)
	require.NotNil(t, purchased.Order)
	assert.Equal(t, entity.OrderStatusFinished, purchased.Order.Status)
	assert.Len(t, historyActions(store, pr.ID), 3)

	// PURCHASED → RECEIVED
	received, err := uc.Receive(ctx, estoquista, pr.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReceived, received.Status)
	assert.Len(t, historyActions(store, pr.ID), 4)

	// RECEIVED é terminal: nem ADMIN cancela
	_, err = uc.Cancel(ctx, admin, pr.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, historyActions(store, pr.ID), 4, "transição negada não gera histórico")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concorrência: exatamente um vencedor
// ──────────────────────────────────────────────────────────────────────────────

func TestConcorrencia_CancelEPurchaseSobreMesmoPedido(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	pr := createPending(t, uc)
	_, err := uc.Order(ctx, comprador, pr.ID, purchase.OrderInput{SupplierID: 7})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.Purchase(ctx, comprador, pr.ID, "")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.Cancel(ctx, admin, pr.ID, "")
	}()
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidState, "o perdedor deve observar estado inválido")
		}
	}
	assert.Equal(t, 1, winners, "exatamente uma das transições concorrentes deve vencer")

	final, err := uc.Get(ctx, pr.ID)
	require.NoError(t, err)
	if errs[0] == nil {
		assert.Equal(t, entity.StatusPurchased, final.Status)
	} else {
		assert.Equal(t, entity.StatusCancelled, final.Status)
	}
	assert.Len(t, historyActions(store, pr.ID), 3,
		"apenas o vencedor registra histórico (CREATED, ORDERED e a transição vencedora)")
}

// ──────────────────────────────────────────────────────────────────────────────
// Remoção
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_SomentePendingDoCriadorOuAdmin(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	pr := createPending(t, uc)
	assert.ErrorIs(t, uc.Delete(ctx, comprador, pr.ID), domain.ErrForbidden)
	assert.NoError(t, uc.Delete(ctx, colaborador, pr.ID))

	pr2 := createPending(t, uc)
	_, err := uc.Order(ctx, comprador, pr2.ID, purchase.OrderInput{SupplierID: 7})
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Delete(ctx, admin, pr2.ID), domain.ErrInvalidState,
		"pedido que saiu de PENDING não pode ser removido")
}
