package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: emulan la transacción (commit/rollback) y el lock de fila
// serializando las transacciones con un mutex. Los escritos quedan en buffers
// de la tx y solo se vuelcan al store si fn no devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	items     map[string]*entity.Item
	movements []*entity.Movement
	audits    []*entity.AuditEntry

	failMovementCreate bool
	failAuditCreate    bool
}

func newFakeStore(items ...*entity.Item) *fakeStore {
	s := &fakeStore{items: make(map[string]*entity.Item)}
	for _, it := range items {
		copia := *it
		s.items[it.ID] = &copia
	}
	return s
}

func (s *fakeStore) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	auditRepo repository.AuditRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &fakeTx{store: s, items: make(map[string]*entity.Item)}
	if err := fn(tx, movRepoTx{tx}, auditRepoTx{tx}); err != nil {
		return err // rollback: se descartan los buffers de la tx
	}
	for id, it := range tx.items {
		s.items[id] = it
	}
	s.movements = append(s.movements, tx.movements...)
	s.audits = append(s.audits, tx.audits...)
	return nil
}

func (s *fakeStore) quantity(t *testing.T, itemID string) int64 {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[itemID]
	require.True(t, ok, "el item debe existir en el store")
	return it.Quantity
}

type fakeTx struct {
	store     *fakeStore
	items     map[string]*entity.Item
	movements []*entity.Movement
	audits    []*entity.AuditEntry
}

func (tx *fakeTx) get(id string) *entity.Item {
	if it, ok := tx.items[id]; ok {
		return it
	}
	if it, ok := tx.store.items[id]; ok {
		copia := *it
		tx.items[id] = &copia
		return &copia
	}
	return nil
}

func (tx *fakeTx) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return tx.get(id), nil
}

func (tx *fakeTx) GetForUpdate(_ context.Context, id string) (*entity.Item, error) {
	return tx.get(id), nil
}

func (tx *fakeTx) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	it := tx.get(id)
	if it == nil {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (tx *fakeTx) CreateMovement(m *entity.Movement) error {
	if tx.store.failMovementCreate {
		return &domain.StorageError{Op: "create movement", Err: errors.New("conexión perdida")}
	}
	tx.movements = append(tx.movements, m)
	return nil
}

func (tx *fakeTx) CreateAudit(e *entity.AuditEntry) error {
	if tx.store.failAuditCreate {
		return &domain.StorageError{Op: "create audit entry", Err: errors.New("conexión perdida")}
	}
	tx.audits = append(tx.audits, e)
	return nil
}

// movRepoTx y auditRepoTx desambiguan los dos Create de las interfaces.
type movRepoTx struct{ tx *fakeTx }

func (r movRepoTx) Create(_ context.Context, m *entity.Movement) error { return r.tx.CreateMovement(m) }
func (r movRepoTx) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.tx.store.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

type auditRepoTx struct{ tx *fakeTx }

func (r auditRepoTx) Create(_ context.Context, e *entity.AuditEntry) error {
	return r.tx.CreateAudit(e)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newItem(quantity int64) *entity.Item {
	now := time.Now()
	return &entity.Item{
		ID:           uuid.New().String(),
		Name:         "Guantes de nitrilo",
		Brand:        "MediPro",
		PurchaseCost: decimal.NewFromFloat(3.50),
		SalePrice:    decimal.NewFromFloat(5.00),
		Quantity:     quantity,
		ReorderLevel: 5,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func receiveInput(itemID string, quantity int64) ledger.ReceiveInput {
	return ledger.ReceiveInput{
		ItemID:        itemID,
		Quantity:      quantity,
		UnitPrice:     decimal.NewFromFloat(5.00),
		OperatorID:    uuid.New().String(),
		EffectiveDate: time.Now(),
	}
}

func dispatchInput(itemID string, quantity int64) ledger.DispatchInput {
	return ledger.DispatchInput{
		ItemID:        itemID,
		Quantity:      quantity,
		DispatchType:  entity.DispatchTypeSale,
		OperatorID:    uuid.New().String(),
		EffectiveDate: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_SumaStockYDejaMovimientoConAuditoria(t *testing.T) {
	item := newItem(0)
	store := newFakeStore(item)
	uc := ledger.NewLedgerUseCase(store)

	movID, err := uc.Receive(context.Background(), receiveInput(item.ID, 20))
	require.NoError(t, err)
	require.NotEmpty(t, movID)

	assert.Equal(t, int64(20), store.quantity(t, item.ID))
	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, movID, mov.ID)
	assert.Equal(t, entity.MovementKindReceipt, mov.Kind)
	assert.Equal(t, int64(20), mov.Quantity)
	assert.True(t, mov.UnitPrice.Equal(decimal.NewFromFloat(5.00)))

	require.Len(t, store.audits, 1)
	audit := store.audits[0]
	assert.Equal(t, entity.AuditActionInsert, audit.Action)
	assert.Equal(t, entity.AuditEntityMovement, audit.Entity)
	assert.Equal(t, movID, audit.EntityID)
	assert.Contains(t, audit.Detail, "Entrada de 20 unidades del producto "+item.ID)
}

func TestDispatch_DescuentaStockYRechazaInsuficiente(t *testing.T) {
	item := newItem(10)
	store := newFakeStore(item)
	uc := ledger.NewLedgerUseCase(store)
	ctx := context.Background()

	// Primera salida: 10 - 6 = 4
	movID, err := uc.Dispatch(ctx, dispatchInput(item.ID, 6))
	require.NoError(t, err)
	require.NotEmpty(t, movID)
	assert.Equal(t, int64(4), store.quantity(t, item.ID))

	// Segunda salida pide 5 con solo 4 disponibles: rechazo con la cantidad real
	_, err = uc.Dispatch(ctx, dispatchInput(item.ID, 5))
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(4), insufficient.Available)
	assert.Equal(t, int64(5), insufficient.Requested)
	assert.Contains(t, err.Error(), "solo hay 4 unidades disponibles")

	// Sin escritura parcial: stock, movimientos y auditoría intactos
	assert.Equal(t, int64(4), store.quantity(t, item.ID))
	assert.Len(t, store.movements, 1)
	assert.Len(t, store.audits, 1)
}

func TestDispatch_DetalleDeAuditoriaIncluyeTipo(t *testing.T) {
	item := newItem(8)
	store := newFakeStore(item)
	uc := ledger.NewLedgerUseCase(store)

	in := dispatchInput(item.ID, 3)
	in.DispatchType = entity.DispatchTypeDamaged
	_, err := uc.Dispatch(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, store.audits, 1)
	assert.Equal(t, "Salida de 3 unidades del producto "+item.ID+" - Tipo: DAMAGED", store.audits[0].Detail)
}

func TestValidaciones_RechazanAntesDeEscribir(t *testing.T) {
	item := newItem(10)

	cases := []struct {
		name     string
		dispatch func(in *ledger.DispatchInput)
		receive  func(in *ledger.ReceiveInput)
	}{
		{name: "cantidad cero", dispatch: func(in *ledger.DispatchInput) { in.Quantity = 0 }},
		{name: "cantidad negativa", dispatch: func(in *ledger.DispatchInput) { in.Quantity = -3 }},
		{name: "tipo de salida desconocido", dispatch: func(in *ledger.DispatchInput) { in.DispatchType = "REGALO" }},
		{name: "operador vacío", dispatch: func(in *ledger.DispatchInput) { in.OperatorID = "" }},
		{name: "operador mal formado", dispatch: func(in *ledger.DispatchInput) { in.OperatorID = "pepe" }},
		{name: "sin fecha efectiva", dispatch: func(in *ledger.DispatchInput) { in.EffectiveDate = time.Time{} }},
		{name: "sin producto", dispatch: func(in *ledger.DispatchInput) { in.ItemID = "" }},
		{name: "entrada cantidad cero", receive: func(in *ledger.ReceiveInput) { in.Quantity = 0 }},
		{name: "entrada precio negativo", receive: func(in *ledger.ReceiveInput) { in.UnitPrice = decimal.NewFromInt(-1) }},
		{name: "entrada operador mal formado", receive: func(in *ledger.ReceiveInput) { in.OperatorID = "x" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore(item)
			uc := ledger.NewLedgerUseCase(store)

			var err error
			if tc.dispatch != nil {
				in := dispatchInput(item.ID, 2)
				tc.dispatch(&in)
				_, err = uc.Dispatch(context.Background(), in)
			} else {
				in := receiveInput(item.ID, 2)
				tc.receive(&in)
				_, err = uc.Receive(context.Background(), in)
			}
			require.ErrorIs(t, err, domain.ErrInvalidInput)

			// Rechazo sincrónico: nada tocó el almacenamiento
			assert.Equal(t, int64(10), store.quantity(t, item.ID))
			assert.Empty(t, store.movements)
			assert.Empty(t, store.audits)
		})
	}
}

func TestItemInexistenteOInactivo(t *testing.T) {
	inactive := newItem(10)
	inactive.Active = false
	store := newFakeStore(inactive)
	uc := ledger.NewLedgerUseCase(store)
	ctx := context.Background()

	_, err := uc.Receive(ctx, receiveInput(uuid.New().String(), 5))
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Dispatch(ctx, dispatchInput(inactive.ID, 5))
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, store.movements)
	assert.Empty(t, store.audits)
}

func TestAtomicidad_FallaEnMovimientoRevierteTodo(t *testing.T) {
	item := newItem(10)
	store := newFakeStore(item)
	store.failMovementCreate = true
	uc := ledger.NewLedgerUseCase(store)

	_, err := uc.Receive(context.Background(), receiveInput(item.ID, 5))
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)

	assert.Equal(t, int64(10), store.quantity(t, item.ID))
	assert.Empty(t, store.movements)
	assert.Empty(t, store.audits)
}

func TestAtomicidad_FallaEnAuditoriaRevierteTodo(t *testing.T) {
	item := newItem(10)
	store := newFakeStore(item)
	store.failAuditCreate = true
	uc := ledger.NewLedgerUseCase(store)

	_, err := uc.Dispatch(context.Background(), dispatchInput(item.ID, 4))
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)

	assert.Equal(t, int64(10), store.quantity(t, item.ID))
	assert.Empty(t, store.movements)
	assert.Empty(t, store.audits)
}

func TestConservacion_StockFinalEsInicialMasEntradasMenosSalidas(t *testing.T) {
	item := newItem(100)
	store := newFakeStore(item)
	uc := ledger.NewLedgerUseCase(store)
	ctx := context.Background()

	var receipts, dispatches int64
	ops := []struct {
		kind string
		qty  int64
	}{
		{"R", 30}, {"D", 15}, {"R", 7}, {"D", 50}, {"D", 12}, {"R", 1}, {"D", 61},
	}
	for _, op := range ops {
		if op.kind == "R" {
			_, err := uc.Receive(ctx, receiveInput(item.ID, op.qty))
			require.NoError(t, err)
			receipts += op.qty
		} else {
			_, err := uc.Dispatch(ctx, dispatchInput(item.ID, op.qty))
			require.NoError(t, err)
			dispatches += op.qty
		}
	}

	assert.Equal(t, 100+receipts-dispatches, store.quantity(t, item.ID))
	// Cada movimiento confirmado tiene exactamente una entrada de auditoría
	assert.Len(t, store.audits, len(store.movements))
	assert.Len(t, store.movements, len(ops))
}

func TestCarrera_DosSalidasConcurrentesSoloUnaGana(t *testing.T) {
	item := newItem(5)
	store := newFakeStore(item)
	uc := ledger.NewLedgerUseCase(store)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Dispatch(context.Background(), dispatchInput(item.ID, 3))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		var ins *domain.InsufficientStockError
		require.ErrorAs(t, err, &ins)
		insufficient++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(2), store.quantity(t, item.ID))
}

func TestCarrera_NSalidasUnitariasNuncaSobregiran(t *testing.T) {
	const n = 20
	const stock = 7
	item := newItem(stock)
	store := newFakeStore(item)
	uc := ledger.NewLedgerUseCase(store)

	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Dispatch(context.Background(), dispatchInput(item.ID, 1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, rejected int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			var ins *domain.InsufficientStockError
			require.ErrorAs(t, err, &ins)
			rejected++
		}
	}
	assert.Equal(t, stock, ok)
	assert.Equal(t, n-stock, rejected)
	assert.Equal(t, int64(0), store.quantity(t, item.ID))
	assert.Len(t, store.movements, stock)
	assert.Len(t, store.audits, stock)
}
