package inventory

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria para tests: implementa los puertos y el TxRunner con
// snapshot + rollback, igual que la transacción PostgreSQL (todo o nada) y con
// serialización de movimientos vía mutex.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu           sync.Mutex
	wares        map[int64]*entity.Ware
	factors      []*entity.Factor
	nextWareID   int64
	nextFactorID int64
	clock        time.Time
}

func newMemStore() *memStore {
	return &memStore{
		wares: make(map[int64]*entity.Ware),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) addWare(name, costMethod string) *entity.Ware {
	s.nextWareID++
	w := &entity.Ware{ID: s.nextWareID, Name: name, CostMethod: costMethod, CreatedAt: s.clock, UpdatedAt: s.clock}
	s.wares[w.ID] = w
	return w
}

// tick avanza el reloj del store: cada factor recibe un created_at estrictamente creciente.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memWareRepo struct{ s *memStore }

func (r *memWareRepo) Create(ware *entity.Ware) error {
	for _, w := range r.s.wares {
		if w.Name == ware.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.nextWareID++
	ware.ID = r.s.nextWareID
	ware.CreatedAt = r.s.clock
	ware.UpdatedAt = r.s.clock
	r.s.wares[ware.ID] = ware
	return nil
}

func (r *memWareRepo) GetByID(id int64) (*entity.Ware, error) {
	return r.s.wares[id], nil
}

func (r *memWareRepo) GetForUpdate(id int64) (*entity.Ware, error) {
	return r.s.wares[id], nil
}

func (r *memWareRepo) List(limit, offset int) ([]*entity.Ware, error) {
	var list []*entity.Ware
	for _, w := range r.s.wares {
		list = append(list, w)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

type memFactorRepo struct{ s *memStore }

func (r *memFactorRepo) Create(factor *entity.Factor) error {
	r.s.nextFactorID++
	factor.ID = r.s.nextFactorID
	factor.CreatedAt = r.s.tick()
	r.s.factors = append(r.s.factors, factor)
	return nil
}

func (r *memFactorRepo) ListInputsByWare(wareID int64) ([]*entity.Factor, error) {
	var list []*entity.Factor
	for _, f := range r.s.factors {
		if f.WareID == wareID && f.IsInput() {
			list = append(list, f)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *memFactorRepo) UpdateQuantity(factorID, newQuantity int64) error {
	for _, f := range r.s.factors {
		if f.ID == factorID {
			f.Quantity = newQuantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memFactorRepo) SumByWareAndType(wareID int64, factorType string) (repository.FactorAggregate, error) {
	agg := repository.FactorAggregate{TotalCost: decimal.Zero}
	for _, f := range r.s.factors {
		if f.WareID == wareID && f.Type == factorType {
			agg.Quantity += f.Quantity
			agg.TotalCost = agg.TotalCost.Add(f.TotalCost)
		}
	}
	return agg, nil
}

func (r *memFactorRepo) ListByWare(wareID int64, limit, offset int) ([]*entity.Factor, error) {
	var list []*entity.Factor
	for _, f := range r.s.factors {
		if f.WareID == wareID {
			list = append(list, f)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

type memTxRunner struct{ s *memStore }

// Run serializa los movimientos (mutex) y revierte el estado completo si fn
// falla: mismo contrato todo-o-nada que la transacción real.
func (r *memTxRunner) Run(_ context.Context, fn func(repository.WareRepository, repository.FactorRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := make([]*entity.Factor, len(r.s.factors))
	for i, f := range r.s.factors {
		cp := *f
		snapshot[i] = &cp
	}
	nextID := r.s.nextFactorID

	if err := fn(&memWareRepo{s: r.s}, &memFactorRepo{s: r.s}); err != nil {
		r.s.factors = snapshot
		r.s.nextFactorID = nextID
		return err
	}
	return nil
}

func newTestUseCase(s *memStore) *MovementUseCase {
	return NewMovementUseCase(&memTxRunner{s: s}, &memWareRepo{s: s}, &memFactorRepo{s: s})
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterInput(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("tornillos", entity.CostMethodFIFO)
	uc := newTestUseCase(s)
	ctx := context.Background()

	out, err := uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: 100, PurchasePrice: price("20.00")})
	require.NoError(t, err)
	assert.Equal(t, entity.FactorTypeInput, out.Type)
	assert.Equal(t, int64(100), out.Quantity)
	require.NotNil(t, out.PurchasePrice)
	assert.True(t, price("20.00").Equal(*out.PurchasePrice))
	assert.True(t, price("2000.00").Equal(out.TotalCost), "total_cost = cantidad × precio")
	assert.False(t, out.CreatedAt.IsZero())
}

func TestRegisterInput_Validation(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("tornillos", entity.CostMethodFIFO)
	uc := newTestUseCase(s)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.RegisterInputRequest
		want error
	}{
		{"cantidad cero", dto.RegisterInputRequest{WareID: ware.ID, Quantity: 0, PurchasePrice: price("10.00")}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.RegisterInputRequest{WareID: ware.ID, Quantity: -5, PurchasePrice: price("10.00")}, domain.ErrInvalidInput},
		{"precio cero", dto.RegisterInputRequest{WareID: ware.ID, Quantity: 10, PurchasePrice: decimal.Zero}, domain.ErrInvalidInput},
		{"precio negativo", dto.RegisterInputRequest{WareID: ware.ID, Quantity: 10, PurchasePrice: price("-1.00")}, domain.ErrInvalidInput},
		{"precio con más de 2 decimales", dto.RegisterInputRequest{WareID: ware.ID, Quantity: 10, PurchasePrice: price("10.001")}, domain.ErrInvalidInput},
		{"ware inexistente", dto.RegisterInputRequest{WareID: 999, Quantity: 10, PurchasePrice: price("10.00")}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RegisterInput(ctx, tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, s.factors, "ninguna entrada inválida debe persistir un factor")
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas FIFO
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOutput_FIFO(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("tornillos", entity.CostMethodFIFO)
	uc := newTestUseCase(s)
	ctx := context.Background()

	// 100 @ 20.00 y luego 50 @ 22.00
	_, err := uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: 100, PurchasePrice: price("20.00")})
	require.NoError(t, err)
	_, err = uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: 50, PurchasePrice: price("22.00")})
	require.NoError(t, err)

	// Salida de 120: 100×20.00 + 20×22.00 = 2440.00
	out, err := uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: 120})
	require.NoError(t, err)
	assert.Equal(t, entity.FactorTypeOutput, out.Type)
	assert.Equal(t, int64(120), out.Quantity)
	assert.True(t, price("2440.00").Equal(out.TotalCost), "costo obtenido %s", out.TotalCost)
	assert.Nil(t, out.PurchasePrice, "las salidas no llevan precio de compra")

	// Los lotes quedan decrementados en el store: 0 y 30.
	lots, err := (&memFactorRepo{s: s}).ListInputsByWare(ware.ID)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, int64(0), lots[0].Quantity)
	assert.Equal(t, int64(30), lots[1].Quantity)
	// El total_cost original de los lotes no se recalcula al decrementar.
	assert.True(t, price("2000.00").Equal(lots[0].TotalCost))

	// Valorización: 30 unidades @ 22.00 = 660.00
	val, err := uc.Valuate(ctx, ware.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), val.QuantityInStock)
	assert.True(t, price("660.00").Equal(val.TotalValue), "valor obtenido %s", val.TotalValue)
}

func TestRegisterOutput_FIFO_InsufficientStock(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("tornillos", entity.CostMethodFIFO)
	uc := newTestUseCase(s)
	ctx := context.Background()

	// Sin entradas: cualquier salida es insuficiente y no crea factor.
	_, err := uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: 10})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.factors)

	// Con stock parcial: la operación falla completa, sin mutación parcial de lotes.
	_, err = uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: 40, PurchasePrice: price("20.00")})
	require.NoError(t, err)
	_, err = uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: 41})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	lots, _ := (&memFactorRepo{s: s}).ListInputsByWare(ware.ID)
	require.Len(t, lots, 1)
	assert.Equal(t, int64(40), lots[0].Quantity, "el lote no debe quedar decrementado tras el rollback")
	assert.Len(t, s.factors, 1, "no debe existir factor de salida")
}

// Invariante: Σ restante de lotes = Σ entradas − Σ salidas exitosas, nunca negativo.
func TestRegisterOutput_FIFO_RemainingInvariant(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("tornillos", entity.CostMethodFIFO)
	uc := newTestUseCase(s)
	ctx := context.Background()

	inputs := []struct {
		qty   int64
		price string
	}{{30, "10.00"}, {70, "12.50"}, {25, "11.00"}}
	var totalIn int64
	for _, in := range inputs {
		_, err := uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: in.qty, PurchasePrice: price(in.price)})
		require.NoError(t, err)
		totalIn += in.qty
	}

	var totalOut int64
	for _, qty := range []int64{10, 45, 20, 60, 40} {
		_, err := uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: qty})
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			continue
		}
		totalOut += qty
	}

	lots, _ := (&memFactorRepo{s: s}).ListInputsByWare(ware.ID)
	var remaining int64
	for _, lot := range lots {
		require.GreaterOrEqual(t, lot.Quantity, int64(0))
		remaining += lot.Quantity
	}
	assert.Equal(t, totalIn-totalOut, remaining)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas promedio ponderado
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOutput_WeightedMean(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("arandelas", entity.CostMethodWeightedMean)
	uc := newTestUseCase(s)
	ctx := context.Background()

	_, err := uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: 100, PurchasePrice: price("20.00")})
	require.NoError(t, err)
	_, err = uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: 50, PurchasePrice: price("22.00")})
	require.NoError(t, err)

	// Promedio 3100/150 = 20.6667; salida de 120 → 2480.00.
	out, err := uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: 120})
	require.NoError(t, err)
	assert.True(t, price("2480.00").Equal(out.TotalCost), "costo obtenido %s", out.TotalCost)

	// Las entradas NO se mutan bajo promedio ponderado.
	lots, _ := (&memFactorRepo{s: s}).ListInputsByWare(ware.ID)
	require.Len(t, lots, 2)
	assert.Equal(t, int64(100), lots[0].Quantity)
	assert.Equal(t, int64(50), lots[1].Quantity)

	// Valorización: 30 unidades, 3100.00 − 2480.00 = 620.00.
	val, err := uc.Valuate(ctx, ware.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), val.QuantityInStock)
	assert.True(t, price("620.00").Equal(val.TotalValue), "valor obtenido %s", val.TotalValue)

	// La disponibilidad se deriva del historial: quedan 30, pedir 31 falla.
	_, err = uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: 31})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Consumir el resto deja la valorización en cero exacto.
	_, err = uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: 30})
	require.NoError(t, err)
	val, err = uc.Valuate(ctx, ware.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), val.QuantityInStock)
	assert.True(t, val.TotalValue.IsZero(), "con stock cero el valor se reporta 0, nunca negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de configuración y consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOutput_UnknownCostMethod(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("dañado", "lifo")
	uc := newTestUseCase(s)

	_, err := uc.RegisterOutput(context.Background(), dto.RegisterOutputRequest{WareID: ware.ID, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInvalidCostMethod)
}

func TestValuate_NotFound(t *testing.T) {
	uc := newTestUseCase(newMemStore())
	_, err := uc.Valuate(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFactors(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("tornillos", entity.CostMethodFIFO)
	uc := newTestUseCase(s)
	ctx := context.Background()

	_, err := uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: 10, PurchasePrice: price("5.00")})
	require.NoError(t, err)
	_, err = uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: 4})
	require.NoError(t, err)

	out, err := uc.ListFactors(ctx, ware.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Factors, 2)
	// Más reciente primero: la salida.
	assert.Equal(t, entity.FactorTypeOutput, out.Factors[0].Type)
	assert.Equal(t, entity.FactorTypeInput, out.Factors[1].Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: salidas simultáneas sobre el mismo ware se serializan;
// el consumo total nunca supera el stock suministrado.
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOutput_ConcurrentSameWare(t *testing.T) {
	s := newMemStore()
	ware := s.addWare("tornillos", entity.CostMethodFIFO)
	uc := newTestUseCase(s)
	ctx := context.Background()

	_, err := uc.RegisterInput(ctx, dto.RegisterInputRequest{WareID: ware.ID, Quantity: 100, PurchasePrice: price("20.00")})
	require.NoError(t, err)

	const workers = 10
	const perOutput = 30 // 10 × 30 = 300 solicitado, solo hay 100

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegisterOutput(ctx, dto.RegisterOutputRequest{WareID: ware.ID, Quantity: perOutput})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes int64
	for err := range results {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}

	// Con 100 unidades caben a lo sumo 3 salidas de 30.
	assert.LessOrEqual(t, successes, int64(3))
	lots, _ := (&memFactorRepo{s: s}).ListInputsByWare(ware.ID)
	var remaining int64
	for _, lot := range lots {
		remaining += lot.Quantity
	}
	assert.Equal(t, int64(100)-perOutput*successes, remaining,
		"el consumo total nunca debe superar el stock suministrado")
}
