package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventory-core/internal/application/inventory"
	"github.com/tu-usuario/inventory-core/internal/domain"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
	"github.com/tu-usuario/inventory-core/pkg/logger"
)

// Escenario venta: 100 disponibles, sale una venta de 30. La fila queda en 70,
// el libro registra exactamente un movimiento y la proyección se refresca.
func TestApply_Venta(t *testing.T) {
	r := newRig()
	r.addProduct("SKU-001", "Tornillo 3/8")
	r.seedLevel("SKU-001", "BOG-01", 100, 0)

	level, mov, err := r.mutator.Apply(context.Background(), inventory.MovementInput{
		ProductID:     "SKU-001",
		LocationID:    "BOG-01",
		Type:          entity.MovementTypeOutbound,
		QuantityDelta: -30,
		Reason:        "venta",
		ActorID:       "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(70), level.QuantityAvailable)
	assert.Equal(t, int64(70), level.QuantityOnHand)
	assert.True(t, level.InvariantOK())

	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementTypeOutbound, mov.Type)
	assert.Equal(t, int64(-30), mov.QuantityDelta)
	assert.NotEmpty(t, mov.ID)

	movs := r.movementsOf("SKU-001", "BOG-01")
	require.Len(t, movs, 1)

	// El efecto post-commit dejó la proyección al día.
	snap, ok, err := r.cache.Get(context.Background(), "SKU-001", "BOG-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(70), snap.Available)
	assert.Equal(t, entity.StockStatusAvailable, snap.Status)
}

// Escenario rechazo: la salida imposible falla con stock insuficiente y no
// deja rastro ni en la fila ni en el libro.
func TestApply_RechazaSalidaImposible(t *testing.T) {
	r := newRig()
	r.addProduct("SKU-001", "Tornillo 3/8")
	r.seedLevel("SKU-001", "BOG-01", 5, 0)

	_, _, err := r.mutator.Apply(context.Background(), inventory.MovementInput{
		ProductID:     "SKU-001",
		LocationID:    "BOG-01",
		Type:          entity.MovementTypeOutbound,
		QuantityDelta: -9999,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	lv := r.level("SKU-001", "BOG-01")
	assert.Equal(t, int64(5), lv.QuantityAvailable)
	assert.Empty(t, r.movementsOf("SKU-001", "BOG-01"))
}

func TestApply_ProductoDesconocido(t *testing.T) {
	r := newRig()

	_, _, err := r.mutator.Apply(context.Background(), inventory.MovementInput{
		ProductID:     "NO-EXISTE",
		LocationID:    "BOG-01",
		Type:          entity.MovementTypeInbound,
		QuantityDelta: 10,
	})
	require.ErrorIs(t, err, domain.ErrUnknownReference)
	assert.Empty(t, r.movementsOf("NO-EXISTE", ""))
}

func TestApply_EntradaInvalida(t *testing.T) {
	r := newRig()
	r.addProduct("SKU-001", "Tornillo 3/8")

	casos := []inventory.MovementInput{
		{LocationID: "BOG-01", Type: entity.MovementTypeInbound, QuantityDelta: 10},  // sin producto
		{ProductID: "SKU-001", Type: entity.MovementTypeInbound, QuantityDelta: 10},  // sin ubicación
		{ProductID: "SKU-001", LocationID: "BOG-01", Type: entity.MovementTypeInbound}, // delta cero
		{ProductID: "SKU-001", LocationID: "BOG-01", Type: "MAGIA", QuantityDelta: 1}, // tipo inválido
	}
	for _, in := range casos {
		_, _, err := r.mutator.Apply(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// La primera mutación de una clave crea la fila perezosamente desde ceros.
func TestApply_CreaFilaPerezosamente(t *testing.T) {
	r := newRig()
	r.addProduct("SKU-009", "Tuerca 1/2")

	level, _, err := r.mutator.Apply(context.Background(), inventory.MovementInput{
		ProductID:     "SKU-009",
		LocationID:    "MED-01",
		Type:          entity.MovementTypeInbound,
		QuantityDelta: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), level.QuantityAvailable)
	assert.Equal(t, entity.StockStatusAvailable, level.Status)
}

// Entradas con costo propio recalculan el costo promedio ponderado.
func TestApply_CostoPromedioPonderado(t *testing.T) {
	r := newRig()
	r.addProduct("SKU-001", "Tornillo 3/8")

	c10 := decimal.NewFromInt(10)
	c20 := decimal.NewFromInt(20)

	_, _, err := r.mutator.Apply(context.Background(), inventory.MovementInput{
		ProductID: "SKU-001", LocationID: "BOG-01",
		Type: entity.MovementTypeInbound, QuantityDelta: 10, UnitCost: &c10,
	})
	require.NoError(t, err)

	level, _, err := r.mutator.Apply(context.Background(), inventory.MovementInput{
		ProductID: "SKU-001", LocationID: "BOG-01",
		Type: entity.MovementTypeInbound, QuantityDelta: 10, UnitCost: &c20,
	})
	require.NoError(t, err)

	assert.True(t, level.CostPerUnit.Equal(decimal.NewFromInt(15)),
		"esperaba costo 15.00, obtuve %s", level.CostPerUnit)
}

// Mutaciones concurrentes sobre la misma clave no pierden actualizaciones:
// la serialización por clave garantiza que cada delta queda aplicado.
func TestApply_Concurrencia_SinPerdidas(t *testing.T) {
	r := newRig()
	r.addProduct("SKU-001", "Tornillo 3/8")
	r.seedLevel("SKU-001", "BOG-01", 1000, 0)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := r.mutator.Apply(context.Background(), inventory.MovementInput{
				ProductID:     "SKU-001",
				LocationID:    "BOG-01",
				Type:          entity.MovementTypeOutbound,
				QuantityDelta: -1,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	lv := r.level("SKU-001", "BOG-01")
	assert.Equal(t, int64(1000-n), lv.QuantityAvailable)
	assert.Len(t, r.movementsOf("SKU-001", "BOG-01"), n)
}

// blockingTxRunner retiene la primera transacción hasta que se le dé permiso;
// sirve para mantener ocupado el lock de la clave.
type blockingTxRunner struct {
	inner   inventory.TxRunner
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.MovementRepository,
	resRepo repository.ReservationRepository,
) error) error {
	var first bool
	b.once.Do(func() { first = true })
	if first {
		close(b.entered)
		<-b.release
	}
	return b.inner.Run(ctx, fn)
}

func TestApply_LockTimeout(t *testing.T) {
	store := newMemStore()
	store.products["SKU-001"] = "Tornillo 3/8"
	blocking := &blockingTxRunner{
		inner:   &memTxRunner{store: store},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	mutator := inventory.NewApplyMovementUseCase(
		blocking, &memCatalog{store: store}, &fakeClock{t: baseTime}, 50*time.Millisecond, logger.Nop(),
	)

	in := inventory.MovementInput{
		ProductID:     "SKU-001",
		LocationID:    "BOG-01",
		Type:          entity.MovementTypeInbound,
		QuantityDelta: 1,
	}

	done := make(chan error, 1)
	go func() {
		_, _, err := mutator.Apply(context.Background(), in)
		done <- err
	}()
	<-blocking.entered // el primer apply tiene el lock y está retenido

	_, _, err := mutator.Apply(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrLockTimeout)

	close(blocking.release)
	require.NoError(t, <-done)
}
