package inventory_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tu-usuario/inventory-core/internal/application/inventory"
	"github.com/tu-usuario/inventory-core/internal/domain"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/internal/domain/repository"
	infracache "github.com/tu-usuario/inventory-core/internal/infrastructure/cache"
	"github.com/tu-usuario/inventory-core/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Reproducen el contrato de los repositorios de PostgreSQL:
// el TxRunner acumula las escrituras en un staging y solo las publica al
// "commit" (fn sin error), de modo que un fallo a mitad de transacción no
// deja nada escrito, igual que el rollback real.
// ──────────────────────────────────────────────────────────────────────────────

var errUpsertInyectado = errors.New("fallo inyectado en upsert")

func levelKey(productID, locationID string) string {
	return productID + "|" + locationID
}

type memStore struct {
	mu           sync.Mutex
	levels       map[string]*entity.StockLevel
	movements    []*entity.Movement
	reservations map[string]*entity.Reservation
	alerts       []*entity.Alert
	suggestions  []*entity.ReorderSuggestion
	products     map[string]string

	// failUpsertLoc hace fallar el Upsert de esa ubicación (simula un error
	// de escritura a mitad de un traslado).
	failUpsertLoc string
}

func newMemStore() *memStore {
	return &memStore{
		levels:       make(map[string]*entity.StockLevel),
		reservations: make(map[string]*entity.Reservation),
		products:     make(map[string]string),
	}
}

func copyLevel(lv *entity.StockLevel) *entity.StockLevel {
	cp := *lv
	return &cp
}

func copyReservation(r *entity.Reservation) *entity.Reservation {
	cp := *r
	return &cp
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

type memTx struct {
	store     *memStore
	levels    map[string]*entity.StockLevel
	movements []*entity.Movement
	resNew    []*entity.Reservation
	resStatus map[string]string
}

type memTxRunner struct {
	store *memStore
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.MovementRepository,
	resRepo repository.ReservationRepository,
) error) error {
	tx := &memTx{
		store:     r.store,
		levels:    make(map[string]*entity.StockLevel),
		resStatus: make(map[string]string),
	}
	if err := fn(&txStockRepo{tx}, &txMovementRepo{tx}, &txReservationRepo{tx}); err != nil {
		return err // staging descartado: rollback
	}
	tx.commit()
	return nil
}

func (tx *memTx) commit() {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for k, lv := range tx.levels {
		tx.store.levels[k] = lv
	}
	tx.store.movements = append(tx.store.movements, tx.movements...)
	for _, res := range tx.resNew {
		tx.store.reservations[res.ID] = res
	}
	for id, status := range tx.resStatus {
		if res, ok := tx.store.reservations[id]; ok {
			res.Status = status
		}
	}
}

// ─── Repos atados a la transacción ───────────────────────────────────────────

type txStockRepo struct{ tx *memTx }

var _ repository.StockLevelRepository = (*txStockRepo)(nil)

func (r *txStockRepo) GetForUpdate(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	k := levelKey(productID, locationID)
	if lv, ok := r.tx.levels[k]; ok {
		return copyLevel(lv), nil
	}
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	if lv, ok := r.tx.store.levels[k]; ok {
		return copyLevel(lv), nil
	}
	// Fila creada perezosamente en ceros con el primer movimiento.
	return &entity.StockLevel{ProductID: productID, LocationID: locationID}, nil
}

func (r *txStockRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return r.GetForUpdate(ctx, productID, locationID)
}

func (r *txStockRepo) Upsert(_ context.Context, level *entity.StockLevel) error {
	if r.tx.store.failUpsertLoc != "" && r.tx.store.failUpsertLoc == level.LocationID {
		return errUpsertInyectado
	}
	r.tx.levels[levelKey(level.ProductID, level.LocationID)] = copyLevel(level)
	return nil
}

func (r *txStockRepo) ListByLocation(_ context.Context, locationID string, limit, offset int) ([]*entity.StockLevel, error) {
	return nil, errors.New("no soportado dentro de la transacción")
}

type txMovementRepo struct{ tx *memTx }

var _ repository.MovementRepository = (*txMovementRepo)(nil)

func (r *txMovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	cp := *movement
	r.tx.movements = append(r.tx.movements, &cp)
	return nil
}

func (r *txMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	return nil, domain.ErrNotFound
}

func (r *txMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, errors.New("no soportado dentro de la transacción")
}

type txReservationRepo struct{ tx *memTx }

var _ repository.ReservationRepository = (*txReservationRepo)(nil)

func (r *txReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	r.tx.resNew = append(r.tx.resNew, copyReservation(reservation))
	return nil
}

func (r *txReservationRepo) GetByID(_ context.Context, id string) (*entity.Reservation, error) {
	if status, ok := r.tx.resStatus[id]; ok {
		r.tx.store.mu.Lock()
		defer r.tx.store.mu.Unlock()
		if res, ok := r.tx.store.reservations[id]; ok {
			cp := copyReservation(res)
			cp.Status = status
			return cp, nil
		}
		return nil, nil
	}
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	if res, ok := r.tx.store.reservations[id]; ok {
		return copyReservation(res), nil
	}
	return nil, nil
}

func (r *txReservationRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.tx.resStatus[id] = status
	return nil
}

func (r *txReservationRepo) ListActiveExpiring(_ context.Context, _ time.Time) ([]*entity.Reservation, error) {
	return nil, errors.New("no soportado dentro de la transacción")
}

// ─── Repos atados al "pool" (leen estado confirmado) ─────────────────────────

type memStockRepo struct{ store *memStore }

var _ repository.StockLevelRepository = (*memStockRepo)(nil)

func (r *memStockRepo) Get(_ context.Context, productID, locationID string) (*entity.StockLevel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if lv, ok := r.store.levels[levelKey(productID, locationID)]; ok {
		return copyLevel(lv), nil
	}
	return &entity.StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		Status:     entity.StockStatusOutOfStock,
	}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error) {
	return r.Get(ctx, productID, locationID)
}

func (r *memStockRepo) Upsert(_ context.Context, level *entity.StockLevel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.levels[levelKey(level.ProductID, level.LocationID)] = copyLevel(level)
	return nil
}

func (r *memStockRepo) ListByLocation(_ context.Context, locationID string, limit, offset int) ([]*entity.StockLevel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockLevel
	for _, lv := range r.store.levels {
		if lv.LocationID == locationID {
			out = append(out, copyLevel(lv))
		}
	}
	return out, nil
}

type memReservationRepo struct{ store *memStore }

var _ repository.ReservationRepository = (*memReservationRepo)(nil)

func (r *memReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.reservations[reservation.ID] = copyReservation(reservation)
	return nil
}

func (r *memReservationRepo) GetByID(_ context.Context, id string) (*entity.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if res, ok := r.store.reservations[id]; ok {
		return copyReservation(res), nil
	}
	return nil, nil
}

func (r *memReservationRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	res.Status = status
	return nil
}

func (r *memReservationRepo) ListActiveExpiring(_ context.Context, now time.Time) ([]*entity.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range r.store.reservations {
		if res.Status == entity.ReservationStatusActive && res.ExpiresAt != nil && !res.ExpiresAt.After(now) {
			out = append(out, copyReservation(res))
		}
	}
	return out, nil
}

type memAlertRepo struct{ store *memStore }

var _ repository.AlertRepository = (*memAlertRepo)(nil)

func (r *memAlertRepo) Create(_ context.Context, alert *entity.Alert) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *alert
	r.store.alerts = append(r.store.alerts, &cp)
	return nil
}

func (r *memAlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.alerts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAlertRepo) FindUnacknowledged(_ context.Context, productID, locationID, alertType string) (*entity.Alert, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.alerts {
		if !a.IsAcknowledged && a.ProductID == productID && a.LocationID == locationID && a.Type == alertType {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAlertRepo) List(_ context.Context, filter repository.AlertFilter) ([]*entity.Alert, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Alert
	for _, a := range r.store.alerts {
		if filter.ProductID != "" && a.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && a.LocationID != filter.LocationID {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.OnlyUnacked && a.IsAcknowledged {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memAlertRepo) Acknowledge(_ context.Context, id, actorID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.alerts {
		if a.ID == id {
			now := time.Now()
			a.IsAcknowledged = true
			a.AcknowledgedAt = &now
			a.AcknowledgedBy = actorID
			return nil
		}
	}
	return domain.ErrNotFound
}

type memSuggestionRepo struct{ store *memStore }

var _ repository.ReorderSuggestionRepository = (*memSuggestionRepo)(nil)

func (r *memSuggestionRepo) Create(_ context.Context, suggestion *entity.ReorderSuggestion) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *suggestion
	r.store.suggestions = append(r.store.suggestions, &cp)
	return nil
}

func (r *memSuggestionRepo) List(_ context.Context, filter repository.SuggestionFilter) ([]*entity.ReorderSuggestion, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.ReorderSuggestion
	for _, s := range r.store.suggestions {
		if filter.ProductID != "" && s.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && s.LocationID != filter.LocationID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type memCatalog struct{ store *memStore }

var _ repository.ProductCatalog = (*memCatalog)(nil)

func (c *memCatalog) Exists(_ context.Context, productID string) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	_, ok := c.store.products[productID]
	return ok, nil
}

func (c *memCatalog) Name(_ context.Context, productID string) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.store.products[productID], nil
}

// ─── Reloj de pruebas ────────────────────────────────────────────────────────

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// ─── Banco de pruebas ────────────────────────────────────────────────────────

var baseTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// rig cablea los casos de uso sobre los fakes, igual que main pero en memoria.
type rig struct {
	store       *memStore
	cache       *infracache.MemoryCache
	clock       *fakeClock
	mutator     *inventory.ApplyMovementUseCase
	transfer    *inventory.TransferUseCase
	reservation *inventory.ReservationUseCase
	snapshot    *inventory.SnapshotUseCase
	alerts      *inventory.AlertEngine
}

func newRig() *rig {
	store := newMemStore()
	clock := &fakeClock{t: baseTime}
	log := logger.Nop()
	catalog := &memCatalog{store: store}

	mutator := inventory.NewApplyMovementUseCase(&memTxRunner{store: store}, catalog, clock, 2*time.Second, log)
	cache := infracache.NewMemoryCache()
	snapshot := inventory.NewSnapshotUseCase(&memStockRepo{store: store}, cache)
	alerts := inventory.NewAlertEngine(&memAlertRepo{store: store}, &memSuggestionRepo{store: store}, catalog, clock, log, 10)
	mutator.SetSideEffects(snapshot, alerts)

	return &rig{
		store:       store,
		cache:       cache,
		clock:       clock,
		mutator:     mutator,
		transfer:    inventory.NewTransferUseCase(mutator, log),
		reservation: inventory.NewReservationUseCase(mutator, &memReservationRepo{store: store}, clock, log),
		snapshot:    snapshot,
		alerts:      alerts,
	}
}

func (r *rig) addProduct(id, name string) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[id] = name
}

// seedLevel deja una fila de stock confirmada con la cantidad disponible dada.
func (r *rig) seedLevel(productID, locationID string, available, reorderPoint int64) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.levels[levelKey(productID, locationID)] = &entity.StockLevel{
		ProductID:         productID,
		LocationID:        locationID,
		QuantityAvailable: available,
		QuantityOnHand:    available,
		ReorderPoint:      reorderPoint,
		Status:            entity.StockStatusAvailable,
		UpdatedAt:         baseTime,
	}
}

func (r *rig) level(productID, locationID string) *entity.StockLevel {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if lv, ok := r.store.levels[levelKey(productID, locationID)]; ok {
		return copyLevel(lv)
	}
	return nil
}

func (r *rig) movementsOf(productID, locationID string) []*entity.Movement {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.ProductID == productID && (locationID == "" || m.LocationID == locationID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}

func (r *rig) reservationByID(id string) *entity.Reservation {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if res, ok := r.store.reservations[id]; ok {
		return copyReservation(res)
	}
	return nil
}
