package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/inventory-core/internal/domain"
)

// keyedLock serializa las mutaciones por clave (producto, ubicación) dentro
// del proceso. La exclusión entre instancias la aporta el SELECT FOR UPDATE
// del Ledger Store; este lock acota la espera y ordena los apply locales.
type keyedLock struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newKeyedLock() *keyedLock {
	return &keyedLock{slots: make(map[string]chan struct{})}
}

func (l *keyedLock) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}

// acquire toma el lock de la clave o devuelve ErrLockTimeout si no lo logra
// dentro del timeout. El caller debe invocar la función de release devuelta.
func (l *keyedLock) acquire(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	s := l.slot(key)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	case <-timer.C:
		return nil, domain.ErrLockTimeout
	case <-ctx.Done():
		return nil, domain.ErrLockTimeout
	}
}

func lockKey(productID, locationID string) string {
	return productID + "|" + locationID
}
