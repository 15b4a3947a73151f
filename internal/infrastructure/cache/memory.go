package cache

import (
	"context"
	"sync"

	"github.com/tu-usuario/inventory-core/internal/application/inventory"
)

var _ inventory.SnapshotCache = (*MemoryCache)(nil)

// MemoryCache cache de snapshots en memoria del proceso. Adaptador por
// defecto para despliegues de una sola instancia; la proyección siempre puede
// reconstruirse desde el Ledger Store, así que perderla al reiniciar no es
// un problema de corrección.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]inventory.Snapshot
}

// NewMemoryCache construye el cache en memoria.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]inventory.Snapshot)}
}

func (c *MemoryCache) Get(_ context.Context, productID, locationID string) (*inventory.Snapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.entries[productID+"|"+locationID]
	if !ok {
		return nil, false, nil
	}
	return &snap, true, nil
}

func (c *MemoryCache) Set(_ context.Context, snapshot *inventory.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[snapshot.ProductID+"|"+snapshot.LocationID] = *snapshot
	return nil
}
