// Package cache
package cache

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/portbound/go-filedb/internal/models"
)

// LRU is a process-wide record cache keyed by file id. Entries never
// expire; they leave only through explicit eviction or capacity
// pressure. Safe for concurrent use.
type LRU struct {
	records *lru.Cache[uuid.UUID, *models.File]
}

func NewLRU(size int) (*LRU, error) {
	records, err := lru.New[uuid.UUID, *models.File](size)
	if err != nil {
		return nil, fmt.Errorf("cache.NewLRU: failed to create cache of size %d: %w", size, err)
	}
	return &LRU{records: records}, nil
}

func (c *LRU) Get(id uuid.UUID) (*models.File, bool) {
	return c.records.Get(id)
}

func (c *LRU) Put(id uuid.UUID, file *models.File) {
	c.records.Add(id, file)
}

func (c *LRU) Evict(id uuid.UUID) {
	c.records.Remove(id)
}
