package cache_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portbound/go-filedb/internal/infrastructure/cache"
	"github.com/portbound/go-filedb/internal/models"
)

func TestLRU(t *testing.T) {
	c, err := cache.NewLRU(2)
	require.NoError(t, err)

	id := uuid.New()
	file := &models.File{ID: id, Name: "a.txt"}

	_, ok := c.Get(id)
	assert.False(t, ok)

	c.Put(id, file)
	got, ok := c.Get(id)
	assert.True(t, ok)
	assert.Equal(t, file, got)

	c.Evict(id)
	_, ok = c.Get(id)
	assert.False(t, ok)
}

func TestLRUCapacityPressure(t *testing.T) {
	c, err := cache.NewLRU(1)
	require.NoError(t, err)

	first := uuid.New()
	second := uuid.New()
	c.Put(first, &models.File{ID: first})
	c.Put(second, &models.File{ID: second})

	_, ok := c.Get(first)
	assert.False(t, ok, "oldest entry should be displaced at capacity")
	_, ok = c.Get(second)
	assert.True(t, ok)
}

func TestLRUInvalidSize(t *testing.T) {
	_, err := cache.NewLRU(0)
	assert.Error(t, err)
}
