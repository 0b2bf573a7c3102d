package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assurdoc/internal/domain"
)

func analysis(id string) *domain.DemandeAnalysis {
	return &domain.DemandeAnalysis{DemandeID: id}
}

func TestCache_RoundTrip(t *testing.T) {
	c := New(time.Minute, 10)
	c.Set("d-1", analysis("d-1"))

	got, ok := c.Get("d-1")
	require.True(t, ok)
	assert.Equal(t, "d-1", got.DemandeID)

	_, ok = c.Get("d-2")
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	now := time.Now()
	c := New(time.Minute, 10)
	c.now = func() time.Time { return now }

	c.Set("d-1", analysis("d-1"))

	now = now.Add(30 * time.Second)
	_, ok := c.Get("d-1")
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = c.Get("d-1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_LRUEviction(t *testing.T) {
	c := New(time.Minute, 3)
	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("d-%d", i)
		c.Set(id, analysis(id))
	}

	// Touch d-1 so d-2 becomes the least recently used.
	_, ok := c.Get("d-1")
	require.True(t, ok)

	c.Set("d-4", analysis("d-4"))

	_, ok = c.Get("d-2")
	assert.False(t, ok)
	_, ok = c.Get("d-1")
	assert.True(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestCache_SetPurgesExpiredBeforeEvicting(t *testing.T) {
	now := time.Now()
	c := New(time.Minute, 2)
	c.now = func() time.Time { return now }

	c.Set("stale", analysis("stale"))

	now = now.Add(2 * time.Minute)
	c.Set("a", analysis("a"))
	c.Set("b", analysis("b"))

	// The stale entry went first; both live entries survive the bound.
	_, ok := c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCache_SetRefreshesExisting(t *testing.T) {
	c := New(time.Minute, 10)
	c.Set("d-1", analysis("d-1"))
	c.Set("d-1", analysis("d-1"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_Delete(t *testing.T) {
	c := New(time.Minute, 10)
	c.Set("d-1", analysis("d-1"))
	c.Delete("d-1")
	_, ok := c.Get("d-1")
	assert.False(t, ok)
}
