package intelligence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	cache := NewCache(time.Hour)

	assert.Nil(t, cache.Get("austin_0_0"))

	value := &UnifiedIntelligence{Location: "austin"}
	cache.Set("austin_0_0", value)

	got := cache.Get("austin_0_0")
	require.NotNil(t, got)
	assert.Same(t, value, got)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_ExpiredEntriesReadAsAbsent(t *testing.T) {
	cache := NewCache(10 * time.Millisecond)
	cache.Set("key", &UnifiedIntelligence{})

	time.Sleep(25 * time.Millisecond)

	assert.Nil(t, cache.Get("key"))
	// Expired but not yet reclaimed.
	assert.Equal(t, 1, cache.Len())
}

func TestCache_SweepReclaimsExpired(t *testing.T) {
	cache := NewCache(10 * time.Millisecond)
	cache.Set("a", &UnifiedIntelligence{})
	cache.Set("b", &UnifiedIntelligence{})

	assert.Equal(t, 0, cache.Sweep())

	time.Sleep(25 * time.Millisecond)

	assert.Equal(t, 2, cache.Sweep())
	assert.Equal(t, 0, cache.Len())
}

func TestCache_SetRefreshesExpiry(t *testing.T) {
	cache := NewCache(40 * time.Millisecond)
	cache.Set("key", &UnifiedIntelligence{Location: "old"})

	time.Sleep(25 * time.Millisecond)
	cache.Set("key", &UnifiedIntelligence{Location: "new"})
	time.Sleep(25 * time.Millisecond)

	got := cache.Get("key")
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Location)
}
