package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetAndGet(t *testing.T) {
	c := New()
	c.Set("report", "payload", time.Minute)

	value, found := c.Get("report")
	assert.True(t, found)
	assert.Equal(t, "payload", value)
}

func TestCacheMissAfterExpiration(t *testing.T) {
	c := New()
	c.Set("report", "payload", -time.Second)

	_, found := c.Get("report")
	assert.False(t, found)
}

func TestCacheDelete(t *testing.T) {
	c := New()
	c.Set("report", "payload", time.Minute)
	c.Delete("report")

	_, found := c.Get("report")
	assert.False(t, found)
}

func TestCacheInvalidateOrphansAllEntries(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Invalidate()

	_, foundA := c.Get("a")
	_, foundB := c.Get("b")
	assert.False(t, foundA)
	assert.False(t, foundB)

	// Entradas novas funcionam normalmente após a invalidação
	c.Set("a", 3, time.Minute)
	value, found := c.Get("a")
	assert.True(t, found)
	assert.Equal(t, 3, value)
}

func TestCacheDeleteExpiredSweepsOrphans(t *testing.T) {
	c := New()
	c.Set("old", 1, time.Minute)
	c.Invalidate()
	c.Set("new", 2, time.Minute)

	c.DeleteExpired()

	_, foundOld := c.Get("old")
	assert.False(t, foundOld)
	value, foundNew := c.Get("new")
	assert.True(t, foundNew)
	assert.Equal(t, 2, value)
}
