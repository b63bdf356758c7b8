package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cache_SetGet(t *testing.T) {

	c := NewCache(time.Minute)
	c.Set("rules:high-school", "cached")

	value, found := c.Get("rules:high-school")
	require.True(t, found)
	assert.Equal(t, "cached", value)
}

func Test_Cache_ExpiredEntryNotReturned(t *testing.T) {

	c := NewCache(10 * time.Millisecond)
	c.Set("key", "value")

	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func Test_Cache_Delete(t *testing.T) {

	c := NewCache(time.Minute)
	c.Set("key", "value")
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}

func Test_Cache_FlushRemovesEverything(t *testing.T) {

	c := NewCache(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Flush()

	_, foundA := c.Get("a")
	_, foundB := c.Get("b")
	assert.False(t, foundA)
	assert.False(t, foundB)
}
