package cache_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	var evicted []string
	c.OnEvict(func(k string, _ int) { evicted = append(evicted, k) })

	c.Put("regular-24", 1)
	c.Put("bold-24", 2)
	_, ok := c.Get("regular-24")
	require.True(t, ok)

	c.Put("italic-24", 3)
	assert.Equal(t, []string{"bold-24"}, evicted)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("bold-24")
	assert.False(t, ok)

	c.Put("italic-24", 30)
	v, _ := c.Get("italic-24")
	assert.Equal(t, 30, v)
	assert.Equal(t, 2, c.Len())
}

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, string](4)
	calls := 0
	create := func() (string, error) {
		calls++
		return "face", nil
	}

	v, err := c.GetOrCreate("k", create)
	require.NoError(t, err)
	assert.Equal(t, "face", v)
	_, err = c.GetOrCreate("k", create)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("parse failed")
	_, err = c.GetOrCreate("bad", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get("bad")
	assert.False(t, ok)
}

func TestNewLRUPanicsOnZeroCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cache.NewLRU[int, int](0) })
}
