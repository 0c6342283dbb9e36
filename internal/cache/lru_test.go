package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_EvictsOldest(t *testing.T) {
	var evicted []string
	c, err := NewLRU[int](2, func(name string, _ int) {
		evicted = append(evicted, name)
	})
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a")
	assert.True(t, c.Put("c", 3))

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, []string{"a", "c"}, c.Names())
	assert.Equal(t, 2, c.Len())
}

func TestLRU_RemoveAndPeek(t *testing.T) {
	c, err := NewLRU[string](4, nil)
	require.NoError(t, err)

	c.Put("x", "value")
	v, ok := c.Peek("x")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	assert.True(t, c.Remove("x"))
	assert.False(t, c.Remove("x"))
	_, ok = c.Get("x")
	assert.False(t, ok)
}

func TestNewLRU_InvalidSize(t *testing.T) {
	_, err := NewLRU[int](0, nil)
	assert.Error(t, err)
}
