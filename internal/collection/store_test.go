package collection

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrCreate(t *testing.T) {
	s, err := NewStore(4)
	require.NoError(t, err)

	col, created := s.GetOrCreate("users")
	assert.True(t, created)
	col.Add(map[string]any{"id": 1})

	again, created := s.GetOrCreate("users")
	assert.False(t, created)
	assert.Same(t, col, again)
	assert.Equal(t, 1, again.Documents())
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s, err := NewStore(2)
	require.NoError(t, err)

	s.GetOrCreate("a")
	s.GetOrCreate("b")
	_, ok := s.Get("a")
	require.True(t, ok)
	s.GetOrCreate("c")

	assert.Equal(t, 2, s.Len())
	_, ok = s.Get("b")
	assert.False(t, ok)
	_, ok = s.Get("a")
	assert.True(t, ok)
}

func TestStore_ListAndDelete(t *testing.T) {
	s, err := NewStore(8)
	require.NoError(t, err)

	zeta, _ := s.GetOrCreate("zeta")
	zeta.Add(map[string]any{"x": 1, "y": "s"}, map[string]any{"x": 2})
	s.GetOrCreate("alpha")

	infos := s.List()
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, 0, infos[0].Documents)
	assert.Equal(t, "zeta", infos[1].Name)
	assert.Equal(t, 2, infos[1].Documents)
	assert.Equal(t, 2, infos[1].Paths)

	assert.True(t, s.Delete("zeta"))
	assert.False(t, s.Delete("zeta"))
	assert.Len(t, s.List(), 1)
}

func TestNewStore_InvalidSize(t *testing.T) {
	_, err := NewStore(0)
	assert.Error(t, err)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestStore_DeleteIsNotLoggedAsEviction(t *testing.T) {
	logs := captureLogs(t)

	s, err := NewStore(1)
	require.NoError(t, err)

	s.GetOrCreate("a")
	require.True(t, s.Delete("a"))
	assert.Contains(t, logs.String(), `msg="collection deleted" collection=a`)
	assert.NotContains(t, logs.String(), "collection evicted")

	s.GetOrCreate("b")
	s.GetOrCreate("c")
	assert.Contains(t, logs.String(), `msg="collection evicted" collection=b`)
	assert.Contains(t, logs.String(), "reason=capacity")
}
