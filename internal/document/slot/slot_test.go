package slot

import (
	"context"
	"testing"

	"github.com/inkweld/inkweld/backend/go-services/internal/config"
	"github.com/stretchr/testify/require"
)

func TestMemorySlotReadWriteClear(t *testing.T) {
	s := NewMemorySlot()
	ctx := context.Background()

	_, ok, err := s.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Write(ctx, []byte(`[{"id":"a"}]`)))
	data, ok, err := s.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"a"}]`, string(data))

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemorySlotCopiesValue(t *testing.T) {
	s := NewMemorySlot()
	ctx := context.Background()

	buf := []byte("original")
	require.NoError(t, s.Write(ctx, buf))
	buf[0] = 'X'

	data, ok, err := s.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "original", string(data))
}

func TestOpenDefaultsToMemory(t *testing.T) {
	s := Open(context.Background(), config.StorageConfig{Backend: "memory", Namespace: "test"})
	require.Equal(t, "memory", s.Backend())

	s = Open(context.Background(), config.StorageConfig{Backend: "", Namespace: "test"})
	require.Equal(t, "memory", s.Backend())

	s = Open(context.Background(), config.StorageConfig{Backend: "something-else", Namespace: "test"})
	require.Equal(t, "memory", s.Backend())
}
