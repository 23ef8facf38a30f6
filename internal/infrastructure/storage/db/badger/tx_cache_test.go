package dbbadger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/walletkit/trezor-composer/pkg/explorer"
)

func TestTxCache(t *testing.T) {
	tests := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{"in memory", func(t *testing.T) string { return "" }},
		{"on disk", func(t *testing.T) string { return t.TempDir() }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cache, err := NewTxCache(tt.dir(t), nil)
			require.NoError(t, err)
			defer cache.Close()

			ctx := context.Background()

			_, err = cache.GetTransactionHex(ctx, "aa")
			require.ErrorIs(t, err, explorer.ErrTransactionNotFound)

			require.NoError(t, cache.AddTransactionHex(ctx, "aa", "0100"))
			require.NoError(t, cache.AddTransactionHex(ctx, "bb", "0200"))
			require.NoError(t, cache.AddTransactionHex(ctx, "aa", "0100"))

			txHex, err := cache.GetTransactionHex(ctx, "aa")
			require.NoError(t, err)
			require.Equal(t, "0100", txHex)

			count, err := cache.Count()
			require.NoError(t, err)
			require.Equal(t, uint64(2), count)
		})
	}
}

func TestTxCacheClose(t *testing.T) {
	interval := gcInterval
	gcInterval = 10 * time.Millisecond
	t.Cleanup(func() { gcInterval = interval })

	tests := []struct {
		name string
		dir  string
	}{
		{"in memory", ""},
		{"on disk", t.TempDir()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cache, err := NewTxCache(tt.dir, nil)
			require.NoError(t, err)
			require.NoError(t, cache.AddTransactionHex(context.Background(), "aa", "0100"))

			// Let the value log GC run a few times.
			time.Sleep(50 * time.Millisecond)

			require.NoError(t, cache.Close())
			select {
			case <-cache.done:
			case <-time.After(time.Second):
				t.Fatal("value log GC still running after close")
			}

			require.NoError(t, cache.Close())
		})
	}
}
