package explorer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestUtxos(values ...uint64) []Utxo {
	utxos := make([]Utxo, 0, len(values))
	for i, v := range values {
		utxos = append(utxos, NewUtxo(
			"0000000000000000000000000000000000000000000000000000000000000001",
			uint32(i), v, "", nil,
		))
	}
	return utxos
}

func values(utxos []Utxo) []uint64 {
	v := make([]uint64, 0, len(utxos))
	for _, u := range utxos {
		v = append(v, u.Value())
	}
	return v
}

func TestSelectUnspents(t *testing.T) {
	tests := []struct {
		name       string
		items      []uint64
		target     uint64
		wantCoins  []uint64
		wantChange uint64
	}{
		{
			name:       "smallest single covering coin",
			items:      []uint64{61, 61, 61, 38, 61, 1, 1, 1, 3},
			target:     6,
			wantCoins:  []uint64{38},
			wantChange: 32,
		},
		{
			name:       "exact single coin",
			items:      []uint64{10, 6, 2},
			target:     6,
			wantCoins:  []uint64{6},
			wantChange: 0,
		},
		{
			name:       "biggest first when no single coin covers",
			items:      []uint64{1, 1, 3, 2},
			target:     6,
			wantCoins:  []uint64{3, 2, 1},
			wantChange: 0,
		},
		{
			name:       "biggest first with change",
			items:      []uint64{4, 4, 4},
			target:     10,
			wantCoins:  []uint64{4, 4, 4},
			wantChange: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			coins, change, err := SelectUnspents(newTestUtxos(tt.items...), tt.target)
			require.NoError(t, err)
			require.Equal(t, tt.wantCoins, values(coins))
			require.Equal(t, tt.wantChange, change)
		})
	}
}

func TestFailingSelectUnspents(t *testing.T) {
	tests := []struct {
		name   string
		items  []uint64
		target uint64
	}{
		{"not enough funds", []uint64{2, 2}, 6},
		{"no utxos", nil, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			coins, change, err := SelectUnspents(newTestUtxos(tt.items...), tt.target)
			require.ErrorIs(t, err, ErrInsufficientFunds)
			require.Nil(t, coins)
			require.Zero(t, change)
		})
	}
}

func TestSelectUnspentsDoesNotReorderInput(t *testing.T) {
	utxos := newTestUtxos(1, 5, 3)
	_, _, err := SelectUnspents(utxos, 7)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 5, 3}, values(utxos))
}
