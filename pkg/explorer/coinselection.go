package explorer

import (
	"errors"
	"sort"
)

// ErrInsufficientFunds is returned when the given utxos don't cover the
// target amount.
var ErrInsufficientFunds = errors.New(
	"error on target amount: total utxo amount does not cover target amount",
)

// SelectUnspents performs a coin selection over the given list of Utxos and
// returns a subset of them to cover the targetAmount along with the change.
// The smallest utxo covering the target on its own is preferred, otherwise
// utxos are taken from the biggest until the target is reached.
func SelectUnspents(
	utxos []Utxo,
	targetAmount uint64,
) (coins []Utxo, change uint64, err error) {
	sorted := make([]Utxo, len(utxos))
	copy(sorted, utxos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value() > sorted[j].Value()
	})

	if coin, ok := smallestCovering(sorted, targetAmount); ok {
		return []Utxo{coin}, coin.Value() - targetAmount, nil
	}

	totalAmount := uint64(0)
	for _, u := range sorted {
		if totalAmount >= targetAmount && len(coins) > 0 {
			break
		}
		coins = append(coins, u)
		totalAmount += u.Value()
	}

	if totalAmount < targetAmount || len(coins) <= 0 {
		return nil, 0, ErrInsufficientFunds
	}
	return coins, totalAmount - targetAmount, nil
}

// smallestCovering expects utxos to be sorted by descending value.
func smallestCovering(utxos []Utxo, target uint64) (Utxo, bool) {
	var found Utxo
	for _, u := range utxos {
		if u.Value() < target {
			break
		}
		found = u
	}
	return found, found != nil
}
