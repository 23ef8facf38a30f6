package backend

import (
	"context"

	"github.com/walletkit/trezor-composer/internal/core/ports"
	"github.com/walletkit/trezor-composer/pkg/explorer"
)

type txLister struct {
	explorer explorer.Service
}

// NewTransactionLister returns a ports.TransactionLister fetching the
// previous transactions from the given explorer.
func NewTransactionLister(explorerSvc explorer.Service) ports.TransactionLister {
	return &txLister{explorerSvc}
}

func (l *txLister) ListTransactions(
	ctx context.Context, txHashes []string,
) ([]interface{}, error) {
	if len(txHashes) <= 0 {
		return []interface{}{}, nil
	}

	txs, err := l.explorer.ListTransactions(ctx, txHashes)
	if err != nil {
		return nil, err
	}

	res := make([]interface{}, 0, len(txs))
	for _, tx := range txs {
		res = append(res, tx)
	}
	return res, nil
}
