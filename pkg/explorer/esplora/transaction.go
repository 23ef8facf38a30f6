package esplora

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/walletkit/trezor-composer/pkg/explorer"
	"golang.org/x/sync/errgroup"
)

func (e *esplora) GetTransactionHex(
	ctx context.Context, hash string,
) (string, error) {
	resp, err := e.get(ctx, "tx_hex", fmt.Sprintf("/tx/%s/hex", hash))
	if err != nil {
		var respErr *responseError
		if errors.As(err, &respErr) && respErr.status == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", explorer.ErrTransactionNotFound, hash)
		}
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

func (e *esplora) GetTransaction(
	ctx context.Context, hash string,
) (*explorer.Transaction, error) {
	txHex, err := e.GetTransactionHex(ctx, hash)
	if err != nil {
		return nil, err
	}
	return explorer.NewTxFromHex(txHex)
}

func (e *esplora) ListTransactions(
	ctx context.Context, hashes []string,
) ([]*explorer.Transaction, error) {
	txs := make([]*explorer.Transaction, len(hashes))

	eg, ctx := errgroup.WithContext(ctx)
	for i, hash := range hashes {
		i, hash := i, hash
		eg.Go(func() error {
			tx, err := e.GetTransaction(ctx, hash)
			if err != nil {
				return err
			}
			txs[i] = tx
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return txs, nil
}
