package explorer

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type cachedService struct {
	Service
	cache TxCache
}

// NewCachedService returns a Service that looks up raw transactions in the
// given cache before falling back to svc. Every transaction fetched from svc
// is added to the cache.
func NewCachedService(svc Service, cache TxCache) (Service, error) {
	if svc == nil {
		return nil, ErrNullService
	}
	if cache == nil {
		return nil, ErrNullTxCache
	}
	return &cachedService{svc, cache}, nil
}

func (s *cachedService) GetTransactionHex(
	ctx context.Context, hash string,
) (string, error) {
	txHex, err := s.cache.GetTransactionHex(ctx, hash)
	if err == nil {
		return txHex, nil
	}
	if !errors.Is(err, ErrTransactionNotFound) {
		log.WithError(err).Warnf("tx cache: failed to get tx %s", hash)
	}

	txHex, err = s.Service.GetTransactionHex(ctx, hash)
	if err != nil {
		return "", err
	}
	if err := s.cache.AddTransactionHex(ctx, hash, txHex); err != nil {
		log.WithError(err).Warnf("tx cache: failed to add tx %s", hash)
	}
	return txHex, nil
}

func (s *cachedService) GetTransaction(
	ctx context.Context, hash string,
) (*Transaction, error) {
	txHex, err := s.GetTransactionHex(ctx, hash)
	if err != nil {
		return nil, err
	}
	return NewTxFromHex(txHex)
}

func (s *cachedService) ListTransactions(
	ctx context.Context, hashes []string,
) ([]*Transaction, error) {
	txs := make([]*Transaction, len(hashes))
	eg, ctx := errgroup.WithContext(ctx)
	for i, hash := range hashes {
		i, hash := i, hash
		eg.Go(func() error {
			tx, err := s.GetTransaction(ctx, hash)
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
