package main

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/walletkit/trezor-composer/internal/config"
	"github.com/walletkit/trezor-composer/internal/core/application"
	"github.com/walletkit/trezor-composer/internal/infrastructure/backend"
	dbbadger "github.com/walletkit/trezor-composer/internal/infrastructure/storage/db/badger"
	"github.com/walletkit/trezor-composer/pkg/explorer"
	"github.com/walletkit/trezor-composer/pkg/explorer/esplora"
	"github.com/walletkit/trezor-composer/pkg/txbuilder"
)

// newTrezorService wires the composer with the esplora backend and, unless
// disabled, the cache of previous transactions.
func newTrezorService() (application.TrezorService, func(), error) {
	network := config.GetNetwork()
	cleanup := func() {}

	explorerSvc, err := esplora.NewService(
		config.GetExplorerUrl(), network, esplora.Opts{
			RequestsPerSecond: config.GetInt(config.ExplorerRequestsPerSecondKey),
			RequestTimeout:    config.GetDuration(config.ExplorerRequestTimeoutKey),
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("explorer: %w", err)
	}

	if !config.GetBool(config.NoCacheKey) {
		dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
		cache, err := dbbadger.NewTxCache(dbDir, nil)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() {
			if err := cache.Close(); err != nil {
				log.WithError(err).Warn("failed to close tx cache")
			}
		}

		explorerSvc, err = explorer.NewCachedService(explorerSvc, cache)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	baseBuilder, err := txbuilder.NewTxBuilder(
		explorerSvc, network, config.GetUint64(config.FeePerKbKey),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	svc, err := application.NewTrezorService(
		backend.NewTxBuilder(baseBuilder),
		backend.NewTransactionLister(explorerSvc),
		network,
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	log.Debugf(
		"composer ready on %s, explorer %s", network.Name, config.GetExplorerUrl(),
	)
	return svc, cleanup, nil
}
