package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
	"github.com/walletkit/trezor-composer/pkg/explorer"
)

const txCacheDir = "txs"

// gcInterval is how often the value log of on-disk stores is garbage
// collected.
var gcInterval = 30 * time.Minute

var _ explorer.TxCache = (*TxCache)(nil)

// rawTx is the record stored for every cached transaction.
type rawTx struct {
	Hash      string
	Hex       string
	CreatedAt int64
}

// TxCache is a badgerhold backed explorer.TxCache.
type TxCache struct {
	store *badgerhold.Store

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewTxCache opens (or creates if not exists) the badger store of cached
// transactions under the given base directory. An empty baseDbDir makes
// the store in-memory.
func NewTxCache(baseDbDir string, logger badger.Logger) (*TxCache, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, txCacheDir)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening tx cache db: %w", err)
	}

	cache := &TxCache{
		store: store,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	if len(dbDir) > 0 {
		go cache.runValueLogGC(gcInterval)
	} else {
		close(cache.done)
	}
	return cache, nil
}

func (c *TxCache) GetTransactionHex(
	_ context.Context, hash string,
) (string, error) {
	var tx rawTx
	if err := c.store.Get(hash, &tx); err != nil {
		if err == badgerhold.ErrNotFound {
			return "", explorer.ErrTransactionNotFound
		}
		return "", err
	}
	return tx.Hex, nil
}

func (c *TxCache) AddTransactionHex(
	_ context.Context, hash, txHex string,
) error {
	tx := rawTx{
		Hash:      hash,
		Hex:       txHex,
		CreatedAt: time.Now().Unix(),
	}
	return c.store.Upsert(hash, &tx)
}

// Count returns the number of cached transactions.
func (c *TxCache) Count() (uint64, error) {
	return c.store.Count(&rawTx{}, nil)
}

// Close stops the value log GC and closes the store. Calls after the first
// one are no-op.
func (c *TxCache) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done
		err = c.store.Close()
	})
	return err
}

func (c *TxCache) runValueLogGC(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if err := c.store.Badger().RunValueLogGC(0.5); err != nil &&
				err != badger.ErrNoRewrite {
				log.Error(err)
			}
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if len(dbDir) <= 0 {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
