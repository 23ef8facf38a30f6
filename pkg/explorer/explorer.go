package explorer

import (
	"context"
	"errors"
)

var (
	// ErrTransactionNotFound ...
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrNullTxCache ...
	ErrNullTxCache = errors.New("tx cache must not be null")
	// ErrNullService ...
	ErrNullService = errors.New("explorer service must not be null")
)

// Utxo represents an unspent transaction output in the bitcoin chain.
type Utxo interface {
	Hash() string
	Index() uint32
	Value() uint64
	Address() string
	Script() []byte
	Key() string
}

// Service is the representation of an explorer that allows to fetch unspents
// and previous transactions from the blockchain.
type Service interface {
	// GetUnspents fetches the utxos owned by the given address.
	GetUnspents(ctx context.Context, addr string) ([]Utxo, error)
	// GetUnspentsForAddresses fetches the utxos of the given list of
	// addresses. Utxos are returned grouped by address in the given order.
	GetUnspentsForAddresses(ctx context.Context, addresses []string) ([]Utxo, error)
	// GetTransactionHex fetches the transaction in hex format given its hash.
	GetTransactionHex(ctx context.Context, hash string) (string, error)
	// GetTransaction fetches and decodes the transaction with the given hash.
	GetTransaction(ctx context.Context, hash string) (*Transaction, error)
	// ListTransactions fetches and decodes the transactions with the given
	// hashes. The returned list has the same order of hashes.
	ListTransactions(ctx context.Context, hashes []string) ([]*Transaction, error)
	// GetBlockHeight returns the the number of blocks of the blockchain.
	GetBlockHeight(ctx context.Context) (int, error)
}

// TxCache stores raw transactions by hash. Transactions are immutable once
// mined, so entries never need to be invalidated.
type TxCache interface {
	GetTransactionHex(ctx context.Context, hash string) (string, error)
	AddTransactionHex(ctx context.Context, hash, txHex string) error
}
