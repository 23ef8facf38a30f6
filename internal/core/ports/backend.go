package ports

import "context"

// TransactionLister returns the full previous transactions for the given
// hashes, in the backend's own format.
type TransactionLister interface {
	ListTransactions(ctx context.Context, txHashes []string) ([]interface{}, error)
}
