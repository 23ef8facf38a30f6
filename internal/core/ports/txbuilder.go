package ports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/walletkit/trezor-composer/internal/core/domain"
)

// BuildTxOpts are forwarded untouched to the base transaction builder, apart
// from Addresses that are resolved from the wallet's descriptors.
// RedeemScripts maps every multisig address to its redeem script, so that
// fees account for the size of the inputs spending them.
type BuildTxOpts struct {
	Addresses     []string
	RedeemScripts map[string][]byte
	Outputs       []domain.SelectedOutput
	UtxoBlacklist []domain.Outpoint
	ChangeAddress string
	FeePerKb      *uint64
	SpendAll      bool
}

type TxBuilder interface {
	BuildTransaction(ctx context.Context, opts BuildTxOpts) (BuiltTx, error)
}

type BuiltTx interface {
	Valid() bool
	Errors() []error
	Inputs() []domain.SelectedInput
	Outputs() []domain.SelectedOutput
	InputTotal() decimal.Decimal
	OutputTotal() decimal.Decimal
	Fee() decimal.Decimal
	UtxosToBlacklist() []domain.Outpoint
	UnsignedTx() (string, error)
}
