// Package backend adapts the base transaction builder and the explorer to
// the ports of the composer.
package backend

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/walletkit/trezor-composer/internal/core/domain"
	"github.com/walletkit/trezor-composer/internal/core/ports"
	"github.com/walletkit/trezor-composer/pkg/mathutil"
	"github.com/walletkit/trezor-composer/pkg/txbuilder"
)

type txBuilder struct {
	builder *txbuilder.TxBuilder
}

// NewTxBuilder returns a ports.TxBuilder backed by the given base builder.
func NewTxBuilder(builder *txbuilder.TxBuilder) ports.TxBuilder {
	return &txBuilder{builder}
}

func (b *txBuilder) BuildTransaction(
	ctx context.Context, opts ports.BuildTxOpts,
) (ports.BuiltTx, error) {
	outputs := make([]txbuilder.Output, 0, len(opts.Outputs))
	for i, out := range opts.Outputs {
		amount, err := mathutil.ToSatoshis(out.Amount)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		outputs = append(outputs, txbuilder.Output{
			Address: out.Address,
			Amount:  amount,
		})
	}

	blacklist := make([]txbuilder.Outpoint, 0, len(opts.UtxoBlacklist))
	for _, o := range opts.UtxoBlacklist {
		blacklist = append(blacklist, txbuilder.Outpoint{
			Hash:  o.Hash,
			Index: o.Index,
		})
	}

	redeemScripts := make([][]byte, 0, len(opts.RedeemScripts))
	for _, script := range opts.RedeemScripts {
		redeemScripts = append(redeemScripts, script)
	}

	tx, err := b.builder.BuildTransaction(ctx, txbuilder.BuildOpts{
		Addresses:     opts.Addresses,
		RedeemScripts: redeemScripts,
		Outputs:       outputs,
		UtxoBlacklist: blacklist,
		ChangeAddress: opts.ChangeAddress,
		FeePerKb:      opts.FeePerKb,
		SpendAll:      opts.SpendAll,
	})
	if err != nil {
		return nil, err
	}
	return builtTx{tx}, nil
}

// builtTx exposes the amounts of a txbuilder.Transaction in coin units.
type builtTx struct {
	tx *txbuilder.Transaction
}

func (t builtTx) Valid() bool {
	return t.tx.Valid()
}

func (t builtTx) Errors() []error {
	return t.tx.Errors()
}

func (t builtTx) Inputs() []domain.SelectedInput {
	utxos := t.tx.Inputs()
	inputs := make([]domain.SelectedInput, 0, len(utxos))
	for _, u := range utxos {
		inputs = append(inputs, domain.SelectedInput{
			Address:         u.Address(),
			PrevTxHash:      u.Hash(),
			PrevOutputIndex: u.Index(),
			Value:           mathutil.FromSatoshis(int64(u.Value())),
			Script:          hex.EncodeToString(u.Script()),
		})
	}
	return inputs
}

func (t builtTx) Outputs() []domain.SelectedOutput {
	outs := t.tx.Outputs()
	outputs := make([]domain.SelectedOutput, 0, len(outs))
	for _, out := range outs {
		outputs = append(outputs, domain.SelectedOutput{
			Address: out.Address,
			Amount:  mathutil.FromSatoshis(int64(out.Amount)),
		})
	}
	return outputs
}

func (t builtTx) InputTotal() decimal.Decimal {
	return mathutil.FromSatoshis(int64(t.tx.InputTotal()))
}

func (t builtTx) OutputTotal() decimal.Decimal {
	return mathutil.FromSatoshis(int64(t.tx.OutputTotal()))
}

func (t builtTx) Fee() decimal.Decimal {
	return mathutil.FromSatoshis(int64(t.tx.Fee()))
}

func (t builtTx) UtxosToBlacklist() []domain.Outpoint {
	outpoints := t.tx.UtxosToBlacklist()
	res := make([]domain.Outpoint, 0, len(outpoints))
	for _, o := range outpoints {
		res = append(res, domain.Outpoint{Hash: o.Hash, Index: o.Index})
	}
	return res
}

func (t builtTx) UnsignedTx() (string, error) {
	return t.tx.UnsignedTx()
}
