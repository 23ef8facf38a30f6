// Package txbuilder selects coins and computes fee and change of a bitcoin
// transaction spending the unspents of a given list of addresses.
package txbuilder

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txauthor"
	"github.com/btcsuite/btcwallet/wallet/txrules"
	"github.com/walletkit/trezor-composer/pkg/explorer"
)

// DefaultFeePerKb is the fee rate in satoshi per kilobyte used when none is
// given.
const DefaultFeePerKb = uint64(txrules.DefaultRelayFeePerKb)

var (
	// ErrNullExplorer ...
	ErrNullExplorer = errors.New("explorer service must not be null")
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params must not be null")

	// ErrNoAddressesGiven ...
	ErrNoAddressesGiven = errors.New("no addresses given to spend from")
	// ErrNoOutputsGiven ...
	ErrNoOutputsGiven = errors.New("no outputs given")
	// ErrNoUnspents ...
	ErrNoUnspents = errors.New("no unspents found for the given addresses")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrMissingChangeAddress ...
	ErrMissingChangeAddress = errors.New(
		"change address is mandatory when spending all unspents",
	)
	// ErrInvalidOutputAddress ...
	ErrInvalidOutputAddress = errors.New("invalid output address")
	// ErrDustOutput ...
	ErrDustOutput = errors.New("output amount is dust")
)

// Outpoint identifies a transaction output.
type Outpoint struct {
	Hash  string
	Index uint32
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// Output is a payment of Amount satoshi to Address.
type Output struct {
	Address string
	Amount  uint64
}

// BuildOpts is the struct given to BuildTransaction.
// A nil FeePerKb means the builder's default fee rate. RedeemScripts are the
// multisig scripts of the P2SH addresses among Addresses, used to size the
// inputs spending them.
type BuildOpts struct {
	Addresses     []string
	RedeemScripts [][]byte
	Outputs       []Output
	UtxoBlacklist []Outpoint
	ChangeAddress string
	FeePerKb      *uint64
	SpendAll      bool
}

// TxBuilder builds unsigned transactions out of the unspents fetched from
// the explorer.
type TxBuilder struct {
	explorer        explorer.Service
	network         *chaincfg.Params
	defaultFeePerKb uint64
}

// NewTxBuilder returns a new TxBuilder. A zero defaultFeePerKb is replaced by
// DefaultFeePerKb.
func NewTxBuilder(
	explorerSvc explorer.Service,
	network *chaincfg.Params,
	defaultFeePerKb uint64,
) (*TxBuilder, error) {
	if explorerSvc == nil {
		return nil, ErrNullExplorer
	}
	if network == nil {
		return nil, ErrNullNetwork
	}
	if defaultFeePerKb == 0 {
		defaultFeePerKb = DefaultFeePerKb
	}
	return &TxBuilder{explorerSvc, network, defaultFeePerKb}, nil
}

// BuildTransaction returns a Transaction that is not valid if the given opts
// can't be satisfied. Errors from the explorer are returned as is.
func (b *TxBuilder) BuildTransaction(
	ctx context.Context, opts BuildOpts,
) (*Transaction, error) {
	if len(opts.Addresses) <= 0 {
		return invalidTransaction(ErrNoAddressesGiven), nil
	}
	if len(opts.Outputs) <= 0 && !opts.SpendAll {
		return invalidTransaction(ErrNoOutputsGiven), nil
	}
	if opts.SpendAll && len(opts.ChangeAddress) <= 0 {
		return invalidTransaction(ErrMissingChangeAddress), nil
	}

	feePerKb := b.defaultFeePerKb
	if opts.FeePerKb != nil {
		feePerKb = *opts.FeePerKb
	}

	txOuts := make([]*wire.TxOut, 0, len(opts.Outputs))
	for _, out := range opts.Outputs {
		txOut, err := b.newTxOut(out)
		if err != nil {
			return invalidTransaction(err), nil
		}
		txOuts = append(txOuts, txOut)
	}

	changeAddress := opts.ChangeAddress
	if len(changeAddress) <= 0 {
		changeAddress = opts.Addresses[0]
	}
	changeScript, err := b.outputScript(changeAddress)
	if err != nil {
		return invalidTransaction(err), nil
	}

	sizer, err := newInputSizer(opts.RedeemScripts, b.network)
	if err != nil {
		return nil, fmt.Errorf("invalid redeem script: %w", err)
	}

	unspents, err := b.explorer.GetUnspentsForAddresses(ctx, opts.Addresses)
	if err != nil {
		return nil, err
	}
	unspents = filterUnspents(unspents, opts.UtxoBlacklist)
	if len(unspents) <= 0 {
		return invalidTransaction(ErrNoUnspents), nil
	}

	var authoredTx *txauthor.AuthoredTx
	if opts.SpendAll {
		authoredTx, err = sweepTransaction(
			unspents, txOuts, changeScript, btcutil.Amount(feePerKb), sizer,
		)
	} else {
		authoredTx, err = authorTransaction(
			txOuts, btcutil.Amount(feePerKb), makeInputSource(unspents),
			changeScript, sizer,
		)
	}
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return invalidTransaction(err), nil
		}
		return nil, err
	}

	return b.newTransaction(authoredTx, unspents)
}

func (b *TxBuilder) newTxOut(out Output) (*wire.TxOut, error) {
	script, err := b.outputScript(out.Address)
	if err != nil {
		return nil, err
	}
	txOut := wire.NewTxOut(int64(out.Amount), script)
	if err := txrules.CheckOutput(txOut, txrules.DefaultRelayFeePerKb); err != nil {
		if errors.Is(err, txrules.ErrOutputIsDust) {
			return nil, fmt.Errorf("%w: %d to %s", ErrDustOutput, out.Amount, out.Address)
		}
		return nil, err
	}
	return txOut, nil
}

func (b *TxBuilder) outputScript(addr string) ([]byte, error) {
	address, err := btcutil.DecodeAddress(addr, b.network)
	if err != nil || !address.IsForNet(b.network) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOutputAddress, addr)
	}
	return txscript.PayToAddrScript(address)
}

func (b *TxBuilder) newTransaction(
	authoredTx *txauthor.AuthoredTx, unspents []explorer.Utxo,
) (*Transaction, error) {
	unspentsByKey := make(map[string]explorer.Utxo, len(unspents))
	for _, u := range unspents {
		unspentsByKey[u.Key()] = u
	}

	inputs := make([]explorer.Utxo, 0, len(authoredTx.Tx.TxIn))
	for _, in := range authoredTx.Tx.TxIn {
		u, ok := unspentsByKey[in.PreviousOutPoint.String()]
		if !ok {
			return nil, fmt.Errorf(
				"selected input %s not found in unspents", in.PreviousOutPoint,
			)
		}
		inputs = append(inputs, u)
	}

	outputs := make([]Output, 0, len(authoredTx.Tx.TxOut))
	for _, out := range authoredTx.Tx.TxOut {
		_, addresses, _, err := txscript.ExtractPkScriptAddrs(
			out.PkScript, b.network,
		)
		if err != nil || len(addresses) != 1 {
			return nil, errors.New("failed to extract address of output script")
		}
		outputs = append(outputs, Output{
			Address: addresses[0].EncodeAddress(),
			Amount:  uint64(out.Value),
		})
	}

	return &Transaction{
		inputs:  inputs,
		outputs: outputs,
		tx:      authoredTx.Tx,
	}, nil
}

func filterUnspents(
	unspents []explorer.Utxo, blacklist []Outpoint,
) []explorer.Utxo {
	if len(blacklist) <= 0 {
		return unspents
	}

	blacklisted := make(map[string]bool, len(blacklist))
	for _, o := range blacklist {
		blacklisted[o.String()] = true
	}

	filtered := make([]explorer.Utxo, 0, len(unspents))
	for _, u := range unspents {
		if !blacklisted[u.Key()] {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// makeInputSource returns a txauthor.InputSource selecting coins among the
// given unspents for every requested target. If unspents can't cover the
// target, all of them are returned and the caller reports the insufficient
// funds.
func makeInputSource(unspents []explorer.Utxo) txauthor.InputSource {
	return func(target btcutil.Amount) (
		btcutil.Amount, []*wire.TxIn, []btcutil.Amount, [][]byte, error,
	) {
		coins, _, err := explorer.SelectUnspents(unspents, uint64(target))
		if err != nil {
			coins = unspents
		}
		return txInputs(coins)
	}
}

func txInputs(coins []explorer.Utxo) (
	btcutil.Amount, []*wire.TxIn, []btcutil.Amount, [][]byte, error,
) {
	total := btcutil.Amount(0)
	inputs := make([]*wire.TxIn, 0, len(coins))
	values := make([]btcutil.Amount, 0, len(coins))
	scripts := make([][]byte, 0, len(coins))

	for _, coin := range coins {
		hash, err := chainhash.NewHashFromStr(coin.Hash())
		if err != nil {
			return 0, nil, nil, nil, err
		}
		inputs = append(inputs, wire.NewTxIn(
			wire.NewOutPoint(hash, coin.Index()), nil, nil,
		))
		total += btcutil.Amount(coin.Value())
		values = append(values, btcutil.Amount(coin.Value()))
		scripts = append(scripts, coin.Script())
	}
	return total, inputs, values, scripts, nil
}

// authorTransaction selects inputs until they cover outputs and the fee of
// the signed transaction, as estimated by sizer. The change output is added
// only if not dust.
func authorTransaction(
	outputs []*wire.TxOut,
	feePerKb btcutil.Amount,
	fetchInputs txauthor.InputSource,
	changeScript []byte,
	sizer inputSizer,
) (*txauthor.AuthoredTx, error) {
	targetAmount := txauthor.SumOutputValues(outputs)
	targetFee := txrules.FeeForSerializeSize(
		feePerKb, sizer.virtualSize(nil, outputs, len(changeScript)),
	)

	for {
		total, inputs, values, scripts, err := fetchInputs(targetAmount + targetFee)
		if err != nil {
			return nil, err
		}
		if total < targetAmount+targetFee {
			return nil, ErrInsufficientFunds
		}

		fee := txrules.FeeForSerializeSize(
			feePerKb, sizer.virtualSize(scripts, outputs, len(changeScript)),
		)
		if total-targetAmount < fee {
			targetFee = fee
			continue
		}

		tx := wire.NewMsgTx(wire.TxVersion)
		for _, in := range inputs {
			tx.AddTxIn(in)
		}
		for _, out := range outputs {
			tx.AddTxOut(out)
		}

		changeIndex := -1
		change := wire.NewTxOut(int64(total-targetAmount-fee), changeScript)
		if change.Value > 0 &&
			!txrules.IsDustOutput(change, txrules.DefaultRelayFeePerKb) {
			tx.AddTxOut(change)
			changeIndex = len(outputs)
		}

		return &txauthor.AuthoredTx{
			Tx:              tx,
			PrevScripts:     scripts,
			PrevInputValues: values,
			TotalInput:      total,
			ChangeIndex:     changeIndex,
		}, nil
	}
}

// sweepTransaction spends all the given unspents. Whatever is left after
// paying outputs and fee goes to the change script.
func sweepTransaction(
	unspents []explorer.Utxo,
	outputs []*wire.TxOut,
	changeScript []byte,
	feePerKb btcutil.Amount,
	sizer inputSizer,
) (*txauthor.AuthoredTx, error) {
	total, inputs, values, scripts, err := txInputs(unspents)
	if err != nil {
		return nil, err
	}

	outputTotal := txauthor.SumOutputValues(outputs)
	fee := txrules.FeeForSerializeSize(
		feePerKb, sizer.virtualSize(scripts, outputs, len(changeScript)),
	)

	change := total - outputTotal - fee
	if change <= 0 || txrules.IsDustOutput(
		wire.NewTxOut(int64(change), changeScript), txrules.DefaultRelayFeePerKb,
	) {
		return nil, ErrInsufficientFunds
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	for _, in := range inputs {
		tx.AddTxIn(in)
	}
	for _, out := range outputs {
		tx.AddTxOut(out)
	}
	tx.AddTxOut(wire.NewTxOut(int64(change), changeScript))

	return &txauthor.AuthoredTx{
		Tx:              tx,
		PrevScripts:     scripts,
		PrevInputValues: values,
		TotalInput:      total,
		ChangeIndex:     len(outputs),
	}, nil
}
