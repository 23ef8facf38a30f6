package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/walletkit/trezor-composer/internal/core/domain"
	"github.com/walletkit/trezor-composer/internal/core/ports"
	"github.com/walletkit/trezor-composer/pkg/stats"
)

// TrezorService composes transactions ready to be signed by a Trezor
// device out of the wallet's bip32 address descriptors.
type TrezorService interface {
	// BuildTransaction runs the whole composition. User facing failures, like
	// missing addresses or insufficient funds, are reported by the returned
	// TrezorTransaction, while any other failure is returned as error.
	BuildTransaction(
		ctx context.Context, opts TrezorTransactionOpts,
	) (*TrezorTransaction, error)
	// ResolveAddresses returns the concrete address of every descriptor.
	ResolveAddresses(
		ctx context.Context, descriptors []domain.AddressDescriptorInput,
	) ([]string, error)
}

// TrezorTransactionOpts is the struct given to BuildTransaction. All fields
// but Bip32Addresses are forwarded to the base transaction builder.
type TrezorTransactionOpts struct {
	Bip32Addresses []domain.AddressDescriptorInput `json:"bip32_addresses"`
	Outputs        []domain.SelectedOutput         `json:"outputs,omitempty"`
	UtxoBlacklist  []domain.Outpoint               `json:"utxo_blacklist,omitempty"`
	ChangeAddress  string                          `json:"change_address,omitempty"`
	FeePerKb       *uint64                         `json:"fee_per_kb,omitempty"`
	SpendAll       bool                            `json:"spend_all,omitempty"`
}

func (o TrezorTransactionOpts) validate() ([]domain.AddressDescriptor, error) {
	for i, out := range o.Outputs {
		if len(out.Address) <= 0 {
			return nil, fmt.Errorf("output %d: %w", i, ErrNullOutputAddress)
		}
		if out.Amount.Sign() < 0 {
			return nil, fmt.Errorf("output %d: %w", i, ErrNegativeOutputAmount)
		}
	}
	for i, u := range o.UtxoBlacklist {
		if len(u.Hash) <= 0 {
			return nil, fmt.Errorf("utxo_blacklist %d: %w", i, ErrNullBlacklistedHash)
		}
	}

	return parseDescriptors(o.Bip32Addresses)
}

func (o TrezorTransactionOpts) buildTxOpts(
	resolved *resolvedAddresses,
) ports.BuildTxOpts {
	return ports.BuildTxOpts{
		Addresses:     resolved.addresses,
		RedeemScripts: resolved.redeemScripts,
		Outputs:       o.Outputs,
		UtxoBlacklist: o.UtxoBlacklist,
		ChangeAddress: o.ChangeAddress,
		FeePerKb:      o.FeePerKb,
		SpendAll:      o.SpendAll,
	}
}

// TrezorTransaction is the outcome of a composition. It's either invalid,
// with Errors() telling why, or built, with the full Result available.
type TrezorTransaction struct {
	id     string
	errors []error
	result *domain.Result
}

func (t *TrezorTransaction) ID() string {
	return t.id
}

func (t *TrezorTransaction) Valid() bool {
	return len(t.errors) <= 0 && t.result != nil
}

func (t *TrezorTransaction) Errors() []error {
	return append([]error{}, t.errors...)
}

// Result returns nil unless the transaction is valid.
func (t *TrezorTransaction) Result() *domain.Result {
	if !t.Valid() {
		return nil
	}
	return t.result
}

type trezorService struct {
	txBuilder ports.TxBuilder
	txLister  ports.TransactionLister
	network   *chaincfg.Params
}

func NewTrezorService(
	txBuilder ports.TxBuilder,
	txLister ports.TransactionLister,
	network *chaincfg.Params,
) (TrezorService, error) {
	if txBuilder == nil {
		return nil, ErrNullTxBuilder
	}
	if txLister == nil {
		return nil, ErrNullTransactionLister
	}
	if network == nil {
		return nil, ErrNullNetwork
	}
	return &trezorService{txBuilder, txLister, network}, nil
}

func (s *trezorService) ResolveAddresses(
	_ context.Context, inputs []domain.AddressDescriptorInput,
) ([]string, error) {
	return ResolveAddresses(inputs, s.network)
}

func (s *trezorService) BuildTransaction(
	ctx context.Context, opts TrezorTransactionOpts,
) (*TrezorTransaction, error) {
	tx := &TrezorTransaction{id: uuid.New().String()}
	logger := log.WithField("build_id", tx.id)

	tx, err := s.buildTransaction(ctx, tx, opts, logger)
	switch {
	case err != nil:
		stats.CountComposition(stats.OutcomeFailed)
		logger.WithError(err).Warn("transaction composition failed")
		return nil, err
	case !tx.Valid():
		stats.CountComposition(stats.OutcomeInvalid)
		logger.Debugf("transaction is not valid: %v", tx.errors)
	default:
		stats.CountComposition(stats.OutcomeBuilt)
		logger.WithFields(log.Fields{
			"inputs":  len(tx.result.TrezorInputs),
			"outputs": len(tx.result.TrezorOutputs),
		}).Debug("transaction composed")
	}
	return tx, nil
}

func (s *trezorService) buildTransaction(
	ctx context.Context,
	tx *TrezorTransaction,
	opts TrezorTransactionOpts,
	logger *log.Entry,
) (*TrezorTransaction, error) {
	if len(opts.Bip32Addresses) <= 0 {
		tx.errors = []error{domain.ErrNoAddressesGiven}
		return tx, nil
	}

	descriptors, err := opts.validate()
	if err != nil {
		return nil, err
	}

	resolved, err := resolveAddressDescriptors(descriptors, s.network)
	if err != nil {
		if errors.Is(err, domain.ErrNoAddressesGiven) {
			tx.errors = []error{err}
			return tx, nil
		}
		return nil, err
	}
	for _, addr := range resolved.duplicates {
		logger.Warnf(
			"address %s is resolved by more than one descriptor, using the last one",
			addr,
		)
	}

	builtTx, err := s.txBuilder.BuildTransaction(ctx, opts.buildTxOpts(resolved))
	if err != nil {
		return nil, fmt.Errorf("base transaction builder: %w", err)
	}
	if !builtTx.Valid() {
		tx.errors = builtTx.Errors()
		if len(tx.errors) <= 0 {
			tx.errors = []error{errors.New("transaction is not valid")}
		}
		return tx, nil
	}

	inputs := builtTx.Inputs()
	trezorInputs, err := buildTrezorInputs(ctx, inputs, resolved.lookup, s.network)
	if err != nil {
		return nil, err
	}

	outputs := builtTx.Outputs()
	trezorOutputs, err := buildTrezorOutputs(outputs, s.network)
	if err != nil {
		return nil, err
	}

	unsignedTx, err := builtTx.UnsignedTx()
	if err != nil {
		return nil, fmt.Errorf("serialize unsigned transaction: %w", err)
	}

	txs, err := s.txLister.ListTransactions(ctx, prevTxHashes(inputs))
	if err != nil {
		return nil, fmt.Errorf("list previous transactions: %w", err)
	}

	tx.result = &domain.Result{
		InputTotal:       builtTx.InputTotal(),
		OutputTotal:      builtTx.OutputTotal(),
		Fee:              builtTx.Fee(),
		Outputs:          outputs,
		Inputs:           inputs,
		UtxosToBlacklist: builtTx.UtxosToBlacklist(),
		Transactions:     txs,
		TrezorInputs:     trezorInputs,
		TrezorOutputs:    trezorOutputs,
		UnsignedTx:       unsignedTx,
	}
	return tx, nil
}

func parseDescriptors(
	inputs []domain.AddressDescriptorInput,
) ([]domain.AddressDescriptor, error) {
	descriptors := make([]domain.AddressDescriptor, 0, len(inputs))
	for i, in := range inputs {
		d, err := in.Parse()
		if err != nil {
			return nil, fmt.Errorf("bip32 address %d: %w", i, err)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// prevTxHashes returns the distinct hashes referenced by the given inputs in
// order of first appearance.
func prevTxHashes(inputs []domain.SelectedInput) []string {
	seen := make(map[string]bool, len(inputs))
	hashes := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if seen[in.PrevTxHash] {
			continue
		}
		seen[in.PrevTxHash] = true
		hashes = append(hashes, in.PrevTxHash)
	}
	return hashes
}
