package application

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/walletkit/trezor-composer/internal/core/domain"
	"github.com/walletkit/trezor-composer/pkg/wallet"
	"golang.org/x/sync/errgroup"
)

// buildTrezorInputs maps every selected input to its device descriptor.
// Multisig blocks are built concurrently, results keep the inputs' order.
func buildTrezorInputs(
	ctx context.Context,
	inputs []domain.SelectedInput,
	lookup domain.AddressLookup,
	network *chaincfg.Params,
) ([]domain.TrezorInput, error) {
	trezorInputs := make([]domain.TrezorInput, len(inputs))
	descriptors := make([]domain.AddressDescriptor, len(inputs))

	for i, in := range inputs {
		descriptor, ok := lookup.Get(in.Address)
		if !ok {
			return nil, fmt.Errorf(
				"%w: %s (input %s:%d)",
				domain.ErrUnknownInputAddress, in.Address, in.PrevTxHash,
				in.PrevOutputIndex,
			)
		}
		descriptors[i] = descriptor
		trezorInputs[i] = domain.TrezorInput{
			AddressN:  descriptor.DerivationPath(),
			PrevHash:  in.PrevTxHash,
			PrevIndex: in.PrevOutputIndex,
		}
	}

	eg, _ := errgroup.WithContext(ctx)
	for i := range trezorInputs {
		i := i
		if !descriptors[i].IsMultisig() {
			continue
		}
		eg.Go(func() error {
			block, err := newMultisigBlock(descriptors[i], network)
			if err != nil {
				return err
			}
			trezorInputs[i].ScriptType = domain.ScriptTypeSpendMultisig
			trezorInputs[i].Multisig = block
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return trezorInputs, nil
}

func newMultisigBlock(
	d domain.AddressDescriptor, network *chaincfg.Params,
) (*domain.MultisigBlock, error) {
	xpubs := d.Xpubs()
	path := d.DerivationPath()

	pubkeys := make([]domain.PubkeyNode, 0, len(xpubs))
	for _, xpub := range xpubs {
		node, err := newPubkeyNode(xpub, path, network)
		if err != nil {
			return nil, err
		}
		pubkeys = append(pubkeys, node)
	}

	return &domain.MultisigBlock{
		Signatures: make([]string, len(xpubs)),
		M:          d.Threshold(),
		Pubkeys:    pubkeys,
	}, nil
}

func newPubkeyNode(
	xpub string, path []uint32, network *chaincfg.Params,
) (domain.PubkeyNode, error) {
	key, err := wallet.ParseExtendedKey(xpub, network)
	if err != nil {
		return domain.PubkeyNode{}, err
	}
	if p := wallet.DerivationPath(path); p.IsHardened() {
		return domain.PubkeyNode{}, fmt.Errorf(
			"%w: %s", wallet.ErrUnsupportedDerivation, p,
		)
	}
	pubkey, err := key.PublicKey()
	if err != nil {
		return domain.PubkeyNode{}, err
	}

	return domain.PubkeyNode{
		AddressN: path,
		Node: domain.HDNode{
			ChainCode: hex.EncodeToString(key.ChainCode()),
			PublicKey: pubkey,
		},
	}, nil
}
