package esplora

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/walletkit/trezor-composer/pkg/explorer"
	"golang.org/x/sync/errgroup"
)

func (e *esplora) GetUnspents(
	ctx context.Context, addr string,
) ([]explorer.Utxo, error) {
	script, err := e.outputScript(addr)
	if err != nil {
		return nil, err
	}

	resp, err := e.get(ctx, "address_utxo", fmt.Sprintf("/address/%s/utxo", addr))
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %w", err)
	}

	var witnessOuts []witnessUtxo
	if err := json.Unmarshal([]byte(resp), &witnessOuts); err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %w", err)
	}

	unspents := make([]explorer.Utxo, 0, len(witnessOuts))
	for _, out := range witnessOuts {
		unspents = append(unspents, explorer.NewUtxo(
			out.Hash, out.Index, out.Value, addr, script,
		))
	}
	return unspents, nil
}

func (e *esplora) GetUnspentsForAddresses(
	ctx context.Context, addresses []string,
) ([]explorer.Utxo, error) {
	unspentsByAddress := make([][]explorer.Utxo, len(addresses))

	eg, ctx := errgroup.WithContext(ctx)
	for i, addr := range addresses {
		i, addr := i, addr
		eg.Go(func() error {
			unspents, err := e.GetUnspents(ctx, addr)
			if err != nil {
				return err
			}
			unspentsByAddress[i] = unspents
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	unspents := make([]explorer.Utxo, 0)
	for _, u := range unspentsByAddress {
		unspents = append(unspents, u...)
	}
	return unspents, nil
}

func (e *esplora) outputScript(addr string) ([]byte, error) {
	address, err := btcutil.DecodeAddress(addr, e.network)
	if err != nil {
		return nil, fmt.Errorf("invalid address %s: %w", addr, err)
	}
	if !address.IsForNet(e.network) {
		return nil, fmt.Errorf(
			"invalid address %s: not for network %s", addr, e.network.Name,
		)
	}
	return txscript.PayToAddrScript(address)
}
