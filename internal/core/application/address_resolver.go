package application

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/walletkit/trezor-composer/internal/core/domain"
	"github.com/walletkit/trezor-composer/pkg/wallet"
)

// resolvedAddresses holds the concrete address of every descriptor, in the
// same order, along with the reverse lookup from address to descriptor.
// Redeem scripts are only set for multisig addresses.
type resolvedAddresses struct {
	addresses     []string
	redeemScripts map[string][]byte
	lookup        domain.AddressLookup
	duplicates    []string
}

func resolveAddressDescriptors(
	descriptors []domain.AddressDescriptor, network *chaincfg.Params,
) (*resolvedAddresses, error) {
	if len(descriptors) <= 0 {
		return nil, domain.ErrNoAddressesGiven
	}

	res := &resolvedAddresses{
		addresses: make([]string, 0, len(descriptors)),
	}
	for i, d := range descriptors {
		addr, redeemScript, err := resolveAddress(d, network)
		if err != nil {
			return nil, fmt.Errorf("bip32 address %d: %w", i, err)
		}
		res.addresses = append(res.addresses, addr)

		if len(redeemScript) > 0 {
			if res.redeemScripts == nil {
				res.redeemScripts = make(map[string][]byte)
			}
			res.redeemScripts[addr] = redeemScript
		}
	}

	lookup, duplicates, err := domain.NewAddressLookup(res.addresses, descriptors)
	if err != nil {
		return nil, err
	}
	res.lookup = lookup
	res.duplicates = duplicates
	return res, nil
}

// ResolveAddresses parses the given descriptors and returns their concrete
// addresses in the same order.
func ResolveAddresses(
	inputs []domain.AddressDescriptorInput, network *chaincfg.Params,
) ([]string, error) {
	if network == nil {
		return nil, ErrNullNetwork
	}
	descriptors, err := parseDescriptors(inputs)
	if err != nil {
		return nil, err
	}
	res, err := resolveAddressDescriptors(descriptors, network)
	if err != nil {
		return nil, err
	}
	return res.addresses, nil
}

func resolveAddress(
	d domain.AddressDescriptor, network *chaincfg.Params,
) (string, []byte, error) {
	if !d.IsMultisig() {
		return d.Address(), nil, nil
	}

	path := wallet.DerivationPath(d.DerivationPath())
	addr, redeemScript, err := wallet.MultisigAddress(wallet.MultisigAddressOpts{
		Xpubs:          d.Xpubs(),
		DerivationPath: path,
		Threshold:      d.Threshold(),
		Network:        network,
	})
	if err != nil {
		return "", nil, fmt.Errorf("multisig at %s: %w", path, err)
	}
	return addr, redeemScript, nil
}
