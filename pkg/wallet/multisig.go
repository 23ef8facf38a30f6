package wallet

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// MultisigScript returns the bare m-of-n multisig script for the given
// compressed public keys. Keys are used in the given order.
func MultisigScript(
	pubkeys [][]byte, m uint32, params *chaincfg.Params,
) ([]byte, error) {
	if len(pubkeys) <= 0 {
		return nil, ErrEmptyPublicKeys
	}
	if m == 0 || int(m) > len(pubkeys) {
		return nil, ErrInvalidThreshold
	}
	if params == nil {
		return nil, ErrNullNetwork
	}

	addrs := make([]*btcutil.AddressPubKey, 0, len(pubkeys))
	for _, pubkey := range pubkeys {
		addr, err := btcutil.NewAddressPubKey(pubkey, params)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}

	return txscript.MultiSigScript(addrs, int(m))
}

// MultisigAddressOpts is the struct given to MultisigAddress function
type MultisigAddressOpts struct {
	Xpubs          []string
	DerivationPath DerivationPath
	Threshold      uint32
	Network        *chaincfg.Params
}

func (o MultisigAddressOpts) validate() error {
	if len(o.Xpubs) <= 0 {
		return ErrEmptyPublicKeys
	}
	if o.Threshold == 0 || int(o.Threshold) > len(o.Xpubs) {
		return ErrInvalidThreshold
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	if o.DerivationPath.IsHardened() {
		return ErrUnsupportedDerivation
	}
	return nil
}

// MultisigAddress derives the child public key at the given path for every
// cosigner xpub and returns the P2SH address of the resulting m-of-n
// multisig script, along with the redeem script itself.
func MultisigAddress(opts MultisigAddressOpts) (string, []byte, error) {
	if err := opts.validate(); err != nil {
		return "", nil, err
	}

	pubkeys, err := DerivePublicKeys(opts.Xpubs, opts.DerivationPath, opts.Network)
	if err != nil {
		return "", nil, err
	}

	redeemScript, err := MultisigScript(pubkeys, opts.Threshold, opts.Network)
	if err != nil {
		return "", nil, err
	}

	addr, err := btcutil.NewAddressScriptHash(redeemScript, opts.Network)
	if err != nil {
		return "", nil, err
	}
	return addr.EncodeAddress(), redeemScript, nil
}
