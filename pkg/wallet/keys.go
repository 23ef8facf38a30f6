package wallet

import (
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// ExtendedPublicKey is a parsed, network checked xpub.
type ExtendedPublicKey struct {
	key *hdkeychain.ExtendedKey
}

// ParseExtendedKey parses the given base58 extended public key and makes sure
// it belongs to the given network. Extended private keys are rejected.
func ParseExtendedKey(
	xpub string, params *chaincfg.Params,
) (*ExtendedPublicKey, error) {
	if len(xpub) <= 0 {
		return nil, ErrNullExtendedKey
	}
	if params == nil {
		return nil, ErrNullNetwork
	}

	key, err := hdkeychain.NewKeyFromString(xpub)
	if err != nil {
		return nil, invalidExtendedKeyError(err.Error())
	}
	if key.IsPrivate() {
		return nil, invalidExtendedKeyError("private key given")
	}
	if !key.IsForNet(params) {
		return nil, invalidExtendedKeyError("not a key for network " + params.Name)
	}

	return &ExtendedPublicKey{key}, nil
}

// PublicKey returns the compressed public key of the node itself.
func (k *ExtendedPublicKey) PublicKey() ([]byte, error) {
	pubkey, err := k.key.ECPubKey()
	if err != nil {
		return nil, err
	}
	return pubkey.SerializeCompressed(), nil
}

// ChainCode returns a copy of the node's chain code.
func (k *ExtendedPublicKey) ChainCode() []byte {
	return append([]byte{}, k.key.ChainCode()...)
}

// Derive walks the given path from the current node. Every step is a
// non-hardened public child derivation.
func (k *ExtendedPublicKey) Derive(path DerivationPath) (*ExtendedPublicKey, error) {
	node := k.key
	for _, step := range path {
		if step >= hdkeychain.HardenedKeyStart {
			return nil, ErrUnsupportedDerivation
		}

		var err error
		node, err = node.Derive(step)
		if err != nil {
			return nil, invalidExtendedKeyError(err.Error())
		}
	}
	return &ExtendedPublicKey{node}, nil
}

// DerivePublicKey derives the compressed child public key found at path
// starting from the given xpub, and returns it along with the xpub's own
// chain code.
func DerivePublicKey(
	xpub string, path DerivationPath, params *chaincfg.Params,
) (pubkey []byte, chainCode []byte, err error) {
	parent, err := ParseExtendedKey(xpub, params)
	if err != nil {
		return nil, nil, err
	}
	child, err := parent.Derive(path)
	if err != nil {
		return nil, nil, err
	}
	pubkey, err = child.PublicKey()
	if err != nil {
		return nil, nil, err
	}
	return pubkey, parent.ChainCode(), nil
}

// DerivePublicKeys derives the child public key at path for each one of the
// given xpubs. The returned list has the same order of xpubs.
func DerivePublicKeys(
	xpubs []string, path DerivationPath, params *chaincfg.Params,
) ([][]byte, error) {
	pubkeys := make([][]byte, 0, len(xpubs))
	for _, xpub := range xpubs {
		pubkey, _, err := DerivePublicKey(xpub, path, params)
		if err != nil {
			return nil, err
		}
		pubkeys = append(pubkeys, pubkey)
	}
	return pubkeys, nil
}
