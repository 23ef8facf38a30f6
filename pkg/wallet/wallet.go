// Package wallet derives public key material from extended public keys and
// turns it into on-chain addresses. It never handles private keys.
package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrNullExtendedKey ...
	ErrNullExtendedKey = errors.New("extended key must not be null")

	// ErrMalformedDerivationPath is returned for paths not in the "m/0/5'" or
	// "0/5'" form.
	ErrMalformedDerivationPath = errors.New("malformed derivation path")
	// ErrInvalidExtendedKey is returned for any xpub that can't be parsed or
	// that is not a public key for the configured network.
	ErrInvalidExtendedKey = errors.New("invalid extended public key")
	// ErrUnsupportedDerivation is returned when a hardened index is found in a
	// path that must be derived from public key material only.
	ErrUnsupportedDerivation = errors.New(
		"hardened derivation is not supported for extended public keys",
	)
	// ErrEmptyPublicKeys ...
	ErrEmptyPublicKeys = errors.New("multisig public key list must not be empty")
	// ErrInvalidThreshold ...
	ErrInvalidThreshold = errors.New(
		"multisig threshold must be in range [1, number of public keys]",
	)
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not valid for the network")
)

func invalidExtendedKeyError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidExtendedKey, reason)
}
