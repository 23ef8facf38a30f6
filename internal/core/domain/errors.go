package domain

import "errors"

var (
	// ErrNoAddressesGiven is the user facing error recorded when the wallet
	// supplies no address descriptors at all.
	ErrNoAddressesGiven = errors.New("no bip32 addresses given")
	// ErrUnknownInputAddress is returned when a selected input spends from an
	// address that none of the wallet's descriptors resolves to.
	ErrUnknownInputAddress = errors.New("input address has no matching bip32 descriptor")
	// ErrInvalidAddressDescriptor ...
	ErrInvalidAddressDescriptor = errors.New("invalid bip32 address descriptor")
	// ErrNullAddress ...
	ErrNullAddress = errors.New("address must not be null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrEmptyXpubs ...
	ErrEmptyXpubs = errors.New("multisig xpub list must not be empty")
	// ErrNullXpub ...
	ErrNullXpub = errors.New("multisig xpubs must not be null")
	// ErrMissingThreshold ...
	ErrMissingThreshold = errors.New("multisig descriptor requires a threshold (m)")
	// ErrUnexpectedThreshold ...
	ErrUnexpectedThreshold = errors.New("threshold (m) is allowed only for multisig descriptors")
	// ErrInvalidThreshold ...
	ErrInvalidThreshold = errors.New("threshold (m) must be in range [1, number of xpubs]")
	// ErrMismatchingDescriptorsLength ...
	ErrMismatchingDescriptorsLength = errors.New("addresses and descriptors must have the same length")
)
