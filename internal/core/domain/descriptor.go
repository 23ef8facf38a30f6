package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/walletkit/trezor-composer/pkg/wallet"
)

// DescriptorKind discriminates the two shapes of AddressDescriptor.
type DescriptorKind int

const (
	// DescriptorSimple is a single-key address already computed by the wallet.
	DescriptorSimple DescriptorKind = iota
	// DescriptorMultisig is an m-of-n P2SH address built from cosigner xpubs.
	DescriptorMultisig
)

func (k DescriptorKind) String() string {
	if k == DescriptorMultisig {
		return "multisig"
	}
	return "simple"
}

// AddressDescriptor describes one of the wallet's addresses. Fields are
// unexported so that a descriptor can't change once created.
type AddressDescriptor struct {
	kind           DescriptorKind
	address        string
	xpubs          []string
	derivationPath []uint32
	threshold      uint32
}

// NewSimpleDescriptor returns a descriptor for the given literal address
// controlled by the key found at path.
func NewSimpleDescriptor(address string, path []uint32) (AddressDescriptor, error) {
	if len(address) <= 0 {
		return AddressDescriptor{}, ErrNullAddress
	}
	if len(path) <= 0 {
		return AddressDescriptor{}, ErrNullDerivationPath
	}
	return AddressDescriptor{
		kind:           DescriptorSimple,
		address:        address,
		derivationPath: copyPath(path),
	}, nil
}

// NewMultisigDescriptor returns a descriptor for the m-of-n P2SH address made
// of the keys found at path for every one of the given xpubs. The order of
// xpubs is meaningful and kept as is.
func NewMultisigDescriptor(
	xpubs []string, path []uint32, m uint32,
) (AddressDescriptor, error) {
	if len(xpubs) <= 0 {
		return AddressDescriptor{}, ErrEmptyXpubs
	}
	for _, xpub := range xpubs {
		if len(xpub) <= 0 {
			return AddressDescriptor{}, ErrNullXpub
		}
	}
	if len(path) <= 0 {
		return AddressDescriptor{}, ErrNullDerivationPath
	}
	if m == 0 || int(m) > len(xpubs) {
		return AddressDescriptor{}, ErrInvalidThreshold
	}
	return AddressDescriptor{
		kind:           DescriptorMultisig,
		xpubs:          append([]string{}, xpubs...),
		derivationPath: copyPath(path),
		threshold:      m,
	}, nil
}

func (d AddressDescriptor) Kind() DescriptorKind {
	return d.kind
}

func (d AddressDescriptor) IsMultisig() bool {
	return d.kind == DescriptorMultisig
}

// Address returns the literal address of a simple descriptor. It's empty for
// multisig ones, whose address must be derived.
func (d AddressDescriptor) Address() string {
	return d.address
}

func (d AddressDescriptor) Xpubs() []string {
	return append([]string{}, d.xpubs...)
}

func (d AddressDescriptor) DerivationPath() []uint32 {
	return copyPath(d.derivationPath)
}

func (d AddressDescriptor) Threshold() uint32 {
	return d.threshold
}

// NumOfCosigners returns the N of an m-of-n multisig descriptor.
func (d AddressDescriptor) NumOfCosigners() int {
	return len(d.xpubs)
}

// AddressDescriptorInput is the raw descriptor as supplied by a wallet, either
// as an object or in the compact array forms
//   ["address", [path...]]
//   [["xpub1", "xpub2", ...], [path...], m]
// Paths can also be given as strings like "m/0/5".
type AddressDescriptorInput struct {
	Address string                `json:"address,omitempty"`
	Xpubs   []string              `json:"xpubs,omitempty"`
	Path    wallet.DerivationPath `json:"path"`
	M       *uint32               `json:"m,omitempty"`
}

// UnmarshalJSON accepts both the object and the array forms.
func (in *AddressDescriptorInput) UnmarshalJSON(buf []byte) error {
	buf = bytes.TrimSpace(buf)
	if len(buf) <= 0 || buf[0] != '[' {
		type plain AddressDescriptorInput
		var p plain
		if err := json.Unmarshal(buf, &p); err != nil {
			return err
		}
		*in = AddressDescriptorInput(p)
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(buf, &elems); err != nil {
		return err
	}
	if len(elems) < 2 || len(elems) > 3 {
		return fmt.Errorf(
			"%w: expected 2 or 3 elements, got %d",
			ErrInvalidAddressDescriptor, len(elems),
		)
	}

	var result AddressDescriptorInput
	first := bytes.TrimSpace(elems[0])
	if len(first) > 0 && first[0] == '[' {
		if err := json.Unmarshal(first, &result.Xpubs); err != nil {
			return fmt.Errorf("%w: xpubs: %s", ErrInvalidAddressDescriptor, err)
		}
	} else if err := json.Unmarshal(first, &result.Address); err != nil {
		return fmt.Errorf("%w: address: %s", ErrInvalidAddressDescriptor, err)
	}

	if err := json.Unmarshal(elems[1], &result.Path); err != nil {
		return fmt.Errorf("%w: path: %s", ErrInvalidAddressDescriptor, err)
	}

	if len(elems) == 3 && string(bytes.TrimSpace(elems[2])) != "null" {
		var m uint32
		if err := json.Unmarshal(elems[2], &m); err != nil {
			return fmt.Errorf("%w: m: %s", ErrInvalidAddressDescriptor, err)
		}
		result.M = &m
	}

	*in = result
	return nil
}

// Parse validates the raw descriptor and turns it into an AddressDescriptor.
func (in AddressDescriptorInput) Parse() (AddressDescriptor, error) {
	switch {
	case len(in.Address) > 0 && len(in.Xpubs) > 0:
		return AddressDescriptor{}, fmt.Errorf(
			"%w: address and xpubs are mutually exclusive",
			ErrInvalidAddressDescriptor,
		)
	case len(in.Xpubs) > 0:
		if in.M == nil {
			return AddressDescriptor{}, ErrMissingThreshold
		}
		return NewMultisigDescriptor(in.Xpubs, in.Path, *in.M)
	default:
		if in.M != nil {
			return AddressDescriptor{}, ErrUnexpectedThreshold
		}
		return NewSimpleDescriptor(in.Address, in.Path)
	}
}

func copyPath(path []uint32) []uint32 {
	if path == nil {
		return nil
	}
	return append([]uint32{}, path...)
}
