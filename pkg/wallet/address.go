package wallet

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// AddressType is the kind of output script an address pays to.
type AddressType int

const (
	UnknownAddress AddressType = iota
	PubKeyHashAddress
	ScriptHashAddress
	WitnessPubKeyHashAddress
	WitnessScriptHashAddress
	TaprootAddress
)

var addressTypeNames = map[AddressType]string{
	UnknownAddress:           "unknown",
	PubKeyHashAddress:        "p2pkh",
	ScriptHashAddress:        "p2sh",
	WitnessPubKeyHashAddress: "p2wpkh",
	WitnessScriptHashAddress: "p2wsh",
	TaprootAddress:           "p2tr",
}

func (t AddressType) String() string {
	return addressTypeNames[t]
}

// GetAddressType decodes the given address for the given network and returns
// the type of the script it pays to.
func GetAddressType(addr string, params *chaincfg.Params) (AddressType, error) {
	if params == nil {
		return UnknownAddress, ErrNullNetwork
	}

	decoded, err := btcutil.DecodeAddress(strings.TrimSpace(addr), params)
	if err != nil {
		return UnknownAddress, ErrInvalidAddress
	}
	if !decoded.IsForNet(params) {
		return UnknownAddress, ErrInvalidAddress
	}

	switch decoded.(type) {
	case *btcutil.AddressPubKeyHash:
		return PubKeyHashAddress, nil
	case *btcutil.AddressScriptHash:
		return ScriptHashAddress, nil
	case *btcutil.AddressWitnessPubKeyHash:
		return WitnessPubKeyHashAddress, nil
	case *btcutil.AddressWitnessScriptHash:
		return WitnessScriptHashAddress, nil
	case *btcutil.AddressTaproot:
		return TaprootAddress, nil
	default:
		return UnknownAddress, nil
	}
}

// IsPubKeyHash returns whether the given address is a legacy hash160 one.
func IsPubKeyHash(addr string, params *chaincfg.Params) (bool, error) {
	addrType, err := GetAddressType(addr, params)
	if err != nil {
		return false, err
	}
	return addrType == PubKeyHashAddress, nil
}
