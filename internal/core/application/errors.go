package application

import "errors"

var (
	// ErrNullTxBuilder ...
	ErrNullTxBuilder = errors.New("base transaction builder must not be null")
	// ErrNullTransactionLister ...
	ErrNullTransactionLister = errors.New("transaction lister must not be null")
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params must not be null")
	// ErrInvalidOutputAddress is returned when an output address can't be
	// classified for the device.
	ErrInvalidOutputAddress = errors.New("output address is not valid for the network")
	// ErrNegativeOutputAmount ...
	ErrNegativeOutputAmount = errors.New("output amount must not be negative")
	// ErrNullOutputAddress ...
	ErrNullOutputAddress = errors.New("output address must not be null")
	// ErrNullBlacklistedHash ...
	ErrNullBlacklistedHash = errors.New("blacklisted utxo hash must not be null")
)
