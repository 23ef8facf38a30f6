package mathutil

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// CoinPrecision is the number of decimal places of one coin unit.
const CoinPrecision = 8

var (
	//BigOne represents a single unit of a coin with precision 8
	BigOne = uint64(math.Pow10(CoinPrecision))
	//BigOneDecimal represents a single unit of a coin with precision 8 as decimal.Decimal
	BigOneDecimal = decimal.NewFromInt(int64(BigOne))

	// ErrNegativeAmount ...
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrAmountOverflow ...
	ErrAmountOverflow = errors.New("amount exceeds the representable range")
)

// ToSatoshis converts an amount expressed in coin units to the smallest
// unit. Any fraction below one satoshi is truncated, never rounded.
func ToSatoshis(amount decimal.Decimal) (uint64, error) {
	if amount.Sign() < 0 {
		return 0, ErrNegativeAmount
	}
	sats := amount.Shift(CoinPrecision).Floor()
	if !sats.BigInt().IsInt64() {
		return 0, ErrAmountOverflow
	}
	return uint64(sats.IntPart()), nil
}

// FromSatoshis converts an amount in the smallest unit to coin units.
func FromSatoshis(sats int64) decimal.Decimal {
	return decimal.New(sats, -CoinPrecision)
}
