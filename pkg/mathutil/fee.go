package mathutil

import (
	"github.com/shopspring/decimal"
)

// BytesPerKb ...
var BytesPerKb = decimal.NewFromInt(1000)

// SatsPerKbFromSatsPerByte converts a sats/byte fee rate into the sats/kB one
// used by the transaction builder. The result is rounded up so that the
// resulting rate is never below the requested one.
func SatsPerKbFromSatsPerByte(satsPerByte decimal.Decimal) uint64 {
	if satsPerByte.Sign() <= 0 {
		return 0
	}
	return uint64(satsPerByte.Mul(BytesPerKb).Ceil().IntPart())
}
