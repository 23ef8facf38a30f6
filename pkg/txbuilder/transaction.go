package txbuilder

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/wire"
	"github.com/walletkit/trezor-composer/pkg/explorer"
)

// Transaction is the outcome of BuildTransaction. When not valid, Errors
// tells why and all other getters return zero values.
type Transaction struct {
	errors  []error
	inputs  []explorer.Utxo
	outputs []Output
	tx      *wire.MsgTx
}

func invalidTransaction(errs ...error) *Transaction {
	return &Transaction{errors: errs}
}

func (t *Transaction) Valid() bool {
	return len(t.errors) <= 0 && t.tx != nil
}

func (t *Transaction) Errors() []error {
	return append([]error{}, t.errors...)
}

// Inputs returns the selected unspents in the same order of the
// transaction's inputs.
func (t *Transaction) Inputs() []explorer.Utxo {
	return append([]explorer.Utxo{}, t.inputs...)
}

// Outputs returns the requested outputs, followed by the change one if any.
func (t *Transaction) Outputs() []Output {
	return append([]Output{}, t.outputs...)
}

func (t *Transaction) InputTotal() uint64 {
	var total uint64
	for _, in := range t.inputs {
		total += in.Value()
	}
	return total
}

func (t *Transaction) OutputTotal() uint64 {
	var total uint64
	for _, out := range t.outputs {
		total += out.Amount
	}
	return total
}

func (t *Transaction) Fee() uint64 {
	return t.InputTotal() - t.OutputTotal()
}

// UtxosToBlacklist returns the outpoints spent by the transaction so that
// they can be excluded from subsequent builds.
func (t *Transaction) UtxosToBlacklist() []Outpoint {
	outpoints := make([]Outpoint, 0, len(t.inputs))
	for _, in := range t.inputs {
		outpoints = append(outpoints, Outpoint{in.Hash(), in.Index()})
	}
	return outpoints
}

// UnsignedTx returns the serialized unsigned transaction in hex format.
func (t *Transaction) UnsignedTx() (string, error) {
	if t.tx == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := t.tx.Serialize(&buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}
