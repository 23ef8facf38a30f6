package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Outpoint identifies a transaction output by tx hash and index.
type Outpoint struct {
	Hash  string
	Index uint32
}

// MarshalJSON encodes the outpoint in the compact [hash, index] form.
func (o Outpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{o.Hash, o.Index})
}

// UnmarshalJSON decodes the compact [hash, index] form.
func (o *Outpoint) UnmarshalJSON(buf []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(buf, &elems); err != nil {
		return err
	}
	if len(elems) != 2 {
		return fmt.Errorf("outpoint must be in the form [hash, index]")
	}
	if err := json.Unmarshal(elems[0], &o.Hash); err != nil {
		return err
	}
	return json.Unmarshal(elems[1], &o.Index)
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// SelectedInput is an unspent output picked by the base transaction builder.
// Value is expressed in coin units.
type SelectedInput struct {
	Address         string
	PrevTxHash      string
	PrevOutputIndex uint32
	Value           decimal.Decimal
	Script          string
}

// MarshalJSON encodes the input as [address, prev_hash, prev_index, value, script].
func (i SelectedInput) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{
		i.Address, i.PrevTxHash, i.PrevOutputIndex, i.Value, i.Script,
	})
}

// SelectedOutput is an output of the transaction being built. Amount is
// expressed in coin units.
type SelectedOutput struct {
	Address string
	Amount  decimal.Decimal
}

// MarshalJSON encodes the output as [address, amount].
func (o SelectedOutput) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{o.Address, o.Amount})
}

// UnmarshalJSON decodes the [address, amount] form.
func (o *SelectedOutput) UnmarshalJSON(buf []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(buf, &elems); err != nil {
		return err
	}
	if len(elems) != 2 {
		return fmt.Errorf("output must be in the form [address, amount]")
	}
	if err := json.Unmarshal(elems[0], &o.Address); err != nil {
		return err
	}
	return json.Unmarshal(elems[1], &o.Amount)
}
