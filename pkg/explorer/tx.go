package explorer

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// Transaction is a previous transaction in the format expected by hardware
// signers to verify the amounts of the inputs being spent.
type Transaction struct {
	Hash       string     `json:"hash"`
	Version    int32      `json:"version"`
	LockTime   uint32     `json:"lock_time"`
	Inputs     []TxInput  `json:"inputs"`
	BinOutputs []TxOutput `json:"bin_outputs"`
}

// TxInput ...
type TxInput struct {
	PrevHash  string `json:"prev_hash"`
	PrevIndex uint32 `json:"prev_index"`
	ScriptSig string `json:"script_sig"`
	Sequence  uint32 `json:"sequence"`
}

// TxOutput ...
type TxOutput struct {
	Amount       int64  `json:"amount"`
	ScriptPubkey string `json:"script_pubkey"`
}

// NewTxFromHex decodes the given raw transaction.
func NewTxFromHex(txHex string) (*Transaction, error) {
	buf, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, fmt.Errorf("invalid tx hex: %w", err)
	}

	msgTx := wire.NewMsgTx(wire.TxVersion)
	if err := msgTx.Deserialize(bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("invalid tx: %w", err)
	}
	return NewTxFromMsgTx(msgTx), nil
}

// NewTxFromMsgTx converts a wire transaction. Witness data is not part of the
// returned struct since it's not committed by the legacy tx hash.
func NewTxFromMsgTx(msgTx *wire.MsgTx) *Transaction {
	inputs := make([]TxInput, 0, len(msgTx.TxIn))
	for _, in := range msgTx.TxIn {
		inputs = append(inputs, TxInput{
			PrevHash:  in.PreviousOutPoint.Hash.String(),
			PrevIndex: in.PreviousOutPoint.Index,
			ScriptSig: hex.EncodeToString(in.SignatureScript),
			Sequence:  in.Sequence,
		})
	}

	outputs := make([]TxOutput, 0, len(msgTx.TxOut))
	for _, out := range msgTx.TxOut {
		outputs = append(outputs, TxOutput{
			Amount:       out.Value,
			ScriptPubkey: hex.EncodeToString(out.PkScript),
		})
	}

	return &Transaction{
		Hash:       msgTx.TxHash().String(),
		Version:    msgTx.Version,
		LockTime:   msgTx.LockTime,
		Inputs:     inputs,
		BinOutputs: outputs,
	}
}
