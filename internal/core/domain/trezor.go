package domain

import (
	"encoding/hex"
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	// ScriptTypeSpendMultisig marks an input spending from a P2SH multisig.
	ScriptTypeSpendMultisig = "SPENDMULTISIG"
	// ScriptTypePayToAddress marks an output paying to a hash160 address.
	ScriptTypePayToAddress = "PAYTOADDRESS"
	// ScriptTypePayToScriptHash marks an output paying to any other script.
	ScriptTypePayToScriptHash = "PAYTOSCRIPTHASH"
)

// HexBytes is a byte slice serialized as hex string.
type HexBytes []byte

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *HexBytes) UnmarshalJSON(buf []byte) error {
	var str string
	if err := json.Unmarshal(buf, &str); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// TrezorInput is the signing device's view of a transaction input.
// ScriptType and Multisig are set only for inputs spending from a multisig.
type TrezorInput struct {
	AddressN   []uint32       `json:"address_n"`
	PrevHash   string         `json:"prev_hash"`
	PrevIndex  uint32         `json:"prev_index"`
	ScriptType string         `json:"script_type,omitempty"`
	Multisig   *MultisigBlock `json:"multisig,omitempty"`
}

// MultisigBlock holds what the device needs to rebuild the redeem script of
// an m-of-n input. Signatures has one empty slot per cosigner.
type MultisigBlock struct {
	Signatures []string     `json:"signatures"`
	M          uint32       `json:"m"`
	Pubkeys    []PubkeyNode `json:"pubkeys"`
}

// PubkeyNode is a cosigner's extended public key node plus the path the
// device derives from it.
type PubkeyNode struct {
	AddressN []uint32 `json:"address_n"`
	Node     HDNode   `json:"node"`
}

// HDNode carries the xpub's chain code and public key. Depth, ChildNum and
// Fingerprint are always zero.
type HDNode struct {
	ChainCode   string   `json:"chain_code"`
	Depth       uint32   `json:"depth"`
	ChildNum    uint32   `json:"child_num"`
	Fingerprint uint32   `json:"fingerprint"`
	PublicKey   HexBytes `json:"public_key"`
}

// TrezorOutput is the signing device's view of a transaction output. Amount
// is in the smallest unit.
type TrezorOutput struct {
	ScriptType string `json:"script_type"`
	Address    string `json:"address"`
	Amount     uint64 `json:"amount"`
}

// Result is what a successful composition exposes: the base transaction
// builder's result merged with the device descriptors and the previous
// transactions referenced by the inputs.
type Result struct {
	InputTotal       decimal.Decimal  `json:"input_total"`
	OutputTotal      decimal.Decimal  `json:"output_total"`
	Fee              decimal.Decimal  `json:"fee"`
	Outputs          []SelectedOutput `json:"outputs"`
	Inputs           []SelectedInput  `json:"inputs"`
	UtxosToBlacklist []Outpoint       `json:"utxos_to_blacklist"`
	Transactions     []interface{}    `json:"transactions"`
	TrezorInputs     []TrezorInput    `json:"trezor_inputs"`
	TrezorOutputs    []TrezorOutput   `json:"trezor_outputs"`
	// UnsignedTx is the hex serialization of the unsigned transaction.
	UnsignedTx string `json:"unsigned_tx"`
}
