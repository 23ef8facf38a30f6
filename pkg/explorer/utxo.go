package explorer

import "fmt"

type utxo struct {
	UHash    string `json:"txid"`
	UIndex   uint32 `json:"vout"`
	UValue   uint64 `json:"value"`
	UAddress string `json:"address"`
	UScript  []byte `json:"script"`
}

// NewUtxo returns a Utxo for the output at hash:index locked by script.
func NewUtxo(
	hash string, index uint32, value uint64,
	address string, script []byte,
) Utxo {
	return utxo{
		UHash:    hash,
		UIndex:   index,
		UValue:   value,
		UAddress: address,
		UScript:  append([]byte{}, script...),
	}
}

func (u utxo) Hash() string {
	return u.UHash
}

func (u utxo) Index() uint32 {
	return u.UIndex
}

func (u utxo) Value() uint64 {
	return u.UValue
}

func (u utxo) Address() string {
	return u.UAddress
}

func (u utxo) Script() []byte {
	return append([]byte{}, u.UScript...)
}

// Key returns the outpoint of the utxo in the hash:index format.
func (u utxo) Key() string {
	return fmt.Sprintf("%s:%d", u.UHash, u.UIndex)
}
