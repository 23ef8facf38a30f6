package esplora

type witnessUtxo struct {
	Hash  string `json:"txid"`
	Index uint32 `json:"vout"`
	Value uint64 `json:"value"`
}
