package txbuilder

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txsizes"
)

// sigSize is the max length of a DER signature plus the sighash byte.
const sigSize = 73

// inputSizer estimates the virtual size of a signed transaction given the
// locking scripts of the unspents it spends. P2SH unspents whose redeem
// script is known are sized as m-of-n multisig inputs, unknown ones as
// P2PKH.
type inputSizer struct {
	redeemScripts map[string][]byte
}

func newInputSizer(
	redeemScripts [][]byte, network *chaincfg.Params,
) (inputSizer, error) {
	byScript := make(map[string][]byte, len(redeemScripts))
	for _, redeemScript := range redeemScripts {
		addr, err := btcutil.NewAddressScriptHash(redeemScript, network)
		if err != nil {
			return inputSizer{}, err
		}
		script, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return inputSizer{}, err
		}
		byScript[string(script)] = redeemScript
	}
	return inputSizer{byScript}, nil
}

func (s inputSizer) virtualSize(
	prevScripts [][]byte, outputs []*wire.TxOut, changeScriptSize int,
) int {
	var p2pkh, p2wpkh, p2tr, extra int
	for _, script := range prevScripts {
		switch {
		case txscript.IsPayToWitnessPubKeyHash(script):
			p2wpkh++
		case txscript.IsPayToTaproot(script):
			p2tr++
		default:
			p2pkh++
			if redeemScript, ok := s.redeemScripts[string(script)]; ok {
				extra += multisigInputSize(redeemScript) - txsizes.RedeemP2PKHInputSize
			}
		}
	}
	return txsizes.EstimateVirtualSize(
		p2pkh, p2tr, p2wpkh, 0, outputs, changeScriptSize,
	) + extra
}

// multisigInputSize returns the worst case size of an input spending a P2SH
// multisig output: outpoint, sequence and a scriptSig made of OP_0, m
// signatures and the redeem script push.
func multisigInputSize(redeemScript []byte) int {
	_, m, err := txscript.CalcMultiSigStats(redeemScript)
	if err != nil || m <= 0 {
		m = 1
	}
	sigScriptSize := 1 + m*(1+sigSize) +
		pushDataSize(len(redeemScript)) + len(redeemScript)
	return 32 + 4 + wire.VarIntSerializeSize(uint64(sigScriptSize)) +
		sigScriptSize + 4
}

func pushDataSize(dataLen int) int {
	switch {
	case dataLen < txscript.OP_PUSHDATA1:
		return 1
	case dataLen <= 0xff:
		return 2
	case dataLen <= 0xffff:
		return 3
	default:
		return 5
	}
}
