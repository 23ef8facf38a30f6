package application

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/walletkit/trezor-composer/internal/core/domain"
	"github.com/walletkit/trezor-composer/pkg/mathutil"
	"github.com/walletkit/trezor-composer/pkg/wallet"
)

func buildTrezorOutputs(
	outputs []domain.SelectedOutput, network *chaincfg.Params,
) ([]domain.TrezorOutput, error) {
	trezorOutputs := make([]domain.TrezorOutput, 0, len(outputs))
	for _, out := range outputs {
		isPubKeyHash, err := wallet.IsPubKeyHash(out.Address, network)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOutputAddress, out.Address)
		}
		scriptType := domain.ScriptTypePayToScriptHash
		if isPubKeyHash {
			scriptType = domain.ScriptTypePayToAddress
		}

		amount, err := mathutil.ToSatoshis(out.Amount)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", out.Address, err)
		}

		trezorOutputs = append(trezorOutputs, domain.TrezorOutput{
			ScriptType: scriptType,
			Address:    out.Address,
			Amount:     amount,
		})
	}
	return trezorOutputs, nil
}
