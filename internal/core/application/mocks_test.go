package application_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/walletkit/trezor-composer/internal/core/domain"
	"github.com/walletkit/trezor-composer/internal/core/ports"
)

// **** Base transaction builder ****

type mockTxBuilder struct {
	mock.Mock
}

func (m *mockTxBuilder) BuildTransaction(
	ctx context.Context, opts ports.BuildTxOpts,
) (ports.BuiltTx, error) {
	args := m.Called(ctx, opts)

	var res ports.BuiltTx
	if a := args.Get(0); a != nil {
		res = a.(ports.BuiltTx)
	}
	return res, args.Error(1)
}

type mockBuiltTx struct {
	errors      []error
	inputs      []domain.SelectedInput
	outputs     []domain.SelectedOutput
	inputTotal  decimal.Decimal
	outputTotal decimal.Decimal
	blacklist   []domain.Outpoint
	unsignedTx  string
}

func (t mockBuiltTx) Valid() bool { return len(t.errors) <= 0 }
func (t mockBuiltTx) Errors() []error { return t.errors }
func (t mockBuiltTx) Inputs() []domain.SelectedInput { return t.inputs }
func (t mockBuiltTx) Outputs() []domain.SelectedOutput { return t.outputs }
func (t mockBuiltTx) InputTotal() decimal.Decimal { return t.inputTotal }
func (t mockBuiltTx) OutputTotal() decimal.Decimal { return t.outputTotal }
func (t mockBuiltTx) Fee() decimal.Decimal { return t.inputTotal.Sub(t.outputTotal) }
func (t mockBuiltTx) UtxosToBlacklist() []domain.Outpoint { return t.blacklist }
func (t mockBuiltTx) UnsignedTx() (string, error) { return t.unsignedTx, nil }

// **** Transaction lister ****

type mockTxLister struct {
	mock.Mock
}

func (m *mockTxLister) ListTransactions(
	ctx context.Context, txHashes []string,
) ([]interface{}, error) {
	args := m.Called(ctx, txHashes)

	var res []interface{}
	if a := args.Get(0); a != nil {
		res = a.([]interface{})
	}
	return res, args.Error(1)
}
