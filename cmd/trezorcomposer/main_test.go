package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
	"github.com/walletkit/trezor-composer/internal/config"
)

func newTestAddress(t *testing.T, seed byte) (string, []byte) {
	t.Helper()

	addr, err := btcutil.NewAddressPubKeyHash(
		bytes.Repeat([]byte{seed}, 20), &chaincfg.RegressionNetParams,
	)
	require.NoError(t, err)
	script, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)
	return addr.EncodeAddress(), script
}

func newTestEsplora(t *testing.T, addr string, script []byte) *httptest.Server {
	t.Helper()

	prevHash := chainhash.DoubleHashH([]byte("funding"))
	msgTx := wire.NewMsgTx(2)
	msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, 0), nil, nil))
	msgTx.AddTxOut(wire.NewTxOut(100000, script))
	var buf bytes.Buffer
	require.NoError(t, msgTx.Serialize(&buf))
	txid := msgTx.TxHash().String()

	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/tip/height", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "101")
	})
	mux.HandleFunc(
		fmt.Sprintf("/address/%s/utxo", addr),
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(
				w, `[{"txid":"%s","vout":0,"value":100000,"status":{"confirmed":true}}]`,
				txid,
			)
		},
	)
	mux.HandleFunc(
		fmt.Sprintf("/tx/%s/hex", txid),
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, hex.EncodeToString(buf.Bytes()))
		},
	)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeRequest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompose(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("TREZOR_COMPOSER_DATADIR", datadir)
	t.Setenv("TREZOR_COMPOSER_ENABLE_STATS", "true")

	addr1, script1 := newTestAddress(t, 1)
	addr2, _ := newTestAddress(t, 2)
	server := newTestEsplora(t, addr1, script1)

	request := writeRequest(t, fmt.Sprintf(`{
		"bip32_addresses": [["%s", [0, 5]]],
		"outputs": [["%s", "0.0003"]]
	}`, addr1, addr2))

	err := newApp().Run([]string{
		"trezor-composer",
		"--network", "regtest",
		"--explorer-url", server.URL,
		"compose", "--request", request,
	})
	require.NoError(t, err)
	require.DirExists(t, filepath.Join(datadir, config.DbLocation, "txs"))
	require.FileExists(
		t, filepath.Join(datadir, config.StatsLocation, config.StatsFile),
	)
}

func TestComposeNotValid(t *testing.T) {
	t.Setenv("TREZOR_COMPOSER_DATADIR", t.TempDir())

	addr1, script1 := newTestAddress(t, 1)
	addr2, _ := newTestAddress(t, 2)
	server := newTestEsplora(t, addr1, script1)

	request := writeRequest(t, fmt.Sprintf(`{
		"bip32_addresses": [["%s", [0, 5]]],
		"outputs": [["%s", "1"]]
	}`, addr1, addr2))

	err := newApp().Run([]string{
		"trezor-composer",
		"--network", "regtest",
		"--explorer-url", server.URL,
		"--no-cache",
		"compose", "--request", request,
	})
	require.EqualError(t, err, "transaction is not valid")
}

func TestAddress(t *testing.T) {
	t.Setenv("TREZOR_COMPOSER_DATADIR", t.TempDir())

	addr1, _ := newTestAddress(t, 1)
	request := writeRequest(t, fmt.Sprintf(`[["%s", [0, 5]]]`, addr1))

	err := newApp().Run([]string{
		"trezor-composer", "--network", "regtest", "address", "--request", request,
	})
	require.NoError(t, err)

	request = writeRequest(t, `[{"path": [0, 5]}]`)
	err = newApp().Run([]string{
		"trezor-composer", "--network", "regtest", "address", "--request", request,
	})
	require.Error(t, err)
}

func TestGlobalFlags(t *testing.T) {
	envDatadir := t.TempDir()
	t.Setenv("TREZOR_COMPOSER_DATADIR", envDatadir)
	t.Setenv("TREZOR_COMPOSER_ENABLE_STATS", "true")

	datadir := filepath.Join(t.TempDir(), "flag")
	err := newApp().Run([]string{
		"trezor-composer", "--datadir", datadir, "--no-cache", "config",
	})
	require.NoError(t, err)
	require.Equal(t, datadir, config.GetDatadir())
	require.DirExists(t, filepath.Join(datadir, config.StatsLocation))
	require.NoDirExists(t, filepath.Join(datadir, config.DbLocation))
	require.NoDirExists(t, filepath.Join(envDatadir, config.StatsLocation))
	require.NoDirExists(t, filepath.Join(envDatadir, config.DbLocation))

	err = newApp().Run([]string{
		"trezor-composer", "--datadir", datadir, "--log-level", "99", "config",
	})
	require.Error(t, err)
}

func TestUnknownNetwork(t *testing.T) {
	t.Setenv("TREZOR_COMPOSER_DATADIR", t.TempDir())

	err := newApp().Run([]string{"trezor-composer", "--network", "liquid", "config"})
	require.Error(t, err)
}

func TestComposeFeeRateFlags(t *testing.T) {
	t.Setenv("TREZOR_COMPOSER_DATADIR", t.TempDir())

	addr1, script1 := newTestAddress(t, 1)
	addr2, _ := newTestAddress(t, 2)
	server := newTestEsplora(t, addr1, script1)

	request := writeRequest(t, fmt.Sprintf(`{
		"bip32_addresses": [["%s", [0, 5]]],
		"outputs": [["%s", "0.0003"]]
	}`, addr1, addr2))

	tests := []struct {
		name    string
		flags   []string
		isValid bool
	}{
		{"sats per byte", []string{"--sats-per-byte", "2"}, true},
		{"fee per kb", []string{"--fee-per-kb", "2000"}, true},
		{"both rates", []string{"--fee-per-kb", "2000", "--sats-per-byte", "2"}, false},
		{"invalid sats per byte", []string{"--sats-per-byte", "-1"}, false},
	}

	for _, tt := range tests {
		args := []string{
			"trezor-composer",
			"--network", "regtest",
			"--explorer-url", server.URL,
			"--no-cache",
			"compose", "--request", request,
		}
		err := newApp().Run(append(args, tt.flags...))
		if tt.isValid {
			require.NoError(t, err, tt.name)
			continue
		}
		require.Error(t, err, tt.name)
	}
}
