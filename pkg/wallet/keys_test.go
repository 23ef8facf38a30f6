package wallet

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// BIP32 test vector 2.
	vectorMasterXpub = "xpub661MyMwAqRbcFW31YEwpkMuc5THy2PSt5bDMsktWQcFF8syAmRUapSCGu8ED9W6oDMSgv6Zz8idoc4a6mr8BDzTJY47LJhkJ8UB7WEGuduB"
	vectorChildXpub  = "xpub69H7F5d8KSRgmmdJg2KhpAK8SR3DjMwAdkxj3ZuxV27CprR9LgpeyGmXUbC6wb7ERfvrnKZjXoUmmDznezpbZb7ap6r1D3tgFxHmwMkQTPH"
)

func newTestXpub(t *testing.T, seedByte byte, params *chaincfg.Params) string {
	seed := bytes.Repeat([]byte{seedByte}, hdkeychain.RecommendedSeedLen)
	master, err := hdkeychain.NewMaster(seed, params)
	require.NoError(t, err)
	xpub, err := master.Neuter()
	require.NoError(t, err)
	return xpub.String()
}

func TestParseExtendedKey(t *testing.T) {
	key, err := ParseExtendedKey(vectorMasterXpub, &chaincfg.MainNetParams)
	require.NoError(t, err)

	child, err := key.Derive(DerivationPath{0})
	require.NoError(t, err)

	expectedChild, err := hdkeychain.NewKeyFromString(vectorChildXpub)
	require.NoError(t, err)
	expectedPubkey, err := expectedChild.ECPubKey()
	require.NoError(t, err)

	pubkey, err := child.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, expectedPubkey.SerializeCompressed(), pubkey)
	assert.Equal(t, expectedChild.ChainCode(), child.ChainCode())
	assert.Len(t, key.ChainCode(), 32)

	parsed, err := btcec.ParsePubKey(pubkey)
	require.NoError(t, err)
	assert.Equal(t, pubkey, parsed.SerializeCompressed())
}

func TestFailingParseExtendedKey(t *testing.T) {
	seed := bytes.Repeat([]byte{0x01}, hdkeychain.RecommendedSeedLen)
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	require.NoError(t, err)

	tests := []struct {
		xpub   string
		params *chaincfg.Params
		err    error
	}{
		{"", &chaincfg.MainNetParams, ErrNullExtendedKey},
		{vectorMasterXpub, nil, ErrNullNetwork},
		{"xpubnotakey", &chaincfg.MainNetParams, ErrInvalidExtendedKey},
		{master.String(), &chaincfg.MainNetParams, ErrInvalidExtendedKey},
		{vectorMasterXpub, &chaincfg.TestNet3Params, ErrInvalidExtendedKey},
	}

	for _, tt := range tests {
		_, err := ParseExtendedKey(tt.xpub, tt.params)
		assert.ErrorIs(t, err, tt.err)
	}
}

func TestDerivePublicKey(t *testing.T) {
	xpub := newTestXpub(t, 0x02, &chaincfg.MainNetParams)
	path := DerivationPath{44, 0}

	pubkey, chainCode, err := DerivePublicKey(xpub, path, &chaincfg.MainNetParams)
	require.NoError(t, err)

	parent, err := hdkeychain.NewKeyFromString(xpub)
	require.NoError(t, err)
	child, err := parent.Derive(44)
	require.NoError(t, err)
	child, err = child.Derive(0)
	require.NoError(t, err)
	expected, err := child.ECPubKey()
	require.NoError(t, err)

	assert.Equal(t, expected.SerializeCompressed(), pubkey)
	assert.Equal(t, parent.ChainCode(), chainCode)

	// determinism
	again, _, err := DerivePublicKey(xpub, path, &chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.Equal(t, pubkey, again)
}

func TestFailingDerivePublicKey(t *testing.T) {
	xpub := newTestXpub(t, 0x03, &chaincfg.MainNetParams)

	_, _, err := DerivePublicKey(
		xpub, DerivationPath{hdkeychain.HardenedKeyStart, 0}, &chaincfg.MainNetParams,
	)
	assert.ErrorIs(t, err, ErrUnsupportedDerivation)

	_, _, err = DerivePublicKey("xpub", DerivationPath{0}, &chaincfg.MainNetParams)
	assert.ErrorIs(t, err, ErrInvalidExtendedKey)
}

func TestDerivePublicKeysKeepsOrder(t *testing.T) {
	xpubs := []string{
		newTestXpub(t, 0x04, &chaincfg.MainNetParams),
		newTestXpub(t, 0x05, &chaincfg.MainNetParams),
		newTestXpub(t, 0x06, &chaincfg.MainNetParams),
	}
	path := DerivationPath{0, 1}

	pubkeys, err := DerivePublicKeys(xpubs, path, &chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Len(t, pubkeys, len(xpubs))

	for i, xpub := range xpubs {
		pubkey, _, err := DerivePublicKey(xpub, path, &chaincfg.MainNetParams)
		require.NoError(t, err)
		assert.Equal(t, pubkey, pubkeys[i])
	}
}
