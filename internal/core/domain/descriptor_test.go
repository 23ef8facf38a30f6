package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/walletkit/trezor-composer/internal/core/domain"
)

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func TestUnmarshalAddressDescriptorInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		buf      string
		expected domain.AddressDescriptorInput
	}{
		{
			name: "simple array form",
			buf:  `["1BoatSLRHtKNngkdXEeobR76b53LETtpyT", [0, 5]]`,
			expected: domain.AddressDescriptorInput{
				Address: "1BoatSLRHtKNngkdXEeobR76b53LETtpyT",
				Path:    []uint32{0, 5},
			},
		},
		{
			name: "multisig array form",
			buf:  `[["xpub1", "xpub2"], [44, 0], 1]`,
			expected: domain.AddressDescriptorInput{
				Xpubs: []string{"xpub1", "xpub2"},
				Path:  []uint32{44, 0},
				M:     uint32Ptr(1),
			},
		},
		{
			name: "array form with null threshold",
			buf:  `["addr", [1], null]`,
			expected: domain.AddressDescriptorInput{
				Address: "addr",
				Path:    []uint32{1},
			},
		},
		{
			name: "string path",
			buf:  `["addr", "m/0/5"]`,
			expected: domain.AddressDescriptorInput{
				Address: "addr",
				Path:    []uint32{0, 5},
			},
		},
		{
			name: "object form with string path",
			buf:  `{"xpubs": ["xpub1", "xpub2"], "path": "0/7", "m": 2}`,
			expected: domain.AddressDescriptorInput{
				Xpubs: []string{"xpub1", "xpub2"},
				Path:  []uint32{0, 7},
				M:     uint32Ptr(2),
			},
		},
		{
			name: "object form",
			buf:  `{"xpubs": ["xpub1"], "path": [3], "m": 1}`,
			expected: domain.AddressDescriptorInput{
				Xpubs: []string{"xpub1"},
				Path:  []uint32{3},
				M:     uint32Ptr(1),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var in domain.AddressDescriptorInput
			require.NoError(t, json.Unmarshal([]byte(tt.buf), &in))
			require.Equal(t, tt.expected, in)
		})
	}
}

func TestFailingUnmarshalAddressDescriptorInput(t *testing.T) {
	t.Parallel()

	tests := []string{
		`["addr"]`,
		`["addr", [0], 1, 2]`,
		`[1, [0]]`,
		`["addr", "0//1"]`,
		`["addr", {"path": 1}]`,
		`["addr", [0], "m"]`,
		`[["xpub", 1], [0], 1]`,
	}

	for _, buf := range tests {
		var in domain.AddressDescriptorInput
		err := json.Unmarshal([]byte(buf), &in)
		require.ErrorIs(t, err, domain.ErrInvalidAddressDescriptor, buf)
	}
}

func TestParseAddressDescriptorInput(t *testing.T) {
	t.Parallel()

	simple, err := domain.AddressDescriptorInput{
		Address: "addr", Path: []uint32{0, 5},
	}.Parse()
	require.NoError(t, err)
	require.False(t, simple.IsMultisig())
	require.Equal(t, domain.DescriptorSimple, simple.Kind())
	require.Equal(t, "addr", simple.Address())
	require.Equal(t, []uint32{0, 5}, simple.DerivationPath())
	require.Empty(t, simple.Xpubs())
	require.Zero(t, simple.Threshold())

	path := []uint32{44, 0}
	xpubs := []string{"xpub2", "xpub1"}
	multisig, err := domain.AddressDescriptorInput{
		Xpubs: xpubs, Path: path, M: uint32Ptr(2),
	}.Parse()
	require.NoError(t, err)
	require.True(t, multisig.IsMultisig())
	require.Equal(t, "multisig", multisig.Kind().String())
	require.Empty(t, multisig.Address())
	require.Equal(t, []string{"xpub2", "xpub1"}, multisig.Xpubs())
	require.Equal(t, uint32(2), multisig.Threshold())
	require.Equal(t, 2, multisig.NumOfCosigners())

	// Descriptors don't share memory with their inputs.
	path[0] = 0
	xpubs[0] = "changed"
	require.Equal(t, []uint32{44, 0}, multisig.DerivationPath())
	require.Equal(t, []string{"xpub2", "xpub1"}, multisig.Xpubs())
}

func TestFailingParseAddressDescriptorInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		in            domain.AddressDescriptorInput
		expectedError error
	}{
		{
			name:          "address and xpubs",
			in:            domain.AddressDescriptorInput{Address: "addr", Xpubs: []string{"xpub"}, Path: []uint32{0}},
			expectedError: domain.ErrInvalidAddressDescriptor,
		},
		{
			name:          "missing address",
			in:            domain.AddressDescriptorInput{Path: []uint32{0}},
			expectedError: domain.ErrNullAddress,
		},
		{
			name:          "missing simple path",
			in:            domain.AddressDescriptorInput{Address: "addr"},
			expectedError: domain.ErrNullDerivationPath,
		},
		{
			name:          "threshold for simple descriptor",
			in:            domain.AddressDescriptorInput{Address: "addr", Path: []uint32{0}, M: uint32Ptr(1)},
			expectedError: domain.ErrUnexpectedThreshold,
		},
		{
			name:          "missing threshold",
			in:            domain.AddressDescriptorInput{Xpubs: []string{"xpub"}, Path: []uint32{0}},
			expectedError: domain.ErrMissingThreshold,
		},
		{
			name:          "zero threshold",
			in:            domain.AddressDescriptorInput{Xpubs: []string{"xpub"}, Path: []uint32{0}, M: uint32Ptr(0)},
			expectedError: domain.ErrInvalidThreshold,
		},
		{
			name:          "threshold greater than cosigners",
			in:            domain.AddressDescriptorInput{Xpubs: []string{"xpub"}, Path: []uint32{0}, M: uint32Ptr(2)},
			expectedError: domain.ErrInvalidThreshold,
		},
		{
			name:          "null xpub",
			in:            domain.AddressDescriptorInput{Xpubs: []string{"xpub", ""}, Path: []uint32{0}, M: uint32Ptr(1)},
			expectedError: domain.ErrNullXpub,
		},
		{
			name:          "missing multisig path",
			in:            domain.AddressDescriptorInput{Xpubs: []string{"xpub"}, M: uint32Ptr(1)},
			expectedError: domain.ErrNullDerivationPath,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.in.Parse()
			require.ErrorIs(t, err, tt.expectedError)
		})
	}

	_, err := domain.NewMultisigDescriptor(nil, []uint32{0}, 1)
	require.ErrorIs(t, err, domain.ErrEmptyXpubs)
}
