package bitcoin_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskvault/keychain/internal/bitcoin"
)

func TestHash160(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb",
		},
		{
			name:     "Bitcoin public key example",
			input:    "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
			expected: "751e76e8199196d454941c45d1b3a323f1433bd6",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			input, err := hex.DecodeString(tc.input)
			require.NoError(t, err)

			result := bitcoin.Hash160(input)
			assert.Equal(t, tc.expected, hex.EncodeToString(result))
			assert.Len(t, result, 20)
		})
	}
}

func TestHash160Consistency(t *testing.T) {
	t.Parallel()
	input := []byte("test data")
	assert.Equal(t, bitcoin.Hash160(input), bitcoin.Hash160(input))
}
