package edkey_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskvault/keychain/internal/edkey"
)

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

const (
	d1Hex = "f8a29231ee38d6c5bf715d5bac21c750577aa3798b22d79d65bf97d6fadea15adcd1ee1abdf78bd4be64731a12deb94d36717841" +
		"12eb6f364b871851fd1c9a247384db9ad6003bbd08b3b1ddc0d07a597293ff85e961bf252b331262eddfad0d"

	d1H0Hex = "60d399da83ef80d8d4f8d223239efdc2b8fef387e1b52191" +
		"37ffb4e8fbdea15adc9366b7d003af37c11396de9a83734e30e05e851efa32745c9cd7b42712c89060876377" +
		"0eddf77248ab652984b21b849760d1da74a6f5bd633ce41adceef07a"

	d1H0SigHex = "90194d57cde4fdadd01eb7cf161780c277e129fc7135b97" +
		"779a3268837e4cd2e9444b9bb91c0e84d23bba870df3c4bda91a110ef735638fa7a34ea2046d4be04"
)

func TestDeriveHardenedMatchesKnownVector(t *testing.T) {
	t.Parallel()
	parent, err := edkey.Deserialize(decodeHex(t, d1Hex))
	require.NoError(t, err)

	child, err := parent.Derive(0x80000000)
	require.NoError(t, err)

	assert.Equal(t, decodeHex(t, d1H0Hex), child.Serialize())
}

func TestSignMatchesKnownVector(t *testing.T) {
	t.Parallel()
	key, err := edkey.Deserialize(decodeHex(t, d1H0Hex))
	require.NoError(t, err)

	sig, err := key.Sign([]byte("Hello World"))
	require.NoError(t, err)

	assert.Equal(t, decodeHex(t, d1H0SigHex), sig[:])
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	key, err := edkey.Deserialize(decodeHex(t, d1H0Hex))
	require.NoError(t, err)

	msg := []byte("Hello World")
	sig, err := key.Sign(msg)
	require.NoError(t, err)

	require.NoError(t, key.Verify(msg, sig))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	t.Parallel()
	key, err := edkey.Deserialize(decodeHex(t, d1H0Hex))
	require.NoError(t, err)

	sig, err := key.Sign([]byte("Hello World"))
	require.NoError(t, err)

	err = key.Verify([]byte("Goodbye World"), sig)
	require.Error(t, err)
}

func TestDataFromSeedProducesValidClamp(t *testing.T) {
	t.Parallel()
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}

	k, err := edkey.DataFromSeed(seed)
	require.NoError(t, err)

	data := k.Serialize()
	reloaded, err := edkey.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, data, reloaded.Serialize())
}

func TestDataFromSeedRejectsShortSeed(t *testing.T) {
	t.Parallel()
	_, err := edkey.DataFromSeed(make([]byte, 32))
	require.Error(t, err)
}

func TestDeserializeRejectsBadClamp(t *testing.T) {
	t.Parallel()
	data := decodeHex(t, d1Hex)
	data[31] = 0xFF // break the clamp invariant
	_, err := edkey.Deserialize(data)
	require.Error(t, err)
}

func TestDeserializeRejectsWrongLength(t *testing.T) {
	t.Parallel()
	_, err := edkey.Deserialize(make([]byte, 95))
	require.Error(t, err)
}

func TestDeriveNonHardenedIsDeterministic(t *testing.T) {
	t.Parallel()
	parent, err := edkey.Deserialize(decodeHex(t, d1Hex))
	require.NoError(t, err)

	a, err := parent.Derive(0)
	require.NoError(t, err)
	b, err := parent.Derive(0)
	require.NoError(t, err)

	assert.Equal(t, a.Serialize(), b.Serialize())
}
