package secpkey_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskvault/keychain/internal/secpkey"
	kcherr "github.com/duskvault/keychain/pkg/errors"
)

func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	return seed
}

func TestFromSeedMatchesBIP32TestVector1(t *testing.T) {
	t.Parallel()
	master, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	wantMaster, err := hex.DecodeString("0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2")
	require.NoError(t, err)
	assert.Equal(t, wantMaster, master.PubKey())

	child, err := master.Derive(0 | 0x80000000)
	require.NoError(t, err)

	wantChild, err := hex.DecodeString("035a784662a4a20a65bf6aab9ae98a6c068a81c52e4b032c0fb5400c706cfccc56")
	require.NoError(t, err)
	assert.Equal(t, wantChild, child.PubKey())
}

func TestFromSeedIsDeterministic(t *testing.T) {
	t.Parallel()
	seed := testSeed(t)

	a, err := secpkey.FromSeed(seed)
	require.NoError(t, err)
	b, err := secpkey.FromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, a.Serialize(), b.Serialize())
}

func TestDeriveHardenedVsNonHardenedDiffer(t *testing.T) {
	t.Parallel()
	master, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	hardened, err := master.Derive(0x80000000)
	require.NoError(t, err)
	plain, err := master.Derive(0)
	require.NoError(t, err)

	assert.NotEqual(t, hardened.Serialize(), plain.Serialize())
}

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()
	master, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	a, err := master.Derive(44 | 0x80000000)
	require.NoError(t, err)
	b, err := master.Derive(44 | 0x80000000)
	require.NoError(t, err)

	assert.Equal(t, a.Serialize(), b.Serialize())
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	t.Parallel()
	master, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	data := master.Serialize()
	require.Len(t, data, secpkey.SerializedLen)

	got, err := secpkey.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, data, got.Serialize())
}

func TestDeserializeRejectsBadChecksum(t *testing.T) {
	t.Parallel()
	master, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	data := master.Serialize()
	data[len(data)-1] ^= 0xFF

	_, err = secpkey.Deserialize(data)
	require.Error(t, err)
	assert.Equal(t, kcherr.KeyError, kcherr.GetCode(err))
}

func TestDeserializeRejectsWrongLength(t *testing.T) {
	t.Parallel()
	_, err := secpkey.Deserialize(make([]byte, 76))
	require.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	master, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	msg := []byte("transfer 1 btc")
	sig, err := master.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig, 65)

	require.NoError(t, master.Verify(msg, sig))
	require.NoError(t, master.Verify(msg, sig[:64]))
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	t.Parallel()
	master, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	sig, err := master.Sign([]byte("original"))
	require.NoError(t, err)

	err = master.Verify([]byte("tampered"), sig)
	require.Error(t, err)
}

func TestVerifyRejectsBadLength(t *testing.T) {
	t.Parallel()
	master, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	err = master.Verify([]byte("msg"), make([]byte, 63))
	require.Error(t, err)
}

func TestDeriveDepthTooBig(t *testing.T) {
	t.Parallel()
	key, err := secpkey.FromSeed(testSeed(t))
	require.NoError(t, err)

	for i := 0; i < 255; i++ {
		key, err = key.Derive(uint32(i))
		require.NoError(t, err)
	}

	_, err = key.Derive(0)
	require.Error(t, err)
}
