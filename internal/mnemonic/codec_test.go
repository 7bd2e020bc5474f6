package mnemonic_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskvault/keychain/internal/mnemonic"
	kcherr "github.com/duskvault/keychain/pkg/errors"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func zeroFill(buf []byte) error {
	for i := range buf {
		buf[i] = 0
	}
	return nil
}

func TestGenerateEntropyRejectsInvalidSize(t *testing.T) {
	t.Parallel()
	_, err := mnemonic.GenerateEntropy(100, zeroFill)
	require.Error(t, err)
	assert.Equal(t, kcherr.MnemonicError, kcherr.GetCode(err))
}

func TestGenerateEntropyValidSizes(t *testing.T) {
	t.Parallel()
	for _, bits := range []int{128, 160, 192, 224, 256} {
		buf, err := mnemonic.GenerateEntropy(bits, zeroFill)
		require.NoError(t, err)
		assert.Len(t, buf, bits/8)
	}
}

func TestMnemonicFromZeroEntropyIsAbandonAbout(t *testing.T) {
	t.Parallel()
	entropy := make([]byte, 16)
	phrase, err := mnemonic.MnemonicFromEntropy(entropy, mnemonic.English)
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, phrase)
}

func TestMnemonicRoundTrip(t *testing.T) {
	t.Parallel()
	for _, bits := range []int{128, 160, 192, 224, 256} {
		entropy, err := mnemonic.GenerateEntropy(bits, cryptoFill)
		require.NoError(t, err)

		phrase, err := mnemonic.MnemonicFromEntropy(entropy, mnemonic.English)
		require.NoError(t, err)

		seed, err := mnemonic.SeedFromMnemonic(phrase, "", bits, mnemonic.English)
		require.NoError(t, err)
		assert.Len(t, seed, mnemonic.SeedLength)
	}
}

func TestSeedFromMnemonicRejectsWrongWordCount(t *testing.T) {
	t.Parallel()
	_, err := mnemonic.SeedFromMnemonic("abandon abandon abandon", "", 128, mnemonic.English)
	require.Error(t, err)
	assert.Equal(t, kcherr.MnemonicError, kcherr.GetCode(err))
}

func TestSeedFromMnemonicRejectsUnsupportedWord(t *testing.T) {
	t.Parallel()
	bad := "zzz abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	_, err := mnemonic.SeedFromMnemonic(bad, "", 128, mnemonic.English)
	require.Error(t, err)
}

func TestSeedFromMnemonicRejectsBadChecksum(t *testing.T) {
	t.Parallel()
	// Last word determines checksum; "zoo" is valid BIP39 English but wrong for this entropy.
	bad := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zoo"
	_, err := mnemonic.SeedFromMnemonic(bad, "", 128, mnemonic.English)
	require.Error(t, err)
	assert.Equal(t, kcherr.MnemonicError, kcherr.GetCode(err))
}

func TestSeedFromMnemonicIsDeterministic(t *testing.T) {
	t.Parallel()
	a, err := mnemonic.SeedFromMnemonic(testMnemonic, "", 128, mnemonic.English)
	require.NoError(t, err)
	b, err := mnemonic.SeedFromMnemonic(testMnemonic, "", 128, mnemonic.English)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKnownTestMnemonicSeedVector(t *testing.T) {
	t.Parallel()
	seed, err := mnemonic.SeedFromMnemonic(testMnemonic, "TREZOR", 128, mnemonic.English)
	require.NoError(t, err)
	expected, err := hex.DecodeString(
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
	)
	require.NoError(t, err)
	assert.Equal(t, expected, seed)
}

func cryptoFill(buf []byte) error {
	// deterministic, distinct filler so entropy round-trip tests over
	// multiple sizes don't all share zero entropy.
	for i := range buf {
		buf[i] = byte(i*7 + 1)
	}
	return nil
}
