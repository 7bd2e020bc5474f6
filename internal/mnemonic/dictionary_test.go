package mnemonic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskvault/keychain/internal/mnemonic"
)

func TestDictionaryOrdinalsMatchSpec(t *testing.T) {
	t.Parallel()
	assert.Equal(t, mnemonic.Dictionary(0), mnemonic.English)
	assert.Equal(t, mnemonic.Dictionary(1), mnemonic.French)
	assert.Equal(t, mnemonic.Dictionary(2), mnemonic.Japanese)
	assert.Equal(t, mnemonic.Dictionary(3), mnemonic.Korean)
	assert.Equal(t, mnemonic.Dictionary(4), mnemonic.ChineseSimplified)
	assert.Equal(t, mnemonic.Dictionary(5), mnemonic.ChineseTraditional)
	assert.Equal(t, mnemonic.Dictionary(6), mnemonic.Italian)
	assert.Equal(t, mnemonic.Dictionary(7), mnemonic.Spanish)
}

func TestEveryDictionaryHas2048Words(t *testing.T) {
	t.Parallel()
	for d := mnemonic.English; d <= mnemonic.Spanish; d++ {
		assert.Len(t, d.WordList(), 2048, "dictionary %d", d)
	}
}

func TestIsValidRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	assert.False(t, mnemonic.Dictionary(8).IsValid())
	assert.True(t, mnemonic.Spanish.IsValid())
}

func TestJapaneseUsesIdeographicSpace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "　", mnemonic.Japanese.Separator())
	assert.Equal(t, " ", mnemonic.English.Separator())
}
