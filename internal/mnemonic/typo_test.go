package mnemonic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskvault/keychain/internal/mnemonic"
)

func TestSuggestWordExactMatch(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abandon", mnemonic.SuggestWord(mnemonic.English, "abandon"))
}

func TestSuggestWordCorrectsTypo(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abandon", mnemonic.SuggestWord(mnemonic.English, "abandom"))
}

func TestSuggestWordGivesUpWhenTooFar(t *testing.T) {
	t.Parallel()
	assert.Empty(t, mnemonic.SuggestWord(mnemonic.English, "xxxxxxxxxxxxxxxxxxxx"))
}

func TestDetectTyposFindsOnlyInvalidWords(t *testing.T) {
	t.Parallel()
	phrase := "abandom abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	typos := mnemonic.DetectTypos(mnemonic.English, phrase)
	require.Len(t, typos, 1)
	assert.Equal(t, 0, typos[0].Index)
	assert.Equal(t, "abandon", typos[0].Suggestion)
}

func TestDetectTyposEmptyPhrase(t *testing.T) {
	t.Parallel()
	assert.Nil(t, mnemonic.DetectTypos(mnemonic.English, ""))
}

func TestFormatTyposHumanReadable(t *testing.T) {
	t.Parallel()
	typos := mnemonic.DetectTypos(mnemonic.English, "abandom abandon")
	formatted := mnemonic.FormatTypos(typos)
	assert.Contains(t, formatted, "word 1")
	assert.Contains(t, formatted, "abandom")
}
