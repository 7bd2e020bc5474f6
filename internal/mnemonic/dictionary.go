// Package mnemonic implements the BIP-39 entropy↔words↔seed codec across
// the eight dictionaries the keychain supports.
package mnemonic

import (
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// Dictionary identifies one of the eight supported BIP-39 word lists by a
// stable numeric ordinal. The ordinal, not the name, is what gets
// persisted in a wallet container.
type Dictionary uint8

const (
	English Dictionary = iota
	French
	Japanese
	Korean
	ChineseSimplified
	ChineseTraditional
	Italian
	Spanish
)

// maxDictionary is the highest valid ordinal.
const maxDictionary = Spanish

// ideographicSpace is the word separator used by the Japanese dictionary,
// per the BIP-39 reference wordlist.
const ideographicSpace = "　"

//nolint:gochecknoglobals // fixed 2048-word lists, not mutated after init
var words = map[Dictionary][]string{
	English:            wordlists.English,
	French:             wordlists.French,
	Japanese:           wordlists.Japanese,
	Korean:             wordlists.Korean,
	ChineseSimplified:  wordlists.ChineseSimplified,
	ChineseTraditional: wordlists.ChineseTraditional,
	Italian:            wordlists.Italian,
	Spanish:            wordlists.Spanish,
}

// IsValid reports whether d is one of the eight defined ordinals.
func (d Dictionary) IsValid() bool {
	return d <= maxDictionary
}

// WordList returns the 2048-word list for d.
func (d Dictionary) WordList() []string {
	return words[d]
}

// Separator returns the string used to join this dictionary's words into
// a mnemonic phrase: an ideographic space for Japanese, an ASCII space
// for every Latin/CJK dictionary otherwise.
func (d Dictionary) Separator() string {
	if d == Japanese {
		return ideographicSpace
	}
	return " "
}

// Split divides a mnemonic phrase into words using d's separator rules.
// Because user input commonly uses a plain space even for Japanese
// phrases, Split treats any run of whitespace (including the ideographic
// space) as a single delimiter.
func (d Dictionary) Split(phrase string) []string {
	return strings.FieldsFunc(phrase, func(r rune) bool {
		return r == ' ' || r == '　' || r == '\t' || r == '\n' || r == '\r'
	})
}

// IndexOf returns the position of word in d's list, or -1 if absent.
func (d Dictionary) IndexOf(word string) int {
	for i, w := range words[d] {
		if w == word {
			return i
		}
	}
	return -1
}
