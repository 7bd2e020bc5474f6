package mnemonic

import (
	"crypto/sha256"
	"crypto/sha512"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"

	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// SeedLength is the fixed size of a derived BIP-39 seed.
const SeedLength = 64

const (
	seedPBKDF2Iterations = 2048
	bitsPerWord          = 11
)

//nolint:gochecknoglobals // fixed BIP-39 entropy size table
var validEntropyBits = map[int]bool{128: true, 160: true, 192: true, 224: true, 256: true}

func newMnemonicError(reason, message string) error {
	return kcherr.WithDetails(kcherr.New(kcherr.MnemonicError, message), map[string]string{"reason": reason})
}

// GenerateEntropy produces a random byte sequence of the given bit length
// using fill as the randomness source. Valid sizes are 128, 160, 192, 224,
// and 256 bits.
func GenerateEntropy(bits int, fill func([]byte) error) ([]byte, error) {
	if !validEntropyBits[bits] {
		return nil, newMnemonicError("InvalidEntropySize", "entropy size must be one of 128, 160, 192, 224, 256 bits")
	}
	buf := make([]byte, bits/8)
	if err := fill(buf); err != nil {
		return nil, kcherr.Wrap(err, "filling entropy buffer")
	}
	return buf, nil
}

// MnemonicFromEntropy maps entropy to a BIP-39 phrase in the given
// dictionary: checksum bits are appended, the result is split into
// 11-bit word indices, and the words are joined with dict's separator.
func MnemonicFromEntropy(entropyBytes []byte, dict Dictionary) (string, error) {
	bits := len(entropyBytes) * 8
	if !validEntropyBits[bits] {
		return "", newMnemonicError("InvalidEntropySize", "entropy size must be one of 128, 160, 192, 224, 256 bits")
	}
	if !dict.IsValid() {
		return "", newMnemonicError("Unknown", "unknown dictionary ordinal")
	}

	checksumBits := bits / 32
	hash := sha256.Sum256(entropyBytes)

	combined := make([]byte, len(entropyBytes)+1)
	copy(combined, entropyBytes)
	combined[len(entropyBytes)] = hash[0]

	totalBits := bits + checksumBits
	wordCount := totalBits / bitsPerWord

	list := dict.WordList()
	words := make([]string, wordCount)
	for i := 0; i < wordCount; i++ {
		idx := bitsAt(combined, i*bitsPerWord, bitsPerWord)
		words[i] = list[idx]
	}

	return strings.Join(words, dict.Separator()), nil
}

// SeedFromMnemonic validates phrase against dict (word membership and
// checksum), requires the word count implied by expectedBits, and derives
// the 64-byte seed via PBKDF2-HMAC-SHA512 over NFKD(phrase) with salt
// "mnemonic" || passphrase, 2048 iterations.
func SeedFromMnemonic(phrase, passphrase string, expectedBits int, dict Dictionary) ([]byte, error) {
	if !dict.IsValid() {
		return nil, newMnemonicError("Unknown", "unknown dictionary ordinal")
	}
	if !validEntropyBits[expectedBits] {
		return nil, newMnemonicError("InvalidEntropySize", "expected entropy size must be one of 128, 160, 192, 224, 256 bits")
	}

	words := dict.Split(strings.ToLower(phrase))
	expectedWordCount := expectedBits / 32 * 3
	switch {
	case len(words) < expectedWordCount:
		return nil, newMnemonicError("MnemonicTooShort", "mnemonic has fewer words than expected")
	case len(words) > expectedWordCount:
		return nil, newMnemonicError("MnemonicTooLong", "mnemonic has more words than expected")
	}

	checksumBits := expectedBits / 32
	totalBits := expectedBits + checksumBits
	combined := make([]byte, (totalBits+7)/8)

	for i, w := range words {
		idx := dict.IndexOf(w)
		if idx < 0 {
			return nil, kcherr.WithDetails(
				newMnemonicError("UnsupportedWord", "mnemonic contains a word outside the selected dictionary"),
				map[string]string{"word": w},
			)
		}
		setBits(combined, i*bitsPerWord, bitsPerWord, idx)
	}

	entropyBytes := combined[:expectedBits/8]
	wantChecksum := sha256.Sum256(entropyBytes)

	gotChecksum := bitsAt(combined, expectedBits, checksumBits)
	wantChecksumBits := bitsAt(wantChecksum[:], 0, checksumBits)
	if gotChecksum != wantChecksumBits {
		return nil, newMnemonicError("InvalidEntropySize", "mnemonic checksum does not match its entropy")
	}

	normalized := norm.NFKD.String(strings.Join(words, dict.Separator()))
	salt := "mnemonic" + norm.NFKD.String(passphrase)
	seed := pbkdf2.Key([]byte(normalized), []byte(salt), seedPBKDF2Iterations, SeedLength, sha512.New)
	return seed, nil
}
