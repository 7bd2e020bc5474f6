// Package bitcoin provides the Bitcoin-protocol-specific Hash160
// fingerprinting primitive used by BIP-32 extended-key serialization.
package bitcoin

import (
	"crypto/sha256"

	//nolint:staticcheck // RIPEMD160 is required by the Bitcoin protocol, not a freely swappable choice
	"golang.org/x/crypto/ripemd160"
)

// Hash160 computes RIPEMD160(SHA256(data)), the hashing function behind
// BIP-32 extended-key fingerprints and P2PKH addresses.
func Hash160(data []byte) []byte {
	sum := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}
