// Package secpkey implements BIP-32 extended secp256k1 keys, the key type
// shared by the Bitcoin and Ethereum factories.
package secpkey

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"strconv"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/duskvault/keychain/internal/bitcoin"
	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// SerializedLen is the byte length of a serialized extended key.
const SerializedLen = 1 + 4 + 4 + 32 + 32 + 4

const hardenedStart = 0x80000000

// Key is an extended secp256k1 private key node.
type Key struct {
	secret      [32]byte
	chainCode   [32]byte
	fingerprint [4]byte
	depth       byte
	index       uint32
}

func newKeyError(reason, message string) error {
	return kcherr.WithDetails(kcherr.New(kcherr.KeyError, message), map[string]string{"reason": reason})
}

func scalarFromBytes(b []byte) (secp256k1.ModNScalar, bool) {
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	return s, overflow
}

// FromSeed derives the master extended key from a BIP-32 seed via
// HMAC-SHA512 with key "Bitcoin seed".
func FromSeed(seed []byte) (*Key, error) {
	mac := hmac.New(sha512.New, []byte("Bitcoin seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)

	left, right := sum[:32], sum[32:]

	scalar, overflow := scalarFromBytes(left)
	if overflow || scalar.IsZero() {
		return nil, newKeyError("InvalidSecretKey", "master secret key is out of range")
	}

	k := &Key{depth: 0, index: 0}
	copy(k.secret[:], left)
	copy(k.chainCode[:], right)
	return k, nil
}

func (k *Key) privKey() *secp256k1.PrivateKey {
	return secp256k1.PrivKeyFromBytes(k.secret[:])
}

// PubKey returns the 33-byte compressed public key.
func (k *Key) PubKey() []byte {
	return k.privKey().PubKey().SerializeCompressed()
}

// Derive computes the child key at the given index, retrying with
// successive indices within the same hardened/non-hardened half-range on
// the negligible-probability tweak-out-of-range event.
func (k *Key) Derive(index uint32) (*Key, error) {
	if k.depth == 255 {
		return nil, newKeyError("DeriveDepthTooBig", "maximum derivation depth exceeded")
	}

	hardened := index >= hardenedStart
	rangeTop := uint32(hardenedStart - 1)
	if hardened {
		rangeTop = ^uint32(0)
	}

	parentScalar, overflow := scalarFromBytes(k.secret[:])
	if overflow {
		return nil, newKeyError("InvalidSecretKey", "parent secret key is out of range")
	}

	for idx := index; ; idx++ {
		mac := hmac.New(sha512.New, k.chainCode[:])
		var idxBuf [4]byte
		binary.BigEndian.PutUint32(idxBuf[:], idx)
		if hardened {
			mac.Write([]byte{0x00})
			mac.Write(k.secret[:])
		} else {
			mac.Write(k.PubKey())
		}
		mac.Write(idxBuf[:])
		sum := mac.Sum(nil)

		il, right := sum[:32], sum[32:]
		ilScalar, ilOverflow := scalarFromBytes(il)
		if ilOverflow {
			if idx == rangeTop {
				return nil, newKeyError("TweakOutOfRange", "exhausted derivation index range")
			}
			continue
		}

		newScalar := new(secp256k1.ModNScalar).Set(&parentScalar)
		newScalar.Add(&ilScalar)
		if newScalar.IsZero() {
			if idx == rangeTop {
				return nil, newKeyError("TweakOutOfRange", "exhausted derivation index range")
			}
			continue
		}

		child := &Key{depth: k.depth + 1, index: idx}
		newScalar.PutBytesUnchecked(child.secret[:])
		copy(child.chainCode[:], right)

		fp := bitcoin.Hash160(k.PubKey())
		copy(child.fingerprint[:], fp[:4])

		return child, nil
	}
}

// Serialize encodes k per the fixed 77-byte extended-key wire format.
func (k *Key) Serialize() []byte {
	out := make([]byte, 0, SerializedLen)
	out = append(out, k.depth)
	out = append(out, k.fingerprint[:]...)
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], k.index)
	out = append(out, idxBuf[:]...)
	out = append(out, k.chainCode[:]...)
	out = append(out, k.secret[:]...)

	checksum := doubleSHA256(out)
	out = append(out, checksum[:4]...)
	return out
}

// Deserialize parses and validates the fixed 77-byte extended-key wire
// format, rejecting checksum mismatches and out-of-range secret keys.
func Deserialize(data []byte) (*Key, error) {
	if len(data) != SerializedLen {
		return nil, newKeyError("InvalidKeySize", "extended key must be exactly 77 bytes")
	}

	body := data[:len(data)-4]
	wantChecksum := data[len(data)-4:]
	gotChecksum := doubleSHA256(body)
	if !hmac.Equal(gotChecksum[:4], wantChecksum) {
		return nil, newKeyError("InvalidKeyData", "extended key checksum mismatch")
	}

	k := &Key{}
	k.depth = data[0]
	copy(k.fingerprint[:], data[1:5])
	k.index = binary.BigEndian.Uint32(data[5:9])
	copy(k.chainCode[:], data[9:41])
	copy(k.secret[:], data[41:73])

	scalar, overflow := scalarFromBytes(k.secret[:])
	if overflow || scalar.IsZero() {
		return nil, newKeyError("InvalidKeyData", "extended key secret is not a valid scalar")
	}

	return k, nil
}

func doubleSHA256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// Sign produces a 65-byte r ‖ s ‖ recovery-id signature over the
// Keccak-256 hash of msg, using RFC-6979 deterministic nonces.
func (k *Key) Sign(msg []byte) ([]byte, error) {
	hash := keccak256(msg)
	compact := ecdsa.SignCompact(k.privKey(), hash, false)

	recID := compact[0] - 27
	if recID > 1 {
		return nil, newKeyError("InvalidRecoveryId", "recovery id outside {0,1}")
	}

	out := make([]byte, 0, 65)
	out = append(out, compact[1:65]...)
	out = append(out, recID)
	return out, nil
}

// Verify checks sig (64 or 65 bytes, trailing recovery-id byte ignored
// when present) against msg's Keccak-256 hash.
func (k *Key) Verify(msg, sig []byte) error {
	if len(sig) != 64 && len(sig) != 65 {
		return kcherr.WithDetails(
			newKeyError("InvalidSignatureSize", "signature must be 64 or 65 bytes"),
			map[string]string{"got": strconv.Itoa(len(sig)), "want": "64"},
		)
	}

	var r, s secp256k1.ModNScalar
	r.SetByteSlice(sig[:32])
	s.SetByteSlice(sig[32:64])
	signature := ecdsa.NewSignature(&r, &s)

	hash := keccak256(msg)
	if !signature.Verify(hash, k.privKey().PubKey()) {
		return newKeyError("SignError", "signature verification failed")
	}
	return nil
}
