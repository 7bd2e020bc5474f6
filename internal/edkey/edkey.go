// Package edkey implements the extended Ed25519-BIP32 key used by the
// Cardano factory, following the V2 (Icarus) derivation scheme: left/right
// scalar halves derived directly from a clamped 64-byte digest rather than
// from a standard Ed25519 seed hash.
package edkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"filippo.io/edwards25519"

	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// SerializedLen is the byte length of kL ‖ kR ‖ chainCode.
const SerializedLen = 96

const hardenedStart = 0x80000000

// Key is an extended Ed25519-BIP32 key node: kL (the scalar) ‖ kR (the
// nonce prefix) ‖ a 32-byte chain code.
type Key struct {
	kL        [32]byte
	kR        [32]byte
	chainCode [32]byte
}

func newKeyError(reason, message string) error {
	return kcherr.WithDetails(kcherr.New(kcherr.KeyError, message), map[string]string{"reason": reason})
}

func clamp(kL *[32]byte) {
	kL[0] &= 248
	kL[31] &= 63
	kL[31] |= 64
	kL[31] &= 0b1101_1111 // clear the third-highest bit, beyond standard Ed25519 clamping
}

func verifyClamp(kL [32]byte) error {
	if kL[31]&0b1110_0000 != 0b0100_0000 {
		return newKeyError("InvalidKeyData", "extended key top bits are not a valid clamped scalar")
	}
	if kL[0]&0b0000_0111 != 0 {
		return newKeyError("InvalidKeyData", "extended key low bits are not a valid clamped scalar")
	}
	return nil
}

// DataFromSeed derives the root extended key from a 64-byte seed:
// SHA-512(seed[0:32]) yields kL ‖ kR, which is then clamped; the chain
// code is taken directly from seed[32:64], unhashed.
func DataFromSeed(seed []byte) (*Key, error) {
	if len(seed) < 64 {
		return nil, newKeyError("InvalidKeyData", "seed must be at least 64 bytes")
	}

	digest := sha512.Sum512(seed[:32])

	k := &Key{}
	copy(k.kL[:], digest[:32])
	copy(k.kR[:], digest[32:64])
	clamp(&k.kL)
	copy(k.chainCode[:], seed[32:64])

	return k, nil
}

// scalarFromClampedBytes loads kL as a scalar by reducing its raw bytes
// mod L, not by re-applying clamp masking: kL is already clamped once, at
// the seed root, and Derive's add28Mul8 update preserves that invariant
// arithmetically. Re-clamping here would silently force clamp bits onto a
// derived kL whose top byte no longer matches the expected pattern,
// diverging from the value cryptoxide's to_public/signature_extended
// would compute for the same key.
func scalarFromClampedBytes(b [32]byte) (*edwards25519.Scalar, error) {
	var wide [64]byte
	copy(wide[:32], b[:])
	s, err := new(edwards25519.Scalar).SetUniformBytes(wide[:])
	if err != nil {
		return nil, newKeyError("InvalidKeyData", "extended key scalar is malformed")
	}
	return s, nil
}

func scalarReduce(b []byte) (*edwards25519.Scalar, error) {
	s, err := new(edwards25519.Scalar).SetUniformBytes(b)
	if err != nil {
		return nil, newKeyError("InvalidKeyData", "expected a 64-byte digest to reduce")
	}
	return s, nil
}

// PubKey returns the 32-byte compressed Ed25519 public point kL·B.
func (k *Key) PubKey() ([32]byte, error) {
	scalar, err := scalarFromClampedBytes(k.kL)
	if err != nil {
		return [32]byte{}, err
	}
	point := new(edwards25519.Point).ScalarBaseMult(scalar)

	var out [32]byte
	copy(out[:], point.Bytes())
	return out, nil
}

// Serialize encodes k as kL ‖ kR ‖ chainCode (96 bytes).
func (k *Key) Serialize() []byte {
	out := make([]byte, 0, SerializedLen)
	out = append(out, k.kL[:]...)
	out = append(out, k.kR[:]...)
	out = append(out, k.chainCode[:]...)
	return out
}

// Deserialize parses a 96-byte kL ‖ kR ‖ chainCode blob, verifying (but
// not reapplying) the expected clamp bits on kL.
func Deserialize(data []byte) (*Key, error) {
	if len(data) != SerializedLen {
		return nil, newKeyError("InvalidKeySize", "extended key must be exactly 96 bytes")
	}

	k := &Key{}
	copy(k.kL[:], data[0:32])
	copy(k.kR[:], data[32:64])
	copy(k.chainCode[:], data[64:96])

	if err := verifyClamp(k.kL); err != nil {
		return nil, err
	}
	return k, nil
}

func le32(i uint32) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], i)
	return b
}

// add28Mul8 computes x + 8*y over the low 28 bytes (with carry into the
// remaining 4), per the V2 derivation scheme's left-scalar update.
func add28Mul8(x, y [32]byte) [32]byte {
	var out [32]byte
	var carry uint16
	for i := 0; i < 28; i++ {
		r := uint16(x[i]) + uint16(y[i])<<3 + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	for i := 28; i < 32; i++ {
		r := uint16(x[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	return out
}

// add256 computes (x + y) mod 2^256, wrapping without further reduction.
func add256(x, y [32]byte) [32]byte {
	var out [32]byte
	var carry uint16
	for i := 0; i < 32; i++ {
		r := uint16(x[i]) + uint16(y[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}
	return out
}

// Derive computes the V2 child key at index, hardened when index >=
// 2^31. HMAC-SHA512 keyed by the chain code produces Z (scalar update)
// and I (new chain code) from disjoint domain-separated prefixes.
func (k *Key) Derive(index uint32) (*Key, error) {
	hardened := index >= hardenedStart
	seri := le32(index)

	zmac := hmac.New(sha512.New, k.chainCode[:])
	imac := hmac.New(sha512.New, k.chainCode[:])

	if hardened {
		ekey := append(append([]byte{}, k.kL[:]...), k.kR[:]...)
		zmac.Write([]byte{0x00})
		zmac.Write(ekey)
		zmac.Write(seri[:])
		imac.Write([]byte{0x01})
		imac.Write(ekey)
		imac.Write(seri[:])
	} else {
		pub, err := k.PubKey()
		if err != nil {
			return nil, err
		}
		zmac.Write([]byte{0x02})
		zmac.Write(pub[:])
		zmac.Write(seri[:])
		imac.Write([]byte{0x03})
		imac.Write(pub[:])
		imac.Write(seri[:])
	}

	zout := zmac.Sum(nil)
	var zl, zr [32]byte
	copy(zl[:], zout[:32])
	copy(zr[:], zout[32:64])

	iout := imac.Sum(nil)

	child := &Key{}
	child.kL = add28Mul8(k.kL, zl)
	child.kR = add256(k.kR, zr)
	copy(child.chainCode[:], iout[32:64])

	return child, nil
}

// Sign produces an extended Ed25519 signature over msg using (kL, kR)
// directly as (scalar, nonce-prefix), without hashing a seed first.
func (k *Key) Sign(msg []byte) ([64]byte, error) {
	var zero [64]byte

	a, err := scalarFromClampedBytes(k.kL)
	if err != nil {
		return zero, err
	}
	A := new(edwards25519.Point).ScalarBaseMult(a)

	nonceDigest := sha512.New()
	nonceDigest.Write(k.kR[:])
	nonceDigest.Write(msg)
	r, err := scalarReduce(nonceDigest.Sum(nil))
	if err != nil {
		return zero, err
	}
	R := new(edwards25519.Point).ScalarBaseMult(r)

	challengeDigest := sha512.New()
	challengeDigest.Write(R.Bytes())
	challengeDigest.Write(A.Bytes())
	challengeDigest.Write(msg)
	h, err := scalarReduce(challengeDigest.Sum(nil))
	if err != nil {
		return zero, err
	}

	s := new(edwards25519.Scalar).Multiply(h, a)
	s.Add(s, r)

	var out [64]byte
	copy(out[:32], R.Bytes())
	copy(out[32:], s.Bytes())
	return out, nil
}

// Verify checks a 64-byte extended Ed25519 signature against msg using
// k's public key.
func (k *Key) Verify(msg []byte, sig [64]byte) error {
	pub, err := k.PubKey()
	if err != nil {
		return err
	}

	A, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return newKeyError("InvalidKeyData", "public point does not decode")
	}

	R, err := new(edwards25519.Point).SetBytes(sig[:32])
	if err != nil {
		return newKeyError("SignError", "signature R component does not decode")
	}

	s, err := new(edwards25519.Scalar).SetCanonicalBytes(sig[32:])
	if err != nil {
		return newKeyError("SignError", "signature s component is not canonical")
	}

	challengeDigest := sha512.New()
	challengeDigest.Write(sig[:32])
	challengeDigest.Write(pub[:])
	challengeDigest.Write(msg)
	h, err := scalarReduce(challengeDigest.Sum(nil))
	if err != nil {
		return err
	}

	lhs := new(edwards25519.Point).ScalarBaseMult(s)
	rhs := new(edwards25519.Point).Add(R, new(edwards25519.Point).ScalarMult(h, A))

	if lhs.Equal(rhs) != 1 {
		return newKeyError("SignError", "signature verification failed")
	}
	return nil
}
