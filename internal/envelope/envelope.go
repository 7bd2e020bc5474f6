// Package envelope implements the keychain's password-based authenticated
// encryption envelope: PBKDF2-HMAC-SHA512 key derivation feeding
// ChaCha20-Poly1305. The wire layout and iteration count are fixed; this
// package exposes no way to change either, because both are part of the
// implicit contract of every encrypted blob already on disk.
package envelope

import (
	"crypto/sha512"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"github.com/duskvault/keychain/internal/entropy"
	"github.com/duskvault/keychain/internal/secure"
	kcherr "github.com/duskvault/keychain/pkg/errors"
)

const (
	// Iterations is a hard wire-format constant. It MUST NOT be changed
	// without introducing a version byte outside the envelope, and MUST
	// NOT be made runtime-configurable.
	Iterations = 19162

	saltSize  = 32
	nonceSize = chacha20poly1305.NonceSize // 12
	tagSize   = chacha20poly1305.Overhead  // 16
	keySize   = chacha20poly1305.KeySize   // 32

	// Overhead is the total byte cost of salt+nonce+tag added to every
	// plaintext by Encrypt.
	Overhead = saltSize + nonceSize + tagSize
)

// Encrypt derives a key from password via PBKDF2-HMAC-SHA512 over a fresh
// salt drawn from src, encrypts plaintext with ChaCha20-Poly1305 under a
// fresh nonce, and returns salt ‖ nonce ‖ tag ‖ ciphertext.
func Encrypt(plaintext []byte, password string, src entropy.Source) ([]byte, error) {
	salt, err := entropy.Bytes(src, saltSize)
	if err != nil {
		return nil, kcherr.Wrap(err, "drawing envelope salt")
	}
	nonce, err := entropy.Bytes(src, nonceSize)
	if err != nil {
		return nil, kcherr.Wrap(err, "drawing envelope nonce")
	}

	key := deriveKey(password, salt)
	defer key.Destroy()
	aead, err := chacha20poly1305.New(key.Bytes())
	if err != nil {
		return nil, kcherr.Wrap(err, "constructing aead cipher")
	}

	// Seal appends the tag after the ciphertext; the wire format wants it
	// between nonce and ciphertext, so split and reorder.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	out := make([]byte, 0, saltSize+nonceSize+tagSize+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, tag...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decrypt reverses Encrypt. A length below Overhead fails NotEnoughData; a
// tag mismatch fails WrongPassword, indistinguishable from ciphertext
// corruption by design.
func Decrypt(blob []byte, password string) ([]byte, error) {
	if len(blob) < Overhead {
		return nil, kcherr.New(kcherr.NotEnoughData, "envelope shorter than salt+nonce+tag")
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	tag := blob[saltSize+nonceSize : saltSize+nonceSize+tagSize]
	ciphertext := blob[saltSize+nonceSize+tagSize:]

	key := deriveKey(password, salt)
	defer key.Destroy()
	aead, err := chacha20poly1305.New(key.Bytes())
	if err != nil {
		return nil, kcherr.Wrap(err, "constructing aead cipher")
	}

	sealed := make([]byte, 0, len(ciphertext)+tagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, kcherr.New(kcherr.WrongPassword, "authentication failed")
	}
	return plaintext, nil
}

func deriveKey(password string, salt []byte) *secure.Bytes {
	derived := pbkdf2.Key([]byte(password), salt, Iterations, keySize, sha512.New)
	buf := secure.FromSlice(derived)
	secure.Zero(derived)
	return buf
}
