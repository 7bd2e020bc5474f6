// Package secure wraps secret-bearing byte slices (seeds, extended-key
// material, PBKDF2-derived keys, decrypted container plaintext) with
// explicit zeroing and best-effort page locking, per the resource
// discipline in the keychain's concurrency model.
package secure

import (
	"runtime"
	"sync"
)

// Bytes is a sensitive byte buffer that is zeroed and unlocked when
// Destroy is called, and on garbage collection if the caller forgets.
type Bytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// New allocates a zeroed Bytes of the given size, locking it in memory
// when the OS supports it.
func New(size int) *Bytes {
	b := &Bytes{data: make([]byte, size)}
	b.locked = mlock(b.data)
	runtime.SetFinalizer(b, (*Bytes).Destroy)
	return b
}

// FromSlice copies data into a new secure Bytes. The caller remains
// responsible for zeroing its own copy of data.
func FromSlice(data []byte) *Bytes {
	b := New(len(data))
	copy(b.data, data)
	return b
}

// Bytes returns the underlying slice. Returns nil after Destroy.
func (b *Bytes) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Len returns the length of the buffer, or 0 after Destroy.
func (b *Bytes) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// IsLocked reports whether the buffer is mlock'd.
func (b *Bytes) IsLocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Destroy zeros and unlocks the buffer. Safe to call more than once.
func (b *Bytes) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return
	}

	Zero(b.data)

	if b.locked {
		munlock(b.data)
		b.locked = false
	}

	b.data = nil
	runtime.SetFinalizer(b, nil)
}

// Zero overwrites data with zero bytes in place.
func Zero(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
