// Package keyset implements the read-only, in-memory mapping from
// network code to loaded key object produced by KeychainFromData.
package keyset

import (
	"github.com/duskvault/keychain/internal/keypath"
	"github.com/duskvault/keychain/internal/network"
	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// Keyset is an immutable map of network code to loaded key. It has no
// mutator; a new Keyset is built fresh whenever the underlying container
// changes.
type Keyset struct {
	keys map[uint32]network.Key
}

// New builds a Keyset from an already-instantiated set of keys.
func New(keys map[uint32]network.Key) Keyset {
	return Keyset{keys: keys}
}

// Networks returns the set of network codes this Keyset holds keys for.
func (k Keyset) Networks() []uint32 {
	out := make([]uint32, 0, len(k.keys))
	for code := range k.keys {
		out = append(out, code)
	}
	return out
}

// HasNetwork reports whether code has a loaded key.
func (k Keyset) HasNetwork(code uint32) bool {
	_, ok := k.keys[code]
	return ok
}

func (k Keyset) lookup(code uint32) (network.Key, error) {
	key, ok := k.keys[code]
	if !ok {
		return nil, kcherr.WithNetwork(kcherr.New(kcherr.KeyDoesNotExist, "no key loaded for this network"), code)
	}
	return key, nil
}

// PubKey derives the public key at path for the key loaded under code.
func (k Keyset) PubKey(code uint32, path keypath.Path) ([]byte, error) {
	key, err := k.lookup(code)
	if err != nil {
		return nil, err
	}
	return key.PubKey(path)
}

// Sign signs data with the key loaded under code at path.
func (k Keyset) Sign(code uint32, data []byte, path keypath.Path) ([]byte, error) {
	key, err := k.lookup(code)
	if err != nil {
		return nil, err
	}
	return key.Sign(data, path)
}

// Verify verifies sig over data with the key loaded under code at path.
func (k Keyset) Verify(code uint32, data, sig []byte, path keypath.Path) error {
	key, err := k.lookup(code)
	if err != nil {
		return err
	}
	return key.Verify(data, sig, path)
}
