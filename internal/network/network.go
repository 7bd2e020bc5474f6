// Package network defines the per-network factory/key contracts and the
// concrete Bitcoin, Ethereum, and Cardano implementations that bind a
// key-path model to an underlying extended-key type.
package network

import (
	"github.com/duskvault/keychain/internal/keypath"
	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// Network codes double as BIP-44 coin types and as the keys used
// throughout the container and keychain to identify a key entry.
const (
	Bitcoin  uint32 = 0x80000000
	Ethereum uint32 = 0x8000003C
	Cardano  uint32 = 0x80000717
)

// Key is a loaded, network-bound extended-key root. Every operation
// first validates path against the owning network's rules, then derives
// the leaf extended key, then performs the requested primitive.
type Key interface {
	PubKey(path keypath.Path) ([]byte, error)
	Sign(data []byte, path keypath.Path) ([]byte, error)
	Verify(data, sig []byte, path keypath.Path) error
}

// Factory binds a network code and seed-size range to constructors for
// its Key type.
type Factory interface {
	Code() uint32
	SeedBitRange() (min, max int)
	KeyFromData(data []byte) (Key, error)
	KeyDataFromSeed(seed []byte) ([]byte, error)
}

func wrapNetworkError(code uint32, err error) error {
	if err == nil {
		return nil
	}
	return kcherr.WithNetwork(err, code)
}

func newPathError(reason, message string) error {
	return kcherr.WithDetails(kcherr.New(kcherr.KeyPathError, message), map[string]string{"reason": reason})
}

// validateAccountChangeAddress enforces the BIP-44 leaf-level rules shared
// by every network's derive path, beyond the purpose/coin check each
// network applies itself: account must be hardened, change must be 0 or
// 1, and address must not be hardened.
func validateAccountChangeAddress(path keypath.Path) error {
	if path.Account < keypath.Hardened {
		return newPathError("InvalidAccount", "account index must be hardened")
	}
	if path.Change != 0 && path.Change != 1 {
		return newPathError("InvalidChange", "change must be 0 or 1")
	}
	if path.Address >= keypath.Hardened {
		return newPathError("InvalidAddress", "address index must not be hardened")
	}
	return nil
}

func newKeyError(reason, message string) error {
	return kcherr.WithDetails(kcherr.New(kcherr.KeyError, message), map[string]string{"reason": reason})
}
