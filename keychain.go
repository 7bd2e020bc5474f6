// Package keychain implements an embeddable hierarchical-deterministic
// keychain: mnemonic/seed management, per-network key derivation, and a
// password-encrypted wallet container, for Bitcoin, Ethereum, and Cardano.
package keychain

import (
	"github.com/duskvault/keychain/internal/keypath"
	"github.com/duskvault/keychain/internal/keyset"
	"github.com/duskvault/keychain/internal/network"
)

// Keychain is a read-only, in-memory view over the networks loaded from
// a decrypted container. It has no mutator; a new Keychain is produced
// whenever the underlying container changes.
type Keychain struct {
	set keyset.Keyset
}

// Networks returns the network codes this Keychain holds keys for.
func (k Keychain) Networks() []uint32 { return k.set.Networks() }

// HasNetwork reports whether code has a loaded key.
func (k Keychain) HasNetwork(code uint32) bool { return k.set.HasNetwork(code) }

// PubKey derives the public key at path for the key loaded under code.
func (k Keychain) PubKey(code uint32, path Path) ([]byte, error) {
	return k.set.PubKey(code, path)
}

// Sign signs data at path with the key loaded under code.
func (k Keychain) Sign(code uint32, data []byte, path Path) ([]byte, error) {
	return k.set.Sign(code, data, path)
}

// Verify verifies sig over data at path with the key loaded under code.
func (k Keychain) Verify(code uint32, data, sig []byte, path Path) error {
	return k.set.Verify(code, data, sig, path)
}

// KeyData is one (network code, opaque extended-key payload) pair, as
// returned verbatim by GetKeysData.
type KeyData struct {
	Network uint32
	Payload []byte
}

// Path is the generic five-field derivation path accepted by PubKey, Sign,
// and Verify: m/purpose/coin/account/change/address.
type Path = keypath.Path

// PathFromString parses a path of the form m/a/b/c/d/e, where each
// component is a decimal literal optionally suffixed with ' to set the
// hardened bit.
func PathFromString(s string) (Path, error) { return keypath.FromString(s) }

// BIP44Path builds a legacy P2PKH Bitcoin path.
func BIP44Path(testnet bool, account, change, address uint32) (Path, error) {
	return keypath.BIP44(testnet, account, change, address)
}

// BIP49Path builds a P2SH-wrapped segwit Bitcoin path.
func BIP49Path(testnet bool, account, change, address uint32) (Path, error) {
	return keypath.BIP49(testnet, account, change, address)
}

// BIP84Path builds a native segwit Bitcoin path.
func BIP84Path(testnet bool, account, change, address uint32) (Path, error) {
	return keypath.BIP84(testnet, account, change, address)
}

// EthereumPath builds a standard Ethereum path: m/44'/60'/account'/0/0.
func EthereumPath(account uint32) (Path, error) { return keypath.New(account) }

// MetaMaskPath builds the MetaMask-style Ethereum path: m/44'/60'/0'/0/account.
func MetaMaskPath(account uint32) (Path, error) { return keypath.NewMetaMask(account) }

// CardanoPath builds a Cardano path: m/44'/1815'/account'/change/address.
func CardanoPath(account, change, address uint32) (Path, error) {
	return keypath.NewCardano(account, change, address)
}

// Factory re-exports network.Factory so callers can assemble the list
// passed to NewManager without importing an internal package.
type Factory = network.Factory

// NewBitcoinFactory returns the Bitcoin network factory.
func NewBitcoinFactory() Factory { return network.NewBitcoinFactory() }

// NewEthereumFactory returns the Ethereum network factory.
func NewEthereumFactory() Factory { return network.NewEthereumFactory() }

// NewCardanoFactory returns the Cardano network factory.
func NewCardanoFactory() Factory { return network.NewCardanoFactory() }

// Network codes, re-exported for convenience.
const (
	Bitcoin  = network.Bitcoin
	Ethereum = network.Ethereum
	Cardano  = network.Cardano
)
