package network

import (
	"github.com/duskvault/keychain/internal/keypath"
	"github.com/duskvault/keychain/internal/secpkey"
)

var bitcoinPurposes = map[uint32]bool{
	0x8000002C: true, // BIP44
	0x80000031: true, // BIP49
	0x80000054: true, // BIP84
}

var bitcoinCoins = map[uint32]bool{
	0x80000000: true, // mainnet
	0x80000001: true, // testnet
}

type bitcoinFactory struct{}

// NewBitcoinFactory returns the Bitcoin network factory.
func NewBitcoinFactory() Factory { return bitcoinFactory{} }

func (bitcoinFactory) Code() uint32             { return Bitcoin }
func (bitcoinFactory) SeedBitRange() (int, int) { return 128, 256 }

func (bitcoinFactory) KeyFromData(data []byte) (Key, error) {
	root, err := secpkey.Deserialize(data)
	if err != nil {
		return nil, wrapNetworkError(Bitcoin, err)
	}
	return secpNetworkKey{root: root, code: Bitcoin, purposes: bitcoinPurposes, coins: bitcoinCoins}, nil
}

func (bitcoinFactory) KeyDataFromSeed(seed []byte) ([]byte, error) {
	root, err := secpkey.FromSeed(seed)
	if err != nil {
		return nil, wrapNetworkError(Bitcoin, err)
	}
	return root.Serialize(), nil
}

// secpNetworkKey adapts a secpkey.Key root to the Key interface for both
// Bitcoin and Ethereum, which share the same underlying primitive but
// validate distinct purpose/coin sets.
type secpNetworkKey struct {
	root     *secpkey.Key
	code     uint32
	purposes map[uint32]bool
	coins    map[uint32]bool
}

func (k secpNetworkKey) validate(path keypath.Path) error {
	if !k.purposes[path.Purpose] {
		return wrapNetworkError(k.code, newPathError("InvalidPurpose", "path purpose is not valid for this network"))
	}
	if !k.coins[path.Coin] {
		return wrapNetworkError(k.code, newPathError("InvalidCoin", "path coin type is not valid for this network"))
	}
	if err := validateAccountChangeAddress(path); err != nil {
		return wrapNetworkError(k.code, err)
	}
	return nil
}

func (k secpNetworkKey) derive(path keypath.Path) (*secpkey.Key, error) {
	if err := k.validate(path); err != nil {
		return nil, err
	}
	leaf := k.root
	for _, idx := range []uint32{path.Purpose, path.Coin, path.Account, path.Change, path.Address} {
		var err error
		leaf, err = leaf.Derive(idx)
		if err != nil {
			return nil, wrapNetworkError(k.code, err)
		}
	}
	return leaf, nil
}

func (k secpNetworkKey) PubKey(path keypath.Path) ([]byte, error) {
	leaf, err := k.derive(path)
	if err != nil {
		return nil, err
	}
	return leaf.PubKey(), nil
}

func (k secpNetworkKey) Sign(data []byte, path keypath.Path) ([]byte, error) {
	leaf, err := k.derive(path)
	if err != nil {
		return nil, err
	}
	sig, err := leaf.Sign(data)
	if err != nil {
		return nil, wrapNetworkError(k.code, err)
	}
	return sig, nil
}

func (k secpNetworkKey) Verify(data, sig []byte, path keypath.Path) error {
	leaf, err := k.derive(path)
	if err != nil {
		return err
	}
	if err := leaf.Verify(data, sig); err != nil {
		return wrapNetworkError(k.code, err)
	}
	return nil
}
