package network

import (
	"github.com/duskvault/keychain/internal/edkey"
	"github.com/duskvault/keychain/internal/keypath"
)

var cardanoPurposes = map[uint32]bool{0x8000002C: true}
var cardanoCoins = map[uint32]bool{Cardano: true}

type cardanoFactory struct{}

// NewCardanoFactory returns the Cardano network factory.
func NewCardanoFactory() Factory { return cardanoFactory{} }

func (cardanoFactory) Code() uint32             { return Cardano }
func (cardanoFactory) SeedBitRange() (int, int) { return 96, 256 }

func (cardanoFactory) KeyFromData(data []byte) (Key, error) {
	root, err := edkey.Deserialize(data)
	if err != nil {
		return nil, wrapNetworkError(Cardano, err)
	}
	return cardanoKey{root: root}, nil
}

func (cardanoFactory) KeyDataFromSeed(seed []byte) ([]byte, error) {
	root, err := edkey.DataFromSeed(seed)
	if err != nil {
		return nil, wrapNetworkError(Cardano, err)
	}
	return root.Serialize(), nil
}

type cardanoKey struct {
	root *edkey.Key
}

func (k cardanoKey) validate(path keypath.Path) error {
	if !cardanoPurposes[path.Purpose] {
		return wrapNetworkError(Cardano, newPathError("InvalidPurpose", "path purpose is not valid for this network"))
	}
	if !cardanoCoins[path.Coin] {
		return wrapNetworkError(Cardano, newPathError("InvalidCoin", "path coin type is not valid for this network"))
	}
	if err := validateAccountChangeAddress(path); err != nil {
		return wrapNetworkError(Cardano, err)
	}
	return nil
}

func (k cardanoKey) derive(path keypath.Path) (*edkey.Key, error) {
	if err := k.validate(path); err != nil {
		return nil, err
	}
	leaf := k.root
	for _, idx := range []uint32{path.Purpose, path.Coin, path.Account, path.Change, path.Address} {
		var err error
		leaf, err = leaf.Derive(idx)
		if err != nil {
			return nil, wrapNetworkError(Cardano, err)
		}
	}
	return leaf, nil
}

func (k cardanoKey) PubKey(path keypath.Path) ([]byte, error) {
	leaf, err := k.derive(path)
	if err != nil {
		return nil, err
	}
	pub, err := leaf.PubKey()
	if err != nil {
		return nil, wrapNetworkError(Cardano, err)
	}
	return pub[:], nil
}

func (k cardanoKey) Sign(data []byte, path keypath.Path) ([]byte, error) {
	leaf, err := k.derive(path)
	if err != nil {
		return nil, err
	}
	sig, err := leaf.Sign(data)
	if err != nil {
		return nil, wrapNetworkError(Cardano, err)
	}
	return sig[:], nil
}

func (k cardanoKey) Verify(data, sig []byte, path keypath.Path) error {
	if len(sig) != 64 {
		return wrapNetworkError(Cardano, newKeyError("InvalidSignatureSize", "cardano signatures are exactly 64 bytes"))
	}
	leaf, err := k.derive(path)
	if err != nil {
		return err
	}
	var fixed [64]byte
	copy(fixed[:], sig)
	if err := leaf.Verify(data, fixed); err != nil {
		return wrapNetworkError(Cardano, err)
	}
	return nil
}
