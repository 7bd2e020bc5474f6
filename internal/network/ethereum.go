package network

import (
	"github.com/duskvault/keychain/internal/secpkey"
)

var ethereumPurposes = map[uint32]bool{0x8000002C: true}
var ethereumCoins = map[uint32]bool{Ethereum: true}

type ethereumFactory struct{}

// NewEthereumFactory returns the Ethereum network factory.
func NewEthereumFactory() Factory { return ethereumFactory{} }

func (ethereumFactory) Code() uint32             { return Ethereum }
func (ethereumFactory) SeedBitRange() (int, int) { return 128, 256 }

func (ethereumFactory) KeyFromData(data []byte) (Key, error) {
	root, err := secpkey.Deserialize(data)
	if err != nil {
		return nil, wrapNetworkError(Ethereum, err)
	}
	return secpNetworkKey{root: root, code: Ethereum, purposes: ethereumPurposes, coins: ethereumCoins}, nil
}

func (ethereumFactory) KeyDataFromSeed(seed []byte) ([]byte, error) {
	root, err := secpkey.FromSeed(seed)
	if err != nil {
		return nil, wrapNetworkError(Ethereum, err)
	}
	return root.Serialize(), nil
}
