// Package keypath implements the generic five-component derivation path
// shared by every network, plus per-network constructors that build a
// valid path from network-specific parameters.
package keypath

import (
	"strconv"
	"strings"

	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// Hardened is the bit that marks a path component as hardened.
const Hardened = 0x80000000

// Path is the generic five-field derivation path: m/purpose/coin/account/change/address.
type Path struct {
	Purpose uint32
	Coin    uint32
	Account uint32
	Change  uint32
	Address uint32
}

// String formats p as m/<purpose>/<coin>/<account>/<change>/<address>,
// appending a ' suffix to any component whose hardened bit is set.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, v := range []uint32{p.Purpose, p.Coin, p.Account, p.Change, p.Address} {
		b.WriteByte('/')
		b.WriteString(component(v))
	}
	return b.String()
}

func component(v uint32) string {
	if v&Hardened != 0 {
		return strconv.FormatUint(uint64(v&^Hardened), 10) + "'"
	}
	return strconv.FormatUint(uint64(v), 10)
}

func newPathError(reason, message string) error {
	return kcherr.WithDetails(kcherr.New(kcherr.KeyPathError, message), map[string]string{"reason": reason})
}

// FromString parses a path of the form m/a/b/c/d/e, where each component
// is a decimal literal optionally suffixed with ' to set the hardened bit.
func FromString(s string) (Path, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 6 {
		return Path{}, newPathError("InvalidPartsCount", "path must have exactly 6 components including the leading m")
	}
	if parts[0] != "m" {
		return Path{}, newPathError("InvalidPathMarker", "path must begin with marker m")
	}

	values := make([]uint32, 5)
	for i, part := range parts[1:] {
		if part == "" {
			return Path{}, newPathError("EmptyValueAtIndex", "empty path component at index "+strconv.Itoa(i))
		}
		hardened := strings.HasSuffix(part, "'")
		digits := part
		if hardened {
			digits = part[:len(part)-1]
		}
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return Path{}, newPathError("ParseErrorAtIndex", "cannot parse path component "+strconv.Itoa(i)+": "+err.Error())
		}
		v := uint32(n)
		if hardened {
			v |= Hardened
		}
		values[i] = v
	}

	return Path{
		Purpose: values[0],
		Coin:    values[1],
		Account: values[2],
		Change:  values[3],
		Address: values[4],
	}, nil
}

const maxNonHardened = Hardened - 1 // 2^31 - 1

// Bitcoin purpose constants, per BIP-44/49/84.
const (
	purposeBIP44 = 0x8000002C
	purposeBIP49 = 0x80000031
	purposeBIP84 = 0x80000054

	bitcoinCoinMainnet = 0x80000000
	bitcoinCoinTestnet = 0x80000001
)

func bitcoinPath(purpose uint32, testnet bool, account, change, address uint32) (Path, error) {
	if account > maxNonHardened {
		return Path{}, newPathError("InvalidAccount", "account must be less than 2^31")
	}
	if change != 0 && change != 1 {
		return Path{}, newPathError("InvalidChange", "change must be 0 or 1")
	}
	if address > maxNonHardened {
		return Path{}, newPathError("InvalidAddress", "address must be less than 2^31")
	}

	coin := uint32(bitcoinCoinMainnet)
	if testnet {
		coin = bitcoinCoinTestnet
	}

	return Path{
		Purpose: purpose,
		Coin:    coin,
		Account: account | Hardened,
		Change:  change,
		Address: address,
	}, nil
}

// BIP44 builds a legacy P2PKH Bitcoin path.
func BIP44(testnet bool, account, change, address uint32) (Path, error) {
	return bitcoinPath(purposeBIP44, testnet, account, change, address)
}

// BIP49 builds a P2SH-wrapped segwit Bitcoin path.
func BIP49(testnet bool, account, change, address uint32) (Path, error) {
	return bitcoinPath(purposeBIP49, testnet, account, change, address)
}

// BIP84 builds a native segwit Bitcoin path.
func BIP84(testnet bool, account, change, address uint32) (Path, error) {
	return bitcoinPath(purposeBIP84, testnet, account, change, address)
}

const ethereumCoin = 0x8000003C

// New builds a standard Ethereum path: m/44'/60'/account'/0/0.
func New(account uint32) (Path, error) {
	if account > maxNonHardened {
		return Path{}, newPathError("InvalidAccount", "account must be less than 2^31")
	}
	return Path{
		Purpose: purposeBIP44,
		Coin:    ethereumCoin,
		Account: account | Hardened,
		Change:  0,
		Address: 0,
	}, nil
}

// NewMetaMask builds the MetaMask-style Ethereum path: m/44'/60'/0'/0/account.
func NewMetaMask(account uint32) (Path, error) {
	if account > maxNonHardened {
		return Path{}, newPathError("InvalidAddress", "account must be less than 2^31")
	}
	return Path{
		Purpose: purposeBIP44,
		Coin:    ethereumCoin,
		Account: Hardened,
		Change:  0,
		Address: account,
	}, nil
}

const cardanoCoin = 0x80000717

// NewCardano builds a Cardano path: m/44'/1815'/account'/change/address.
func NewCardano(account, change, address uint32) (Path, error) {
	if account > maxNonHardened {
		return Path{}, newPathError("InvalidAccount", "account must be less than 2^31")
	}
	if change != 0 && change != 1 {
		return Path{}, newPathError("InvalidChange", "change must be 0 or 1")
	}
	if address > maxNonHardened {
		return Path{}, newPathError("InvalidAddress", "address must be less than 2^31")
	}
	return Path{
		Purpose: purposeBIP44,
		Coin:    cardanoCoin,
		Account: account | Hardened,
		Change:  change,
		Address: address,
	}, nil
}
