package keychain

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/duskvault/keychain/internal/container"
	"github.com/duskvault/keychain/internal/entropy"
	"github.com/duskvault/keychain/internal/envelope"
	"github.com/duskvault/keychain/internal/keyset"
	"github.com/duskvault/keychain/internal/mnemonic"
	"github.com/duskvault/keychain/internal/network"
	"github.com/duskvault/keychain/internal/secure"
	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// Manager coordinates mnemonic/seed generation, per-network key
// derivation, and the encrypted wallet container, across a fixed set of
// enabled network factories.
type Manager struct {
	factories map[uint32]network.Factory
	seedBits  int
	entropy   entropy.Source
	log       *slog.Logger
}

// Option configures a Manager at construction.
type Option func(*Manager)

// WithEntropySource overrides the default system entropy source, for
// substituting a deterministic source in tests.
func WithEntropySource(src entropy.Source) Option {
	return func(m *Manager) { m.entropy = src }
}

// WithDiagnostics attaches a slog.Handler for non-secret lifecycle
// events (e.g. "mnemonic generated", "encrypting container"). It never receives secret
// material and never substitutes for the library's error-return policy.
func WithDiagnostics(handler slog.Handler) Option {
	return func(m *Manager) { m.log = slog.New(handler) }
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewManager builds a Manager over the given enabled factories, computing
// the single seed size usable by all of them.
func NewManager(factories []network.Factory, opts ...Option) (*Manager, error) {
	m := &Manager{
		factories: make(map[uint32]network.Factory, len(factories)),
		entropy:   entropy.NewSystemSource(),
		log:       noopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	maxMin, minMax := 0, int(^uint(0)>>1)
	for _, f := range factories {
		m.factories[f.Code()] = f
		lo, hi := f.SeedBitRange()
		if lo > maxMin {
			maxMin = lo
		}
		if hi < minMax {
			minMax = hi
		}
	}
	if maxMin > minMax {
		return nil, kcherr.WithDetails(
			kcherr.New(kcherr.CantCalculateSeedSize, "no seed bit length satisfies every enabled network"),
			map[string]string{"min": strconv.Itoa(maxMin), "max": strconv.Itoa(minMax)},
		)
	}
	m.seedBits = maxMin

	m.log.Info("keychain manager constructed", "networks", len(m.factories), "seed_bits", m.seedBits)
	return m, nil
}

// GenerateMnemonic produces a fresh mnemonic at the manager's seed size,
// in the given dictionary (default English).
func (m *Manager) GenerateMnemonic(dict ...mnemonic.Dictionary) (string, error) {
	d := mnemonic.English
	if len(dict) > 0 {
		d = dict[0]
	}

	ent, err := mnemonic.GenerateEntropy(m.seedBits, m.entropy.Fill)
	if err != nil {
		return "", err
	}
	phrase, err := mnemonic.MnemonicFromEntropy(ent, d)
	if err != nil {
		return "", err
	}
	m.log.Info("mnemonic generated", "dictionary", d, "bits", m.seedBits)
	return phrase, nil
}

func (m *Manager) keyDataForEachFactory(seed []byte) ([]container.KeyEntry, error) {
	entries := make([]container.KeyEntry, 0, len(m.factories))
	for code, factory := range m.factories {
		payload, err := factory.KeyDataFromSeed(seed)
		if err != nil {
			return nil, kcherr.WithNetwork(err, code)
		}
		entries = append(entries, container.KeyEntry{Network: code, Payload: payload})
	}
	return entries, nil
}

func (m *Manager) encryptRecord(record container.Record, password string) ([]byte, error) {
	inner, err := container.Serialize(record)
	if err != nil {
		return nil, err
	}
	m.log.Info("encrypting container", "pbkdf2_iterations", envelope.Iterations)
	return envelope.Encrypt(inner, password, m.entropy)
}

// KeychainDataFromSeed builds a fresh V2 container from a 64-byte seed,
// deriving every enabled network's key payload, and returns the
// encrypted bytes.
func (m *Manager) KeychainDataFromSeed(seed []byte, password string) ([]byte, error) {
	if len(seed) != 64 {
		return nil, kcherr.WithDetails(
			kcherr.New(kcherr.InvalidSeedSize, "seed must be exactly 64 bytes"),
			map[string]string{"got": strconv.Itoa(len(seed))},
		)
	}

	entries, err := m.keyDataForEachFactory(seed)
	if err != nil {
		return nil, err
	}
	return m.encryptRecord(container.Record{Seed: seed, Keys: entries}, password)
}

// KeychainDataFromMnemonic derives the manager's seed from a mnemonic,
// then follows the same path as KeychainDataFromSeed but records the
// mnemonic and dictionary instead of the raw seed.
func (m *Manager) KeychainDataFromMnemonic(phrase, password string, dict ...mnemonic.Dictionary) ([]byte, error) {
	d := mnemonic.English
	if len(dict) > 0 {
		d = dict[0]
	}

	seed, err := mnemonic.SeedFromMnemonic(phrase, "", m.seedBits, d)
	if err != nil {
		return nil, err
	}

	entries, err := m.keyDataForEachFactory(seed)
	if err != nil {
		return nil, err
	}

	ordinal := uint8(d)
	return m.encryptRecord(container.Record{Mnemonic: &phrase, Dictionary: &ordinal, Keys: entries}, password)
}

func (m *Manager) decryptRecord(encrypted []byte, password string) (container.Record, error) {
	plaintext, err := envelope.Decrypt(encrypted, password)
	if err != nil {
		return container.Record{}, err
	}
	buf := secure.FromSlice(plaintext)
	secure.Zero(plaintext)
	defer buf.Destroy()
	return container.Parse(buf.Bytes())
}

// KeychainFromData decrypts encrypted and instantiates a Keychain,
// silently skipping any key entry whose network has no compiled-in
// factory.
func (m *Manager) KeychainFromData(encrypted []byte, password string) (Keychain, error) {
	record, err := m.decryptRecord(encrypted, password)
	if err != nil {
		return Keychain{}, err
	}

	keys := make(map[uint32]network.Key, len(record.Keys))
	for _, entry := range record.Keys {
		factory, ok := m.factories[entry.Network]
		if !ok {
			continue
		}
		key, err := factory.KeyFromData(entry.Payload)
		if err != nil {
			return Keychain{}, kcherr.WithNetwork(err, entry.Network)
		}
		keys[entry.Network] = key
	}

	return Keychain{set: keyset.New(keys)}, nil
}

func (m *Manager) recoverSeed(record container.Record) ([]byte, error) {
	if record.Seed != nil {
		return record.Seed, nil
	}
	if record.Mnemonic != nil && record.Dictionary != nil {
		return mnemonic.SeedFromMnemonic(*record.Mnemonic, "", m.seedBits, mnemonic.Dictionary(*record.Dictionary))
	}
	return nil, kcherr.New(kcherr.SeedIsNotSaved, "container has neither a seed nor a recoverable mnemonic")
}

// AddNetwork decrypts encrypted, derives and inserts a key payload for
// networkCode, and returns freshly re-encrypted bytes.
func (m *Manager) AddNetwork(encrypted []byte, password string, networkCode uint32) ([]byte, error) {
	record, err := m.decryptRecord(encrypted, password)
	if err != nil {
		return nil, err
	}

	for _, entry := range record.Keys {
		if entry.Network == networkCode {
			return nil, kcherr.WithNetwork(kcherr.New(kcherr.KeyAlreadyExist, "network already has a key"), networkCode)
		}
	}

	factory, ok := m.factories[networkCode]
	if !ok {
		return nil, kcherr.WithNetwork(kcherr.New(kcherr.NetworkIsNotSupported, "no factory compiled in for this network"), networkCode)
	}

	seed, err := m.recoverSeed(record)
	if err != nil {
		return nil, err
	}

	payload, err := factory.KeyDataFromSeed(seed)
	if err != nil {
		return nil, kcherr.WithNetwork(err, networkCode)
	}
	record.Keys = append(record.Keys, container.KeyEntry{Network: networkCode, Payload: payload})

	return m.encryptRecord(record, password)
}

// ChangePassword decrypts with old and re-encrypts the unmodified
// plaintext with new, drawing a fresh salt and nonce.
func (m *Manager) ChangePassword(encrypted []byte, oldPassword, newPassword string) ([]byte, error) {
	plaintext, err := envelope.Decrypt(encrypted, oldPassword)
	if err != nil {
		return nil, err
	}
	return envelope.Encrypt(plaintext, newPassword, m.entropy)
}

// RetrieveMnemonic returns the container's mnemonic and dictionary, for
// backup purposes. Containers built from a raw seed have none.
func (m *Manager) RetrieveMnemonic(encrypted []byte, password string) (string, mnemonic.Dictionary, error) {
	record, err := m.decryptRecord(encrypted, password)
	if err != nil {
		return "", 0, err
	}
	if record.Mnemonic == nil || record.Dictionary == nil {
		return "", 0, kcherr.New(kcherr.SeedIsNotSaved, "container was not built from a mnemonic")
	}
	return *record.Mnemonic, mnemonic.Dictionary(*record.Dictionary), nil
}

// GetKeysData returns every (network, payload) pair verbatim, including
// entries for networks with no compiled-in factory, for backup purposes.
func (m *Manager) GetKeysData(encrypted []byte, password string) ([]KeyData, error) {
	record, err := m.decryptRecord(encrypted, password)
	if err != nil {
		return nil, err
	}

	out := make([]KeyData, 0, len(record.Keys))
	for _, entry := range record.Keys {
		out = append(out, KeyData{Network: entry.Network, Payload: entry.Payload})
	}
	return out, nil
}
