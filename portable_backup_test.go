package keychain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	kc "github.com/duskvault/keychain"
)

func TestPortableBackupRoundTripThroughManager(t *testing.T) {
	t.Parallel()
	m := newManager(t, kc.NewBitcoinFactory())

	data, err := m.KeychainDataFromMnemonic(testMnemonic, "pw")
	require.NoError(t, err)

	archive, err := kc.ExportPortableBackup(data, "export-pw")
	require.NoError(t, err)

	restored, err := kc.ImportPortableBackup(archive, "export-pw")
	require.NoError(t, err)
	require.Equal(t, data, restored)

	keychain, err := m.KeychainFromData(restored, "pw")
	require.NoError(t, err)
	require.True(t, keychain.HasNetwork(kc.Bitcoin))
}

func TestImportPortableBackupRejectsWrongExportPassword(t *testing.T) {
	t.Parallel()
	m := newManager(t, kc.NewBitcoinFactory())

	data, err := m.KeychainDataFromSeed(make([]byte, 64), "pw")
	require.NoError(t, err)

	archive, err := kc.ExportPortableBackup(data, "right")
	require.NoError(t, err)

	_, err = kc.ImportPortableBackup(archive, "wrong")
	require.Error(t, err)
}
