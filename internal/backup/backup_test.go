package backup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskvault/keychain/internal/backup"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	envelope := []byte("pretend this is an opaque encrypted container blob")

	archive, err := backup.Export(envelope, "export-pw")
	require.NoError(t, err)
	assert.NotEqual(t, envelope, archive)

	got, err := backup.Import(archive, "export-pw")
	require.NoError(t, err)
	assert.Equal(t, envelope, got)
}

func TestImportRejectsWrongPassword(t *testing.T) {
	t.Parallel()
	archive, err := backup.Export([]byte("envelope bytes"), "right-pw")
	require.NoError(t, err)

	_, err = backup.Import(archive, "wrong-pw")
	require.Error(t, err)
}

func TestImportRejectsGarbageArchive(t *testing.T) {
	t.Parallel()
	_, err := backup.Import([]byte("not an age archive at all"), "pw")
	require.Error(t, err)
}

func TestExportProducesDistinctArchivesForSameInput(t *testing.T) {
	t.Parallel()
	envelope := []byte("same envelope every time")

	a, err := backup.Export(envelope, "pw")
	require.NoError(t, err)
	b, err := backup.Export(envelope, "pw")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
