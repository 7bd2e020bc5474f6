package keychain

import "github.com/duskvault/keychain/internal/backup"

// ExportPortableBackup wraps encrypted — the output of any Manager
// operation that returns container bytes — in an age-encrypted archive
// protected by exportPassword, for transport outside the canonical
// envelope format. The wrapped bytes are carried verbatim.
func ExportPortableBackup(encrypted []byte, exportPassword string) ([]byte, error) {
	return backup.Export(encrypted, exportPassword)
}

// ImportPortableBackup reverses ExportPortableBackup, returning the
// original container bytes for KeychainFromData or any other Manager
// operation to decrypt as usual.
func ImportPortableBackup(archive []byte, exportPassword string) ([]byte, error) {
	return backup.Import(archive, exportPassword)
}
