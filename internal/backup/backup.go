// Package backup implements the portable backup archive format: an
// age-encrypted, checksummed wrapper around an unmodified keychain
// envelope, for out-of-band transport. It never touches a filesystem path;
// callers own where the returned bytes end up.
package backup

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"io"

	"filippo.io/age"

	kcherr "github.com/duskvault/keychain/pkg/errors"
)

// FormatVersion is the archive's inner format version.
const FormatVersion = 1

// manifest describes the wrapped envelope without naming the wallet: the
// archive format carries no identifying metadata beyond what's needed to
// detect corruption.
type manifest struct {
	Version  int    `json:"version"`
	Checksum []byte `json:"checksum"`
	Envelope []byte `json:"envelope"`
}

func newBackupError(reason, message string) error {
	return kcherr.WithDetails(kcherr.New(kcherr.DataError, message), map[string]string{"reason": reason})
}

// Export wraps encrypted (the output of a KeychainManager operation) in an
// age-encrypted archive protected by exportPassword. encrypted is carried
// verbatim; Export never inspects or alters the envelope wire format.
func Export(encrypted []byte, exportPassword string) ([]byte, error) {
	sum := sha256.Sum256(encrypted)
	inner, err := json.Marshal(manifest{
		Version:  FormatVersion,
		Checksum: sum[:],
		Envelope: encrypted,
	})
	if err != nil {
		return nil, kcherr.Wrap(err, "marshaling backup manifest")
	}

	recipient, err := age.NewScryptRecipient(exportPassword)
	if err != nil {
		return nil, kcherr.Wrap(err, "constructing backup recipient")
	}

	var out bytes.Buffer
	w, err := age.Encrypt(&out, recipient)
	if err != nil {
		return nil, kcherr.Wrap(err, "opening backup archive for writing")
	}
	if _, err := w.Write(inner); err != nil {
		return nil, kcherr.Wrap(err, "writing backup archive")
	}
	if err := w.Close(); err != nil {
		return nil, kcherr.Wrap(err, "closing backup archive")
	}
	return out.Bytes(), nil
}

// Import reverses Export, returning the unmodified envelope bytes for
// KeychainFromData (or any other manager operation) to decrypt as usual.
func Import(archive []byte, exportPassword string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(exportPassword)
	if err != nil {
		return nil, kcherr.Wrap(err, "constructing backup identity")
	}

	r, err := age.Decrypt(bytes.NewReader(archive), identity)
	if err != nil {
		return nil, newBackupError("WrongExportPassword", "archive could not be decrypted")
	}
	inner, err := io.ReadAll(r)
	if err != nil {
		return nil, kcherr.Wrap(err, "reading backup archive")
	}

	var m manifest
	if err := json.Unmarshal(inner, &m); err != nil {
		return nil, newBackupError("InvalidArchive", "backup archive is not a recognized manifest")
	}
	if m.Version != FormatVersion {
		return nil, newBackupError("UnsupportedVersion", "backup archive has an unsupported format version")
	}

	sum := sha256.Sum256(m.Envelope)
	if !bytes.Equal(sum[:], m.Checksum) {
		return nil, newBackupError("ChecksumMismatch", "backup archive envelope failed its checksum")
	}
	return m.Envelope, nil
}
