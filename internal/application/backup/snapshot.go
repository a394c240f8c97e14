// Package backup ships dataset snapshots to remote storage and merges them back on restore.
package backup

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"
)

// SnapshotVersion is the format tag written into every snapshot.
const SnapshotVersion = "1.0"

// Snapshot is the envelope stored remotely.
type Snapshot struct {
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
	UserID    string          `json:"userId"`
	Data      json.RawMessage `json:"data"`
	Checksum  string          `json:"checksum"`
}

// Checksum returns the hex BLAKE2b-256 digest of payload.
func Checksum(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// seal is where payload encryption belongs. It currently returns the payload unchanged,
// so snapshots are stored in clear text.
// TODO: encrypt with a per-user key before uploading.
func seal(payload []byte) ([]byte, error) {
	return payload, nil
}

// open reverses seal.
func open(payload []byte) ([]byte, error) {
	return payload, nil
}
