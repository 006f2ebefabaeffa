package payload

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Checksum returns the BLAKE3-256 digest of data as 64 lowercase hex
// characters. The checksum is reported to callers for display and
// audit; it is never stored inside a container and never compared
// against an embedded value.
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
