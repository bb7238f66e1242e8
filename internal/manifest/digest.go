package manifest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes keep digests of different artifacts apart. The version
// suffix allows the encoding to change.
const (
	DomainTrace    = "zkarith/trace/v1"
	DomainManifest = "zkarith/manifest/v1"
)

// Digest computes SHA-256(domain || 0x00 || data) as lowercase hex.
func Digest(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
