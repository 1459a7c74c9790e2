package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey is the cache key for converting svg to format with the given
// converter arguments, e.g. "artifact:png:<hash>". The arguments are part
// of the hashed input, so a different zoom never reuses a cached raster.
func ArtifactKey(svg []byte, format string, args ...string) string {
	h := sha256.New()
	h.Write(svg)
	for _, a := range args {
		h.Write([]byte{0})
		h.Write([]byte(a))
	}
	return strings.Join([]string{"artifact", format, hex.EncodeToString(h.Sum(nil))}, ":")
}
