// Package fingerprint derives cache keys from input content.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"autoinspect/internal/analysis"
)

// Sum returns the hex SHA-256 digest of the primary content bytes.
func Sum(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// SumAll digests a sequence of byte slices with length framing: the
// count and each slice's length are folded into the hash, so distinct
// sequences never collide even when their concatenations are
// byte-identical (e.g. one photo "ab" versus two photos "a","b").
func SumAll(blobs ...[]byte) string {
	h := sha256.New()
	var frame [8]byte
	binary.BigEndian.PutUint64(frame[:], uint64(len(blobs)))
	h.Write(frame[:])
	for _, b := range blobs {
		binary.BigEndian.PutUint64(frame[:], uint64(len(b)))
		h.Write(frame[:])
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Key combines a content digest with the analysis kind and a
// discriminator for any context that affects the prompt. Two calls
// share a cache entry only when all three match.
func Key(sum string, kind analysis.Kind, discriminator string) string {
	return sum + ":" + string(kind) + ":" + discriminator
}
