package matching

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a hex BLAKE2b-256 digest identifying an input pair.
// Each text is length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func Fingerprint(resumeText, jobDescriptionText string) string {
	h, _ := blake2b.New256(nil) // only fails for oversized keys

	var prefix [8]byte
	for _, s := range []string{resumeText, jobDescriptionText} {
		binary.BigEndian.PutUint64(prefix[:], uint64(len(s)))
		h.Write(prefix[:])
		h.Write([]byte(s))
	}

	return hex.EncodeToString(h.Sum(nil))
}
