package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize produces the canonical form of source text used for
// fingerprinting: NFKC-normalized, lowercased, whitespace collapsed. Two
// derivations of the same passage normalize identically even when produced
// through separate generation calls.
func Normalize(text string) string {
	folded := strings.ToLower(norm.NFKC.String(text))

	return strings.Join(strings.Fields(folded), " ")
}

// Fingerprint returns the content hash of normalized source text.
func Fingerprint(text string) string {
	hash := sha256.Sum256([]byte(Normalize(text)))

	return hex.EncodeToString(hash[:12]) // 24 hex chars
}
