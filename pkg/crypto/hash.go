// Package crypto provides the cryptographic primitives: SHA-256 hashing,
// proof-of-work difficulty testing, and secp256k1 signing.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gophercoin/gophercoin/pkg/types"
)

// SHA256Hex hashes data and returns the lowercase hex digest.
func SHA256Hex(data []byte) types.Hash {
	sum := sha256.Sum256(data)
	return types.Hash(hex.EncodeToString(sum[:]))
}

// MeetsDifficulty reports whether hash has at least difficulty leading zero
// bits when read as a big-endian bit string. Difficulty 0 is met by any
// hash, including an empty one.
func MeetsDifficulty(hash types.Hash, difficulty uint64) bool {
	return PrefixZeroBits(hash) >= difficulty
}

// PrefixZeroBits counts the number of leading zero bits in the hex digest,
// reading each hex character as 4 bits, most significant first.
func PrefixZeroBits(hash types.Hash) uint64 {
	var count uint64
	for _, c := range hash.String() {
		nibble, ok := hexNibble(c)
		if !ok {
			return count
		}
		if nibble == 0 {
			count += 4
			continue
		}
		for bit := 3; bit >= 0; bit-- {
			if nibble&(1<<uint(bit)) != 0 {
				return count
			}
			count++
		}
		return count
	}
	return count
}

func hexNibble(c rune) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0'), true
	case c >= 'a' && c <= 'f':
		return byte(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return byte(c-'A') + 10, true
	default:
		return 0, false
	}
}
