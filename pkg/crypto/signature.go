package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// PrivateKey wraps a secp256k1 private key for ECDSA signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	key := secp256k1.PrivKeyFromBytes(b)
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromHex parses a hex-encoded 32-byte secret.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode private key hex: %w", err)
	}
	return PrivateKeyFromBytes(b)
}

// Sign produces a DER-encoded ECDSA signature over a transaction id. The id
// is already a SHA-256 digest, so it is hex-decoded and signed directly
// rather than hashed a second time.
func (pk *PrivateKey) Sign(id types.Hash) ([]byte, error) {
	raw, err := hex.DecodeString(id.String())
	if err != nil {
		return nil, fmt.Errorf("decode tx id: %w", err)
	}
	sig := ecdsa.Sign(pk.key, raw)
	return sig.Serialize(), nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// PublicKeyHex returns the compressed public key as a lowercase hex string,
// the wallet's address.
func (pk *PrivateKey) PublicKeyHex() string {
	return hex.EncodeToString(pk.PublicKey())
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// SerializeHex returns the 32-byte private key scalar as lowercase hex.
func (pk *PrivateKey) SerializeHex() string {
	return hex.EncodeToString(pk.Serialize())
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// VerifySignature checks a DER-encoded ECDSA signature of a transaction id
// against a compressed public key. Returns false on any malformed input
// rather than an error, matching validate_tx's "never panics" rule.
func VerifySignature(id types.Hash, signature []byte, publicKey []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	raw, err := hex.DecodeString(id.String())
	if err != nil {
		return false
	}
	return sig.Verify(raw, pubKey)
}

// VerifySignatureHex is VerifySignature taking hex-encoded signature and
// public key strings, the representation used throughout the wire types.
func VerifySignatureHex(id types.Hash, signatureHex, publicKeyHex string) bool {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	pub, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return false
	}
	return VerifySignature(id, sig, pub)
}
