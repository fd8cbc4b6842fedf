package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/gophercoin/gophercoin/pkg/types"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	pub := key.PublicKey()
	if len(pub) != 33 {
		t.Errorf("PublicKey() length = %d, want 33", len(pub))
	}

	ser := key.Serialize()
	if len(ser) != 32 {
		t.Errorf("Serialize() length = %d, want 32", len(ser))
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	k1, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	k2, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	if bytes.Equal(k1.Serialize(), k2.Serialize()) {
		t.Error("two generated keys should not be identical")
	}
}

func TestPrivateKeyFromBytes(t *testing.T) {
	original, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	restored, err := PrivateKeyFromBytes(original.Serialize())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	if !bytes.Equal(original.PublicKey(), restored.PublicKey()) {
		t.Error("restored key should have same public key")
	}
}

func TestPrivateKeyFromHex_Roundtrip(t *testing.T) {
	original, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	restored, err := PrivateKeyFromHex(original.SerializeHex())
	if err != nil {
		t.Fatalf("PrivateKeyFromHex() error: %v", err)
	}
	if restored.PublicKeyHex() != original.PublicKeyHex() {
		t.Error("restored key should have same address")
	}
}

func TestPrivateKeyFromBytes_InvalidLength(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 16)},
		{"too long", make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrivateKeyFromBytes(tt.data)
			if err == nil {
				t.Error("expected error for invalid key length")
			}
		})
	}
}

func TestSign_Verify(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	id := SHA256Hex([]byte("test message"))
	sig, err := key.Sign(id)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if !VerifySignature(id, sig, key.PublicKey()) {
		t.Error("signature should verify against the correct key and id")
	}
}

func TestSign_InvalidID(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	_, err = key.Sign(types.Hash("not-hex"))
	if err == nil {
		t.Error("Sign() should reject a non-hex id")
	}
}

func TestVerify_WrongID(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	id := SHA256Hex([]byte("message"))
	sig, err := key.Sign(id)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	wrongID := SHA256Hex([]byte("different message"))
	if VerifySignature(wrongID, sig, key.PublicKey()) {
		t.Error("signature should not verify with wrong id")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	key1, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	key2, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	id := SHA256Hex([]byte("message"))
	sig, err := key1.Sign(id)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if VerifySignature(id, sig, key2.PublicKey()) {
		t.Error("signature should not verify with wrong public key")
	}
}

func TestVerify_CorruptedSignature(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	id := SHA256Hex([]byte("message"))
	sig, err := key.Sign(id)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	corrupted := make([]byte, len(sig))
	copy(corrupted, sig)
	corrupted[0] ^= 0x01

	if VerifySignature(id, corrupted, key.PublicKey()) {
		t.Error("corrupted signature should not verify")
	}
}

func TestVerify_InvalidInputs(t *testing.T) {
	tests := []struct {
		name      string
		id        types.Hash
		signature []byte
		publicKey []byte
	}{
		{"bad id hex", "zz", make([]byte, 64), make([]byte, 33)},
		{"empty signature", types.Hash(make([]byte, 64)), nil, make([]byte, 33)},
		{"empty public key", types.Hash(make([]byte, 64)), make([]byte, 64), nil},
		{"garbage public key", types.Hash(make([]byte, 64)), make([]byte, 64), []byte("bad")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifySignature(tt.id, tt.signature, tt.publicKey) {
				t.Error("should return false for invalid inputs")
			}
		})
	}
}

func TestVerifySignatureHex(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	id := SHA256Hex([]byte("hex roundtrip"))
	sig, err := key.Sign(id)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	sigHex := hex.EncodeToString(sig)
	if !VerifySignatureHex(id, sigHex, key.PublicKeyHex()) {
		t.Error("VerifySignatureHex should verify a valid signature")
	}
}

func TestPrivateKey_Zero(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	id := SHA256Hex([]byte("test"))
	if _, err := key.Sign(id); err != nil {
		t.Fatalf("Sign() should work before Zero(): %v", err)
	}

	key.Zero()

	ser := key.Serialize()
	for _, b := range ser {
		if b != 0 {
			t.Error("Serialize() should return zeros after Zero()")
			break
		}
	}
}

