package security

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/crestline/financing-service/internal/domain"
)

// fakeKeyService wraps data keys by XOR with a master byte, enough to
// exercise the envelope layout without a remote service.
type fakeKeyService struct {
	master byte
	fail   bool
}

func (f *fakeKeyService) GenerateDataKey(ctx context.Context) ([]byte, []byte, error) {
	plain := make([]byte, 32)
	if _, err := rand.Read(plain); err != nil {
		return nil, nil, err
	}
	wrapped := make([]byte, len(plain))
	for i, b := range plain {
		wrapped[i] = b ^ f.master
	}
	return plain, wrapped, nil
}

func (f *fakeKeyService) UnwrapDataKey(ctx context.Context, wrapped []byte) ([]byte, error) {
	if f.fail {
		return nil, fmt.Errorf("key service unavailable")
	}
	plain := make([]byte, len(wrapped))
	for i, b := range wrapped {
		plain[i] = b ^ f.master
	}
	return plain, nil
}

func mustAESGCM(t *testing.T, passphrase, salt string) *AESGCMEncryptor {
	t.Helper()
	enc, err := NewAESGCMEncryptor(passphrase, salt)
	if err != nil {
		t.Fatalf("NewAESGCMEncryptor: %v", err)
	}
	return enc
}

func TestRoundTripAllStrategies(t *testing.T) {
	aesEnc := mustAESGCM(t, "passphrase-one", "salt")
	envEnc := NewEnvelopeEncryptor(&fakeKeyService{master: 0x5a})
	multi, err := NewMultiKeyEncryptor(mustAESGCM(t, "new-key", "salt"), aesEnc)
	if err != nil {
		t.Fatalf("NewMultiKeyEncryptor: %v", err)
	}

	encryptors := map[string]domain.Encryptor{
		"aesgcm":   aesEnc,
		"envelope": envEnc,
		"multikey": multi,
	}
	plaintexts := []string{"", "9999999999999999", "short", "unicode £¥ value"}

	for name, enc := range encryptors {
		t.Run(name, func(t *testing.T) {
			for _, plaintext := range plaintexts {
				ciphertext, err := enc.Encrypt(plaintext)
				if err != nil {
					t.Fatalf("Encrypt(%q): %v", plaintext, err)
				}
				got, ok := enc.Decrypt(ciphertext)
				if !ok {
					t.Fatalf("Decrypt(Encrypt(%q)) not ok", plaintext)
				}
				if got != plaintext {
					t.Fatalf("round trip: expected %q, got %q", plaintext, got)
				}
			}
		})
	}
}

func TestMultiKeyDecryptsOldKeyCiphertext(t *testing.T) {
	oldEnc := mustAESGCM(t, "old-key", "salt")
	newEnc := mustAESGCM(t, "new-key", "salt")

	ciphertext, err := oldEnc.Encrypt("4111111111111111")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	multi, err := NewMultiKeyEncryptor(newEnc, oldEnc)
	if err != nil {
		t.Fatalf("NewMultiKeyEncryptor: %v", err)
	}
	got, ok := multi.Decrypt(ciphertext)
	if !ok || got != "4111111111111111" {
		t.Fatalf("expected old-key ciphertext to decrypt, got %q ok=%v", got, ok)
	}

	// New writes must go out under the first key.
	fresh, err := multi.Encrypt("value")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, ok := newEnc.Decrypt(fresh); !ok {
		t.Fatalf("new writes should decrypt under the first configured key")
	}
	if _, ok := oldEnc.Decrypt(fresh); ok {
		t.Fatalf("new writes should not decrypt under the retired key")
	}
}

func TestDecryptForeignKeyReturnsFalse(t *testing.T) {
	k1 := mustAESGCM(t, "key-one", "salt")
	k2 := mustAESGCM(t, "key-two", "salt")

	ciphertext, err := k1.Encrypt("sensitive")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if got, ok := k2.Decrypt(ciphertext); ok {
		t.Fatalf("foreign-key decrypt must fail, got %q", got)
	}
}

func TestDecryptMalformedInput(t *testing.T) {
	enc := mustAESGCM(t, "key", "salt")
	env := NewEnvelopeEncryptor(&fakeKeyService{master: 0x10})

	inputs := [][]byte{nil, {}, {0x01}, bytes.Repeat([]byte{0xff}, 64)}
	for _, in := range inputs {
		if _, ok := enc.Decrypt(in); ok {
			t.Fatalf("aesgcm: malformed input %v decrypted", in)
		}
		if _, ok := env.Decrypt(in); ok {
			t.Fatalf("envelope: malformed input %v decrypted", in)
		}
	}
}

func TestEnvelopeDecryptKeyServiceFailure(t *testing.T) {
	svc := &fakeKeyService{master: 0x22}
	enc := NewEnvelopeEncryptor(svc)
	ciphertext, err := enc.Encrypt("value")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	svc.fail = true
	if _, ok := enc.Decrypt(ciphertext); ok {
		t.Fatalf("decrypt should report not-ok when the key service fails")
	}
}

func TestRegistry(t *testing.T) {
	enc, err := New(Config{Strategy: StrategyMultiKey, Keys: []Config{
		{Strategy: StrategyAESGCM, Passphrase: "new", Salt: "s"},
		{Strategy: StrategyAESGCM, Passphrase: "old", Salt: "s"},
	}}, nil)
	if err != nil {
		t.Fatalf("New multikey: %v", err)
	}
	if _, ok := enc.(*MultiKeyEncryptor); !ok {
		t.Fatalf("expected *MultiKeyEncryptor, got %T", enc)
	}

	if _, err := New(Config{Strategy: "reflection.magic"}, nil); err == nil {
		t.Fatalf("unknown strategy must fail at construction")
	}
	if _, err := New(Config{Strategy: StrategyEnvelope}, nil); err == nil {
		t.Fatalf("envelope without key service must fail at construction")
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	a := DeriveKey("pass", "salt")
	b := DeriveKey("pass", "salt")
	if !bytes.Equal(a, b) {
		t.Fatalf("derived keys differ for identical inputs")
	}
	if bytes.Equal(a, DeriveKey("pass", "other-salt")) {
		t.Fatalf("salt change should change the derived key")
	}
	block, err := aes.NewCipher(a)
	if err != nil {
		t.Fatalf("derived key not a valid AES key: %v", err)
	}
	if _, err := cipher.NewGCM(block); err != nil {
		t.Fatalf("NewGCM: %v", err)
	}
}
