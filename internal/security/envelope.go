package security

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
)

// KeyService is the remote key-management collaborator used for envelope
// encryption: it issues data keys and unwraps previously wrapped ones.
type KeyService interface {
	GenerateDataKey(ctx context.Context) (plaintextKey, wrappedKey []byte, err error)
	UnwrapDataKey(ctx context.Context, wrappedKey []byte) ([]byte, error)
}

// EnvelopeEncryptor encrypts each value under a fresh data key and stores
// the wrapped key alongside the ciphertext.
// Layout: uint16(len(wrapped)) || wrapped || nonce || sealed.
type EnvelopeEncryptor struct {
	keys KeyService
}

func NewEnvelopeEncryptor(keys KeyService) *EnvelopeEncryptor {
	return &EnvelopeEncryptor{keys: keys}
}

func (e *EnvelopeEncryptor) Encrypt(plaintext string) ([]byte, error) {
	plainKey, wrappedKey, err := e.keys.GenerateDataKey(context.Background())
	if err != nil {
		return nil, fmt.Errorf("envelope: data key: %w", err)
	}
	aead, err := newAEAD(plainKey)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("envelope: nonce: %w", err)
	}

	out := make([]byte, 2, 2+len(wrappedKey)+len(nonce)+len(plaintext)+aead.Overhead())
	binary.BigEndian.PutUint16(out, uint16(len(wrappedKey)))
	out = append(out, wrappedKey...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, []byte(plaintext), nil), nil
}

func (e *EnvelopeEncryptor) Decrypt(ciphertext []byte) (string, bool) {
	if len(ciphertext) < 2 {
		return "", false
	}
	wrappedLen := int(binary.BigEndian.Uint16(ciphertext))
	if len(ciphertext) < 2+wrappedLen {
		return "", false
	}
	wrappedKey := ciphertext[2 : 2+wrappedLen]
	rest := ciphertext[2+wrappedLen:]

	plainKey, err := e.keys.UnwrapDataKey(context.Background(), wrappedKey)
	if err != nil {
		slog.Warn("envelope decrypt: unwrap failed", "error", err.Error())
		return "", false
	}
	aead, err := newAEAD(plainKey)
	if err != nil {
		return "", false
	}
	if len(rest) < aead.NonceSize() {
		return "", false
	}
	nonce, sealed := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", false
	}
	return string(plaintext), true
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("envelope: cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
