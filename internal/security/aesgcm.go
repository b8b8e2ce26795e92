package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyIterations = 4096
	keyLength     = 32
)

// DeriveKey stretches a configured passphrase into an AES-256 key.
func DeriveKey(passphrase, salt string) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(salt), keyIterations, keyLength, sha256.New)
}

// AESGCMEncryptor is symmetric authenticated encryption under a single
// static key. Ciphertext layout: nonce || sealed.
type AESGCMEncryptor struct {
	aead cipher.AEAD
}

func NewAESGCMEncryptor(passphrase, salt string) (*AESGCMEncryptor, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("aesgcm: empty passphrase")
	}
	block, err := aes.NewCipher(DeriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("aesgcm: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: %w", err)
	}
	return &AESGCMEncryptor{aead: aead}, nil
}

func (e *AESGCMEncryptor) Encrypt(plaintext string) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("aesgcm: nonce: %w", err)
	}
	return e.aead.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

func (e *AESGCMEncryptor) Decrypt(ciphertext []byte) (string, bool) {
	if len(ciphertext) < e.aead.NonceSize() {
		return "", false
	}
	nonce, sealed := ciphertext[:e.aead.NonceSize()], ciphertext[e.aead.NonceSize():]
	plaintext, err := e.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", false
	}
	return string(plaintext), true
}
