package security

import (
	"fmt"

	"github.com/crestline/financing-service/internal/domain"
)

// MultiKeyEncryptor is the zero-downtime rotation strategy. All new writes
// use the first configured sub-encryptor; decryption walks the ordered list
// and returns the first hit, so old keys stay readable until a re-encryption
// sweep retires them.
type MultiKeyEncryptor struct {
	encryptors []domain.Encryptor
}

func NewMultiKeyEncryptor(encryptors ...domain.Encryptor) (*MultiKeyEncryptor, error) {
	if len(encryptors) == 0 {
		return nil, fmt.Errorf("multikey: at least one sub-encryptor required")
	}
	return &MultiKeyEncryptor{encryptors: encryptors}, nil
}

func (e *MultiKeyEncryptor) Encrypt(plaintext string) ([]byte, error) {
	return e.encryptors[0].Encrypt(plaintext)
}

func (e *MultiKeyEncryptor) Decrypt(ciphertext []byte) (string, bool) {
	for _, sub := range e.encryptors {
		if plaintext, ok := sub.Decrypt(ciphertext); ok {
			return plaintext, true
		}
	}
	return "", false
}
