package security

import (
	"fmt"

	"github.com/crestline/financing-service/internal/domain"
)

const (
	StrategyAESGCM   = "aesgcm"
	StrategyEnvelope = "envelope"
	StrategyMultiKey = "multikey"
)

// Config selects an encryption strategy by name. For multikey, Keys holds
// the ordered sub-strategies, most preferred first.
type Config struct {
	Strategy   string   `yaml:"strategy" env:"SECURITY_STRATEGY" env-default:"aesgcm"`
	Passphrase string   `yaml:"passphrase" env:"SECURITY_PASSPHRASE"`
	Salt       string   `yaml:"salt" env:"SECURITY_SALT"`
	Keys       []Config `yaml:"keys"`
}

// New resolves the configured strategy at startup, so a bad name fails at
// construction instead of at first use. keys may be nil unless an envelope
// strategy appears in the configuration.
func New(cfg Config, keys KeyService) (domain.Encryptor, error) {
	switch cfg.Strategy {
	case StrategyAESGCM:
		return NewAESGCMEncryptor(cfg.Passphrase, cfg.Salt)
	case StrategyEnvelope:
		if keys == nil {
			return nil, fmt.Errorf("security: envelope strategy requires a key service")
		}
		return NewEnvelopeEncryptor(keys), nil
	case StrategyMultiKey:
		subs := make([]domain.Encryptor, 0, len(cfg.Keys))
		for i, sub := range cfg.Keys {
			enc, err := New(sub, keys)
			if err != nil {
				return nil, fmt.Errorf("security: multikey entry %d: %w", i, err)
			}
			subs = append(subs, enc)
		}
		return NewMultiKeyEncryptor(subs...)
	default:
		return nil, fmt.Errorf("security: unknown strategy %q", cfg.Strategy)
	}
}
