package fraud

import (
	"fmt"

	"github.com/crestline/financing-service/internal/config"
	"github.com/crestline/financing-service/internal/domain"
)

// New resolves the configured screening strategy by name at startup; an
// unknown name fails construction instead of first use.
func New(cfg config.Fraud) (domain.FraudScreen, error) {
	switch cfg.Strategy {
	case "", "accept_all":
		return NewAcceptAllStrategy(), nil
	case "score_threshold":
		if cfg.Host == "" {
			return nil, fmt.Errorf("fraud: score_threshold strategy requires a scorer host")
		}
		return NewScoreThresholdStrategy(cfg.Host, cfg.Threshold), nil
	default:
		return nil, fmt.Errorf("fraud: unknown strategy %q", cfg.Strategy)
	}
}
