package usecase

import (
	"fmt"
	"log/slog"

	"github.com/crestline/financing-service/internal/domain"
)

// DefaultCredentialsSelector picks the merchant identity an acting user's
// provider calls go out under. The most specific user-group match wins;
// otherwise the highest-priority group-less record is the default.
type DefaultCredentialsSelector struct {
	Credentials domain.MerchantCredentialsRepository
	Groups      domain.UserGroupResolver
}

func NewDefaultCredentialsSelector(
	credentials domain.MerchantCredentialsRepository,
	groups domain.UserGroupResolver) *DefaultCredentialsSelector {

	return &DefaultCredentialsSelector{
		Credentials: credentials,
		Groups:      groups,
	}
}

func (s *DefaultCredentialsSelector) Select(kind domain.CredentialsKind, userID string) (*domain.MerchantCredentials, error) {
	candidates, err := s.Credentials.ListByKind(kind)
	if err != nil {
		return nil, fmt.Errorf("list %s credentials: %w", kind, err)
	}

	groups, err := s.Groups.Groups(userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user groups: %w", err)
	}
	memberOf := make(map[string]bool, len(groups))
	for _, g := range groups {
		memberOf[g] = true
	}

	// candidates arrive ordered by descending priority
	for _, c := range candidates {
		if c.UserGroupID != "" && memberOf[c.UserGroupID] {
			return c, nil
		}
	}
	for _, c := range candidates {
		if c.UserGroupID == "" {
			return c, nil
		}
	}

	slog.Error("no merchant credentials matched",
		"kind", string(kind), "user_id", userID, "candidates", len(candidates))
	return nil, domain.ErrNoMerchantCredentials
}
